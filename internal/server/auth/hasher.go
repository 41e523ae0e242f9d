package auth

import (
	"crypto/subtle"
	"encoding/base64"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltLength = 32
	keyLength  = 32
)

// HasherParams are the argon2id cost parameters.
type HasherParams struct {
	Time      uint32
	MemoryKB  uint32
	Threads   uint8
	KeyLength uint32
}

// DefaultHasherParams matches the server config defaults.
var DefaultHasherParams = HasherParams{Time: 1, MemoryKB: 64 * 1024, Threads: 4, KeyLength: keyLength}

// PasswordHasher derives deterministic salted digests with argon2id.
// Salt and digest are stored base64 encoded.
type PasswordHasher struct {
	params HasherParams
}

// NewPasswordHasher falls back to DefaultHasherParams for every zero field,
// since argon2.IDKey panics on zero rounds or threads.
func NewPasswordHasher(p HasherParams) *PasswordHasher {
	if p.Time == 0 {
		p.Time = DefaultHasherParams.Time
	}
	if p.MemoryKB == 0 {
		p.MemoryKB = DefaultHasherParams.MemoryKB
	}
	if p.Threads == 0 {
		p.Threads = DefaultHasherParams.Threads
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultHasherParams.KeyLength
	}
	return &PasswordHasher{params: p}
}

// Hash generates a fresh random salt and returns it with the digest of
// salt+plaintext.
func (h *PasswordHasher) Hash(plaintext string) (salt, digest string) {
	raw := common.GenerateRandByteArray(saltLength)
	salt = base64.StdEncoding.EncodeToString(raw)
	return salt, h.Digest(plaintext, salt)
}

// Digest re-derives the digest of plaintext under an existing encoded salt.
func (h *PasswordHasher) Digest(plaintext, salt string) string {
	key := argon2.IDKey([]byte(plaintext), []byte(salt), h.params.Time, h.params.MemoryKB, h.params.Threads, h.params.KeyLength)
	return base64.StdEncoding.EncodeToString(key)
}

// Verify recomputes the digest with salt and compares it in constant time.
func (h *PasswordHasher) Verify(plaintext, salt, digest string) bool {
	candidate := h.Digest(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}
