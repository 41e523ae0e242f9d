package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer mints opaque access tokens. A token is an HS256 JWT whose
// signing key is a per-login secret (the customer's verified password
// digest), so it can not be forged without that digest and reveals nothing
// about the password itself.
type TokenIssuer struct{}

func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{}
}

// Claims carries the customer identity and the session window.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string `json:"customer_id"`
}

// Issue returns a new token for customerID. Every call yields a distinct
// token: the claims carry a random jti next to the timestamps.
func (i *TokenIssuer) Issue(customerID string, secret []byte, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings{customerID},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		CustomerID: customerID,
	})

	return token.SignedString(secret)
}
