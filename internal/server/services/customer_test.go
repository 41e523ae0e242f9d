package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  SignupRequest
		want error
	}{
		{"missing first name", SignupRequest{Email: validEmail, ContactNumber: validContact, Password: validPassword}, common.ErrSignupMissingRequired},
		{"missing password", SignupRequest{FirstName: "Ann", Email: validEmail, ContactNumber: validContact}, common.ErrSignupMissingRequired},
		{"bad email", SignupRequest{FirstName: "Ann", Email: "ann.example.com", ContactNumber: validContact, Password: validPassword}, common.ErrSignupInvalidEmail},
		{"short contact", SignupRequest{FirstName: "Ann", Email: validEmail, ContactNumber: "12345", Password: validPassword}, common.ErrSignupInvalidContact},
		{"weak password", SignupRequest{FirstName: "Ann", Email: validEmail, ContactNumber: validContact, Password: "Password"}, common.ErrSignupWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if !errors.Is(tt.want, common.ErrSignupMissingRequired) {
				f.rollbacks()
			}

			_, err := f.customers.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, common.ErrValidationFailed)
			assert.Empty(t, f.store.customers)
			f.verify(t)
		})
	}
}

func TestSignup_StoresDigestNotPlaintext(t *testing.T) {
	f := newFixture(t)
	f.commits()

	c, err := f.customers.Signup(context.Background(), SignupRequest{
		FirstName: "Ann", LastName: "Lee", Email: validEmail, ContactNumber: validContact, Password: validPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.UUID)
	assert.NotEqual(t, validPassword, c.Password)
	assert.NotEmpty(t, c.Salt)

	h := auth.NewPasswordHasher(auth.HasherParams{Time: 1, MemoryKB: 1024, Threads: 1})
	assert.True(t, h.Verify(validPassword, c.Salt, c.Password))
	f.verify(t)
}

func TestSignup_DuplicateContactNumber(t *testing.T) {
	f := newFixture(t)
	req := SignupRequest{FirstName: "Ann", Email: validEmail, ContactNumber: validContact, Password: validPassword}

	f.commits()
	_, err := f.customers.Signup(context.Background(), req)
	require.NoError(t, err)

	f.rollbacks()
	req.Email = "other@example.com"
	_, err = f.customers.Signup(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrSignupContactTaken)
	assert.Len(t, f.store.customers, 1)
	f.verify(t)
}

func TestSignup_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failWith = common.NewStoreError("get customer by contact number", errors.New("down"))
	f.rollbacks()

	_, err := f.customers.Signup(context.Background(), SignupRequest{
		FirstName: "Ann", Email: validEmail, ContactNumber: validContact, Password: validPassword,
	})
	assert.ErrorIs(t, err, common.ErrStore)
	f.verify(t)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	f.commits()
	_, err := f.customers.Signup(context.Background(), SignupRequest{
		FirstName: "Ann", Email: validEmail, ContactNumber: validContact, Password: validPassword,
	})
	require.NoError(t, err)

	_, err = f.customers.Login(context.Background(), "not-an-email", validPassword)
	assert.ErrorIs(t, err, common.ErrLoginMalformedRequest)

	_, err = f.customers.Login(context.Background(), validEmail, "weak")
	assert.ErrorIs(t, err, common.ErrLoginMalformedRequest)

	f.rollbacks()
	_, err = f.customers.Login(context.Background(), "ghost@example.com", validPassword)
	assert.ErrorIs(t, err, common.ErrLoginUnknownAccount)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)

	f.rollbacks()
	_, err = f.customers.Login(context.Background(), validEmail, "Password2@")
	assert.ErrorIs(t, err, common.ErrLoginBadCredentials)

	assert.Empty(t, f.store.sessions)
	f.verify(t)
}

func TestLogin_OpensSession(t *testing.T) {
	f := newFixture(t)
	token := f.signupAndLogin(t, validEmail, validContact)

	require.Len(t, f.store.sessions, 1)
	for _, s := range f.store.sessions {
		assert.Equal(t, token, s.AccessToken)
		assert.Equal(t, f.clock.Now(), s.LoginAt)
		assert.Equal(t, f.clock.Now().Add(8*time.Hour), s.ExpiresAt)
		assert.Nil(t, s.LogoutAt)
	}

	// the token resolves back to the customer it was issued for
	f.commits()
	session, err := f.customers.Authorize(context.Background(), token)
	require.NoError(t, err)
	c := f.store.customers[session.CustomerID]
	assert.Equal(t, c.UUID, session.CustomerUUID)

	claims := &auth.Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(c.Password), nil },
		jwt.WithTimeFunc(f.clock.Now))
	require.NoError(t, err)
	assert.Equal(t, c.UUID, claims.CustomerID)
	f.verify(t)
}

func TestLogin_ConcurrentSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	first := f.signupAndLogin(t, validEmail, validContact)

	f.commits()
	res, err := f.customers.Login(context.Background(), validEmail, validPassword)
	require.NoError(t, err)
	assert.NotEqual(t, first, res.Session.AccessToken)
	assert.Len(t, f.store.sessions, 2)

	f.commits()
	_, err = f.customers.Logout(context.Background(), first)
	require.NoError(t, err)

	f.commits()
	_, err = f.customers.Authorize(context.Background(), res.Session.AccessToken)
	assert.NoError(t, err)
	f.verify(t)
}

func TestLogout_Twice(t *testing.T) {
	f := newFixture(t)
	token := f.signupAndLogin(t, validEmail, validContact)
	f.clock.Advance(time.Minute)

	f.commits()
	session, err := f.customers.Logout(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, session.LogoutAt)
	assert.Equal(t, f.clock.Now(), *session.LogoutAt)

	f.rollbacks()
	_, err = f.customers.Logout(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrLoggedOut)
	assert.ErrorIs(t, err, common.ErrSessionClosed)
	f.verify(t)
}

func TestLogout_Expired(t *testing.T) {
	f := newFixture(t)
	token := f.signupAndLogin(t, validEmail, validContact)
	f.clock.Advance(8*time.Hour + time.Second)

	f.rollbacks()
	_, err := f.customers.Logout(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrExpired)
	f.verify(t)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	token := f.signupAndLogin(t, validEmail, validContact)

	f.rollbacks()
	_, err := f.customers.UpdateProfile(context.Background(), token, "", "Lee")
	assert.ErrorIs(t, err, common.ErrUpdateFirstNameEmpty)

	f.commits()
	c, err := f.customers.UpdateProfile(context.Background(), token, "Anna", "Lee")
	require.NoError(t, err)
	assert.Equal(t, "Anna", c.FirstName)
	assert.Equal(t, "Lee", f.store.customers[c.ID].LastName)

	f.rollbacks()
	_, err = f.customers.UpdateProfile(context.Background(), "bogus", "Anna", "Lee")
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	f.verify(t)
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	token := f.signupAndLogin(t, validEmail, validContact)

	f.rollbacks()
	_, err := f.customers.UpdatePassword(context.Background(), token, "", "Newpass1!")
	assert.ErrorIs(t, err, common.ErrUpdateMissingField)

	f.rollbacks()
	_, err = f.customers.UpdatePassword(context.Background(), token, validPassword, "newpass")
	assert.ErrorIs(t, err, common.ErrUpdateWeakPassword)

	f.rollbacks()
	_, err = f.customers.UpdatePassword(context.Background(), token, "Wrongpass1!", "Newpass1!")
	assert.ErrorIs(t, err, common.ErrUpdateWrongPassword)
	ce, ok := common.AsCoded(err)
	require.True(t, ok)
	assert.Equal(t, "UCR-004", ce.Code)
	assert.Equal(t, "IncorrectOld Password!", ce.Message)

	before := *f.store.customers[1]

	f.commits()
	c, err := f.customers.UpdatePassword(context.Background(), token, validPassword, "Newpass1!")
	require.NoError(t, err)
	assert.NotEqual(t, before.Salt, c.Salt)
	assert.NotEqual(t, before.Password, c.Password)

	f.rollbacks()
	_, err = f.customers.Login(context.Background(), validEmail, validPassword)
	assert.ErrorIs(t, err, common.ErrLoginBadCredentials)

	f.commits()
	_, err = f.customers.Login(context.Background(), validEmail, "Newpass1!")
	assert.NoError(t, err)
	f.verify(t)
}
