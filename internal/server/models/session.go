package models

import "time"

// SessionState is the classification of a session at a point in time. It is
// always computed from the stored instants, never persisted.
type SessionState int

const (
	SessionActive SessionState = iota
	SessionExpired
	SessionLoggedOut
)

func (s SessionState) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionExpired:
		return "expired"
	case SessionLoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// CustomerAuth is one login session (table customer_auth). ExpiresAt is fixed
// at creation; LogoutAt is nil until the customer logs out.
type CustomerAuth struct {
	ID           int64
	UUID         string
	CustomerID   int64
	CustomerUUID string
	AccessToken  string
	LoginAt      time.Time
	ExpiresAt    time.Time
	LogoutAt     *time.Time
}

// StateAt classifies the session at now. Expiry is checked before logout, so
// a session that is both expired and logged out reports SessionExpired.
func (a *CustomerAuth) StateAt(now time.Time) SessionState {
	if now.After(a.ExpiresAt) {
		return SessionExpired
	}
	if a.LogoutAt != nil {
		return SessionLoggedOut
	}
	return SessionActive
}
