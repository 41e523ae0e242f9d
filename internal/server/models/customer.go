// Package models defines server-side data models persisted in the database.
package models

import "time"

// Customer is a registered account. Password holds the salted digest, never
// the plaintext.
type Customer struct {
	ID            int64
	UUID          string
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	Password      string
	Salt          string
	CreatedAt     time.Time
}
