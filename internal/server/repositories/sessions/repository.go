// Package sessions declares the repository contract for customer login
// sessions (table customer_auth).
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

// Repository defines operations for recording and resolving sessions.
type Repository interface {
	// Create stores a new session and fills in its database id.
	Create(ctx context.Context, a *models.CustomerAuth) (*models.CustomerAuth, error)

	// GetByToken resolves an access token to its session, including the
	// owning customer's uuid. It returns common.ErrorNotFound for unknown tokens.
	GetByToken(ctx context.Context, token string) (*models.CustomerAuth, error)

	// SetLogoutAt records the logout instant of a session.
	SetLogoutAt(ctx context.Context, id int64, at time.Time) error
}
