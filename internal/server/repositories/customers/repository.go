// Package customers declares and implements storage of customer accounts.
package customers

import (
	"context"

	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

// Repository persists customers. Lookups return common.ErrorNotFound when no
// row matches; every other failure is a *common.StoreError.
type Repository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) error
	UpdatePassword(ctx context.Context, id int64, salt, digest string) error
}
