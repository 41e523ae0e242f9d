// Package addresses stores customer addresses and their ownership relation.
package addresses

import (
	"context"

	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts an address referencing a.State.ID and fills in a.ID.
	Create(ctx context.Context, a *models.Address) (*models.Address, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Address, error)
	Delete(ctx context.Context, id int64) error

	CreateOwnership(ctx context.Context, customerID, addressID int64) error
	DeleteOwnership(ctx context.Context, addressID int64) error
	// GetOwnerID returns the customer owning addressID, or common.ErrorNotFound
	// when no ownership row exists.
	GetOwnerID(ctx context.Context, addressID int64) (int64, error)

	// ListByCustomer returns the customer's addresses in insertion order.
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.Address, error)
}
