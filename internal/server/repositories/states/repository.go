// Package states reads the seeded state reference table.
package states

import (
	"context"

	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

type Repository interface {
	GetByUUID(ctx context.Context, uuid string) (*models.State, error)
	List(ctx context.Context) ([]*models.State, error)
}
