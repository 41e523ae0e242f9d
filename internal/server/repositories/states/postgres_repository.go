package states

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUUID(ctx context.Context, uuid string) (*models.State, error) {
	s := &models.State{}
	err := r.db.QueryRowContext(ctx, `SELECT id, uuid, state_name FROM state WHERE uuid = $1`, uuid).
		Scan(&s.ID, &s.UUID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStoreError("get state by uuid", err)
	}
	return s, nil
}

// List returns all states ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.State, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, uuid, state_name FROM state ORDER BY state_name`)
	if err != nil {
		return nil, common.NewStoreError("list states", err)
	}
	defer rows.Close()

	result := make([]*models.State, 0)
	for rows.Next() {
		s := &models.State{}
		if err := rows.Scan(&s.ID, &s.UUID, &s.Name); err != nil {
			return nil, common.NewStoreError("list states", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStoreError("list states", err)
	}

	return result, nil
}
