package addresses

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

const selectAddress = `SELECT a.id, a.uuid, a.flat_buil_number, a.locality, a.city, a.pincode, a.active, s.id, s.uuid, s.state_name
		 FROM address a
		 JOIN state s ON s.id = a.state_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAddress(row scanner) (*models.Address, error) {
	a := &models.Address{}
	err := row.Scan(&a.ID, &a.UUID, &a.FlatBuildingName, &a.Locality, &a.City, &a.Pincode, &a.Active,
		&a.State.ID, &a.State.UUID, &a.State.Name)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	query :=
		`INSERT INTO address (uuid, flat_buil_number, locality, city, pincode, state_id, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		a.UUID, a.FlatBuildingName, a.Locality, a.City, a.Pincode, a.State.ID, a.Active).Scan(&a.ID)
	if err != nil {
		return nil, common.NewStoreError("create address", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByUUID(ctx context.Context, uuid string) (*models.Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, selectAddress+` WHERE a.uuid = $1`, uuid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStoreError("get address by uuid", err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM address WHERE id = $1`, id); err != nil {
		return common.NewStoreError("delete address", err)
	}
	return nil
}

func (r *PostgresRepository) CreateOwnership(ctx context.Context, customerID, addressID int64) error {
	query := `INSERT INTO customer_address (customer_id, address_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, customerID, addressID); err != nil {
		return common.NewStoreError("create address ownership", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteOwnership(ctx context.Context, addressID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customer_address WHERE address_id = $1`, addressID); err != nil {
		return common.NewStoreError("delete address ownership", err)
	}
	return nil
}

func (r *PostgresRepository) GetOwnerID(ctx context.Context, addressID int64) (int64, error) {
	var customerID int64
	err := r.db.QueryRowContext(ctx, `SELECT customer_id FROM customer_address WHERE address_id = $1`, addressID).
		Scan(&customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, common.NewStoreError("get address owner", err)
	}
	return customerID, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Address, error) {
	query := selectAddress + `
		 JOIN customer_address ca ON ca.address_id = a.id
		 WHERE ca.customer_id = $1
		 ORDER BY ca.id`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, common.NewStoreError("list addresses", err)
	}
	defer rows.Close()

	result := make([]*models.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, common.NewStoreError("list addresses", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStoreError("list addresses", err)
	}

	return result, nil
}
