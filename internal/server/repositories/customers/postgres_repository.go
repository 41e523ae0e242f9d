package customers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
)

const selectCustomer = `SELECT id, uuid, firstname, lastname, email, contact_number, password, salt, created_at FROM customer`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query :=
		`INSERT INTO customer (uuid, firstname, lastname, email, contact_number, password, salt)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.UUID, c.FirstName, nullString(c.LastName), c.Email, c.ContactNumber, c.Password, c.Salt).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, common.NewStoreError("create customer", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.getOne(ctx, "get customer by id", selectCustomer+` WHERE id = $1`, id)
}

// GetByEmail returns the oldest customer with that email; email is not unique.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.getOne(ctx, "get customer by email", selectCustomer+` WHERE email = $1 ORDER BY id LIMIT 1`, email)
}

func (r *PostgresRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error) {
	return r.getOne(ctx, "get customer by contact number", selectCustomer+` WHERE contact_number = $1`, contactNumber)
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id int64, firstName, lastName string) error {
	query := `UPDATE customer SET firstname = $1, lastname = $2 WHERE id = $3`
	return r.exec(ctx, "update customer name", query, firstName, nullString(lastName), id)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, salt, digest string) error {
	query := `UPDATE customer SET salt = $1, password = $2 WHERE id = $3`
	return r.exec(ctx, "update customer password", query, salt, digest, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, op, query string, arg any) (*models.Customer, error) {
	c := &models.Customer{}
	var lastName sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.UUID, &c.FirstName, &lastName, &c.Email, &c.ContactNumber, &c.Password, &c.Salt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStoreError(op, err)
	}

	c.LastName = lastName.String
	return c, nil
}

func (r *PostgresRepository) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return common.NewStoreError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewStoreError(op, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
