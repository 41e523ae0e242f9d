package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.CustomerAuth) (*models.CustomerAuth, error) {
	query :=
		`INSERT INTO customer_auth (uuid, customer_id, access_token, login_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, a.UUID, a.CustomerID, a.AccessToken, a.LoginAt, a.ExpiresAt).Scan(&a.ID)
	if err != nil {
		return nil, common.NewStoreError("create session", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.CustomerAuth, error) {
	query :=
		`SELECT ca.id, ca.uuid, ca.customer_id, c.uuid, ca.access_token, ca.login_at, ca.expires_at, ca.logout_at
		 FROM customer_auth ca
		 JOIN customer c ON c.id = ca.customer_id
		 WHERE ca.access_token = $1`

	a := &models.CustomerAuth{}
	var logoutAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&a.ID, &a.UUID, &a.CustomerID, &a.CustomerUUID, &a.AccessToken, &a.LoginAt, &a.ExpiresAt, &logoutAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStoreError("get session by token", err)
	}

	if logoutAt.Valid {
		t := logoutAt.Time
		a.LogoutAt = &t
	}

	return a, nil
}

func (r *PostgresRepository) SetLogoutAt(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE customer_auth SET logout_at = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return common.NewStoreError("set session logout", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewStoreError("set session logout", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
