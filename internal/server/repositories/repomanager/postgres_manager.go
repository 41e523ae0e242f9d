// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/customers"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/states"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Customers(db dbx.DBTX) customers.Repository {
	return customers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Addresses(db dbx.DBTX) addresses.Repository {
	return addresses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) States(db dbx.DBTX) states.Repository {
	return states.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema and state seed.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
