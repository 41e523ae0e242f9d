package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/customers"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/states"
)

// RepositoryManager vends repositories bound to a connection or an open
// transaction, so services can compose several of them in one unit of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Customers(db dbx.DBTX) customers.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Addresses(db dbx.DBTX) addresses.Repository
	States(db dbx.DBTX) states.Repository
}
