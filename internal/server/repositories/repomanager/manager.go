package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/opmlogin/internal/dbx"
	"github.com/dmitrijs2005/opmlogin/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle (a *sql.DB or a
// transaction) and applies schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
