package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/opmlogin/internal/dbx"
	"github.com/dmitrijs2005/opmlogin/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same in-memory repositories
// regardless of the DB handle; migrations are a no-op.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}
}
