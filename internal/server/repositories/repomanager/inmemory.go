package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/records"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves singleton map-backed repositories.
type InMemoryRepositoryManager struct {
	users         *users.InMemoryRepository
	records       *records.InMemoryRepository
	refreshTokens *refreshtokens.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewInMemoryRepository(),
		records:       records.NewInMemoryRepository(),
		refreshTokens: refreshtokens.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB { return nil }

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return m.records
}

func (m *InMemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}
