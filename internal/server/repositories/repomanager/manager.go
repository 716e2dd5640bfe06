// Package repomanager selects a storage backend for the server: an in-memory
// one (default, no durability) or Postgres. Services depend only on this
// interface, so the reconciliation algorithm never knows which backend runs.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/records"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB handle. Conn returns
// nil for backends without a database; services then skip transaction
// wrapping and pass a nil DBTX, which map-backed repositories ignore.
type RepositoryManager interface {
	Conn() *sql.DB
	RunMigrations(ctx context.Context) error
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
