// Package store is the client's durable local state: the full task and timer
// sets plus a small metadata key/value area for the session (tokens, email,
// last sync time). Everything lives in a single SQLite file so a restart, a
// crash, or weeks of offline use lose nothing.
package store

import (
	"context"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// Metadata keys used by the CLI and the syncer.
const (
	MetaEmail        = "email"
	MetaAccessToken  = "access_token"
	MetaRefreshToken = "refresh_token"
	MetaLastSyncedAt = "last_synced_at"
)

// Store defines the local persistence operations.
//
// Save* replace the whole record set atomically; partial writes never
// survive. Load* return the empty set when nothing was ever saved or when
// the stored data cannot be read, so a fresh or damaged database behaves
// like a fresh install rather than an error the user cannot act on.
type Store interface {
	SaveTasks(ctx context.Context, tasks []model.TaskRecord) error
	SaveTimers(ctx context.Context, timers []model.TimerRecord) error
	LoadTasks(ctx context.Context) []model.TaskRecord
	LoadTimers(ctx context.Context) []model.TimerRecord

	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error
	DeleteMeta(ctx context.Context, key string) error
	ClearMeta(ctx context.Context) error

	Close() error
}
