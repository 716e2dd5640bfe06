// Package records stores the authoritative per-user task and timer sets the
// reconciliation engine merges into.
package records

import (
	"context"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// Repository persists per-user record collections. Lists return empty slices
// for users with no records. Replace swaps the whole collection; the
// reconciliation engine always writes full merged sets.
type Repository interface {
	ListTasks(ctx context.Context, userID string) ([]model.TaskRecord, error)
	ListTimers(ctx context.Context, userID string) ([]model.TimerRecord, error)
	ReplaceTasks(ctx context.Context, userID string, tasks []model.TaskRecord) error
	ReplaceTimers(ctx context.Context, userID string, timers []model.TimerRecord) error
}
