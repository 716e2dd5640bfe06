package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/model"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/repomanager"
)

// Status messages returned to clients alongside merged sets.
const (
	MsgSyncedWithProfile = "synced with profile"
	MsgSyncedLocally     = "synced locally (no profile associated)"
)

// SyncResult is the outcome of one reconciliation round.
type SyncResult struct {
	Tasks        []model.TaskRecord
	Timers       []model.TimerRecord
	LastSyncedAt string
	Message      string
}

// SyncService is the reconciliation engine: it merges a client's record
// batch into the authoritative per-user sets using per-id last-write-wins on
// the RecencyKey, with the stored side winning ties.
type SyncService struct {
	manager repomanager.RepositoryManager
	locks   *KeyedMutex
	now     func() time.Time
}

// NewSyncService constructs a SyncService sharing the per-user lock registry
// with the user service.
func NewSyncService(m repomanager.RepositoryManager, locks *KeyedMutex) *SyncService {
	return &SyncService{manager: m, locks: locks, now: time.Now}
}

// Reconcile merges the incoming batch into user's authoritative sets and
// returns them. A nil user means no authenticated profile: the batch is
// echoed back unchanged so offline-only clients still get a lastSyncedAt
// stamp. The read-merge-write unit runs under the user's lock (and, for
// database backends, inside one transaction), so concurrent rounds for the
// same user serialize while unrelated users proceed independently.
func (s *SyncService) Reconcile(ctx context.Context, user *model.User, tasks []model.TaskRecord, timers []model.TimerRecord) (*SyncResult, error) {
	if tasks == nil {
		tasks = []model.TaskRecord{}
	}
	if timers == nil {
		timers = []model.TimerRecord{}
	}

	result := &SyncResult{
		LastSyncedAt: s.now().UTC().Format(time.RFC3339),
	}

	if user == nil {
		result.Tasks = tasks
		result.Timers = timers
		result.Message = MsgSyncedLocally
		return result, nil
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.manager.Records(tx)

		storedTasks, err := repo.ListTasks(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("error loading tasks: %w", err)
		}
		storedTimers, err := repo.ListTimers(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("error loading timers: %w", err)
		}

		mergedTasks := mergeRecords(storedTasks, tasks)
		mergedTimers := mergeRecords(storedTimers, timers)

		if err := repo.ReplaceTasks(ctx, user.ID, mergedTasks); err != nil {
			return fmt.Errorf("error saving tasks: %w", err)
		}
		if err := repo.ReplaceTimers(ctx, user.ID, mergedTimers); err != nil {
			return fmt.Errorf("error saving timers: %w", err)
		}

		result.Tasks = mergedTasks
		result.Timers = mergedTimers
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = MsgSyncedWithProfile
	return result, nil
}

func (s *SyncService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	db := s.manager.Conn()
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, fn)
}
