// Package sync drives the client's offline-first synchronization: every
// batch is persisted locally before any network activity, a single flight
// guard keeps concurrent syncs from interleaving, and an online watcher
// retries automatically when the server comes back.
package sync

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/focussync/internal/client/api"
	"github.com/dmitrijs2005/focussync/internal/client/store"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// Skip reasons reported when a sync did not reach the server. The batch is
// already durable locally in every one of these cases.
const (
	MsgSkippedOffline    = "not synced (offline)"
	MsgSkippedInProgress = "not synced (sync already in progress)"
	MsgSkippedNetwork    = "not synced (server unreachable)"
	MsgSkippedSession    = "not synced (session expired, log in again)"
)

// Outcome describes what a Sync call achieved. Synced is false when the call
// stopped after the local save; Message says why.
type Outcome struct {
	Synced       bool
	Message      string
	Tasks        []model.TaskRecord
	Timers       []model.TimerRecord
	LastSyncedAt string
}

type Syncer struct {
	client api.Client
	store  store.Store

	online  atomic.Bool
	syncing atomic.Bool
}

func NewSyncer(client api.Client, st store.Store) *Syncer {
	return &Syncer{client: client, store: st}
}

func (s *Syncer) IsOnline() bool {
	return s.online.Load()
}

func (s *Syncer) setOnline(online bool) bool {
	return s.online.Swap(online) != online
}

// Sync persists the batch locally, then attempts to reconcile it with the
// server. The local save always happens, even when the network step is
// skipped or fails; a skipped or failed network step is not an error.
func (s *Syncer) Sync(ctx context.Context, tasks []model.TaskRecord, timers []model.TimerRecord) (*Outcome, error) {
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return nil, err
	}
	if err := s.store.SaveTimers(ctx, timers); err != nil {
		return nil, err
	}

	if !s.online.Load() {
		return &Outcome{Message: MsgSkippedOffline, Tasks: tasks, Timers: timers}, nil
	}

	if !s.syncing.CompareAndSwap(false, true) {
		return &Outcome{Message: MsgSkippedInProgress, Tasks: tasks, Timers: timers}, nil
	}
	defer s.syncing.Store(false)

	res, err := s.client.Sync(ctx, tasks, timers)
	if err != nil {
		// a rejected session (revoked refresh token) is not a connectivity
		// problem; tell the user to log in instead of blaming the network
		msg := MsgSkippedNetwork
		if errors.Is(err, api.ErrUnauthorized) {
			msg = MsgSkippedSession
		}
		return &Outcome{Message: msg, Tasks: tasks, Timers: timers}, nil
	}

	// the reconciled state is the new local truth
	if err := s.store.SaveTasks(ctx, res.Tasks); err != nil {
		return nil, err
	}
	if err := s.store.SaveTimers(ctx, res.Timers); err != nil {
		return nil, err
	}
	if err := s.persistSession(ctx, res.LastSyncedAt); err != nil {
		return nil, err
	}

	return &Outcome{
		Synced:       true,
		Message:      res.Message,
		Tasks:        res.Tasks,
		Timers:       res.Timers,
		LastSyncedAt: res.LastSyncedAt,
	}, nil
}

// SyncStored reconciles whatever the local database currently holds. Used on
// reconnect and after login.
func (s *Syncer) SyncStored(ctx context.Context) (*Outcome, error) {
	return s.Sync(ctx, s.store.LoadTasks(ctx), s.store.LoadTimers(ctx))
}

// persistSession records the sync time and the current token pair so a
// restarted client resumes the session. Rotation during the sync is covered:
// whatever pair the API client ended up holding is what gets stored.
func (s *Syncer) persistSession(ctx context.Context, lastSyncedAt string) error {
	if err := s.store.SetMeta(ctx, store.MetaLastSyncedAt, lastSyncedAt); err != nil {
		return err
	}
	access, refresh := s.client.Tokens()
	if err := s.store.SetMeta(ctx, store.MetaAccessToken, access); err != nil {
		return err
	}
	return s.store.SetMeta(ctx, store.MetaRefreshToken, refresh)
}

// StartOnlineStatusWatcher probes the server every interval and flips the
// online flag. An offline-to-online transition immediately syncs the stored
// state. Blocks until ctx is cancelled.
func (s *Syncer) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := s.client.Ping(pingCtx)
			cancel()

			if err != nil {
				if s.setOnline(false) {
					log.Println("Switched to offline mode")
				}
				continue
			}

			if s.setOnline(true) {
				log.Println("Switched to online mode")
				if _, err := s.SyncStored(ctx); err != nil {
					log.Printf("sync after reconnect failed: %v", err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
