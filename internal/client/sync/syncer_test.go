package sync

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/focussync/internal/client/api"
	"github.com/dmitrijs2005/focussync/internal/client/store"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// stubClient counts sync calls and returns a scripted result.
type stubClient struct {
	syncCalls int
	result    *api.SyncResult
	syncErr   error
	pingErr   error

	access, refresh string
}

func (c *stubClient) Register(ctx context.Context, email, password, displayName string) (*api.AuthResult, error) {
	return nil, nil
}
func (c *stubClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return nil, nil
}
func (c *stubClient) Refresh(ctx context.Context) error { return nil }
func (c *stubClient) Ping(ctx context.Context) error    { return c.pingErr }
func (c *stubClient) SetTokens(access, refresh string)  { c.access, c.refresh = access, refresh }
func (c *stubClient) Tokens() (string, string)          { return c.access, c.refresh }
func (c *stubClient) HasSession() bool                  { return c.refresh != "" }

func (c *stubClient) Sync(ctx context.Context, tasks []model.TaskRecord, timers []model.TimerRecord) (*api.SyncResult, error) {
	c.syncCalls++
	if c.syncErr != nil {
		return nil, c.syncErr
	}
	if c.result != nil {
		return c.result, nil
	}
	return &api.SyncResult{Tasks: tasks, Timers: timers, LastSyncedAt: "2024-01-01T00:00:00Z"}, nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.RunMigrations(context.Background(), db))
	return store.NewSQLiteStore(db)
}

var testBatch = []model.TaskRecord{
	{ID: "t1", Title: "Write report", UpdatedAt: "2024-01-01T10:00:00Z"},
}

func TestSync_OfflineStillPersistsBatch(t *testing.T) {
	client := &stubClient{}
	st := newTestStore(t)
	s := NewSyncer(client, st)

	out, err := s.Sync(context.Background(), testBatch, nil)
	require.NoError(t, err)

	assert.False(t, out.Synced)
	assert.Equal(t, MsgSkippedOffline, out.Message)
	assert.Zero(t, client.syncCalls, "no network call while offline")
	assert.Equal(t, testBatch, st.LoadTasks(context.Background()), "batch is durable before any network step")
}

func TestSync_GuardSkipsButPersists(t *testing.T) {
	client := &stubClient{}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)
	s.syncing.Store(true) // a sync is already in flight

	out, err := s.Sync(context.Background(), testBatch, nil)
	require.NoError(t, err)

	assert.False(t, out.Synced)
	assert.Equal(t, MsgSkippedInProgress, out.Message)
	assert.Zero(t, client.syncCalls)
	assert.Equal(t, testBatch, st.LoadTasks(context.Background()),
		"the losing trigger's batch still reaches the store")
}

func TestSync_NetworkFailureIsNotAnError(t *testing.T) {
	client := &stubClient{syncErr: api.ErrUnavailable}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)

	out, err := s.Sync(context.Background(), testBatch, nil)
	require.NoError(t, err)

	assert.False(t, out.Synced)
	assert.Equal(t, MsgSkippedNetwork, out.Message)
	assert.Equal(t, testBatch, st.LoadTasks(context.Background()))
	assert.False(t, s.syncing.Load(), "guard released after failure")
}

func TestSync_RevokedSessionReportedAsSuch(t *testing.T) {
	client := &stubClient{syncErr: fmt.Errorf("%w: invalid refresh token", api.ErrUnauthorized)}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)

	out, err := s.Sync(context.Background(), testBatch, nil)
	require.NoError(t, err)

	assert.False(t, out.Synced)
	assert.Equal(t, MsgSkippedSession, out.Message, "auth failure must not be blamed on the network")
	assert.Equal(t, testBatch, st.LoadTasks(context.Background()))
}

func TestSync_ServerResultOverwritesStore(t *testing.T) {
	merged := []model.TaskRecord{
		{ID: "t1", Title: "Write report v2", UpdatedAt: "2024-01-02T10:00:00Z"},
		{ID: "t9", Title: "From another device", UpdatedAt: "2024-01-01T09:00:00Z"},
	}
	client := &stubClient{
		result:  &api.SyncResult{Tasks: merged, LastSyncedAt: "2024-01-02T11:00:00Z", Message: "synced with profile"},
		access:  "acc1",
		refresh: "ref1",
	}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)

	out, err := s.Sync(context.Background(), testBatch, nil)
	require.NoError(t, err)

	assert.True(t, out.Synced)
	assert.Equal(t, "synced with profile", out.Message)
	assert.Equal(t, merged, st.LoadTasks(context.Background()), "reconciled state replaces the local set")

	ctx := context.Background()
	last, err := st.GetMeta(ctx, store.MetaLastSyncedAt)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T11:00:00Z", last)

	refresh, err := st.GetMeta(ctx, store.MetaRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "ref1", refresh, "session survives a restart")
}

func TestSyncStored_SendsWhatTheStoreHolds(t *testing.T) {
	client := &stubClient{}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)

	ctx := context.Background()
	require.NoError(t, st.SaveTasks(ctx, testBatch))

	out, err := s.SyncStored(ctx)
	require.NoError(t, err)

	assert.True(t, out.Synced)
	assert.Equal(t, 1, client.syncCalls)
	assert.Equal(t, testBatch, out.Tasks)
}

func TestSync_RepeatedSyncIsStable(t *testing.T) {
	client := &stubClient{}
	st := newTestStore(t)
	s := NewSyncer(client, st)
	s.online.Store(true)

	ctx := context.Background()

	first, err := s.Sync(ctx, testBatch, nil)
	require.NoError(t, err)
	second, err := s.Sync(ctx, first.Tasks, first.Timers)
	require.NoError(t, err)

	assert.Equal(t, first.Tasks, second.Tasks, "echo of an echo changes nothing")
	assert.Equal(t, 2, client.syncCalls)
}
