package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/focussync/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db))
	return NewSQLiteStore(db)
}

func TestLoadTasks_EmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.LoadTasks(context.Background()))
	assert.Empty(t, s.LoadTimers(context.Background()))
}

func TestSaveTasks_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tasks := []model.TaskRecord{
		{ID: "t1", Title: "Write report", Completed: false, UpdatedAt: "2024-01-01T10:00:00Z"},
		{ID: "t2", Title: "Review", Completed: true, UpdatedAt: "2024-01-02T10:00:00Z"},
	}
	require.NoError(t, s.SaveTasks(ctx, tasks))
	assert.ElementsMatch(t, tasks, s.LoadTasks(ctx))
}

func TestSaveTasks_ReplacesPreviousSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []model.TaskRecord{{ID: "t1", Title: "One", UpdatedAt: "2024-01-01T10:00:00Z"}}
	require.NoError(t, s.SaveTasks(ctx, first))

	second := []model.TaskRecord{{ID: "t2", Title: "Two", UpdatedAt: "2024-01-02T10:00:00Z"}}
	require.NoError(t, s.SaveTasks(ctx, second))

	assert.Equal(t, second, s.LoadTasks(ctx), "save is replace, not append")
}

func TestSaveTimers_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	timers := []model.TimerRecord{
		{
			ID: "s1", TaskID: "t1", DurationMs: 1500000,
			StartedAt: "2024-01-01T10:00:00Z", CompletedAt: "2024-01-01T10:25:00Z",
			Category: model.CategoryFocus, Status: model.StatusCompleted, Label: "deep work",
		},
		{ID: "s2", DurationMs: 300000, StartedAt: "2024-01-01T11:00:00Z", Category: model.CategoryShortBreak},
	}
	require.NoError(t, s.SaveTimers(ctx, timers))
	assert.ElementsMatch(t, timers, s.LoadTimers(ctx))
}

func TestLoadTasks_UnreadableStateYieldsEmptySet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTasks(ctx, []model.TaskRecord{{ID: "t1", Title: "One"}}))

	// simulate a damaged database by removing the table
	_, err := s.db.ExecContext(ctx, `DROP TABLE tasks`)
	require.NoError(t, err)

	assert.Empty(t, s.LoadTasks(ctx), "damage reads as a fresh install, not an error")
}

func TestMetadata_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v, err := s.GetMeta(ctx, MetaEmail)
	require.NoError(t, err)
	assert.Equal(t, "", v, "missing key reads as empty")

	require.NoError(t, s.SetMeta(ctx, MetaEmail, "ann@example.com"))
	require.NoError(t, s.SetMeta(ctx, MetaEmail, "updated@example.com"))

	v, err = s.GetMeta(ctx, MetaEmail)
	require.NoError(t, err)
	assert.Equal(t, "updated@example.com", v, "set is upsert")
}

func TestMetadata_DeleteAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetMeta(ctx, MetaAccessToken, "acc"))
	require.NoError(t, s.SetMeta(ctx, MetaRefreshToken, "ref"))

	require.NoError(t, s.DeleteMeta(ctx, MetaAccessToken))
	v, err := s.GetMeta(ctx, MetaAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.ClearMeta(ctx))
	v, err = s.GetMeta(ctx, MetaRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestSaveTasks_PersistsAcrossStoreInstances(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, db))

	tasks := []model.TaskRecord{{ID: "t1", Title: "Survive restart", UpdatedAt: "2024-01-01T10:00:00Z"}}
	require.NoError(t, NewSQLiteStore(db).SaveTasks(ctx, tasks))

	// a second store over the same database sees the same data
	assert.Equal(t, tasks, NewSQLiteStore(db).LoadTasks(ctx))
}
