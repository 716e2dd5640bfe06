package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/focussync/internal/client/migrations"
	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/filex"
	"github.com/dmitrijs2005/focussync/internal/model"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open creates the data directory if needed, opens (or creates) the database
// file inside it, and applies migrations.
func Open(ctx context.Context, dataDir string) (*SQLiteStore, error) {
	dir, err := filex.EnsureSubDir(dataDir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "focussync.db"))
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTasks replaces the stored task set in one transaction.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []model.TaskRecord) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}
		for _, t := range tasks {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO tasks (id, title, completed, updated_at) VALUES (?, ?, ?, ?)`,
				t.ID, t.Title, t.Completed, t.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// SaveTimers replaces the stored timer set in one transaction.
func (s *SQLiteStore) SaveTimers(ctx context.Context, timers []model.TimerRecord) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM timers`); err != nil {
			return fmt.Errorf("failed to clear timers: %w", err)
		}
		for _, t := range timers {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO timers (id, task_id, duration_ms, started_at, completed_at, category, status, label)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.TaskID, t.DurationMs, t.StartedAt, t.CompletedAt, t.Category, t.Status, t.Label)
			if err != nil {
				return fmt.Errorf("failed to insert timer %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// LoadTasks returns every stored task. Unreadable state yields the empty set.
func (s *SQLiteStore) LoadTasks(ctx context.Context) []model.TaskRecord {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, completed, updated_at FROM tasks`)
	if err != nil {
		return []model.TaskRecord{}
	}
	defer rows.Close()

	result := []model.TaskRecord{}
	for rows.Next() {
		var t model.TaskRecord
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.UpdatedAt); err != nil {
			return []model.TaskRecord{}
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return []model.TaskRecord{}
	}
	return result
}

// LoadTimers returns every stored timer. Unreadable state yields the empty set.
func (s *SQLiteStore) LoadTimers(ctx context.Context) []model.TimerRecord {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, duration_ms, started_at, completed_at, category, status, label FROM timers`)
	if err != nil {
		return []model.TimerRecord{}
	}
	defer rows.Close()

	result := []model.TimerRecord{}
	for rows.Next() {
		var t model.TimerRecord
		if err := rows.Scan(&t.ID, &t.TaskID, &t.DurationMs, &t.StartedAt, &t.CompletedAt, &t.Category, &t.Status, &t.Label); err != nil {
			return []model.TimerRecord{}
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return []model.TimerRecord{}
	}
	return result
}

// GetMeta returns the stored value for key, or "" when the key is absent.
func (s *SQLiteStore) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteMeta(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) ClearMeta(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
