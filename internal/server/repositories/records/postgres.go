package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// PostgresRepository implements Repository on top of a DBTX. Replace calls
// are expected to run inside a transaction so delete+insert is atomic; the
// sync service wraps them in dbx.WithTx.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListTasks(ctx context.Context, userID string) ([]model.TaskRecord, error) {
	query := `SELECT id, title, completed, updated_at FROM tasks WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]model.TaskRecord, 0)
	for rows.Next() {
		var t model.TaskRecord
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListTimers(ctx context.Context, userID string) ([]model.TimerRecord, error) {
	query := `SELECT id, task_id, duration_ms, started_at, completed_at, category, status, label
			  FROM timers WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select timers: %w", err)
	}
	defer rows.Close()

	result := make([]model.TimerRecord, 0)
	for rows.Next() {
		var t model.TimerRecord
		if err := rows.Scan(&t.ID, &t.TaskID, &t.DurationMs, &t.StartedAt,
			&t.CompletedAt, &t.Category, &t.Status, &t.Label); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ReplaceTasks(ctx context.Context, userID string, tasks []model.TaskRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	query := `INSERT INTO tasks (user_id, id, title, completed, updated_at) VALUES ($1, $2, $3, $4, $5)`
	for _, t := range tasks {
		if _, err := r.db.ExecContext(ctx, query, userID, t.ID, t.Title, t.Completed, t.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ReplaceTimers(ctx context.Context, userID string, timers []model.TimerRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timers WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear timers: %w", err)
	}
	query := `INSERT INTO timers (user_id, id, task_id, duration_ms, started_at, completed_at, category, status, label)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, t := range timers {
		if _, err := r.db.ExecContext(ctx, query, userID, t.ID, t.TaskID, t.DurationMs,
			t.StartedAt, t.CompletedAt, t.Category, t.Status, t.Label); err != nil {
			return fmt.Errorf("failed to insert timer: %w", err)
		}
	}
	return nil
}
