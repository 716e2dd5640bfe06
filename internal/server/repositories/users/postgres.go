package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/focussync/internal/common"
	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// PostgresRepository implements Repository on top of a DBTX
// (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query :=
		`INSERT INTO users (id, email, display_name, password_hash, password_salt, current_streak, longest_streak)
		 VALUES ($1, lower($2), $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.PasswordSalt,
		user.CurrentStreak, user.LongestStreak)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var lastCheckIn sql.NullTime
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName,
		&user.PasswordHash, &user.PasswordSalt,
		&user.CurrentStreak, &user.LongestStreak, &lastCheckIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastCheckIn.Valid {
		user.LastCheckIn = lastCheckIn.Time
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query :=
		`SELECT id, email, display_name, password_hash, password_salt, current_streak, longest_streak, last_check_in
		 FROM users
		 WHERE email = lower($1)
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query :=
		`SELECT id, email, display_name, password_hash, password_salt, current_streak, longest_streak, last_check_in
		 FROM users
		 WHERE id = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateStreak(ctx context.Context, user *model.User) error {
	query :=
		`UPDATE users
		 SET current_streak = $2, longest_streak = $3, last_check_in = $4
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.CurrentStreak, user.LongestStreak, user.LastCheckIn)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
