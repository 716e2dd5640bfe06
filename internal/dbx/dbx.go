// Package dbx holds the small database plumbing the repositories share: the
// DBTX handle that both *sql.DB and *sql.Tx satisfy, and WithTx for running
// a read-merge-write unit as a single transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories are written against. Handing a
// repository a transaction instead of the root handle scopes all of its
// calls to that transaction; the in-memory backends receive nil and ignore
// the handle entirely.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction on db, runs fn with it, and commits on
// success. An error from fn rolls back and is returned; a panic rolls back
// and is rethrown.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
