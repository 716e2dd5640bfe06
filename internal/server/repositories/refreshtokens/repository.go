// Package refreshtokens stores the set of valid, unconsumed refresh tokens.
// A refresh token is usable only while present here; rotation consumes it.
package refreshtokens

import (
	"context"
	"time"
)

// Repository persists valid refresh tokens.
//
// Consume atomically removes the token and returns the owning user id, or
// common.ErrorNotFound when the token is absent (never stored, already
// rotated, or expired out of the set). Atomicity is the replay guard: two
// concurrent rotations of one token must see exactly one success.
type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}
