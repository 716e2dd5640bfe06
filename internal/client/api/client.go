// Package api implements the HTTP client the CLI uses to talk to the
// FocusSync server. It owns the token pair: callers never see raw JWTs, they
// just invoke operations and the client keeps itself authenticated.
package api

import (
	"context"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// Account is the server's public projection of a user profile.
type Account struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastCheckIn   string `json:"lastCheckIn,omitempty"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User    Account          `json:"user"`
	Tokens  *model.TokenPair `json:"tokens"`
	Message string           `json:"message"`
}

// SyncResult is the reconciled state returned by the sync endpoint.
type SyncResult struct {
	Tasks        []model.TaskRecord  `json:"tasks"`
	Timers       []model.TimerRecord `json:"timers"`
	LastSyncedAt string              `json:"lastSyncedAt"`
	Message      string              `json:"message"`
}

// Client defines the remote operations the CLI needs.
//
// Contract:
//   - Register / Login: create or authenticate an account; on success the
//     client remembers the issued token pair.
//   - Refresh: rotate the refresh token and swap in the new pair.
//   - Sync: push the local batch and return the reconciled state. Works
//     without a session too (the server echoes the batch back).
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context) error
	Sync(ctx context.Context, tasks []model.TaskRecord, timers []model.TimerRecord) (*SyncResult, error)
	Ping(ctx context.Context) error
	SetTokens(accessToken, refreshToken string)
	Tokens() (accessToken, refreshToken string)
	HasSession() bool
}
