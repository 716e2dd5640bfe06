// Package users stores server-side accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// Repository persists accounts. Implementations return common.ErrorNotFound
// for missing users and common.ErrorAlreadyExists for duplicate emails.
type Repository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdateStreak persists the streak counters and lastCheckIn of user.
	UpdateStreak(ctx context.Context, user *model.User) error
}
