package users

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/focussync/internal/common"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// InMemoryRepository keeps accounts in a map. It is the default backend when
// no database DSN is configured; durability can be added by switching the
// repository manager without touching the services.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID
	return cloneUser(stored), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *InMemoryRepository) UpdateStreak(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	stored.CurrentStreak = user.CurrentStreak
	stored.LongestStreak = user.LongestStreak
	stored.LastCheckIn = user.LastCheckIn
	return nil
}
