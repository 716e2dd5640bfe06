package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/focussync/internal/common"
)

type storedToken struct {
	userID  string
	expires time.Time
}

// InMemoryRepository keeps valid tokens in a mutex-guarded map; Consume is
// a single critical section, so one of two racing rotations always loses.
type InMemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]storedToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]storedToken)}
}

func (r *InMemoryRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = storedToken{userID: userID, expires: time.Now().Add(validity)}
	return nil
}

func (r *InMemoryRepository) Consume(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	delete(r.tokens, token)

	if stored.expires.Before(time.Now()) {
		return "", common.ErrorNotFound
	}
	return stored.userID, nil
}
