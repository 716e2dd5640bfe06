package records

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// InMemoryRepository keeps per-user record sets in maps keyed by user id.
type InMemoryRepository struct {
	mu     sync.RWMutex
	tasks  map[string][]model.TaskRecord
	timers map[string][]model.TimerRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tasks:  make(map[string][]model.TaskRecord),
		timers: make(map[string][]model.TimerRecord),
	}
}

func (r *InMemoryRepository) ListTasks(ctx context.Context, userID string) ([]model.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.TaskRecord, len(r.tasks[userID]))
	copy(out, r.tasks[userID])
	return out, nil
}

func (r *InMemoryRepository) ListTimers(ctx context.Context, userID string) ([]model.TimerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.TimerRecord, len(r.timers[userID]))
	copy(out, r.timers[userID])
	return out, nil
}

func (r *InMemoryRepository) ReplaceTasks(ctx context.Context, userID string, tasks []model.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]model.TaskRecord, len(tasks))
	copy(stored, tasks)
	r.tasks[userID] = stored
	return nil
}

func (r *InMemoryRepository) ReplaceTimers(ctx context.Context, userID string, timers []model.TimerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]model.TimerRecord, len(timers))
	copy(stored, timers)
	r.timers[userID] = stored
	return nil
}
