// Package model defines the domain entities shared by the client and server:
// task and timer records, their recency derivation, accounts, and token pairs.
package model

// Timer categories.
const (
	CategoryFocus      = "focus"
	CategoryShortBreak = "short-break"
	CategoryLongBreak  = "long-break"
)

// Timer statuses.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// TaskRecord is a single to-do item. The id is client-generated, globally
// unique, and immutable; UpdatedAt must advance on every revision of the
// same id.
//
// Timestamps are carried as ISO-8601 strings end to end. The merge compares
// them lexically, which is correct because the format is fixed-width and
// zero-padded, and it means a record survives round-trips byte-identically.
type TaskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UpdatedAt string `json:"updatedAt"`
}

// RecencyKey returns the timestamp used to order two revisions of the same
// task id.
func (t TaskRecord) RecencyKey() string {
	return t.UpdatedAt
}

// Key returns the record's identity for keyed merging.
func (t TaskRecord) Key() string { return t.ID }

// TimerRecord is one focus/break session. TaskID is a weak reference and is
// never validated against task existence. There is no UpdatedAt; recency is
// derived from CompletedAt, falling back to StartedAt.
type TimerRecord struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId,omitempty"`
	DurationMs  int64  `json:"durationMs"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Label       string `json:"label,omitempty"`
}

// RecencyKey returns CompletedAt when set, otherwise StartedAt. An empty
// result sorts as "oldest": a record with any timestamp supersedes it.
func (t TimerRecord) RecencyKey() string {
	if t.CompletedAt != "" {
		return t.CompletedAt
	}
	return t.StartedAt
}

// Key returns the record's identity for keyed merging.
func (t TimerRecord) Key() string { return t.ID }

// Record is the common surface the merge algorithm needs: a stable identity
// and a derived recency timestamp.
type Record interface {
	Key() string
	RecencyKey() string
}
