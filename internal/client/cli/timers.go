package cli

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/focussync/internal/model"
)

// Start begins a focus or break session. Only one session runs at a time;
// the record is written when the session ends.
func (a *App) Start(ctx context.Context) error {
	if a.pending != nil {
		log.Println("A session is already running, 'stop' it first")
		return nil
	}

	category, err := GetSimpleText(a.reader, "Category (focus / short-break / long-break, empty = focus)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	switch category {
	case "":
		category = model.CategoryFocus
	case model.CategoryFocus, model.CategoryShortBreak, model.CategoryLongBreak:
	default:
		log.Printf("Unknown category %q", category)
		return nil
	}

	taskPrefix, err := GetSimpleText(a.reader, "Task id to attach (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	taskID := ""
	if taskPrefix != "" {
		tasks := a.store.LoadTasks(ctx)
		if idx := findTask(tasks, taskPrefix); idx >= 0 {
			taskID = tasks[idx].ID
		} else {
			log.Printf("No single task matches %q, starting without one", taskPrefix)
		}
	}

	label, err := GetSimpleText(a.reader, "Label (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.pending = &pendingTimer{
		id:        uuid.NewString(),
		taskID:    taskID,
		category:  category,
		label:     label,
		startedAt: time.Now().UTC(),
	}

	log.Printf("Started %s session %s", category, shortID(a.pending.id))
	return nil
}

// Stop ends the running session as completed and syncs the new record.
func (a *App) Stop(ctx context.Context) error {
	if a.pending == nil {
		log.Println("No session is running")
		return nil
	}

	completedAt := time.Now().UTC()
	record := model.TimerRecord{
		ID:          a.pending.id,
		TaskID:      a.pending.taskID,
		DurationMs:  completedAt.Sub(a.pending.startedAt).Milliseconds(),
		StartedAt:   a.pending.startedAt.Format(time.RFC3339),
		CompletedAt: completedAt.Format(time.RFC3339),
		Category:    a.pending.category,
		Status:      model.StatusCompleted,
		Label:       a.pending.label,
	}
	a.pending = nil

	timers := append(a.store.LoadTimers(ctx), record)
	a.syncBatch(ctx, a.store.LoadTasks(ctx), timers)
	return nil
}
