package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/focussync/internal/model"
)

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Add creates a task and syncs. Offline the task simply stays local.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter task title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if title == "" {
		log.Println("Title must not be empty")
		return nil
	}

	tasks := append(a.store.LoadTasks(ctx), model.TaskRecord{
		ID:        uuid.NewString(),
		Title:     title,
		UpdatedAt: nowStamp(),
	})

	a.syncBatch(ctx, tasks, a.store.LoadTimers(ctx))
	return nil
}

// Done marks a task completed by id prefix and syncs.
func (a *App) Done(ctx context.Context) error {
	prefix, err := GetSimpleText(a.reader, "Enter task id (prefix is enough)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	tasks := a.store.LoadTasks(ctx)
	idx := findTask(tasks, prefix)
	if idx < 0 {
		log.Printf("No single task matches %q", prefix)
		return nil
	}

	tasks[idx].Completed = true
	tasks[idx].UpdatedAt = nowStamp()

	a.syncBatch(ctx, tasks, a.store.LoadTimers(ctx))
	return nil
}

// List prints the stored tasks and a timer summary.
func (a *App) List(ctx context.Context) error {
	tasks := a.store.LoadTasks(ctx)
	if len(tasks) == 0 {
		fmt.Println("No tasks yet, try 'add'")
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, shortID(t.ID), t.Title)
	}

	timers := a.store.LoadTimers(ctx)
	if len(timers) > 0 {
		fmt.Printf("%d timer session(s) recorded\n", len(timers))
	}
	return nil
}

// findTask returns the index of the single task whose id starts with prefix,
// or -1 when the prefix is empty, unknown, or ambiguous.
func findTask(tasks []model.TaskRecord, prefix string) int {
	if prefix == "" {
		return -1
	}
	found := -1
	for i, t := range tasks {
		if strings.HasPrefix(t.ID, prefix) {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
