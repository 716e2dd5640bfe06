package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/focussync/internal/client/store"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// Sync pushes the stored state to the server.
func (a *App) Sync(ctx context.Context) error {
	out, err := a.syncer.SyncStored(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	log.Println(out.Message)
	return nil
}

// syncNow reconciles the stored state right after an auth change, ignoring
// failures; the watcher will retry on the next tick.
func (a *App) syncNow(ctx context.Context) {
	out, err := a.syncer.SyncStored(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	log.Println(out.Message)
}

// syncBatch saves and reconciles a modified record set. Sync failures are
// already downgraded to "saved locally" by the syncer; only local storage
// trouble surfaces here.
func (a *App) syncBatch(ctx context.Context, tasks []model.TaskRecord, timers []model.TimerRecord) {
	out, err := a.syncer.Sync(ctx, tasks, timers)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	log.Println(out.Message)
}

// Status prints the connection mode, session, and store summary.
func (a *App) Status(ctx context.Context) error {
	mode := "offline"
	if a.syncer.IsOnline() {
		mode = "online"
	}
	fmt.Println("Mode:", mode)

	if a.email != "" {
		fmt.Println("Account:", a.email)
	} else {
		fmt.Println("Account: none (local only)")
	}

	fmt.Printf("Tasks: %d, timers: %d\n",
		len(a.store.LoadTasks(ctx)), len(a.store.LoadTimers(ctx)))

	last, err := a.store.GetMeta(ctx, store.MetaLastSyncedAt)
	if err != nil {
		return err
	}
	if last != "" {
		fmt.Println("Last synced:", last)
	} else {
		fmt.Println("Last synced: never")
	}
	return nil
}
