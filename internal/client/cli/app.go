// Package cli implements the interactive FocusSync client: a REPL over the
// local store and the sync engine, usable fully offline.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/focussync/internal/client/api"
	"github.com/dmitrijs2005/focussync/internal/client/config"
	"github.com/dmitrijs2005/focussync/internal/client/store"
	"github.com/dmitrijs2005/focussync/internal/client/sync"
)

// pendingTimer is a focus/break session that has started but not finished.
// It lives only in memory; the record reaches the store when it completes.
type pendingTimer struct {
	id        string
	taskID    string
	category  string
	label     string
	startedAt time.Time
}

type App struct {
	config *config.Config
	client api.Client
	store  store.Store
	syncer *sync.Syncer

	email   string
	pending *pendingTimer
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	st, err := store.Open(ctx, c.DataDir)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	client := api.NewHTTPClient(c.ServerEndpointAddr)

	a := &App{
		config: c,
		client: client,
		store:  st,
		syncer: sync.NewSyncer(client, st),
		reader: bufio.NewReader(os.Stdin),
	}
	a.restoreSession(ctx)
	return a, nil
}

// restoreSession loads the token pair and account email saved by a previous
// run. Missing metadata just means the user was never logged in.
func (a *App) restoreSession(ctx context.Context) {
	access, err := a.store.GetMeta(ctx, store.MetaAccessToken)
	if err != nil {
		return
	}
	refresh, err := a.store.GetMeta(ctx, store.MetaRefreshToken)
	if err != nil {
		return
	}
	email, err := a.store.GetMeta(ctx, store.MetaEmail)
	if err != nil {
		return
	}

	if refresh != "" {
		a.client.SetTokens(access, refresh)
		a.email = email
	}
}

// saveSession persists the current pair and email so a restart resumes
// the session.
func (a *App) saveSession(ctx context.Context) error {
	access, refresh := a.client.Tokens()
	if err := a.store.SetMeta(ctx, store.MetaAccessToken, access); err != nil {
		return err
	}
	if err := a.store.SetMeta(ctx, store.MetaRefreshToken, refresh); err != nil {
		return err
	}
	return a.store.SetMeta(ctx, store.MetaEmail, a.email)
}

func (a *App) isLoggedIn() bool {
	return a.client.HasSession()
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}
