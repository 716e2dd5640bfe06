// Package server wires the FocusSync server together: configuration, logging,
// the repository backend (in-memory or PostgreSQL), the services, and the
// HTTP endpoint, with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/focussync/internal/logging"
	"github.com/dmitrijs2005/focussync/internal/server/config"
	"github.com/dmitrijs2005/focussync/internal/server/httpapi"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focussync/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     repomanager.RepositoryManager
	userService *services.UserService
	syncService *services.SyncService
}

func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	var m repomanager.RepositoryManager
	if cfg.DatabaseDSN == "" {
		m = repomanager.NewInMemoryRepositoryManager()
	} else {
		m, err = repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	locks := services.NewKeyedMutex()
	us := services.NewUserService(m, locks, cfg)
	ss := services.NewSyncService(m, locks)

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     m,
		userService: us,
		syncService: ss,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.syncService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if db := app.manager.Conn(); db != nil {
		if err := db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}
}
