package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_observe/internal/cache"
	"github.com/bassista/go_observe/internal/config"
	"github.com/bassista/go_observe/internal/repository"
)

// App is the backend's application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config *config.Config
	Repo   repository.Repository
	Cache  cache.AppStore

	BaseCtx context.Context
	Cancel  context.CancelFunc

	persistDone <-chan struct{}
}

func New(cfg *config.Config, repo repository.Repository, store cache.AppStore) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if store == nil {
		return nil, errors.New("cache store is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Repo:    repo,
		Cache:   store,
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

// Shutdown cancels background work and waits for the final cache flush.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	if a.persistDone != nil {
		<-a.persistDone
	}
}

// StartWatchers starts the data file watcher and the persistence scheduler.
func (a *App) StartWatchers() error {
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Cache); err != nil {
		return fmt.Errorf("cannot start data file watcher: %w", err)
	}

	a.persistDone = cache.StartPersistenceScheduler(a.BaseCtx, a.Cache, a.Repo, a.Config.Data.PersistInterval)
	return nil
}
