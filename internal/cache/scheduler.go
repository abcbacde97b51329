package cache

import (
	"context"
	"time"

	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/repository"
)

// StartPersistenceScheduler runs a goroutine that periodically flushes dirty cache to disk.
// On ctx.Done, it performs a final flush before returning.
// Returns a channel that is closed when the scheduler has completed shutdown.
func StartPersistenceScheduler(
	ctx context.Context,
	store PersistableStore,
	repo repository.Saver,
	interval time.Duration,
) <-chan struct{} {
	done := make(chan struct{})
	log := logger.WithComponent("persist")
	log.Debugf("starting persistence scheduler with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// Final flush on shutdown - use background context to ensure it completes
				flushCache(context.Background(), store, repo)
				log.Info("persistence scheduler stopped after final flush")
				return
			case <-ticker.C:
				flushCache(ctx, store, repo)
			}
		}
	}()
	return done
}

// flushCache persists the cache to disk if dirty.
func flushCache(ctx context.Context, store PersistableStore, repo repository.Saver) {
	log := logger.WithComponent("persist")
	if !store.IsDirty() {
		log.Tracef("cache is clean, skipping flush")
		return
	}

	if err := ctx.Err(); err != nil {
		log.Debugf("flush cancelled: %v", err)
		return
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		log.Errorf("persist error: failed to get snapshot: %v", err)
		return
	}

	snapshot.Metadata.LastUpdate = time.Now().UnixMilli()

	if err := repo.Save(ctx, &snapshot); err != nil {
		log.Errorf("persist error: failed to save: %v", err)
		return
	}

	store.ClearDirty()
	store.SetLastUpdate(snapshot.Metadata.LastUpdate)
	log.Info("cache persisted to disk")
}
