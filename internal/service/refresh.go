package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bassista/go_observe/internal/logger"
	"github.com/robfig/cron/v3"
)

// Refresher re-fetches a cached value on demand.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ScheduleRefresh calls r.Refresh on the cron schedule spec until ctx is done.
// Each run is bounded by timeout (0 means no bound); a run still in progress
// when the next one is due causes that next run to be skipped.
// The returned channel is closed once the scheduler has stopped.
func ScheduleRefresh(ctx context.Context, spec string, timeout time.Duration, r Refresher) (<-chan struct{}, error) {
	log := logger.WithComponent("refresh")
	cronLogger := cron.PrintfLogger(log)

	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	_, err := c.AddFunc(spec, func() {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		if err := r.Refresh(runCtx); err != nil {
			log.Debugf("scheduled refresh failed: %v", err)
			return
		}
		log.Debug("scheduled refresh completed")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	done := make(chan struct{})
	c.Start()
	log.Infof("refresh scheduled with %q", spec)
	go func() {
		defer close(done)
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info("refresh scheduler stopped")
	}()
	return done, nil
}
