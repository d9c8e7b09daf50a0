// Package worker schedules the periodic refresh of every feed source. One
// cycle fans out across the sources concurrently; a breaker that is open
// simply makes its source's refresh a cheap no-op, so cycles stay on
// schedule during outages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"world-monitor/internal/feed"
)

// refreshParallelism bounds how many sources refresh at once. The sources
// rate-limit themselves per upstream; this only caps total outbound
// concurrency.
const refreshParallelism = 4

// Scheduler runs the refresh cycle on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sources []feed.Source
	timeout time.Duration
	logger  *slog.Logger
	running atomic.Bool
}

// NewScheduler creates a scheduler that refreshes sources on the given cron
// schedule (robfig/cron syntax, @every accepted). Each cycle is bounded by
// timeout.
func NewScheduler(schedule string, timeout time.Duration, sources []feed.Source, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.runCycle); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins scheduling. The first cycle runs immediately so the
// dashboard has data before the first cron tick.
func (s *Scheduler) Start() {
	go s.runCycle()
	s.cron.Start()
	s.logger.Info("refresh scheduler started", slog.Int("sources", len(s.sources)))
}

// Stop stops scheduling and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("refresh scheduler stopped")
}

// runCycle refreshes every source once. Overlapping cycles are skipped: if
// the previous cycle is still running when the next tick fires, the tick is
// dropped rather than queued.
func (s *Scheduler) runCycle() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous refresh cycle still running, skipping tick")
		recordCycle("skipped", 0)
		return
	}
	defer s.running.Store(false)

	start := time.Now()
	s.logger.Info("refresh cycle started")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RefreshAll(ctx); err != nil {
		recordCycle("timeout", time.Since(start))
		s.logger.Error("refresh cycle did not finish", slog.Any("error", err))
		return
	}

	recordCycle("success", time.Since(start))
	s.logger.Info("refresh cycle completed",
		slog.Int("sources", len(s.sources)),
		slog.Duration("duration", time.Since(start)))
}

// RefreshAll refreshes every source concurrently and returns once all are
// done or ctx expires. Individual sources never return errors; the only
// failure mode here is the context.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshParallelism)

	for _, src := range s.sources {
		g.Go(func() error {
			src.Refresh(ctx)
			return ctx.Err()
		})
	}
	return g.Wait()
}
