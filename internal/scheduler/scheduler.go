// Package scheduler wires up the cron job that periodically re-applies the
// idempotent view migration and drops stale summary caches.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobblaster/analytics-service/internal/views"
)

// Invalidator drops every cached summary after a refresh. May be nil.
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron   *cron.Cron
	runner *views.Runner
	cache  Invalidator
	spec   string // cron spec, e.g. "@every 24h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner *views.Runner, cache Invalidator, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		cache:  cache,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the views exist before the first request arrives.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (blocking: requests need the views).
	s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runRefresh applies the migration and invalidates cached summaries.
func (s *Scheduler) runRefresh(ctx context.Context) {
	log.Println("[scheduler] View refresh started")

	report := s.runner.Apply(ctx)
	log.Printf("[scheduler] View refresh %s done — applied=%d failed=%d",
		report.RunID, report.Applied, report.Failed)

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Printf("[scheduler] Cache invalidation error: %v", err)
		}
	}
}
