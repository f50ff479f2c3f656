// Package scheduler runs recurring pipelines on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"ContentForge/internal/ports"
	"ContentForge/pkg/logger"
)

var _ ports.Scheduler = (*CronScheduler)(nil)

// CronScheduler dispatches jobs on standard 5-field cron expressions,
// evaluated in the configured timezone.
type CronScheduler struct {
	cron *cron.Cron
}

// NewCronScheduler builds a scheduler bound to the given location.
func NewCronScheduler(loc *time.Location) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &CronScheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cron.PrintfLogger(logger.New("cron"))),
		),
	}
}

// Start registers the job under the cron spec and begins the scheduler.
// Multiple Start calls register additional jobs on the same runner.
func (s *CronScheduler) Start(_ context.Context, spec string, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { job(time.Now()) }); err != nil {
		return fmt.Errorf("register cron job %q: %w", spec, err)
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for any running job to finish, bounded
// by the caller's context.
func (s *CronScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
