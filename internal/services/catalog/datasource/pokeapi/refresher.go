package pokeapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refreshable reloads a cached catalog.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// Refresher reloads the catalog on a cron schedule.
type Refresher struct {
	target  Refreshable
	timeout time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewRefresher parses schedule and builds a stopped refresher. Schedules
// accept five or six fields and descriptors such as "@every 1h".
func NewRefresher(target Refreshable, schedule string, timeout time.Duration, logger zerolog.Logger) (*Refresher, error) {
	if target == nil {
		return nil, fmt.Errorf("refresh target is required")
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, fmt.Errorf("refresh schedule is required")
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", schedule, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	r := &Refresher{
		target:  target,
		timeout: timeout,
		logger:  logger,
		cron:    cron.New(cron.WithParser(parser)),
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("schedule refresh: %w", err)
	}
	return r, nil
}

// Start begins running scheduled refreshes until Stop or ctx ends.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	r.baseCtx, r.cancel = context.WithCancel(ctx)
	r.cron.Start()
	r.logger.Info().Int("schedules", len(r.cron.Entries())).Msg("catalog refresher started")
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-r.cron.Stop().Done()
	r.logger.Info().Msg("catalog refresher stopped")
}

// RunOnce performs one refresh immediately.
func (r *Refresher) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()
	if err := r.target.Refresh(ctx); err != nil {
		r.logger.Warn().Err(err).Dur("took", time.Since(start)).Msg("catalog refresh failed, keeping previous catalog")
		return err
	}
	r.logger.Info().Dur("took", time.Since(start)).Msg("catalog refreshed")
	return nil
}

func (r *Refresher) run() {
	r.mu.Lock()
	ctx := r.baseCtx
	r.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	_ = r.RunOnce(ctx)
}
