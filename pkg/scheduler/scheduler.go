package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clickgrow/growcore/pkg/common"
	"github.com/clickgrow/growcore/pkg/engine"
)

// Target is the part of engine.GameCore the scheduler drives.
type Target interface {
	Tick(ctx context.Context) (engine.DecayResult, error)
	Resume(ctx context.Context) error
}

// Scheduler runs the periodic decay tick and the midnight reset check.
// Jobs never overlap: a tick still running when the next one is due is skipped.
type Scheduler struct {
	cron     *cron.Cron
	target   Target
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	tickID     cron.EntryID
	midnightID cron.EntryID
}

// New registers both jobs. Boundaries are evaluated in loc.
func New(target Target, interval time.Duration, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("tick interval must be at least 1s (got %s)", interval)
	}
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		target:   target,
		interval: interval,
		logger:   logger,
		ctx:      context.Background(),
	}

	var err error
	if s.tickID, err = s.cron.AddFunc("@every "+interval.String(), s.tick); err != nil {
		return nil, fmt.Errorf("schedule tick: %w", err)
	}
	if s.midnightID, err = s.cron.AddFunc(common.DailyResetSpec, s.midnight); err != nil {
		return nil, fmt.Errorf("schedule midnight reset: %w", err)
	}
	return s, nil
}

// Start begins running jobs in the background. Jobs receive a context derived from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler started",
		"tick_interval", s.interval,
		"next_tick", s.cron.Entry(s.tickID).Next,
		"next_midnight", s.cron.Entry(s.midnightID).Next,
	)
}

// Stop halts the schedule and waits for a running job to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// NextTick returns when the decay tick fires next. It is zero before Start.
func (s *Scheduler) NextTick() time.Time {
	return s.cron.Entry(s.tickID).Next
}

// NextMidnight returns when the reset check fires next. It is zero before Start.
func (s *Scheduler) NextMidnight() time.Time {
	return s.cron.Entry(s.midnightID).Next
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) tick() {
	res, err := s.target.Tick(s.jobContext())
	if err != nil {
		s.logger.Warn("Scheduled tick failed", "error", err)
		return
	}
	s.logger.Debug("Scheduled tick",
		"elapsed", res.Elapsed,
		"happiness_delta", res.Happiness,
		"health_delta", res.Health,
		"died", res.Died,
	)
}

func (s *Scheduler) midnight() {
	if err := s.target.Resume(s.jobContext()); err != nil {
		s.logger.Warn("Midnight reset check failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
