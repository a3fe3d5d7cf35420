// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"hostal-booking/internal/data/repository"

	"go.uber.org/zap"
)

// Completer completes confirmed stays that have checked out by today.
type Completer interface {
	CompleteElapsed(ctx context.Context, today time.Time) (int, error)
}

type CompletionScheduler struct {
	completer Completer
	sessions  repository.SessionRepository
	interval  time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewCompletionScheduler(completer Completer, sessions repository.SessionRepository, interval time.Duration, log *zap.Logger) *CompletionScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CompletionScheduler{
		completer: completer,
		sessions:  sessions,
		interval:  interval,
		now:       time.Now,
		log:       log.With(zap.String("component", "scheduler")),
	}
}

// Run executes one pass immediately and then one per interval until ctx is done.
func (s *CompletionScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Scheduler started", zap.Duration("interval", s.interval))
	for {
		s.RunOnce(ctx)

		select {
		case <-ctx.Done():
			s.log.Info("Scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *CompletionScheduler) RunOnce(ctx context.Context) {
	completed, err := s.completer.CompleteElapsed(ctx, s.now().UTC())
	if err != nil {
		s.log.Error("Failed to complete elapsed reservations", zap.Error(err), zap.Int("completed", completed))
	}

	if s.sessions != nil {
		if err := s.sessions.CleanExpiredSessions(ctx); err != nil {
			s.log.Error("Failed to clean expired sessions", zap.Error(err))
		}
	}
}
