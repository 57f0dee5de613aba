package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Scheduler drives the evaluator on a fixed interval from a single
// goroutine, so passes never overlap; ticks that arrive while a pass is
// still running are dropped by the ticker. The in-flight guard covers
// RunOnce being called from outside the loop.
type Scheduler struct {
	evaluator *Evaluator
	interval  time.Duration
	logger    *zap.Logger

	inFlight atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(evaluator *Evaluator, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{evaluator: evaluator, interval: interval, logger: logger}
}

func (s *Scheduler) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("alert scheduler started", zap.Duration("interval", s.interval))
		s.RunOnce(runCtx)

		for {
			select {
			case <-runCtx.Done():
				s.logger.Info("alert scheduler stopped")
				return
			case <-ticker.C:
				s.RunOnce(runCtx)
			}
		}
	}()
}

// RunOnce executes one evaluation pass unless one is already in flight.
// Failures are logged and absorbed; the next tick retries.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("evaluation pass already running, skipping")
		return
	}
	defer s.inFlight.Store(false)

	if err := s.evaluator.RunPass(ctx); err != nil {
		s.logger.Error("evaluation pass failed", zap.Error(err))
	}
}

func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.logger.Warn("timeout waiting for scheduler to stop")
	}
}
