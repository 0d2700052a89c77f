package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs the absence sweep on a fixed interval until ctx ends.
type Scheduler struct {
	absence  *AbsenceService
	interval time.Duration
	log      *zap.Logger
}

func NewScheduler(absence *AbsenceService, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{absence: absence, interval: interval, log: log}
}

func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.log.Info("scheduler started", zap.Duration("interval", s.interval))
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

func (s *Scheduler) tick(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()
	if _, err := s.absence.Sweep(runCtx); err != nil {
		s.log.Error("absence sweep failed", zap.Error(err))
	}
}
