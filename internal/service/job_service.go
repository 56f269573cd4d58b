package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobService runs the periodic maintenance jobs.
type JobService struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewJobService(logger *zap.Logger) *JobService {
	return &JobService{cron: cron.New(), logger: logger}
}

// Schedule registers fn under a standard 5-field cron spec (or @every/@daily).
// Each run gets its own timeout; panics are logged, not propagated.
func (s *JobService) Schedule(spec, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, timeout, fn)
	})
	if err != nil {
		return fmt.Errorf("cron job %s: invalid spec %q: %w", name, spec, err)
	}
	s.logger.Info("cron job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *JobService) run(name string, timeout time.Duration, fn func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cron job panicked", zap.String("job", name), zap.Any("panic", r))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := fn(ctx); err != nil {
		s.logger.Error("cron job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Info("cron job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

// RefreshUF reloads the UF into the cache.
func RefreshUF(uf *UFService) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := uf.Refresh(ctx)
		return err
	}
}

// SweepWizards drops reservation state of sessions idle for maxIdle.
func SweepWizards(store *WizardStore, maxIdle time.Duration, logger *zap.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if n := store.Sweep(maxIdle); n > 0 {
			logger.Info("idle reservation sessions dropped", zap.Int("count", n))
		}
		return nil
	}
}

func (s *JobService) Start() {
	s.cron.Start()
}

// Stop waits for running jobs until ctx ends.
func (s *JobService) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
