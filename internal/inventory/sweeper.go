package inventory

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper runs the stale-listing sweep on a cron schedule. Recommendations
// are logged, not applied; repricing a live listing stays a human decision.
type Sweeper struct {
	logger   *zap.Logger
	service  *Service
	cronSpec string
}

// NewSweeper creates a sweeper with a standard 5-field cron spec.
func NewSweeper(logger *zap.Logger, service *Service, cronSpec string) *Sweeper {
	if cronSpec == "" {
		cronSpec = "0 6 * * *"
	}
	return &Sweeper{logger: logger, service: service, cronSpec: cronSpec}
}

// Run blocks until the context is cancelled, firing the sweep on schedule.
func (s *Sweeper) Run(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.cronSpec, func() {
		adjustments, err := s.service.SweepStale(false)
		if err != nil {
			s.logger.Error("Stale-listing sweep failed", zap.Error(err))
			return
		}
		s.logger.Info("Stale-listing sweep complete", zap.Int("adjustments", len(adjustments)))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Starting stale-listing sweeper", zap.String("schedule", s.cronSpec))
	c.Start()

	<-ctx.Done()
	s.logger.Info("Stopping stale-listing sweeper...")
	<-c.Stop().Done()
	return nil
}
