package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(service *Service, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{service: service, interval: interval, logger: logger}
}

// Run expires overdue donations every interval until ctx is done. A zero
// interval disables sweeping.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("expiry sweeper disabled")
		return nil
	}

	s.logger.Info("starting expiry sweeper", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.service.ExpireOverdue(ctx)
			if err != nil {
				s.logger.Error("expiry sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("expired overdue donations", zap.Int("count", n))
			}
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopping")
			return nil
		}
	}
}
