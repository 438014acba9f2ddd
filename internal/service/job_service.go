package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"spotbook/internal/parking"
	"spotbook/internal/repository"
)

type JobService struct {
	repo repository.JobRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewJobService(repo repository.JobRepository, log *zap.Logger) *JobService {
	return &JobService{repo: repo, log: log, now: time.Now}
}

// CleanupGuestSpots deletes guest spots whose date has passed, together with
// their bookings.
func (s *JobService) CleanupGuestSpots(ctx context.Context) (int64, error) {
	today := parking.DateOf(s.now().UTC())

	ids, err := s.repo.ExpiredGuestSpotIDs(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to find expired guest spots: %w", err)
	}
	if len(ids) == 0 {
		s.log.Debug("cron job: no expired guest spots")
		return 0, nil
	}

	n, err := s.repo.DeleteSpots(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to delete guest spots: %w", err)
	}
	s.log.Info("cron job: expired guest spots deleted", zap.Int64("deleted", n), zap.Int64s("ids", ids))
	return n, nil
}

// Schedule registers the cleanup on c. Each run gets its own timeout.
func (s *JobService) Schedule(c *cron.Cron, spec string, timeout time.Duration) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := s.CleanupGuestSpots(ctx); err != nil {
			s.log.Error("guest cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}
