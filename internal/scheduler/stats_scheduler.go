package scheduler

import (
	"context"
	"time"

	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StatsScheduler refreshes the dashboard stats snapshot on a schedule.
type StatsScheduler struct {
	cron         *cron.Cron
	statsService service.StatsService
}

func NewStatsScheduler(statsService service.StatsService) *StatsScheduler {
	return &StatsScheduler{
		cron:         cron.New(),
		statsService: statsService,
	}
}

// Start begins the hourly refresh.
func (s *StatsScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled stats refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.statsService.RefreshStats(ctx); err != nil {
			logger.Error("Failed to refresh stats from scheduler", err)
			return
		}

		logger.Info("Successfully refreshed stats from scheduler", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for stats refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Stats scheduler started successfully (hourly)", nil)

	return nil
}

// Stop stops the scheduler.
func (s *StatsScheduler) Stop() {
	logger.Info("Stopping stats scheduler...", nil)
	s.cron.Stop()
	logger.Info("Stats scheduler stopped", nil)
}
