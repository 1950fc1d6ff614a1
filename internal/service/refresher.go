package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BankReloader refreshes the cached question bank.
type BankReloader interface {
	Reload(ctx context.Context) error
}

// BankRefresher reloads the question bank on a cron schedule, so edits to
// the remote resource reach a running bot without a restart. Cached records
// are discarded and replaced wholesale on every reload.
type BankRefresher struct {
	reloader BankReloader
	schedule string
	logger   *zap.Logger
}

// NewBankRefresher creates a refresher with a standard 5-field cron schedule.
func NewBankRefresher(reloader BankReloader, schedule string, logger *zap.Logger) *BankRefresher {
	return &BankRefresher{
		reloader: reloader,
		schedule: schedule,
		logger:   logger,
	}
}

// Start begins the refresh loop and blocks until ctx is cancelled.
func (s *BankRefresher) Start(ctx context.Context) {
	s.logger.Info("bank refresher started", zap.String("schedule", s.schedule))

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: refreshing question bank")
		if err := s.reloader.Reload(ctx); err != nil {
			s.logger.Error("failed to refresh question bank", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("bank refresher stopped")
}
