package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/shared/logger"
)

// PatrolSweeper periodically cancels patrol plans whose end time passed
// while they were still in progress.
type PatrolSweeper struct {
	cron    *cron.Cron
	patrols patrol.Repository
	log     logger.Interface
	spec    string
}

// NewPatrolSweeper builds the sweeper with a 5-field cron spec, for
// example "0 1 * * *" for one o'clock every night.
func NewPatrolSweeper(patrols patrol.Repository, log logger.Interface, spec string) *PatrolSweeper {
	return &PatrolSweeper{
		cron:    cron.New(),
		patrols: patrols,
		log:     log.Named("patrol-sweeper"),
		spec:    spec,
	}
}

func (s *PatrolSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("patrol sweeper started", "spec", s.spec)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *PatrolSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("patrol sweeper stopped")
}

func (s *PatrolSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().Format("2006-01-02")
	swept, err := s.patrols.CancelOverdue(ctx, now)
	if err != nil {
		s.log.Errorw("failed to cancel overdue patrol plans", "error", err)
		return
	}
	if swept > 0 {
		s.log.Infow("cancelled overdue patrol plans", "count", swept)
	}
}
