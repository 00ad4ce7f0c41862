package jobs

import (
	"context"
	"time"

	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout bounds each scheduled run.
const sweepTimeout = 5 * time.Minute

// Sweeper schedules the booking lifecycle sweeps: auto-completing overdue
// bookings and assigning daily verification codes.
type Sweeper struct {
	cron  *cron.Cron
	sweep usecase.SweepService
	cfg   utils.SweepConfig
	log   *zap.Logger
}

func NewSweeper(sweep usecase.SweepService, cfg utils.SweepConfig, log *zap.Logger) *Sweeper {
	return &Sweeper{
		cron:  cron.New(),
		sweep: sweep,
		cfg:   cfg,
		log:   log.With(zap.String("component", "sweeper")),
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.AutoCompleteCron, s.runAutoComplete); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.DailyCodesCron, s.runDailyCodes); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Sweeper started",
		zap.String("auto_complete_cron", s.cfg.AutoCompleteCron),
		zap.String("daily_codes_cron", s.cfg.DailyCodesCron),
	)
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Sweeper stopped")
}

func (s *Sweeper) runAutoComplete() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	completed, err := s.sweep.AutoCompleteOverdue(ctx)
	if err != nil {
		s.log.Error("Auto-complete sweep failed", zap.Error(err))
		return
	}
	if completed > 0 {
		s.log.Info("Auto-complete sweep finished", zap.Int("completed", completed))
	}
}

func (s *Sweeper) runDailyCodes() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	generated, err := s.sweep.GenerateDailyCodes(ctx)
	if err != nil {
		s.log.Error("Daily code sweep failed", zap.Error(err))
		return
	}
	s.log.Info("Daily code sweep finished", zap.Int("generated", generated))
}
