package cron

import (
	"context"
	"time"

	"football-league-api/packages/core/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSettlementSchedule runs settlement at second zero of every minute.
const DefaultSettlementSchedule = "0 * * * * *"

const settlementTimeout = 30 * time.Second

type Scheduler struct {
	cron              *cron.Cron
	schedule          string
	settlementService *services.SettlementService
}

func NewScheduler(settlementService *services.SettlementService, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSettlementSchedule
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cron.PrintfLogger(&log.Logger)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Scheduler{
		cron:              c,
		schedule:          schedule,
		settlementService: settlementService,
	}
}

// Start registers the settlement job and starts the scheduler.
func (s *Scheduler) Start() error {
	log.Info().Str("schedule", s.schedule).Msg("starting cron scheduler")

	if _, err := s.cron.AddFunc(s.schedule, s.runSettlement); err != nil {
		log.Error().Err(err).Str("schedule", s.schedule).Msg("scheduling settlement job failed")
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	log.Info().Msg("stopping cron scheduler")
	<-s.cron.Stop().Done()
	log.Info().Msg("cron scheduler stopped")
}

func (s *Scheduler) runSettlement() {
	ctx, cancel := context.WithTimeout(context.Background(), settlementTimeout)
	defer cancel()

	settled, err := s.settlementService.SettleCompleted(ctx)
	if err != nil {
		log.Error().Err(err).Msg("settlement job failed")
		return
	}
	if settled > 0 {
		log.Info().Int("settled", settled).Msg("settlement job completed")
	}
}

// RunNow runs the settlement job synchronously.
func (s *Scheduler) RunNow() {
	log.Info().Msg("manually triggering settlement job")
	s.runSettlement()
}
