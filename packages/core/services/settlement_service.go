package services

import (
	"context"

	"football-league-api/packages/core/store"

	"github.com/rs/zerolog/log"
)

// SettlementService credits matches that were recorded before they finished.
type SettlementService struct {
	matches   *store.MatchStore
	cache     StandingsCache
	publisher EventPublisher
	recorder  MutationRecorder
}

func NewSettlementService(matches *store.MatchStore, cache StandingsCache, publisher EventPublisher, recorder MutationRecorder) *SettlementService {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &SettlementService{
		matches:   matches,
		cache:     cache,
		publisher: publisher,
		recorder:  recorder,
	}
}

// SettleCompleted applies every finished match that has not been counted yet
// and returns how many were credited. A failing match is logged and skipped.
func (s *SettlementService) SettleCompleted(ctx context.Context) (int, error) {
	pending, err := s.matches.ListUnsettled(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing unsettled matches failed")
		return 0, err
	}

	if len(pending) == 0 {
		log.Debug().Msg("no unsettled matches found")
		return 0, nil
	}

	log.Info().Int("count", len(pending)).Msg("settling completed matches")

	settled := 0
	for _, match := range pending {
		ok, err := s.matches.Settle(ctx, match.ID)
		if err != nil {
			log.Error().Err(err).Str("match_id", match.ID.String()).Msg("settling match failed")
			continue
		}
		if !ok {
			continue
		}
		settled++

		updated, err := s.matches.GetByID(ctx, match.ID)
		if err != nil {
			log.Warn().Err(err).Str("match_id", match.ID.String()).Msg("reloading settled match failed")
			continue
		}
		notifyStandingsChanged(ctx, s.cache, s.publisher, "settle", updated)
	}

	s.recorder.MatchesSettled(settled)
	log.Info().Int("settled", settled).Int("pending", len(pending)).Msg("settlement finished")
	return settled, nil
}

// PendingCount reports how many finished matches still await settlement.
func (s *SettlementService) PendingCount(ctx context.Context) (int, error) {
	pending, err := s.matches.ListUnsettled(ctx)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
