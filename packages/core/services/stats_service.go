package services

import (
	"context"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/store"
)

type StatsService struct {
	teams   *store.TeamStore
	matches *store.MatchStore
}

func NewStatsService(teams *store.TeamStore, matches *store.MatchStore) *StatsService {
	return &StatsService{
		teams:   teams,
		matches: matches,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	totalTeams, err := s.teams.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalMatches, err := s.matches.Count(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := s.matches.CountRanked(ctx)
	if err != nil {
		return nil, err
	}

	unsettled, err := s.matches.ListUnsettled(ctx)
	if err != nil {
		return nil, err
	}

	// Ranked matches were completed when credited, so completed is the sum.
	return &models.Stats{
		TotalTeams:       totalTeams,
		TotalMatches:     totalMatches,
		CompletedMatches: ranked + int64(len(unsettled)),
		RankedMatches:    ranked,
		UnsettledMatches: int64(len(unsettled)),
	}, nil
}
