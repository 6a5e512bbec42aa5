package services

import (
	"context"
	"errors"
	"time"

	"football-league-api/packages/core/events"
	"football-league-api/packages/core/models"
	"football-league-api/packages/core/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidSchedule = errors.New("end time must not be before start time")

type MatchService struct {
	matches   *store.MatchStore
	teams     *store.TeamStore
	cache     StandingsCache
	publisher EventPublisher
	recorder  MutationRecorder
}

func NewMatchService(matches *store.MatchStore, teams *store.TeamStore, cache StandingsCache, publisher EventPublisher, recorder MutationRecorder) *MatchService {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &MatchService{
		matches:   matches,
		teams:     teams,
		cache:     cache,
		publisher: publisher,
		recorder:  recorder,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.MatchResponse, error) {
	match, err := newMatch(req.HomeTeamID, req.AwayTeamID, req.HomeTeamScore, req.AwayTeamScore, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	created, err := s.matches.Create(ctx, match)
	s.recorder.MatchMutation("create", err)
	if err != nil {
		return nil, err
	}

	s.standingsChanged(ctx, "create", created)
	log.Info().
		Str("match_id", created.ID.String()).
		Bool("rank_applied", created.RankApplied).
		Msg("match created")
	return models.NewMatchResponse(created), nil
}

func (s *MatchService) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.MatchResponse, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewMatchResponse(match), nil
}

func (s *MatchService) GetMatches(ctx context.Context) ([]models.MatchResponse, error) {
	matches, err := s.matches.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMatchResponses(matches), nil
}

func (s *MatchService) UpdateMatch(ctx context.Context, id uuid.UUID, req models.UpdateMatchRequest) (*models.MatchResponse, error) {
	match, err := newMatch(req.HomeTeamID, req.AwayTeamID, req.HomeTeamScore, req.AwayTeamScore, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	match.ID = id

	updated, err := s.matches.Update(ctx, match)
	s.recorder.MatchMutation("update", err)
	if err != nil {
		return nil, err
	}

	s.standingsChanged(ctx, "update", updated)
	log.Info().
		Str("match_id", updated.ID.String()).
		Bool("rank_applied", updated.RankApplied).
		Msg("match updated")
	return models.NewMatchResponse(updated), nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		s.recorder.MatchMutation("delete", err)
		return err
	}

	err = s.matches.Delete(ctx, id)
	s.recorder.MatchMutation("delete", err)
	if err != nil {
		return err
	}

	// Reload the teams so the event carries their ranks after the reversal.
	match.HomeTeam = s.reloadTeam(ctx, match.HomeTeamID)
	match.AwayTeam = s.reloadTeam(ctx, match.AwayTeamID)
	s.standingsChanged(ctx, "delete", match)
	log.Info().Str("match_id", id.String()).Msg("match deleted")
	return nil
}

// reloadTeam returns the team's current row, or nil when it cannot be read.
func (s *MatchService) reloadTeam(ctx context.Context, id uuid.UUID) *models.Team {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("team_id", id.String()).Msg("team reload after match delete failed")
		return nil
	}
	return team
}

func (s *MatchService) standingsChanged(ctx context.Context, operation string, match *models.Match) {
	notifyStandingsChanged(ctx, s.cache, s.publisher, operation, match)
}

// notifyStandingsChanged drops the cached table and announces the new ranks.
func notifyStandingsChanged(ctx context.Context, cache StandingsCache, publisher EventPublisher, operation string, match *models.Match) {
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("standings cache invalidation failed")
	}

	event := events.StandingsChanged{
		MatchID:    match.ID,
		Operation:  operation,
		HomeTeamID: match.HomeTeamID,
		AwayTeamID: match.AwayTeamID,
		OccurredAt: time.Now().UTC(),
	}
	if match.HomeTeam != nil {
		event.HomeRank = match.HomeTeam.Rank
	}
	if match.AwayTeam != nil {
		event.AwayRank = match.AwayTeam.Rank
	}
	if err := publisher.PublishStandingsChanged(ctx, event); err != nil {
		log.Warn().Err(err).Str("match_id", match.ID.String()).Msg("standings event publish failed")
	}
}

func newMatch(homeID, awayID uuid.UUID, homeScore, awayScore *int, start, end *time.Time) (*models.Match, error) {
	match := &models.Match{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		StartTime:  utc(start),
		EndTime:    utc(end),
	}
	if homeScore != nil {
		match.HomeTeamScore = *homeScore
	}
	if awayScore != nil {
		match.AwayTeamScore = *awayScore
	}
	if match.StartTime != nil && match.EndTime != nil && match.EndTime.Before(*match.StartTime) {
		return nil, ErrInvalidSchedule
	}
	return match, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toMatchResponses(matches []models.Match) []models.MatchResponse {
	responses := make([]models.MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, *models.NewMatchResponse(&matches[i]))
	}
	return responses
}
