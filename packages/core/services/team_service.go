package services

import (
	"context"
	"errors"
	"strings"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidTeamName = errors.New("team name must not be blank")

type TeamService struct {
	teams   *store.TeamStore
	matches *store.MatchStore
	cache   StandingsCache
}

func NewTeamService(teams *store.TeamStore, matches *store.MatchStore, cache StandingsCache) *TeamService {
	if cache == nil {
		cache = noopCache{}
	}
	return &TeamService{
		teams:   teams,
		matches: matches,
		cache:   cache,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (*models.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}

	team, err := s.teams.Create(ctx, &models.Team{Name: name})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("team created")
	return models.NewTeamResponse(team), nil
}

func (s *TeamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.TeamResponse, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewTeamResponse(team), nil
}

// GetStandings lists active teams by rank, served from the cache when warm.
// The cache is filled under the generation read before the database, so a
// mutation committing in between leaves the entry unservable.
func (s *TeamService) GetStandings(ctx context.Context) ([]models.TeamResponse, error) {
	cached, generation, ok, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("standings cache read failed")
	}
	if ok {
		return cached, nil
	}

	teams, err := s.teams.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]models.TeamResponse, 0, len(teams))
	for i := range teams {
		standings = append(standings, *models.NewTeamResponse(&teams[i]))
	}

	if cacheErr == nil {
		if err := s.cache.Set(ctx, generation, standings); err != nil {
			log.Warn().Err(err).Msg("standings cache write failed")
		}
	}
	return standings, nil
}

func (s *TeamService) GetTeamMatches(ctx context.Context, id uuid.UUID) ([]models.MatchResponse, error) {
	if _, err := s.teams.GetByID(ctx, id); err != nil {
		return nil, err
	}

	matches, err := s.matches.ListByTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMatchResponses(matches), nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uuid.UUID, req models.UpdateTeamRequest) (*models.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}

	team, err := s.teams.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return models.NewTeamResponse(team), nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	log.Info().Str("team_id", id.String()).Msg("team deleted")
	return nil
}

func (s *TeamService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("standings cache invalidation failed")
	}
}
