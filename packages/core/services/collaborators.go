package services

import (
	"context"

	"football-league-api/packages/core/events"
	"football-league-api/packages/core/models"
)

// StandingsCache holds the rendered standings between team or match mutations.
// Get reports the current generation; Set only serves later reads while that
// generation is still current, and Invalidate advances it.
type StandingsCache interface {
	Get(ctx context.Context) ([]models.TeamResponse, int64, bool, error)
	Set(ctx context.Context, generation int64, teams []models.TeamResponse) error
	Invalidate(ctx context.Context) error
}

// EventPublisher announces standings changes to other services.
type EventPublisher interface {
	PublishStandingsChanged(ctx context.Context, event events.StandingsChanged) error
}

// MutationRecorder counts match mutations and settlements.
type MutationRecorder interface {
	MatchMutation(operation string, err error)
	MatchesSettled(n int)
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]models.TeamResponse, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) Set(context.Context, int64, []models.TeamResponse) error { return nil }
func (noopCache) Invalidate(context.Context) error                        { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishStandingsChanged(context.Context, events.StandingsChanged) error {
	return nil
}

type noopRecorder struct{}

func (noopRecorder) MatchMutation(string, error) {}
func (noopRecorder) MatchesSettled(int)          {}
