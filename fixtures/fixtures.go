package fixtures

import (
	"context"
	"fmt"
	"time"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/store"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TeamNames are the clubs of the demo league.
var TeamNames = []string{"Dunav", "Ludogorets", "CSKA", "Levski"}

type fixture struct {
	home, away           string
	homeScore, awayScore int
}

// season lists one match per day, each lasting two hours.
var season = []fixture{
	{"Dunav", "Ludogorets", 1, 1},
	{"Dunav", "CSKA", 2, 1},
	{"Levski", "Dunav", 3, 0},
	{"Ludogorets", "CSKA", 3, 2},
	{"Ludogorets", "Levski", 1, 1},
	{"Dunav", "Ludogorets", 2, 0},
	{"CSKA", "Levski", 1, 1},
	{"CSKA", "Dunav", 1, 2},
	{"Ludogorets", "CSKA", 2, 3},
	{"Levski", "Dunav", 3, 0},
	{"Levski", "Ludogorets", 1, 1},
	{"CSKA", "Levski", 2, 1},
}

const matchDuration = 2 * time.Hour

type Fixtures struct {
	db      *gorm.DB
	teams   *store.TeamStore
	matches *store.MatchStore
}

func NewFixtures(db *gorm.DB, teams *store.TeamStore, matches *store.MatchStore) *Fixtures {
	return &Fixtures{db: db, teams: teams, matches: matches}
}

// SeasonLength is the time between the first kick-off and the last final whistle.
func SeasonLength() time.Duration {
	return time.Duration(len(season)-1)*24*time.Hour + matchDuration
}

// GenerateTestData seeds the demo league when no teams or matches exist.
// Matches go through the match store so points are credited for those already
// played at start; later ones are settled once they finish.
func (f *Fixtures) GenerateTestData(ctx context.Context, start time.Time) (bool, error) {
	teamCount, err := f.teams.Count(ctx)
	if err != nil {
		return false, err
	}
	matchCount, err := f.matches.Count(ctx)
	if err != nil {
		return false, err
	}
	if teamCount > 0 || matchCount > 0 {
		log.Info().Int64("teams", teamCount).Int64("matches", matchCount).Msg("database not empty, skipping fixtures")
		return false, nil
	}

	log.Info().Msg("starting fixtures generation")

	teams, err := f.generateTeams(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to generate teams: %w", err)
	}

	if err := f.generateMatches(ctx, teams, start.UTC()); err != nil {
		return false, fmt.Errorf("failed to generate matches: %w", err)
	}

	log.Info().Int("teams", len(teams)).Int("matches", len(season)).Msg("fixtures generated")
	return true, nil
}

func (f *Fixtures) generateTeams(ctx context.Context) (map[string]*models.Team, error) {
	teams := make(map[string]*models.Team, len(TeamNames))
	for _, name := range TeamNames {
		team, err := f.teams.Create(ctx, &models.Team{Name: name})
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", name, err)
		}
		teams[name] = team
	}
	return teams, nil
}

func (f *Fixtures) generateMatches(ctx context.Context, teams map[string]*models.Team, start time.Time) error {
	for day, fx := range season {
		kickOff := start.AddDate(0, 0, day)
		final := kickOff.Add(matchDuration)

		match := &models.Match{
			HomeTeamID:    teams[fx.home].ID,
			AwayTeamID:    teams[fx.away].ID,
			HomeTeamScore: fx.homeScore,
			AwayTeamScore: fx.awayScore,
			StartTime:     &kickOff,
			EndTime:       &final,
		}
		if _, err := f.matches.Create(ctx, match); err != nil {
			return fmt.Errorf("%s vs %s: %w", fx.home, fx.away, err)
		}
	}
	return nil
}

// ClearAllData hard deletes every match and team.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	log.Info().Msg("clearing all fixture data")

	// Matches reference teams, so they go first.
	tables := []interface{}{
		&models.Match{},
		&models.Team{},
	}

	for _, table := range tables {
		if err := f.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	log.Info().Msg("all fixture data cleared")
	return nil
}
