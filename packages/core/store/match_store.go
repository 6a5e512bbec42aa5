package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/ranking"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RankObserver is notified of every contribution the match store applies or
// reverses. It is called inside the transaction, before commit.
type RankObserver interface {
	RankApplied(match *models.Match)
	RankReversed(match *models.Match)
}

type MatchStore struct {
	db       *gorm.DB
	engine   *ranking.Engine
	observer RankObserver
}

func NewMatchStore(db *gorm.DB, engine *ranking.Engine) *MatchStore {
	return &MatchStore{
		db:     db,
		engine: engine,
	}
}

// WithObserver sets the observer for rank contributions.
func (s *MatchStore) WithObserver(observer RankObserver) *MatchStore {
	s.observer = observer
	return s
}

// Create stores a match and, when it has already been played, credits both
// teams. Nothing is written if either team does not resolve.
func (s *MatchStore) Create(ctx context.Context, match *models.Match) (*models.Match, error) {
	if match.HomeTeamID == match.AwayTeamID {
		return nil, ErrSameTeam
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teams, err := lockTeams(tx, match.HomeTeamID, match.AwayTeamID)
		if err != nil {
			return err
		}
		if _, _, err := pair(teams, match.HomeTeamID, match.AwayTeamID); err != nil {
			return err
		}

		match.RankApplied = false
		if err := tx.Omit("HomeTeam", "AwayTeam").Create(match).Error; err != nil {
			return err
		}

		return s.apply(tx, match, teams)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, match.ID)
}

// Update replaces a match's teams, scores and times. The stored outcome is
// retracted first if it was counted, then the new outcome is credited if the
// match has been played.
func (s *MatchStore) Update(ctx context.Context, update *models.Match) (*models.Match, error) {
	if update.HomeTeamID == update.AwayTeamID {
		return nil, ErrSameTeam
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match, err := lockMatch(tx, update.ID)
		if err != nil {
			return err
		}

		teams, err := lockTeams(tx, match.HomeTeamID, match.AwayTeamID, update.HomeTeamID, update.AwayTeamID)
		if err != nil {
			return err
		}

		if err := s.reverse(tx, match, teams); err != nil {
			return err
		}
		if _, _, err := pair(teams, update.HomeTeamID, update.AwayTeamID); err != nil {
			return err
		}

		match.HomeTeamID = update.HomeTeamID
		match.AwayTeamID = update.AwayTeamID
		match.HomeTeamScore = update.HomeTeamScore
		match.AwayTeamScore = update.AwayTeamScore
		match.StartTime = update.StartTime
		match.EndTime = update.EndTime
		match.UpdatedAt = s.engine.Now()

		if err := tx.Session(&gorm.Session{SkipHooks: true}).Omit("HomeTeam", "AwayTeam").Save(match).Error; err != nil {
			return err
		}

		return s.apply(tx, match, teams)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, update.ID)
}

// Delete soft deletes a match after retracting its contribution. If a team
// needed for the retraction no longer resolves, the match is left in place.
func (s *MatchStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match, err := lockMatch(tx, id)
		if err != nil {
			return err
		}

		if match.RankApplied {
			teams, err := lockTeams(tx, match.HomeTeamID, match.AwayTeamID)
			if err != nil {
				return err
			}
			if err := s.reverse(tx, match, teams); err != nil {
				return err
			}
		}

		return tx.Delete(match).Error
	})
}

// Settle credits a match that was recorded before it finished. It reports
// whether points were awarded; already counted or unfinished matches are left
// alone.
func (s *MatchStore) Settle(ctx context.Context, id uuid.UUID) (bool, error) {
	settled := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match, err := lockMatch(tx, id)
		if err != nil {
			return err
		}

		if match.RankApplied || !s.engine.Completed(match) {
			return nil
		}

		teams, err := lockTeams(tx, match.HomeTeamID, match.AwayTeamID)
		if err != nil {
			return err
		}
		if err := s.apply(tx, match, teams); err != nil {
			return err
		}
		settled = match.RankApplied
		return nil
	})
	return settled, err
}

func (s *MatchStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	result := s.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		First(&match, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}
	return &match, nil
}

func (s *MatchStore) GetAll(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	result := s.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Order("start_time ASC").
		Order("created_at ASC").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

// ListByTeam returns the active matches a team played home or away.
func (s *MatchStore) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	result := s.db.WithContext(ctx).
		Where("home_team_id = ? OR away_team_id = ?", teamID, teamID).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Order("start_time ASC").
		Order("created_at ASC").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

// ListUnsettled returns active matches that have finished but are not yet
// counted in the standings. Matches with a deleted team are left out since
// they can no longer be credited.
func (s *MatchStore) ListUnsettled(ctx context.Context) ([]models.Match, error) {
	var candidates []models.Match
	result := s.db.WithContext(ctx).
		Joins("JOIN teams home ON home.id = matches.home_team_id AND home.deleted_at IS NULL").
		Joins("JOIN teams away ON away.id = matches.away_team_id AND away.deleted_at IS NULL").
		Where("matches.rank_applied = ?", false).
		Where("matches.start_time IS NOT NULL AND matches.end_time IS NOT NULL").
		Order("matches.end_time ASC").
		Find(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}

	unsettled := make([]models.Match, 0, len(candidates))
	for _, match := range candidates {
		if s.engine.Completed(&match) {
			unsettled = append(unsettled, match)
		}
	}
	return unsettled, nil
}

func (s *MatchStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Match{}).Count(&count).Error
	return count, err
}

func (s *MatchStore) CountRanked(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Match{}).Where("rank_applied = ?", true).Count(&count).Error
	return count, err
}

// apply credits the match when it has been played and records that on the
// match. teams must hold both sides, locked by the caller.
func (s *MatchStore) apply(tx *gorm.DB, match *models.Match, teams map[uuid.UUID]*models.Team) error {
	if !s.engine.Completed(match) {
		return nil
	}

	home, away, err := pair(teams, match.HomeTeamID, match.AwayTeamID)
	if err != nil {
		return err
	}
	newHome, newAway, ok := s.engine.Apply(match, home, away)
	if !ok {
		return ErrTeamsNotResolvable
	}
	if err := saveRank(tx, newHome); err != nil {
		return err
	}
	if err := saveRank(tx, newAway); err != nil {
		return err
	}
	teams[newHome.ID] = newHome
	teams[newAway.ID] = newAway

	match.RankApplied = true
	if err := markRanked(tx, match, s.engine.Now()); err != nil {
		return err
	}

	log.Debug().
		Str("match_id", match.ID.String()).
		Int("home_rank", newHome.Rank).
		Int("away_rank", newAway.Rank).
		Msg("match points applied")
	if s.observer != nil {
		s.observer.RankApplied(match)
	}
	return nil
}

// reverse retracts the stored outcome if, and only if, it is currently
// counted. The retracted ranks are written back into teams so a following
// apply in the same transaction starts from them.
func (s *MatchStore) reverse(tx *gorm.DB, match *models.Match, teams map[uuid.UUID]*models.Team) error {
	if !match.RankApplied {
		return nil
	}

	home, away, err := pair(teams, match.HomeTeamID, match.AwayTeamID)
	if err != nil {
		return err
	}
	newHome, newAway, ok := s.engine.Reverse(match, home, away)
	if !ok {
		return ErrTeamsNotResolvable
	}
	if err := saveRank(tx, newHome); err != nil {
		return err
	}
	if err := saveRank(tx, newAway); err != nil {
		return err
	}
	teams[newHome.ID] = newHome
	teams[newAway.ID] = newAway

	match.RankApplied = false
	if err := markRanked(tx, match, s.engine.Now()); err != nil {
		return err
	}

	log.Debug().
		Str("match_id", match.ID.String()).
		Int("home_rank", newHome.Rank).
		Int("away_rank", newAway.Rank).
		Msg("match points reversed")
	if s.observer != nil {
		s.observer.RankReversed(match)
	}
	return nil
}

// markRanked stores match.RankApplied, stamping the row with the league clock.
func markRanked(tx *gorm.DB, match *models.Match, now time.Time) error {
	match.UpdatedAt = now
	return tx.Model(match).UpdateColumns(map[string]interface{}{
		"rank_applied": match.RankApplied,
		"updated_at":   now,
	}).Error
}

// lockMatch loads an active match for update inside tx. The row lock is taken
// before rank_applied is read so concurrent mutations of one match serialize.
func lockMatch(tx *gorm.DB, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	if err := forUpdate(tx).First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

// lockTeams locks every distinct team in ids, in id order so two
// transactions over overlapping teams cannot deadlock. Teams that do not
// resolve are left out of the result.
func lockTeams(tx *gorm.DB, ids ...uuid.UUID) (map[uuid.UUID]*models.Team, error) {
	ordered := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	teams := make(map[uuid.UUID]*models.Team, len(ordered))
	for _, id := range ordered {
		team, err := lockTeam(tx, id)
		if err != nil {
			return nil, err
		}
		if team != nil {
			teams[id] = team
		}
	}
	return teams, nil
}

// pair picks the two sides of a match out of a locked set.
func pair(teams map[uuid.UUID]*models.Team, homeID, awayID uuid.UUID) (*models.Team, *models.Team, error) {
	home, away := teams[homeID], teams[awayID]
	if home == nil || away == nil {
		return nil, nil, ErrTeamsNotResolvable
	}
	return home, away, nil
}
