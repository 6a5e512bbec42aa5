package store

import (
	"context"
	"errors"
	"fmt"

	"football-league-api/packages/core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamStore struct {
	db *gorm.DB
}

func NewTeamStore(db *gorm.DB) *TeamStore {
	return &TeamStore{
		db: db,
	}
}

// Create inserts a team after checking its name against active teams only,
// so a soft-deleted team's name can be reused.
func (s *TeamStore) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inUse, err := nameInUse(tx, team.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if inUse {
			return ErrNameConflict
		}
		team.Rank = 0
		return nameConflict(tx.Create(team).Error)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetAll returns the standings: active teams by rank, highest first.
func (s *TeamStore) GetAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	result := s.db.WithContext(ctx).
		Order("rank DESC").
		Order("name ASC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

// Update renames a team. Rank is never written on this path.
func (s *TeamStore) Update(ctx context.Context, id uuid.UUID, name string) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&team, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if team.Name == name {
			return nil
		}
		inUse, err := nameInUse(tx, name, id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrNameConflict
		}
		team.Name = name
		return nameConflict(tx.Model(&team).Update("name", name).Error)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (s *TeamStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TeamStore) NameInUse(ctx context.Context, name string) (bool, error) {
	return nameInUse(s.db.WithContext(ctx), name, uuid.Nil)
}

func (s *TeamStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error
	return count, err
}

func nameInUse(db *gorm.DB, name string, except uuid.UUID) (bool, error) {
	var count int64
	query := db.Model(&models.Team{}).Where("name = ?", name)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check team name: %w", err)
	}
	return count > 0, nil
}

// nameConflict reports a unique index violation on the active name as
// ErrNameConflict. It covers the insert that races past nameInUse.
func nameConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameConflict
	}
	return err
}

// forUpdate adds a row lock to the next query. sqlite drops the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// lockTeam loads an active team for update inside tx. A missing team yields nil.
func lockTeam(tx *gorm.DB, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := forUpdate(tx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func saveRank(tx *gorm.DB, team *models.Team) error {
	return tx.Model(&models.Team{}).Where("id = ?", team.ID).Update("rank", team.Rank).Error
}
