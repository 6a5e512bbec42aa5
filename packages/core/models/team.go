package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null;index" json:"name"`
	Rank      int            `gorm:"not null;default:0" json:"rank"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsDeleted reports whether the team has been soft deleted.
func (t *Team) IsDeleted() bool {
	return t.DeletedAt.Valid
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// TeamResponse is the public shape of a team, also nested in match responses.
type TeamResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Rank int       `json:"rank"`
}

func NewTeamResponse(team *Team) *TeamResponse {
	if team == nil {
		return nil
	}
	return &TeamResponse{
		ID:   team.ID,
		Name: team.Name,
		Rank: team.Rank,
	}
}
