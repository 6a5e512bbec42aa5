package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Match struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HomeTeamID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"home_team_id"`
	AwayTeamID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"away_team_id"`
	HomeTeamScore int            `gorm:"not null;default:0" json:"home_team_score"`
	AwayTeamScore int            `gorm:"not null;default:0" json:"away_team_score"`
	StartTime     *time.Time     `json:"start_time"`
	EndTime       *time.Time     `json:"end_time"`
	RankApplied   bool           `gorm:"not null;default:false;index" json:"rank_applied"` // outcome currently counted in team ranks
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	HomeTeam *Team `gorm:"foreignKey:HomeTeamID;references:ID" json:"home_team,omitempty"`
	AwayTeam *Team `gorm:"foreignKey:AwayTeamID;references:ID" json:"away_team,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Match) IsDeleted() bool {
	return m.DeletedAt.Valid
}

type CreateMatchRequest struct {
	HomeTeamID    uuid.UUID  `json:"home_team_id" binding:"required"`
	AwayTeamID    uuid.UUID  `json:"away_team_id" binding:"required"`
	HomeTeamScore *int       `json:"home_team_score" binding:"required,min=0"`
	AwayTeamScore *int       `json:"away_team_score" binding:"required,min=0"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

type UpdateMatchRequest struct {
	HomeTeamID    uuid.UUID  `json:"home_team_id" binding:"required"`
	AwayTeamID    uuid.UUID  `json:"away_team_id" binding:"required"`
	HomeTeamScore *int       `json:"home_team_score" binding:"required,min=0"`
	AwayTeamScore *int       `json:"away_team_score" binding:"required,min=0"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

type MatchResponse struct {
	ID            uuid.UUID     `json:"id"`
	HomeTeamID    uuid.UUID     `json:"home_team_id"`
	AwayTeamID    uuid.UUID     `json:"away_team_id"`
	HomeTeamScore int           `json:"home_team_score"`
	AwayTeamScore int           `json:"away_team_score"`
	StartTime     *time.Time    `json:"start_time,omitempty"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	HomeTeam      *TeamResponse `json:"home_team,omitempty"`
	AwayTeam      *TeamResponse `json:"away_team,omitempty"`
}

func NewMatchResponse(match *Match) *MatchResponse {
	return &MatchResponse{
		ID:            match.ID,
		HomeTeamID:    match.HomeTeamID,
		AwayTeamID:    match.AwayTeamID,
		HomeTeamScore: match.HomeTeamScore,
		AwayTeamScore: match.AwayTeamScore,
		StartTime:     match.StartTime,
		EndTime:       match.EndTime,
		HomeTeam:      NewTeamResponse(match.HomeTeam),
		AwayTeam:      NewTeamResponse(match.AwayTeam),
	}
}
