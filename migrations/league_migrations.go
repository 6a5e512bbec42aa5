package migrations

import "gorm.io/gorm"

// GetAllMigrations returns the league schema migrations in the order they apply.
func GetAllMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2024_09_01_000000_create_teams_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id UUID PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						rank INT NOT NULL DEFAULT 0,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL
					);
					CREATE INDEX IF NOT EXISTS idx_teams_deleted_at ON teams(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_teams_rank ON teams(rank DESC);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_active_name ON teams(name) WHERE deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`DROP TABLE IF EXISTS teams;`).Error
			},
		},
		{
			Name: "2024_09_01_000001_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id UUID PRIMARY KEY,
						home_team_id UUID NOT NULL,
						away_team_id UUID NOT NULL,
						home_team_score INT NOT NULL DEFAULT 0 CHECK (home_team_score >= 0),
						away_team_score INT NOT NULL DEFAULT 0 CHECK (away_team_score >= 0),
						start_time TIMESTAMPTZ NULL,
						end_time TIMESTAMPTZ NULL,
						rank_applied BOOLEAN NOT NULL DEFAULT FALSE,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL,
						FOREIGN KEY (home_team_id) REFERENCES teams(id),
						FOREIGN KEY (away_team_id) REFERENCES teams(id),
						CHECK (home_team_id <> away_team_id)
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_home_team_id ON matches(home_team_id);
					CREATE INDEX IF NOT EXISTS idx_matches_away_team_id ON matches(away_team_id);
					CREATE INDEX IF NOT EXISTS idx_matches_unsettled ON matches(end_time) WHERE rank_applied = FALSE AND deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`DROP TABLE IF EXISTS matches;`).Error
			},
		},
	}
}
