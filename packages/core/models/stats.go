package models

type Stats struct {
	TotalTeams       int64 `json:"total_teams"`
	TotalMatches     int64 `json:"total_matches"`
	CompletedMatches int64 `json:"completed_matches"`
	RankedMatches    int64 `json:"ranked_matches"`
	UnsettledMatches int64 `json:"unsettled_matches"`
}
