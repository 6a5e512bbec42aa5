package store

import "errors"

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTeamsNotResolvable = errors.New("one or both teams do not exist")
	ErrNameConflict       = errors.New("team name already exists")
)

var ErrSameTeam = errors.New("home and away team must be different")
