// Package ranking awards and retracts standings points for match outcomes.
package ranking

import (
	"time"

	"football-league-api/packages/core/models"

	"github.com/jonboulle/clockwork"
)

const (
	WinPoints  = 3
	DrawPoints = 1
)

// Delta returns the rank points each side earns for a final score.
func Delta(homeScore, awayScore int) (home, away int) {
	switch {
	case homeScore > awayScore:
		return WinPoints, 0
	case homeScore < awayScore:
		return 0, WinPoints
	default:
		return DrawPoints, DrawPoints
	}
}

// Completed reports whether a match with the given times has finished at now.
// Both times must be set and strictly before now.
func Completed(start, end *time.Time, now time.Time) bool {
	if start == nil || end == nil {
		return false
	}
	return start.Before(now) && end.Before(now)
}

// Engine applies and reverses match contributions against team snapshots.
// It never mutates its arguments; updated copies are returned instead.
type Engine struct {
	clock clockwork.Clock
}

func NewEngine(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

// Now is the evaluation instant used by the completion gate.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Completed applies the completion gate to match at the engine's current time.
func (e *Engine) Completed(match *models.Match) bool {
	return Completed(match.StartTime, match.EndTime, e.clock.Now())
}

// Apply awards points for the match outcome when the match has completed.
// ok is false only when either team is missing; an unfinished match returns
// both teams unchanged with ok true.
func (e *Engine) Apply(match *models.Match, home, away *models.Team) (*models.Team, *models.Team, bool) {
	if home == nil || away == nil {
		return home, away, false
	}
	h, a := *home, *away
	if !e.Completed(match) {
		return &h, &a, true
	}
	dh, da := Delta(match.HomeTeamScore, match.AwayTeamScore)
	h.Rank += dh
	a.Rank += da
	return &h, &a, true
}

// Reverse retracts the points Apply would award for the outcome, without
// consulting the completion gate. Callers must only reverse contributions
// that were actually applied.
func (e *Engine) Reverse(match *models.Match, home, away *models.Team) (*models.Team, *models.Team, bool) {
	if home == nil || away == nil {
		return home, away, false
	}
	h, a := *home, *away
	dh, da := Delta(match.HomeTeamScore, match.AwayTeamScore)
	h.Rank -= dh
	a.Rank -= da
	return &h, &a, true
}
