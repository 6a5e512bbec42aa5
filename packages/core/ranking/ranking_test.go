package ranking_test

import (
	"testing"
	"time"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/ranking"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
)

func newTeam(rank int) *models.Team {
	return &models.Team{ID: uuid.New(), Name: "team-" + uuid.NewString()[:8], Rank: rank}
}

func playedMatch(now time.Time, home, away int) *models.Match {
	start := now.Add(-3 * time.Hour)
	end := now.Add(-1 * time.Hour)
	return &models.Match{HomeTeamScore: home, AwayTeamScore: away, StartTime: &start, EndTime: &end}
}

func TestDelta(t *testing.T) {
	Convey("Given a final score", t, func() {
		Convey("A home win gives the home side three points", func() {
			h, a := ranking.Delta(2, 1)
			So(h, ShouldEqual, 3)
			So(a, ShouldEqual, 0)
		})

		Convey("An away win gives the away side three points", func() {
			h, a := ranking.Delta(0, 4)
			So(h, ShouldEqual, 0)
			So(a, ShouldEqual, 3)
		})

		Convey("A draw gives each side one point", func() {
			for _, score := range []int{0, 1, 5} {
				h, a := ranking.Delta(score, score)
				So(h, ShouldEqual, 1)
				So(a, ShouldEqual, 1)
			}
		})
	})
}

func TestCompleted(t *testing.T) {
	Convey("Given an evaluation instant", t, func() {
		now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
		past := now.Add(-2 * time.Hour)
		earlier := now.Add(-4 * time.Hour)
		future := now.Add(time.Hour)

		Convey("Start and end in the past is completed", func() {
			So(ranking.Completed(&earlier, &past, now), ShouldBeTrue)
		})

		Convey("An end time in the future is not completed", func() {
			So(ranking.Completed(&past, &future, now), ShouldBeFalse)
		})

		Convey("A start time in the future is not completed", func() {
			So(ranking.Completed(&future, &past, now), ShouldBeFalse)
		})

		Convey("Missing times are not completed", func() {
			So(ranking.Completed(nil, &past, now), ShouldBeFalse)
			So(ranking.Completed(&past, nil, now), ShouldBeFalse)
			So(ranking.Completed(nil, nil, now), ShouldBeFalse)
		})

		Convey("A time equal to now is not strictly before it", func() {
			So(ranking.Completed(&earlier, &now, now), ShouldBeFalse)
		})
	})
}

func TestEngineApply(t *testing.T) {
	Convey("Given an engine on a fixed clock", t, func() {
		now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
		engine := ranking.NewEngine(clockwork.NewFakeClockAt(now))

		Convey("When the home side won a completed match", func() {
			home, away := newTeam(5), newTeam(3)
			h, a, ok := engine.Apply(playedMatch(now, 1, 0), home, away)

			Convey("Then only the home rank grows by three", func() {
				So(ok, ShouldBeTrue)
				So(h.Rank, ShouldEqual, 8)
				So(a.Rank, ShouldEqual, 3)
			})

			Convey("And the inputs are left untouched", func() {
				So(home.Rank, ShouldEqual, 5)
				So(away.Rank, ShouldEqual, 3)
			})
		})

		Convey("When the away side won a completed match", func() {
			h, a, ok := engine.Apply(playedMatch(now, 0, 2), newTeam(1), newTeam(1))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 1)
			So(a.Rank, ShouldEqual, 4)
		})

		Convey("When a completed match ended 0-0", func() {
			h, a, ok := engine.Apply(playedMatch(now, 0, 0), newTeam(0), newTeam(7))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 1)
			So(a.Rank, ShouldEqual, 8)
		})

		Convey("When the match has not finished yet", func() {
			start := now.Add(-30 * time.Minute)
			end := now.Add(time.Hour)
			match := &models.Match{HomeTeamScore: 3, AwayTeamScore: 0, StartTime: &start, EndTime: &end}
			h, a, ok := engine.Apply(match, newTeam(2), newTeam(2))

			Convey("Then no points are awarded but the call succeeds", func() {
				So(ok, ShouldBeTrue)
				So(h.Rank, ShouldEqual, 2)
				So(a.Rank, ShouldEqual, 2)
			})
		})

		Convey("When the match has no end time", func() {
			start := now.Add(-time.Hour)
			match := &models.Match{HomeTeamScore: 1, AwayTeamScore: 1, StartTime: &start}
			h, a, ok := engine.Apply(match, newTeam(0), newTeam(0))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 0)
			So(a.Rank, ShouldEqual, 0)
		})

		Convey("When a team cannot be resolved", func() {
			_, _, ok := engine.Apply(playedMatch(now, 1, 0), newTeam(0), nil)
			So(ok, ShouldBeFalse)
			_, _, ok = engine.Apply(playedMatch(now, 1, 0), nil, newTeam(0))
			So(ok, ShouldBeFalse)
		})

		Convey("When the clock moves past the end of a match", func() {
			clock := clockwork.NewFakeClockAt(now)
			engine := ranking.NewEngine(clock)
			start := now.Add(-time.Hour)
			end := now.Add(time.Hour)
			match := &models.Match{HomeTeamScore: 2, AwayTeamScore: 1, StartTime: &start, EndTime: &end}
			So(engine.Completed(match), ShouldBeFalse)

			clock.Advance(2 * time.Hour)

			So(engine.Completed(match), ShouldBeTrue)
			h, _, ok := engine.Apply(match, newTeam(0), newTeam(0))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 3)
		})
	})
}

func TestEngineReverse(t *testing.T) {
	Convey("Given an engine on a fixed clock", t, func() {
		now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
		engine := ranking.NewEngine(clockwork.NewFakeClockAt(now))

		Convey("Reverse retracts a home win", func() {
			h, a, ok := engine.Reverse(playedMatch(now, 3, 1), newTeam(8), newTeam(2))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 5)
			So(a.Rank, ShouldEqual, 2)
		})

		Convey("Reverse retracts a draw from both sides", func() {
			h, a, ok := engine.Reverse(playedMatch(now, 2, 2), newTeam(4), newTeam(1))
			So(ok, ShouldBeTrue)
			So(h.Rank, ShouldEqual, 3)
			So(a.Rank, ShouldEqual, 0)
		})

		Convey("Reverse fails without both teams", func() {
			_, _, ok := engine.Reverse(playedMatch(now, 1, 0), nil, nil)
			So(ok, ShouldBeFalse)
		})

		Convey("Apply followed by Reverse restores the starting ranks", func() {
			for home := 0; home <= 4; home++ {
				for away := 0; away <= 4; away++ {
					for _, start := range [][2]int{{0, 0}, {5, 3}, {12, 40}} {
						match := playedMatch(now, home, away)
						h, a, ok := engine.Apply(match, newTeam(start[0]), newTeam(start[1]))
						So(ok, ShouldBeTrue)
						h, a, ok = engine.Reverse(match, h, a)
						So(ok, ShouldBeTrue)
						So(h.Rank, ShouldEqual, start[0])
						So(a.Rank, ShouldEqual, start[1])
					}
				}
			}
		})
	})
}
