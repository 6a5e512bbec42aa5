package fixtures_test

import (
	"context"
	"testing"
	"time"

	"football-league-api/fixtures"
	"football-league-api/packages/core/ranking"
	"football-league-api/packages/core/store"
	"football-league-api/packages/core/testutil"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFixtures(t *testing.T) {
	Convey("Given an empty league", t, func() {
		ctx := context.Background()
		db := testutil.NewDB(t)
		clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 1, 20, 0, 0, 0, time.UTC))
		teams := store.NewTeamStore(db)
		matches := store.NewMatchStore(db, ranking.NewEngine(clock))
		f := fixtures.NewFixtures(db, teams, matches)

		Convey("When a finished season is generated", func() {
			start := clock.Now().Add(-fixtures.SeasonLength() - time.Hour)
			seeded, err := f.GenerateTestData(ctx, start)
			So(err, ShouldBeNil)
			So(seeded, ShouldBeTrue)

			Convey("Then the standings are derived from the results", func() {
				standings, err := teams.GetAll(ctx)
				So(err, ShouldBeNil)
				So(standings, ShouldHaveLength, 4)

				got := map[string]int{}
				for _, team := range standings {
					got[team.Name] = team.Rank
				}
				So(got, ShouldResemble, map[string]int{
					"Dunav":      10,
					"Levski":     9,
					"CSKA":       7,
					"Ludogorets": 6,
				})
				So(standings[0].Name, ShouldEqual, "Dunav")
				So(standings[3].Name, ShouldEqual, "Ludogorets")

				ranked, err := matches.CountRanked(ctx)
				So(err, ShouldBeNil)
				So(ranked, ShouldEqual, 12)
			})

			Convey("Then generating again is a no-op", func() {
				seeded, err := f.GenerateTestData(ctx, start)
				So(err, ShouldBeNil)
				So(seeded, ShouldBeFalse)

				count, err := matches.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 12)
			})

			Convey("Then clearing removes everything", func() {
				So(f.ClearAllData(ctx), ShouldBeNil)

				count, err := teams.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 0)

				seeded, err := f.GenerateTestData(ctx, start)
				So(err, ShouldBeNil)
				So(seeded, ShouldBeTrue)
			})
		})

		Convey("When a season starting now is generated", func() {
			_, err := f.GenerateTestData(ctx, clock.Now())
			So(err, ShouldBeNil)

			Convey("Then no points are awarded until matches finish", func() {
				ranked, err := matches.CountRanked(ctx)
				So(err, ShouldBeNil)
				So(ranked, ShouldEqual, 0)
			})
		})
	})
}
