package cron_test

import (
	"context"
	"testing"
	"time"

	"football-league-api/packages/core/cron"
	"football-league-api/packages/core/models"
	"football-league-api/packages/core/ranking"
	"football-league-api/packages/core/services"
	"football-league-api/packages/core/store"
	"football-league-api/packages/core/testutil"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler over a league with an unfinished match", t, func() {
		ctx := context.Background()
		db := testutil.NewDB(t)
		clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 1, 20, 0, 0, 0, time.UTC))
		teams := store.NewTeamStore(db)
		matches := store.NewMatchStore(db, ranking.NewEngine(clock))

		home, err := teams.Create(ctx, &models.Team{Name: "Dunav"})
		So(err, ShouldBeNil)
		away, err := teams.Create(ctx, &models.Team{Name: "Levski"})
		So(err, ShouldBeNil)

		start, end := clock.Now().Add(-time.Hour), clock.Now().Add(time.Hour)
		_, err = matches.Create(ctx, &models.Match{
			HomeTeamID:    home.ID,
			AwayTeamID:    away.ID,
			HomeTeamScore: 2,
			AwayTeamScore: 0,
			StartTime:     &start,
			EndTime:       &end,
		})
		So(err, ShouldBeNil)

		scheduler := cron.NewScheduler(services.NewSettlementService(matches, nil, nil, nil), "")

		Convey("Running the job after the final whistle credits the winner", func() {
			clock.Advance(2 * time.Hour)
			scheduler.RunNow()

			found, err := teams.GetByID(ctx, home.ID)
			So(err, ShouldBeNil)
			So(found.Rank, ShouldEqual, 3)
		})

		Convey("Running the job early changes nothing", func() {
			scheduler.RunNow()

			found, err := teams.GetByID(ctx, home.ID)
			So(err, ShouldBeNil)
			So(found.Rank, ShouldEqual, 0)
		})

		Convey("An invalid schedule is rejected on start", func() {
			broken := cron.NewScheduler(services.NewSettlementService(matches, nil, nil, nil), "every now and then")
			So(broken.Start(), ShouldNotBeNil)
		})

		Convey("A valid schedule starts and stops", func() {
			So(scheduler.Start(), ShouldBeNil)
			scheduler.Stop()
		})
	})
}
