package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"football-league-api/packages/core/events"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	drained  bool
}

func (c *fakeConn) Publish(subj string, data []byte) error {
	c.subjects = append(c.subjects, subj)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestNATSPublisher(t *testing.T) {
	Convey("Given a publisher without an explicit subject", t, func() {
		conn := &fakeConn{}
		p := events.NewNATSPublisher(conn, "")

		Convey("When a standings change is published", func() {
			event := events.StandingsChanged{
				MatchID:    uuid.New(),
				Operation:  "update",
				HomeTeamID: uuid.New(),
				HomeRank:   5,
				AwayTeamID: uuid.New(),
				AwayRank:   6,
				OccurredAt: time.Date(2024, 9, 1, 20, 0, 0, 0, time.UTC),
			}
			So(p.PublishStandingsChanged(context.Background(), event), ShouldBeNil)

			Convey("Then it goes to the default subject as JSON", func() {
				So(conn.subjects, ShouldResemble, []string{events.DefaultSubject})

				var decoded events.StandingsChanged
				So(json.Unmarshal(conn.payloads[0], &decoded), ShouldBeNil)
				So(decoded, ShouldResemble, event)
			})
		})

		Convey("When it is closed the connection is drained", func() {
			So(p.Close(), ShouldBeNil)
			So(conn.drained, ShouldBeTrue)
		})
	})
}
