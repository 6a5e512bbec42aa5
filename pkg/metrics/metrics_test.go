package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"football-league-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given a metrics set on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewWithRegistry(registry)

		Convey("When ranking events and mutations are recorded", func() {
			m.RankApplied(nil)
			m.RankApplied(nil)
			m.RankReversed(nil)
			m.MatchMutation("create", nil)
			m.MatchMutation("delete", errors.New("boom"))
			m.MatchesSettled(3)

			Convey("Then the exposition reports them", func() {
				expected := `
# HELP league_ranking_applied_total Match outcomes credited to team ranks.
# TYPE league_ranking_applied_total counter
league_ranking_applied_total 2
# HELP league_ranking_reversed_total Match outcomes withdrawn from team ranks.
# TYPE league_ranking_reversed_total counter
league_ranking_reversed_total 1
# HELP league_matches_settled_total Matches credited after they finished.
# TYPE league_matches_settled_total counter
league_matches_settled_total 3
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected),
					"league_ranking_applied_total", "league_ranking_reversed_total", "league_matches_settled_total")
				So(err, ShouldBeNil)

				count, err := testutil.GatherAndCount(registry, "league_matches_mutations_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 2)
			})
		})

		Convey("When a request passes through the middleware", func() {
			r := gin.New()
			r.Use(m.Middleware())
			r.GET("/teams/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
			r.GET("/metrics", gin.WrapH(m.Handler()))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/abc", nil))
			So(w.Code, ShouldEqual, http.StatusNoContent)

			Convey("Then the route template is used as the label", func() {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `league_http_requests_total{method="GET",route="/teams/:id",status="204"} 1`)
			})
		})
	})
}
