// Package metrics exposes Prometheus collectors for the league API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"football-league-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "league"

// Metrics groups the collectors used across the service.
type Metrics struct {
	gatherer prometheus.Gatherer

	rankApplied     prometheus.Counter
	rankReversed    prometheus.Counter
	matchMutations  *prometheus.CounterVec
	settledMatches  prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpRequestTime *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: registry,
		rankApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ranking",
			Name:      "applied_total",
			Help:      "Match outcomes credited to team ranks.",
		}),
		rankReversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ranking",
			Name:      "reversed_total",
			Help:      "Match outcomes withdrawn from team ranks.",
		}),
		matchMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matches",
			Name:      "mutations_total",
			Help:      "Match create, update and delete calls by result.",
		}, []string{"operation", "result"}),
		settledMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matches",
			Name:      "settled_total",
			Help:      "Matches credited after they finished.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.rankApplied,
		m.rankReversed,
		m.matchMutations,
		m.settledMatches,
		m.httpRequests,
		m.httpRequestTime,
	)
	return m
}

func (m *Metrics) RankApplied(*models.Match) {
	m.rankApplied.Inc()
}

func (m *Metrics) RankReversed(*models.Match) {
	m.rankReversed.Inc()
}

// MatchMutation records the result of a match create, update or delete.
func (m *Metrics) MatchMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.matchMutations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) MatchesSettled(n int) {
	m.settledMatches.Add(float64(n))
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestTime.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
