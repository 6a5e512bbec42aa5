// Package events publishes standings changes to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const DefaultSubject = "league.standings.changed"

// StandingsChanged is emitted after a match mutation has moved team ranks.
type StandingsChanged struct {
	MatchID    uuid.UUID `json:"match_id"`
	Operation  string    `json:"operation"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	HomeRank   int       `json:"home_rank"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	AwayRank   int       `json:"away_rank"`
	OccurredAt time.Time `json:"occurred_at"`
}

type NATSConfig struct {
	URL           string
	Subject       string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		Subject:       DefaultSubject,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

type NATSPublisher struct {
	nc      Conn
	subject string
}

// Connect dials NATS and returns a publisher on cfg.Subject.
func Connect(cfg NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("football-league-api"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return NewNATSPublisher(nc, cfg.Subject), nil
}

func NewNATSPublisher(nc Conn, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{nc: nc, subject: subject}
}

func (p *NATSPublisher) PublishStandingsChanged(_ context.Context, event StandingsChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.nc.Publish(p.subject, data)
}

func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
