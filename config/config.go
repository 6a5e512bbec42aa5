// Package config defines the league service configuration and how it is
// loaded from defaults, an optional YAML file and LEAGUE_ environment variables.
package config

import (
	"fmt"
	"time"

	"football-league-api/packages/core/cron"
	"football-league-api/packages/core/events"
)

type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogPretty switches to human readable console output.
	LogPretty bool `koanf:"log_pretty"`

	Database   DatabaseConfig   `koanf:"database"`
	Redis      RedisConfig      `koanf:"redis"`
	NATS       NATSConfig       `koanf:"nats"`
	Settlement SettlementConfig `koanf:"settlement"`
	CORS       CORSConfig       `koanf:"cors"`

	// SeedOnStart loads the demo league into an empty database at startup.
	SeedOnStart bool `koanf:"seed_on_start"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode"`

	// DSN overrides the individual fields when set.
	DSN string `koanf:"dsn"`
}

// ConnectionString returns the postgres DSN.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// RedisConfig configures the standings cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// NATSConfig configures standings events. An empty URL disables them.
type NATSConfig struct {
	URL     string `koanf:"url"`
	Subject string `koanf:"subject"`
}

func (n NATSConfig) Enabled() bool { return n.URL != "" }

type SettlementConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Schedule string `koanf:"schedule"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "football_league",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			TTL: time.Minute,
		},
		NATS: NATSConfig{
			Subject: events.DefaultSubject,
		},
		Settlement: SettlementConfig{
			Enabled:  true,
			Schedule: cron.DefaultSettlementSchedule,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Database.DSN == "" && c.Database.Host == "":
		return fmt.Errorf("%w: database host or dsn is required", ErrInvalidConfig)
	case c.Database.DSN == "" && (c.Database.Port <= 0 || c.Database.Port > 65535):
		return fmt.Errorf("%w: database port %d out of range", ErrInvalidConfig, c.Database.Port)
	case c.Redis.TTL <= 0:
		return fmt.Errorf("%w: redis ttl must be positive", ErrInvalidConfig)
	case c.NATS.Enabled() && c.NATS.Subject == "":
		return fmt.Errorf("%w: nats subject must not be empty", ErrInvalidConfig)
	case c.Settlement.Enabled && c.Settlement.Schedule == "":
		return fmt.Errorf("%w: settlement schedule must not be empty", ErrInvalidConfig)
	}
	return nil
}
