package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"football-league-api/config"

	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Database.Port, convey.ShouldEqual, 5432)
				convey.So(cfg.Redis.Enabled(), convey.ShouldBeFalse)
				convey.So(cfg.NATS.Enabled(), convey.ShouldBeFalse)
				convey.So(cfg.Settlement.Enabled, convey.ShouldBeTrue)
				convey.So(cfg.Settlement.Schedule, convey.ShouldEqual, "0 * * * * *")
				convey.So(cfg.CORS.AllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("LEAGUE_ADDR", ":9000")
			t.Setenv("LEAGUE_LOG_LEVEL", "debug")
			t.Setenv("LEAGUE_DATABASE__HOST", "db.internal")
			t.Setenv("LEAGUE_DATABASE__PORT", "6543")
			t.Setenv("LEAGUE_REDIS__ADDR", "localhost:6379")
			t.Setenv("LEAGUE_REDIS__TTL", "45s")
			t.Setenv("LEAGUE_SETTLEMENT__ENABLED", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then nested keys override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Database.Host, convey.ShouldEqual, "db.internal")
				convey.So(cfg.Database.Port, convey.ShouldEqual, 6543)
				convey.So(cfg.Database.User, convey.ShouldEqual, "postgres")
				convey.So(cfg.Redis.Enabled(), convey.ShouldBeTrue)
				convey.So(cfg.Redis.TTL, convey.ShouldEqual, 45*time.Second)
				convey.So(cfg.Settlement.Enabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeConfigFile(t, `
addr: ":9090"
log_pretty: true
database:
  name: league_test
nats:
  url: nats://localhost:4222
settlement:
  schedule: "*/30 * * * * *"
`)
			t.Setenv("LEAGUE_CONFIG", path)
			t.Setenv("LEAGUE_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogPretty, convey.ShouldBeTrue)
				convey.So(cfg.Database.Name, convey.ShouldEqual, "league_test")
				convey.So(cfg.Database.Host, convey.ShouldEqual, "localhost")
				convey.So(cfg.NATS.Enabled(), convey.ShouldBeTrue)
				convey.So(cfg.NATS.Subject, convey.ShouldEqual, "league.standings.changed")
				convey.So(cfg.Settlement.Schedule, convey.ShouldEqual, "*/30 * * * * *")
			})
		})

		convey.Convey("When the config file is missing", func() {
			t.Setenv("LEAGUE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value is invalid", func() {
			t.Setenv("LEAGUE_DATABASE__PORT", "70000")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestDatabaseConnectionString(t *testing.T) {
	convey.Convey("Given database settings", t, func() {
		db := config.New().Database

		convey.Convey("Then the DSN is built from the fields", func() {
			convey.So(db.ConnectionString(), convey.ShouldEqual,
				"host=localhost port=5432 user=postgres password= dbname=football_league sslmode=disable TimeZone=UTC")
		})

		convey.Convey("Then an explicit DSN wins", func() {
			db.DSN = "postgres://league@db/league"
			convey.So(db.ConnectionString(), convey.ShouldEqual, "postgres://league@db/league")
		})
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearConfigEnvVars unsets every LEAGUE_ variable for the duration of the test.
func clearConfigEnvVars(t *testing.T) {
	for _, name := range []string{
		"LEAGUE_CONFIG", "LEAGUE_ADDR", "LEAGUE_LOG_LEVEL", "LEAGUE_LOG_PRETTY",
		"LEAGUE_DATABASE__HOST", "LEAGUE_DATABASE__PORT", "LEAGUE_DATABASE__NAME",
		"LEAGUE_REDIS__ADDR", "LEAGUE_REDIS__TTL", "LEAGUE_NATS__URL",
		"LEAGUE_SETTLEMENT__ENABLED", "LEAGUE_SETTLEMENT__SCHEDULE",
	} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}
