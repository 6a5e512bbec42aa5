package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"football-league-api/config"
	_ "football-league-api/docs" // Swagger docs
	"football-league-api/fixtures"
	"football-league-api/packages/core"
	"football-league-api/packages/core/cache"
	"football-league-api/packages/core/events"
	"football-league-api/pkg/logger"
	"football-league-api/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Football League API
// @version         1.0
// @description     Teams, matches and the standings they produce.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		return err
	}

	db, err := config.ConnectDatabase(cfg.Database, cfg.LogLevel)
	if err != nil {
		return err
	}

	m := metrics.New()
	deps := core.Deps{
		Recorder:           m,
		RankObserver:       m,
		SettlementSchedule: cfg.Settlement.Schedule,
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		deps.Cache = cache.NewStandingsCache(rdb, cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("standings cache enabled")
	}

	if cfg.NATS.Enabled() {
		natsCfg := events.DefaultNATSConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.Subject = cfg.NATS.Subject
		publisher, err := events.Connect(natsCfg)
		if err != nil {
			return err
		}
		defer func() { _ = publisher.Close() }()
		deps.Publisher = publisher
		log.Info().Str("url", cfg.NATS.URL).Str("subject", cfg.NATS.Subject).Msg("standings events enabled")
	}

	coreModule := core.NewModule(db, deps)

	if cfg.SeedOnStart {
		seeder := fixtures.NewFixtures(db, coreModule.TeamStore, coreModule.MatchStore)
		if _, err := seeder.GenerateTestData(ctx, time.Now()); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	if cfg.Settlement.Enabled {
		if err := coreModule.StartScheduler(); err != nil {
			return err
		}
		defer coreModule.StopScheduler()
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), m.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	coreModule.SetupRoutes(r.Group("/api"))

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/health", healthHandler(db))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Message:  "Server is running",
				Database: "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{
			Message:  "Server is running",
			Database: "connected",
		})
	}
}
