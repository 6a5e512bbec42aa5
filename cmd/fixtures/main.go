package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"football-league-api/config"
	"football-league-api/fixtures"
	"football-league-api/packages/core/ranking"
	"football-league-api/packages/core/store"
	"football-league-api/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogLevel, true); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	db, err := config.ConnectDatabase(cfg.Database, cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	fixtureManager := fixtures.NewFixtures(db, store.NewTeamStore(db), store.NewMatchStore(db, ranking.NewEngine(nil)))

	// The generated season has just finished, so every match counts.
	start := time.Now().Add(-fixtures.SeasonLength() - time.Hour)

	command := os.Args[1]

	switch command {
	case "generate":
		if _, err := fixtureManager.GenerateTestData(ctx, start); err != nil {
			log.Fatal().Err(err).Msg("failed to generate fixtures")
		}
		fmt.Println("✅ Fixtures generated successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to clear fixtures")
		}
		fmt.Println("✅ All fixture data cleared!")
	case "regenerate":
		fmt.Println("Clearing existing data...")
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to clear fixtures")
		}
		fmt.Println("Generating new fixtures...")
		if _, err := fixtureManager.GenerateTestData(ctx, start); err != nil {
			log.Fatal().Err(err).Msg("failed to generate fixtures")
		}
		fmt.Println("✅ Fixtures regenerated successfully!")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Seed the four clubs and a finished twelve match season")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all teams and matches")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and regenerate all data")
}
