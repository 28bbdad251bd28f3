// Package main provides the entry point for the branch loan API server
package main

import (
	"branchloan/internal/api/routes"
	"branchloan/internal/api/server"
	"branchloan/internal/config"
	"branchloan/internal/database"
	"branchloan/internal/logging"
	"branchloan/internal/repository/postgres"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file; a missing default .env is fine
	envErr := godotenv.Load(*envFile)
	if envErr != nil && *envFile != ".env" {
		log.Fatal().Err(envErr).Str("file", *envFile).Msg("Failed to load env file")
	}

	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(cfg.Log, cfg.ServiceName)
	if envErr != nil {
		logger.Debug().Err(envErr).Msg("No .env file loaded")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// The service still starts when the database is down; /health reports it
	if err := database.Ping(context.Background(), db, 5*time.Second); err != nil {
		logger.Warn().Err(err).Msg("Database not reachable at startup")
	}

	loanRepo := postgres.NewLoanRepository(db)
	router := routes.SetupRoutes(cfg, db, loanRepo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, router, logger).Run(ctx)
}
