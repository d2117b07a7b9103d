package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mentorlink/backend/internal/pkg/logger"
	"github.com/mentorlink/backend/internal/server"
)

// @title MentorLink API
// @version 1.0
// @description API for the MentorLink mentorship platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real deployments rely on actual env vars
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
