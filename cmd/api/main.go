package main

import (
	"context"
	"os"

	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/acemedformatics/acemed/internal/server"
)

// @title ACE Medformatics API
// @version 1.0
// @description Public content and admin API for the ACE Medformatics website

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT issued by /admin/auth/login

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
