package main

import (
	"kost/config"
	"kost/di"
	_ "kost/docs"
	"kost/helper"
	"kost/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title kost API
// @version 1.0
// @description Boarding house back office: rooms, bookings, payments and availability.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
