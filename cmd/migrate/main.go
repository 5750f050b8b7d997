package main

import (
	"flag"

	"github.com/jhoicas/toner-control-api/internal/infrastructure/postgres"
	"github.com/jhoicas/toner-control-api/pkg/config"
	"github.com/jhoicas/toner-control-api/pkg/logger"
)

// Aplica (o revierte con -down) las migraciones embebidas del esquema.
func main() {
	down := flag.Bool("down", false, "revertir todas las migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	dsn := cfg.DB.DSN()
	if *down {
		if err := postgres.MigrateDown(dsn); err != nil {
			log.Fatal().Err(err).Msg("revertir migraciones")
		}
		log.Info().Msg("migraciones revertidas")
		return
	}
	if err := postgres.Migrate(dsn); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")
}
