// Comando de migraciones del esquema (goose sobre database/sql vía pgx stdlib).
//
// Uso:
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd status
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/clinova/clinica-api/pkg/config"
	"github.com/clinova/clinica-api/pkg/logger"
	"github.com/clinova/clinica-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando de migración: up|down|status|version")
	dir := flag.String("dir", migrate.DefaultDir, "directorio de migraciones goose")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "development"}).Fatal().Err(err).Msg("error cargando configuración")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("error abriendo conexión a PostgreSQL")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("error verificando conexión a PostgreSQL")
	}

	if err := migrate.Run(ctx, db, *dir, *cmd, flag.Args()...); err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
