package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"olreader/internal/config"
	"olreader/internal/platform/logging"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Init("production", "info")
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Env, cfg.LogLevel)

	if err := run(context.Background(), cfg, *command, *name); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migrate")
	}
}

func run(ctx context.Context, cfg config.Config, command, name string) error {
	dir := cfg.MigrationsDir

	// create only touches the filesystem.
	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		log.Info().Str("name", name).Str("dir", dir).Msg("migration created")
		return nil
	}

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info().Str("dir", dir).Msg("migrations applied")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		log.Info().Str("dir", dir).Msg("migration rolled back")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, use: up, down, status, create\n", command)
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
