package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"olreader/internal/book"
	"olreader/internal/config"
	"olreader/internal/ingest"
	"olreader/internal/platform/logging"
	"olreader/internal/platform/openlibrary"
)

func main() {
	var (
		categories  = flag.String("categories", strings.Join(ingest.DefaultCategories, ","), "Comma separated trending feeds: recent, new, popular")
		limit       = flag.Int("limit", openlibrary.DefaultTrendingLimit, "Works per feed")
		minimum     = flag.Int("minimum", openlibrary.DefaultTrendingMinimum, "Minimum reading-log count per work")
		concurrency = flag.Int("concurrency", 4, "Parallel book resolves")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Init("production", "info")
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	olClient := openlibrary.NewClient(cfg.OpenLibrary.Options())
	books := book.NewService(book.NewPostgresRepo(pool, cfg.DB.Timeout), olClient)

	svc := ingest.NewService(olClient, books, ingest.Config{
		Categories:  splitList(*categories),
		Minimum:     *minimum,
		Limit:       *limit,
		Concurrency: *concurrency,
	})

	run, err := svc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Int("discovered", run.Discovered).
		Int("created", run.Created).
		Int("existing", run.Existing).
		Int("failed", run.Failed).
		Dur("took", run.FinishedAt.Sub(run.StartedAt)).
		Msg("seed complete")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
