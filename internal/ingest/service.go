package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"olreader/internal/platform/openlibrary"
)

const defaultConcurrency = 4

var DefaultCategories = []string{
	string(openlibrary.CategoryRecent),
	string(openlibrary.CategoryNew),
	string(openlibrary.CategoryPopular),
}

type Service struct {
	source   TrendingSource
	resolver Resolver
	cfg      Config
}

func NewService(source TrendingSource, resolver Resolver, cfg Config) *Service {
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Service{source: source, resolver: resolver, cfg: cfg}
}

// Run stores every work listed by the configured trending feeds. A failing
// feed aborts the pass; a failing book is counted and skipped.
func (s *Service) Run(ctx context.Context) (run Run, err error) {
	run.StartedAt = time.Now()
	defer func() { run.FinishedAt = time.Now() }()

	seen := make(map[string]bool)
	var ids []string
	for _, category := range s.cfg.Categories {
		entries, err := s.source.FetchTrending(ctx, category, s.cfg.Minimum, s.cfg.Limit)
		if err != nil {
			return run, fmt.Errorf("trending %s: %w", category, err)
		}
		for _, e := range entries {
			if seen[e.ExternalID] {
				continue
			}
			seen[e.ExternalID] = true
			ids = append(ids, e.ExternalID)
		}
		log.Info().Str("category", category).Int("entries", len(entries)).Msg("trending feed read")
	}
	run.Discovered = len(ids)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, id := range ids {
		g.Go(func() error {
			b, created, err := s.resolver.Resolve(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				run.Failed++
				log.Warn().Err(err).Str("external_id", id).Msg("seed book failed")
			case created:
				run.Created++
				log.Debug().Str("external_id", id).Str("book_id", b.ID).Msg("seed book stored")
			default:
				run.Existing++
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return run, err
	}
	return run, ctx.Err()
}
