package ingest

import (
	"context"
	"time"

	"olreader/internal/book"
	"olreader/internal/platform/openlibrary"
)

// Config controls one seeding pass.
type Config struct {
	Categories  []string
	Minimum     int
	Limit       int
	Concurrency int
}

// TrendingSource lists trending works.
type TrendingSource interface {
	FetchTrending(ctx context.Context, category string, minimum, limit int) ([]openlibrary.TrendingEntry, error)
}

// Resolver stores a book by its Open Library id.
type Resolver interface {
	Resolve(ctx context.Context, externalID string) (book.Book, bool, error)
}

// Run summarises a seeding pass.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Discovered int
	Created    int
	Existing   int
	Failed     int
}
