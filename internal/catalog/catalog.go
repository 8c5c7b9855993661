// Package catalog exposes the normalised Open Library catalog over HTTP.
package catalog

import (
	"context"

	"olreader/internal/platform/openlibrary"
)

// Catalog is the upstream surface the routes depend on. *openlibrary.Client
// implements it.
type Catalog interface {
	Search(ctx context.Context, term string, page int) (openlibrary.SearchResults, error)
	SearchByISBN(ctx context.Context, isbn string) (openlibrary.BookSummary, error)
	FetchDetail(ctx context.Context, id string) (openlibrary.BookDetail, error)
	FetchAvailability(ctx context.Context, id string) (openlibrary.AvailabilityInfo, error)
	FetchAuthor(ctx context.Context, id string) (openlibrary.AuthorRecord, error)
	FetchTrending(ctx context.Context, category string, minimum, limit int) ([]openlibrary.TrendingEntry, error)
	CoversURL() string
}

var _ Catalog = (*openlibrary.Client)(nil)

// Author is the public view of an author record.
type Author struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date,omitempty"`
	DeathDate string  `json:"death_date,omitempty"`
	Bio       string  `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url"`
}
