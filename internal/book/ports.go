package book

import (
	"context"

	"olreader/internal/platform/openlibrary"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// InsertOrGet stores b unless a row with the same external id or ISBN
	// exists, in which case the existing row is returned. created reports
	// which happened.
	InsertOrGet(ctx context.Context, b Book) (stored Book, created bool, err error)
	List(ctx context.Context, q Query) ([]Book, error)
}

// DetailFetcher resolves an identifier against the upstream catalog.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, id string) (openlibrary.BookDetail, error)
}
