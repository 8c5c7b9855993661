package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"olreader/internal/platform/openlibrary"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	// resolveTimeout bounds a shared fetch-and-store, which outlives the
	// caller that started it.
	resolveTimeout = 15 * time.Second
)

// ErrInvalidCursor is returned for list cursors that do not decode.
var ErrInvalidCursor = errors.New("invalid cursor")

// Service provides book-related business logic.
type Service struct {
	repo    Repository
	fetcher DetailFetcher
	group   singleflight.Group
}

// NewService creates a new book service.
func NewService(repo Repository, fetcher DetailFetcher) *Service {
	return &Service{repo: repo, fetcher: fetcher}
}

// Get returns a locally stored book.
func (s *Service) Get(ctx context.Context, externalID string) (Book, error) {
	return s.repo.GetByExternalID(ctx, openlibrary.StripKey(externalID))
}

// GetByISBN returns a locally stored book by ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	normalized := openlibrary.NormalizeISBN(isbn)
	if !openlibrary.ValidISBN(normalized) {
		return Book{}, &openlibrary.Error{Op: "get book", Kind: openlibrary.ErrValidation, Err: fmt.Errorf("isbn %q is not a 10 or 13 digit ISBN", isbn)}
	}
	return s.repo.GetByISBN(ctx, normalized)
}

// Resolve returns the local book for externalID, fetching and storing it on
// first use. Concurrent resolves of one id share a single upstream fetch, and
// every caller sharing the inserting fetch sees created. A caller whose ctx
// ends stops waiting; the shared fetch carries on for the others.
func (s *Service) Resolve(ctx context.Context, externalID string) (Book, bool, error) {
	id := openlibrary.StripKey(externalID)
	if !openlibrary.ValidID(id) || openlibrary.KindOf(id) == openlibrary.KindAuthor {
		return Book{}, false, &openlibrary.Error{Op: "resolve book", Kind: openlibrary.ErrValidation, Err: fmt.Errorf("%q is not a work or edition id", externalID)}
	}

	if b, err := s.repo.GetByExternalID(ctx, id); err == nil {
		return b, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Book{}, false, err
	}

	type result struct {
		book    Book
		created bool
	}
	ch := s.group.DoChan(id, func() (any, error) {
		// Joined callers wait on this fetch, so it must not die with the
		// first caller's request.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()

		detail, err := s.fetcher.FetchDetail(fetchCtx, id)
		if err != nil {
			log.Warn().Err(err).Str("external_id", id).Msg("resolve book: upstream fetch failed")
			return nil, err
		}
		stored, created, err := s.repo.InsertOrGet(fetchCtx, fromDetail(id, detail))
		if err != nil {
			return nil, err
		}
		if created {
			log.Info().Str("external_id", stored.ExternalID).Str("book_id", stored.ID).Msg("book stored")
		}
		return result{book: stored, created: created}, nil
	})

	select {
	case <-ctx.Done():
		return Book{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Book{}, false, res.Err
		}
		r := res.Val.(result)
		return r.book, r.created, nil
	}
}

// List pages through stored books. limit is clamped to [1, MaxListLimit].
func (s *Service) List(ctx context.Context, limit int, cursor string) (Page, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	after, err := DecodeCursor(strings.TrimSpace(cursor))
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	books, err := s.repo.List(ctx, Query{Limit: limit + 1, After: after})
	if err != nil {
		return Page{}, err
	}

	if books == nil {
		books = []Book{}
	}
	page := Page{Items: books}
	if len(books) > limit {
		page.Items = books[:limit]
		page.NextCursor = cursorFor(page.Items[limit-1])
	}
	return page, nil
}

// fromDetail keeps the identifier the caller asked for so later lookups by
// that id hit the local row.
func fromDetail(id string, d openlibrary.BookDetail) Book {
	return Book{
		ExternalID: id,
		ISBN:       d.ISBN,
		Title:      d.Title,
		Author:     d.Author,
		CoverURL:   d.CoverURL,
	}
}
