package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"olreader/internal/httpx"
	"olreader/internal/platform/openlibrary"
)

const maxTrendingLimit = 100

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) Search(ctx context.Context, term string, page int) (openlibrary.SearchResults, error) {
	if page < 1 {
		page = 1
	}
	res, err := s.catalog.Search(ctx, strings.TrimSpace(term), page)
	return res, s.logged(ctx, "search", err)
}

func (s *Service) SearchByISBN(ctx context.Context, isbn string) (openlibrary.BookSummary, error) {
	b, err := s.catalog.SearchByISBN(ctx, strings.TrimSpace(isbn))
	return b, s.logged(ctx, "search isbn", err)
}

func (s *Service) Detail(ctx context.Context, id string) (openlibrary.BookDetail, error) {
	d, err := s.catalog.FetchDetail(ctx, strings.TrimSpace(id))
	return d, s.logged(ctx, "detail", err)
}

func (s *Service) Availability(ctx context.Context, id string) (openlibrary.AvailabilityInfo, error) {
	a, err := s.catalog.FetchAvailability(ctx, strings.TrimSpace(id))
	return a, s.logged(ctx, "availability", err)
}

func (s *Service) Author(ctx context.Context, id string) (Author, error) {
	rec, err := s.catalog.FetchAuthor(ctx, strings.TrimSpace(id))
	if err := s.logged(ctx, "author", err); err != nil {
		return Author{}, err
	}

	a := Author{
		ID:        openlibrary.StripKey(rec.Key),
		Name:      rec.Name,
		BirthDate: rec.BirthDate,
		DeathDate: rec.DeathDate,
		Bio:       string(rec.Bio),
	}
	if a.ID == "" {
		a.ID = openlibrary.StripKey(id)
	}
	for _, photo := range rec.Photos {
		if photo > 0 {
			u := openlibrary.AuthorPhotoURL(s.catalog.CoversURL(), photo)
			a.PhotoURL = &u
			break
		}
	}
	return a, nil
}

// Trending clamps limit to maxTrendingLimit; non-positive values take the
// feed defaults.
func (s *Service) Trending(ctx context.Context, category string, minimum, limit int) ([]openlibrary.TrendingEntry, error) {
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}
	entries, err := s.catalog.FetchTrending(ctx, category, minimum, limit)
	return entries, s.logged(ctx, "trending", err)
}

// CoverURL synthesises the sized cover link for a work or edition id without
// calling upstream.
func (s *Service) CoverURL(id, size string) (string, error) {
	id = openlibrary.StripKey(id)
	if !openlibrary.ValidID(id) {
		return "", &openlibrary.Error{Op: "cover", Kind: openlibrary.ErrValidation, Err: fmt.Errorf("%q is not an Open Library identifier", id)}
	}
	coverSize := openlibrary.CoverMedium
	if size != "" {
		var ok bool
		if coverSize, ok = openlibrary.ParseCoverSize(size); !ok {
			return "", &openlibrary.Error{Op: "cover", Kind: openlibrary.ErrValidation, Err: errors.New("size must be S, M or L")}
		}
	}
	base := openlibrary.CoverURL(s.catalog.CoversURL(), id, openlibrary.KindOf(id))
	return openlibrary.SizedCoverURL(base, coverSize), nil
}

// logged records upstream failures and returns err unchanged. Caller mistakes
// and missing records are not logged.
func (s *Service) logged(ctx context.Context, op string, err error) error {
	if err == nil || errors.Is(err, openlibrary.ErrValidation) || errors.Is(err, openlibrary.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	event := log.Warn()
	var olErr *openlibrary.Error
	if errors.As(err, &olErr) {
		event = event.Str("url", olErr.URL).Int("status", olErr.Status)
	}
	event.Err(err).Str("op", op).Str("request_id", httpx.RequestIDFromContext(ctx)).Msg("catalog upstream failure")
	return err
}
