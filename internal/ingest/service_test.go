package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"olreader/internal/book"
	"olreader/internal/platform/openlibrary"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchTrending(ctx context.Context, category string, minimum, limit int) ([]openlibrary.TrendingEntry, error) {
	args := m.Called(ctx, category, minimum, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]openlibrary.TrendingEntry), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, externalID string) (book.Book, bool, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(book.Book), args.Bool(1), args.Error(2)
}

func entries(ids ...string) []openlibrary.TrendingEntry {
	out := make([]openlibrary.TrendingEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, openlibrary.TrendingEntry{ExternalID: id, Title: "Title " + id})
	}
	return out
}

func TestService_Run(t *testing.T) {
	source := new(mockSource)
	resolver := new(mockResolver)

	source.On("FetchTrending", mock.Anything, "recent", 4, 12).Return(entries("OL1W", "OL2M"), nil)
	source.On("FetchTrending", mock.Anything, "popular", 4, 12).Return(entries("OL2M", "OL3W"), nil)

	resolver.On("Resolve", mock.Anything, "OL1W").Return(book.Book{ID: "b1", ExternalID: "OL1W"}, true, nil).Once()
	resolver.On("Resolve", mock.Anything, "OL2M").Return(book.Book{ID: "b2", ExternalID: "OL2M"}, false, nil).Once()
	resolver.On("Resolve", mock.Anything, "OL3W").Return(book.Book{}, false, openlibrary.ErrUpstreamUnavailable).Once()

	svc := NewService(source, resolver, Config{Categories: []string{"recent", "popular"}, Minimum: 4, Limit: 12})
	run, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, run.Discovered)
	assert.Equal(t, 1, run.Created)
	assert.Equal(t, 1, run.Existing)
	assert.Equal(t, 1, run.Failed)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
	source.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestService_Run_FeedFailureAborts(t *testing.T) {
	source := new(mockSource)
	resolver := new(mockResolver)

	source.On("FetchTrending", mock.Anything, "recent", 0, 0).Return(nil, openlibrary.ErrUpstreamMalformed)

	svc := NewService(source, resolver, Config{Categories: []string{"recent", "new"}})
	_, err := svc.Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, openlibrary.ErrUpstreamMalformed))
	assert.Contains(t, err.Error(), "trending recent")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, nil, Config{})

	assert.Equal(t, DefaultCategories, svc.cfg.Categories)
	assert.Equal(t, defaultConcurrency, svc.cfg.Concurrency)
}
