package openlibrary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryNew, ParseCategory("NEW"))
	assert.Equal(t, CategoryPopular, ParseCategory(" popular "))
	assert.Equal(t, CategoryRecent, ParseCategory("recent"))
	assert.Equal(t, CategoryRecent, ParseCategory("weekly"))
	assert.Equal(t, CategoryRecent, ParseCategory(""))
}

func TestClient_FetchTrending_Paths(t *testing.T) {
	tests := []struct {
		category string
		path     string
		hours    string
	}{
		{"recent", "/trending/hours.json", "24"},
		{"bogus", "/trending/hours.json", "24"},
		{"new", "/trending/new.json", ""},
		{"popular", "/trending/popular.json", ""},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			fake := newFakeHTTP(map[string]fakeResponse{tt.path: okJSON(`{"works":[]}`)})

			entries, err := newTestClient(fake).FetchTrending(context.Background(), tt.category, 0, 0)
			require.NoError(t, err)
			assert.Empty(t, entries)

			req := fake.last()
			assert.Equal(t, tt.path, req.URL.Path)
			q := req.URL.Query()
			assert.Equal(t, tt.hours, q.Get("hours"))
			assert.Equal(t, "4", q.Get("minimum"))
			assert.Equal(t, "12", q.Get("limit"))
			assert.Equal(t, "false", q.Get("sort_by_count"))
		})
	}
}

func TestClient_FetchTrending_UnknownIsRecent(t *testing.T) {
	recent := newFakeHTTP(map[string]fakeResponse{"/trending/hours.json": okJSON(fixture(t, "trending.json"))})
	unknown := newFakeHTTP(map[string]fakeResponse{"/trending/hours.json": okJSON(fixture(t, "trending.json"))})

	a, err := newTestClient(recent).FetchTrending(context.Background(), "recent", 2, 5)
	require.NoError(t, err)
	b, err := newTestClient(unknown).FetchTrending(context.Background(), "yearly", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, recent.last().URL.String(), unknown.last().URL.String())
	assert.Equal(t, "2", unknown.last().URL.Query().Get("minimum"))
	assert.Equal(t, "5", unknown.last().URL.Query().Get("limit"))
}

func TestClient_FetchTrending_Entries(t *testing.T) {
	fake := newFakeHTTP(map[string]fakeResponse{"/trending/popular.json": okJSON(fixture(t, "trending.json"))})

	entries, err := newTestClient(fake).FetchTrending(context.Background(), "popular", 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	wing := entries[0]
	assert.Equal(t, "OL50982390M", wing.ExternalID)
	assert.Equal(t, "OL20874112W", wing.WorkID)
	assert.Equal(t, "Rebecca Yarros", wing.Author)
	require.NotNil(t, wing.CoverURL)
	assert.Equal(t, "https://covers.openlibrary.test/b/olid/OL47279592M", *wing.CoverURL)
	assert.Equal(t, "https://openlibrary.test/works/OL20874112W", wing.DetailURL)
	assert.Equal(t, 2023, wing.FirstPublishYear)

	potter := entries[1]
	assert.Equal(t, "OL22856696M", potter.ExternalID)
	require.NotNil(t, potter.CoverURL)

	orwell := entries[2]
	assert.Equal(t, "OL1168007W", orwell.ExternalID)
	assert.Equal(t, UnknownAuthor, orwell.Author)
	assert.Nil(t, orwell.CoverURL)
}

func TestClient_FetchTrending_Malformed(t *testing.T) {
	t.Run("no works list", func(t *testing.T) {
		fake := newFakeHTTP(map[string]fakeResponse{"/trending/new.json": okJSON(`{"query":"/trending/new"}`)})

		_, err := newTestClient(fake).FetchTrending(context.Background(), "new", 0, 0)
		assert.ErrorIs(t, err, ErrUpstreamMalformed)
	})

	t.Run("untitled work", func(t *testing.T) {
		fake := newFakeHTTP(map[string]fakeResponse{"/trending/new.json": okJSON(`{"works":[{"key":"/works/OL1W"}]}`)})

		_, err := newTestClient(fake).FetchTrending(context.Background(), "new", 0, 0)
		assert.ErrorIs(t, err, ErrUpstreamMalformed)
	})
}
