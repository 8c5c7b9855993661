package openlibrary

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Category selects a trending feed.
type Category string

const (
	CategoryRecent  Category = "recent"
	CategoryNew     Category = "new"
	CategoryPopular Category = "popular"
)

const (
	DefaultTrendingMinimum = 4
	DefaultTrendingLimit   = 12
)

// ParseCategory maps a caller-supplied name onto a feed. Anything
// unrecognised is the recent feed.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryNew:
		return CategoryNew
	case CategoryPopular:
		return CategoryPopular
	default:
		return CategoryRecent
	}
}

// TrendingEntry is one normalised work from a trending feed.
type TrendingEntry struct {
	ExternalID       string  `json:"external_id"`
	WorkID           string  `json:"work_id"`
	Title            string  `json:"title"`
	Author           string  `json:"author"`
	CoverURL         *string `json:"cover_url"`
	DetailURL        string  `json:"detail_url"`
	FirstPublishYear int     `json:"first_publish_year,omitempty"`
}

// FetchTrending reads a trending feed. minimum and limit default to 4 and 12
// when not positive.
func (c *Client) FetchTrending(ctx context.Context, category string, minimum, limit int) ([]TrendingEntry, error) {
	const op = "fetch trending"

	if minimum <= 0 {
		minimum = DefaultTrendingMinimum
	}
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	path := "/trending/hours.json"
	q := url.Values{}
	switch ParseCategory(category) {
	case CategoryNew:
		path = "/trending/new.json"
	case CategoryPopular:
		path = "/trending/popular.json"
	default:
		q.Set("hours", "24")
	}
	q.Set("minimum", strconv.Itoa(minimum))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort_by_count", "false")
	u := c.endpoint(path, q)

	var resp trendingResponse
	if err := c.get(ctx, op, u, &resp); err != nil {
		return nil, err
	}
	if resp.Works == nil {
		return nil, malformed(op, u, "response has no works")
	}

	entries := make([]TrendingEntry, 0, len(*resp.Works))
	for _, w := range *resp.Works {
		key := strings.TrimSpace(w.Key)
		if key == "" {
			continue
		}
		title := strings.TrimSpace(w.Title)
		if title == "" {
			return nil, malformed(op, u, "trending work %s has no title", key)
		}

		workID := StripKey(key)
		entry := TrendingEntry{
			ExternalID:       workID,
			WorkID:           workID,
			Title:            title,
			Author:           firstAuthor(w.AuthorNames),
			DetailURL:        c.baseURL + ensureLeadingSlash(key),
			FirstPublishYear: w.FirstPublishYear,
		}
		if v := strings.TrimSpace(w.LendingEdition); v != "" {
			entry.ExternalID = v
		} else if v := strings.TrimSpace(w.CoverEditionKey); v != "" {
			entry.ExternalID = v
		}
		if v := strings.TrimSpace(w.CoverEditionKey); v != "" {
			entry.CoverURL = ptr(CoverURL(c.coversURL, v, KindEdition))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
