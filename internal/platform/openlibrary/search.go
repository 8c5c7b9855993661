package openlibrary

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Pattern = regexp.MustCompile(`^\d{13}$`)
)

// Search runs a free-text query and normalises each hit. page is 1-based;
// anything lower is treated as 1.
func (c *Client) Search(ctx context.Context, term string, page int) (SearchResults, error) {
	const op = "search"

	term = strings.TrimSpace(term)
	if term == "" {
		return SearchResults{}, validationError(op, "search term is empty")
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("q", term)
	q.Set("fields", SearchFields)
	q.Set("limit", strconv.Itoa(c.searchLimit))
	q.Set("page", strconv.Itoa(page))

	return c.search(ctx, op, c.endpoint("/search.json", q))
}

// SearchByISBN looks up the single catalog record carrying isbn.
func (c *Client) SearchByISBN(ctx context.Context, isbn string) (BookSummary, error) {
	const op = "search isbn"

	norm := NormalizeISBN(isbn)
	if !isbn10Pattern.MatchString(norm) && !isbn13Pattern.MatchString(norm) {
		return BookSummary{}, validationError(op, "isbn %q is not a 10 or 13 digit ISBN", isbn)
	}

	q := url.Values{}
	q.Set("isbn", norm)
	q.Set("fields", SearchFields)
	q.Set("limit", "1")
	u := c.endpoint("/search.json", q)

	res, err := c.search(ctx, op, u)
	if err != nil {
		return BookSummary{}, err
	}
	if len(res.Items) == 0 {
		return BookSummary{}, notFound(op, u, "no record for isbn %s", norm)
	}
	return res.Items[0], nil
}

func (c *Client) search(ctx context.Context, op, u string) (SearchResults, error) {
	var resp searchResponse
	if err := c.get(ctx, op, u, &resp); err != nil {
		return SearchResults{}, err
	}
	if resp.Docs == nil {
		return SearchResults{}, malformed(op, u, "response has no docs")
	}

	n := c.normalizer()
	items := make([]BookSummary, 0, len(*resp.Docs))
	for _, hit := range *resp.Docs {
		summary, ok, err := n.searchHit(hit)
		if err != nil {
			return SearchResults{}, err
		}
		if !ok {
			continue
		}
		items = append(items, summary)
	}

	return SearchResults{
		Total:    resp.NumFound,
		Returned: len(items),
		Items:    items,
	}, nil
}

// NormalizeISBN strips separators and upper-cases a trailing X.
func NormalizeISBN(isbn string) string {
	isbn = strings.ToUpper(strings.TrimSpace(isbn))
	return strings.NewReplacer("-", "", " ", "").Replace(isbn)
}

// ValidISBN reports whether isbn is a 10 or 13 digit ISBN after normalising.
func ValidISBN(isbn string) bool {
	norm := NormalizeISBN(isbn)
	return isbn10Pattern.MatchString(norm) || isbn13Pattern.MatchString(norm)
}
