package openlibrary

import (
	"strings"
)

// UnknownAuthor stands in when a record names no author.
const UnknownAuthor = "Unknown"

// BookSummary is the normalised view of one catalog record, whichever
// representation it came from.
type BookSummary struct {
	ExternalID string     `json:"external_id"`
	WorkID     string     `json:"work_id,omitempty"`
	ISBN       *string    `json:"isbn"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CoverURL   *string    `json:"cover_url"`
	DetailURL  string     `json:"detail_url"`
	Kind       RecordKind `json:"-"`
}

// BookDetail extends a summary with the fields only record fetches carry.
type BookDetail struct {
	BookSummary
	Authors       []string `json:"authors"`
	Subtitle      string   `json:"subtitle,omitempty"`
	PublishDate   string   `json:"publish_date,omitempty"`
	NumberOfPages int      `json:"number_of_pages,omitempty"`
	Subjects      []string `json:"subjects,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// SearchResults is one page of normalised search hits. Returned can be lower
// than Total because of upstream paging and dropped hits.
type SearchResults struct {
	Total    int           `json:"total"`
	Returned int           `json:"returned"`
	Items    []BookSummary `json:"items"`
}

// normalizer carries the hosts used to build links; it holds no other state.
type normalizer struct {
	baseURL   string
	coversURL string
}

// searchHit maps a search doc. ok is false when the hit has no key and must
// be dropped.
func (n normalizer) searchHit(hit SearchHit) (summary BookSummary, ok bool, err error) {
	key := strings.TrimSpace(hit.Key)
	if key == "" {
		return BookSummary{}, false, nil
	}
	title := strings.TrimSpace(hit.Title)
	if title == "" {
		return BookSummary{}, false, malformed("search", "", "hit %s has no title", key)
	}

	workID := StripKey(key)
	edition := strings.TrimSpace(hit.LendingEdition)
	isbn := firstNonEmpty(hit.ISBN)

	// The availability block describes a lendable edition and beats the
	// abstract work fields.
	if a := hit.Availability; a != nil {
		if v := deref(a.OpenLibraryEdition); v != "" {
			edition = v
		}
		if v := deref(a.ISBN); v != "" {
			isbn = &v
		}
	}

	summary = BookSummary{
		ExternalID: workID,
		WorkID:     workID,
		ISBN:       isbn,
		Title:      title,
		Author:     firstAuthor(hit.AuthorNames),
		DetailURL:  n.baseURL + ensureLeadingSlash(key),
		Kind:       KindSearchHit,
	}

	switch {
	case edition != "":
		summary.ExternalID = edition
		summary.CoverURL = ptr(CoverURL(n.coversURL, edition, KindEdition))
	case hit.CoverID != nil && *hit.CoverID > 0:
		summary.CoverURL = ptr(CoverIDURL(n.coversURL, *hit.CoverID))
	}
	return summary, true, nil
}

func (n normalizer) work(id string, rec WorkRecord, authors []string) (BookDetail, error) {
	title := strings.TrimSpace(deref(rec.Title))
	if title == "" {
		return BookDetail{}, malformed("fetch detail", "", "work %s has no title", id)
	}

	var cover *string
	if positiveIDs(rec.Covers) {
		cover = ptr(CoverURL(n.coversURL, id, KindWork))
	}

	return BookDetail{
		BookSummary: BookSummary{
			ExternalID: id,
			WorkID:     id,
			Title:      title,
			Author:     firstAuthor(authors),
			CoverURL:   cover,
			DetailURL:  n.baseURL + "/works/" + id,
			Kind:       KindWork,
		},
		Authors:     authors,
		Subtitle:    rec.Subtitle,
		PublishDate: rec.FirstPublishDate,
		Subjects:    rec.Subjects,
		Description: string(rec.Description),
	}, nil
}

func (n normalizer) edition(id string, rec EditionRecord, authors []string, hasCover bool) (BookDetail, error) {
	title := strings.TrimSpace(deref(rec.Title))
	if title == "" {
		return BookDetail{}, malformed("fetch detail", "", "edition %s has no title", id)
	}

	var cover *string
	if hasCover {
		cover = ptr(CoverURL(n.coversURL, id, KindEdition))
	}

	detailURL := strings.TrimSpace(rec.URL)
	if detailURL == "" {
		detailURL = n.baseURL + "/books/" + id
	}

	subjects := make([]string, 0, len(rec.Subjects))
	for _, s := range rec.Subjects {
		if name := strings.TrimSpace(s.Name); name != "" {
			subjects = append(subjects, name)
		}
	}

	return BookDetail{
		BookSummary: BookSummary{
			ExternalID: id,
			ISBN:       rec.isbn(),
			Title:      title,
			Author:     firstAuthor(authors),
			CoverURL:   cover,
			DetailURL:  detailURL,
			Kind:       KindEdition,
		},
		Authors:       authors,
		Subtitle:      rec.Subtitle,
		PublishDate:   rec.PublishDate,
		NumberOfPages: rec.NumberOfPages,
		Subjects:      subjects,
		Description:   string(rec.Notes),
	}, nil
}

func firstAuthor(names []string) string {
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return UnknownAuthor
}

func firstNonEmpty(values []string) *string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return &v
		}
	}
	return nil
}

func ensureLeadingSlash(s string) string {
	if strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func ptr[T any](v T) *T {
	return &v
}
