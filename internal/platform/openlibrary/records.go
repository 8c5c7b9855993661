package openlibrary

import (
	"encoding/json"
	"strings"
)

// SearchFields is the field set requested from search.json.
const SearchFields = "key,isbn,author_name,title,lending_edition_s,ia,availability,cover_i"

// SearchHit is one doc from search.json.
type SearchHit struct {
	Key            string        `json:"key"`
	Title          string        `json:"title"`
	ISBN           []string      `json:"isbn"`
	AuthorNames    []string      `json:"author_name"`
	LendingEdition string        `json:"lending_edition_s"`
	IA             []string      `json:"ia"`
	CoverID        *int          `json:"cover_i"`
	Availability   *Availability `json:"availability"`
}

// Availability is the lending block attached to a search hit. It describes
// one concrete lendable edition.
type Availability struct {
	Status             string  `json:"status"`
	Identifier         *string `json:"identifier"`
	ISBN               *string `json:"isbn"`
	OpenLibraryWork    *string `json:"openlibrary_work"`
	OpenLibraryEdition *string `json:"openlibrary_edition"`
	IsLendable         bool    `json:"is_lendable"`
	IsReadable         bool    `json:"is_readable"`
}

type searchResponse struct {
	NumFound int          `json:"numFound"`
	Docs     *[]SearchHit `json:"docs"`
}

// authorRef is an author entry in a work or edition record. Editions from the
// books API embed the name; works and raw edition records only carry a
// reference, either directly ({key}) or nested ({author: {key}}).
type authorRef struct {
	Name   string `json:"name"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Author *struct {
		Key string `json:"key"`
	} `json:"author"`
}

func (a authorRef) refID() string {
	if a.Author != nil && a.Author.Key != "" {
		return StripKey(a.Author.Key)
	}
	if a.Key != "" {
		return StripKey(a.Key)
	}
	return ""
}

// textValue decodes fields Open Library sends either as a plain string or as
// {"type": "/type/text", "value": "..."}.
type textValue string

func (t *textValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = textValue(strings.TrimSpace(s))
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*t = textValue(strings.TrimSpace(obj.Value))
	return nil
}

// WorkRecord is the body of /works/<id>.json.
type WorkRecord struct {
	Key              string      `json:"key"`
	Title            *string     `json:"title"`
	Subtitle         string      `json:"subtitle"`
	Authors          []authorRef `json:"authors"`
	Covers           []int       `json:"covers"`
	Description      textValue   `json:"description"`
	Subjects         []string    `json:"subjects"`
	FirstPublishDate string      `json:"first_publish_date"`
}

type namedLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ebook struct {
	PreviewURL   *string `json:"preview_url"`
	Availability *string `json:"availability"`
	CheckedOut   *bool   `json:"checkedout"`
	BorrowURL    *string `json:"borrow_url"`
	ReadURL      *string `json:"read_url"`
}

// EditionRecord is one entry of /api/books?jscmd=data, keyed by bibkey.
type EditionRecord struct {
	URL           string      `json:"url"`
	Key           string      `json:"key"`
	Title         *string     `json:"title"`
	Subtitle      string      `json:"subtitle"`
	Authors       []authorRef `json:"authors"`
	NumberOfPages int         `json:"number_of_pages"`
	Identifiers   struct {
		ISBN10      []string `json:"isbn_10"`
		ISBN13      []string `json:"isbn_13"`
		OpenLibrary []string `json:"openlibrary"`
	} `json:"identifiers"`
	PublishDate string          `json:"publish_date"`
	Publishers  []namedLink     `json:"publishers"`
	Subjects    []namedLink     `json:"subjects"`
	Notes       textValue       `json:"notes"`
	Ebooks      []ebook         `json:"ebooks"`
	Cover       json.RawMessage `json:"cover"`
	Covers      json.RawMessage `json:"covers"`
}

// hasInlineCover reports whether the record itself names a cover image.
func (e EditionRecord) hasInlineCover() bool {
	return nonEmptyJSON(e.Cover) || nonEmptyJSON(e.Covers)
}

func (e EditionRecord) isbn() *string {
	for _, list := range [][]string{e.Identifiers.ISBN13, e.Identifiers.ISBN10} {
		for _, v := range list {
			if v = strings.TrimSpace(v); v != "" {
				return &v
			}
		}
	}
	return nil
}

// editionCovers is the subset of /books/<id>.json used for cover lookup.
type editionCovers struct {
	Covers []int `json:"covers"`
}

// AuthorRecord is the body of /authors/<id>.json.
type AuthorRecord struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	PersonalName string    `json:"personal_name"`
	BirthDate    string    `json:"birth_date"`
	DeathDate    string    `json:"death_date"`
	Bio          textValue `json:"bio"`
	Photos       []int     `json:"photos"`
}

type trendingWork struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	CoverEditionKey  string   `json:"cover_edition_key"`
	LendingEdition   string   `json:"lending_edition_s"`
	CoverID          *int     `json:"cover_i"`
	FirstPublishYear int      `json:"first_publish_year"`
}

type trendingResponse struct {
	Works *[]trendingWork `json:"works"`
}

// nonEmptyJSON is true for any JSON value other than null, "", [] or {}.
func nonEmptyJSON(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func positiveIDs(ids []int) bool {
	for _, id := range ids {
		if id > 0 {
			return true
		}
	}
	return false
}
