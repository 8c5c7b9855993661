package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not in the local store.
var ErrNotFound = errors.New("book not found")

// Book is a catalog record persisted locally so users can reference it.
// ExternalID is the Open Library identifier the record was resolved from.
type Book struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	ISBN       *string   `json:"isbn"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CoverURL   *string   `json:"cover_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Query pages through the store in creation order.
type Query struct {
	Limit int
	After CursorData
}

// Page is one page of books and the cursor for the next one, empty on the
// last page.
type Page struct {
	Items      []Book `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
