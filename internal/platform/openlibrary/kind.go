package openlibrary

import (
	"strings"
)

// RecordKind tells which catalog representation a record came from.
type RecordKind int

const (
	KindEdition RecordKind = iota
	KindWork
	KindAuthor
	KindSearchHit
)

func (k RecordKind) String() string {
	switch k {
	case KindWork:
		return "work"
	case KindAuthor:
		return "author"
	case KindSearchHit:
		return "search-hit"
	default:
		return "edition"
	}
}

// KindOf infers the record kind from the trailing character of an Open
// Library identifier: "...W" is a work, "...A" an author, anything else an
// edition.
func KindOf(id string) RecordKind {
	switch {
	case strings.HasSuffix(id, "W"):
		return KindWork
	case strings.HasSuffix(id, "A"):
		return KindAuthor
	default:
		return KindEdition
	}
}

// pathSegment is the catalog collection a kind lives under.
func (k RecordKind) pathSegment() string {
	switch k {
	case KindWork:
		return "works"
	case KindAuthor:
		return "authors"
	default:
		return "books"
	}
}

// StripKey turns "/works/OL123W" into "OL123W".
func StripKey(key string) string {
	key = strings.TrimSpace(key)
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ValidID reports whether id looks like an Open Library identifier
// ("OL" + digits + kind letter).
func ValidID(id string) bool {
	if len(id) < 4 || !strings.HasPrefix(id, "OL") {
		return false
	}
	last := id[len(id)-1]
	if last != 'W' && last != 'A' && last != 'M' {
		return false
	}
	for _, c := range id[2 : len(id)-1] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
