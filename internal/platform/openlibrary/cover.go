package openlibrary

import (
	"strconv"
	"strings"
)

// DefaultCoversURL is the Open Library cover CDN.
const DefaultCoversURL = "https://covers.openlibrary.org"

// CoverSize selects one of the CDN's pre-rendered sizes.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// CoverURL builds the cover location for a record. It performs no I/O: the
// same id and kind always give the same URL. Works use the "w" image path,
// every other kind uses "b".
func CoverURL(host, id string, kind RecordKind) string {
	prefix := "b"
	if kind == KindWork {
		prefix = "w"
	}
	return strings.TrimRight(host, "/") + "/" + prefix + "/olid/" + id
}

// CoverIDURL builds the cover location for a numeric cover image id.
func CoverIDURL(host string, coverID int) string {
	return strings.TrimRight(host, "/") + "/b/id/" + strconv.Itoa(coverID)
}

// AuthorPhotoURL builds the location of an author photo, which the CDN
// serves under "a" rather than "b".
func AuthorPhotoURL(host string, photoID int) string {
	return strings.TrimRight(host, "/") + "/a/id/" + strconv.Itoa(photoID)
}

// SizedCoverURL appends the size suffix the CDN expects. Unknown sizes map to
// medium.
func SizedCoverURL(coverURL string, size CoverSize) string {
	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverMedium
	}
	return coverURL + "-" + string(size) + ".jpg"
}

// ParseCoverSize reads "S", "M" or "L" (case-insensitive).
func ParseCoverSize(s string) (CoverSize, bool) {
	switch CoverSize(strings.ToUpper(strings.TrimSpace(s))) {
	case CoverSmall:
		return CoverSmall, true
	case CoverMedium:
		return CoverMedium, true
	case CoverLarge:
		return CoverLarge, true
	}
	return "", false
}
