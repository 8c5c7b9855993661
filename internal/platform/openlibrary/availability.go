package openlibrary

import (
	"context"
	"strings"
)

// AvailabilityInfo is the lending state of a record. Only CatalogURL is
// always set; records without an ebook entry leave the rest null.
type AvailabilityInfo struct {
	CatalogURL   string  `json:"catalog_url"`
	Availability *string `json:"availability"`
	CheckedOut   *bool   `json:"checked_out"`
	BorrowURL    *string `json:"borrow_url"`
	ReadURL      *string `json:"read_url"`
}

func (c *Client) FetchAvailability(ctx context.Context, id string) (AvailabilityInfo, error) {
	const op = "fetch availability"

	id, kind, err := checkBookID(op, id)
	if err != nil {
		return AvailabilityInfo{}, err
	}

	info := AvailabilityInfo{CatalogURL: c.recordURL(id, kind)}
	if kind == KindWork {
		// Work records carry no ebook entries; the call still confirms the
		// record exists.
		if _, err := c.fetchWork(ctx, op, id); err != nil {
			return AvailabilityInfo{}, err
		}
		return info, nil
	}

	rec, err := c.fetchEdition(ctx, op, id)
	if err != nil {
		return AvailabilityInfo{}, err
	}
	if u := strings.TrimSpace(rec.URL); u != "" {
		info.CatalogURL = u
	}
	if len(rec.Ebooks) == 0 {
		return info, nil
	}

	eb := rec.Ebooks[0]
	info.Availability = eb.Availability
	info.CheckedOut = eb.CheckedOut
	info.BorrowURL = eb.BorrowURL
	info.ReadURL = eb.ReadURL
	return info, nil
}
