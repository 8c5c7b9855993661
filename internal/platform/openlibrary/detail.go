package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FetchDetail loads a work or edition record and resolves its authors and
// cover. Author ids are rejected; use FetchAuthor for those.
func (c *Client) FetchDetail(ctx context.Context, id string) (BookDetail, error) {
	const op = "fetch detail"

	id, kind, err := checkBookID(op, id)
	if err != nil {
		return BookDetail{}, err
	}
	n := c.normalizer()

	if kind == KindWork {
		rec, err := c.fetchWork(ctx, op, id)
		if err != nil {
			return BookDetail{}, err
		}
		authors, err := c.resolveAuthors(ctx, op, rec.Authors)
		if err != nil {
			return BookDetail{}, err
		}
		return n.work(id, rec, authors)
	}

	rec, err := c.fetchEdition(ctx, op, id)
	if err != nil {
		return BookDetail{}, err
	}
	authors, err := c.resolveAuthors(ctx, op, rec.Authors)
	if err != nil {
		return BookDetail{}, err
	}
	hasCover := rec.hasInlineCover()
	if !hasCover {
		if hasCover, err = c.lookupEditionCover(ctx, op, id); err != nil {
			return BookDetail{}, err
		}
	}
	return n.edition(id, rec, authors, hasCover)
}

// FetchAuthor loads one author record.
func (c *Client) FetchAuthor(ctx context.Context, id string) (AuthorRecord, error) {
	const op = "fetch author"

	id = StripKey(id)
	if !ValidID(id) || KindOf(id) != KindAuthor {
		return AuthorRecord{}, validationError(op, "%q is not an author id", id)
	}
	return c.fetchAuthor(ctx, op, id)
}

func (c *Client) fetchAuthor(ctx context.Context, op, id string) (AuthorRecord, error) {
	u := c.endpoint("/authors/"+url.PathEscape(id)+".json", nil)
	var rec AuthorRecord
	if err := c.get(ctx, op, u, &rec); err != nil {
		return AuthorRecord{}, err
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return AuthorRecord{}, malformed(op, u, "author %s has no name", id)
	}
	return rec, nil
}

func (c *Client) fetchWork(ctx context.Context, op, id string) (WorkRecord, error) {
	u := c.endpoint("/works/"+url.PathEscape(id)+".json", nil)
	var rec WorkRecord
	if err := c.get(ctx, op, u, &rec); err != nil {
		return WorkRecord{}, err
	}
	return rec, nil
}

// fetchEdition reads the bibkey-keyed books API and unwraps the entry for id.
func (c *Client) fetchEdition(ctx context.Context, op, id string) (EditionRecord, error) {
	bibkey := "OLID:" + id
	q := url.Values{}
	q.Set("bibkeys", bibkey)
	q.Set("format", "json")
	q.Set("jscmd", "data")
	u := c.endpoint("/api/books", q)

	var batch map[string]json.RawMessage
	if err := c.get(ctx, op, u, &batch); err != nil {
		return EditionRecord{}, err
	}
	raw, ok := batch[bibkey]
	if !ok || !nonEmptyJSON(raw) {
		return EditionRecord{}, notFound(op, u, "response has no %s", bibkey)
	}

	var rec EditionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return EditionRecord{}, malformed(op, u, "decode %s: %w", bibkey, err)
	}
	return rec, nil
}

// lookupEditionCover asks the raw edition record for cover ids. A missing
// record means no cover.
func (c *Client) lookupEditionCover(ctx context.Context, op, id string) (bool, error) {
	u := c.endpoint("/books/"+url.PathEscape(id)+".json", nil)
	var rec editionCovers
	if err := c.get(ctx, op, u, &rec); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return positiveIDs(rec.Covers), nil
}

// resolveAuthors returns display names in listing order. Embedded names are
// used as-is; references cost one author fetch per unique id, run
// concurrently. Author lists are short (rarely more than five entries) so the
// fan-out is not bounded.
func (c *Client) resolveAuthors(ctx context.Context, op string, refs []authorRef) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	type slot struct {
		name string
		ref  int
	}
	slots := make([]slot, len(refs))
	var pending []string
	index := make(map[string]int)

	for i, ref := range refs {
		if name := strings.TrimSpace(ref.Name); name != "" {
			slots[i] = slot{name: name, ref: -1}
			continue
		}
		id := ref.refID()
		if id == "" {
			return nil, malformed(op, "", "author entry %d has neither name nor key", i)
		}
		j, seen := index[id]
		if !seen {
			j = len(pending)
			index[id] = j
			pending = append(pending, id)
		}
		slots[i] = slot{ref: j}
	}

	resolved := make([]string, len(pending))
	if len(pending) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for j, id := range pending {
			g.Go(func() error {
				rec, err := c.fetchAuthor(gctx, op, id)
				if err != nil {
					return err
				}
				resolved[j] = rec.Name
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(slots))
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		name := s.name
		if s.ref >= 0 {
			name = resolved[s.ref]
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// checkBookID validates a work or edition identifier.
func checkBookID(op, id string) (string, RecordKind, error) {
	id = StripKey(id)
	if id == "" {
		return "", 0, validationError(op, "identifier is empty")
	}
	if !ValidID(id) {
		return "", 0, validationError(op, "%q is not an Open Library identifier", id)
	}
	kind := KindOf(id)
	if kind == KindAuthor {
		return "", 0, validationError(op, "%q names an author, not a book", id)
	}
	return id, kind, nil
}
