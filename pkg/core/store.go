package core

import (
	"fmt"
	"slices"
	"strings"
)

// Store is the in-memory collection of all loaded documents.
//
// A Store is immutable after construction: there is no mutation API, and
// reload means building a fresh Store and replacing the old one wholesale.
// Concurrent reads are therefore safe without locking.
type Store struct {
	byID  map[string]Document
	posts []Document // published posts, date descending
	pages []Document // published pages, ID ascending
	site  Site
}

// NewStore validates the document set and builds a Store.
//
// It fails with a *ValidationError on the first document violating a
// per-document invariant and with a *DuplicateIDError when two documents
// resolve to the same identifier. A failed load yields no partial store.
func NewStore(docs []Document, site Site) (*Store, error) {
	s := &Store{
		byID: make(map[string]Document, len(docs)),
		site: site,
	}

	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if prev, ok := s.byID[d.ID]; ok {
			return nil, &DuplicateIDError{ID: d.ID, First: prev.Path, Second: d.Path}
		}
		s.byID[d.ID] = d

		// Unpublished documents stay findable by ID but are absent from
		// the listings.
		if !d.Published {
			continue
		}
		if d.IsPost() {
			s.posts = append(s.posts, d)
		} else {
			s.pages = append(s.pages, d)
		}
	}

	// Newest first; identifier breaks ties so the order is deterministic.
	slices.SortFunc(s.posts, func(a, b Document) int {
		if !a.Date.Equal(b.Date) {
			if a.Date.After(b.Date) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(s.pages, func(a, b Document) int {
		return strings.Compare(a.ID, b.ID)
	})

	return s, nil
}

// Posts returns the published posts, newest first.
func (s *Store) Posts() []Document {
	return slices.Clone(s.posts)
}

// Pages returns the published non-post documents, ordered by identifier.
func (s *Store) Pages() []Document {
	return slices.Clone(s.pages)
}

// Find looks up a document by its identifier. Unpublished documents are
// findable even though they are absent from Posts. A miss wraps ErrNotFound.
func (s *Store) Find(id string) (Document, error) {
	d, ok := s.byID[id]
	if !ok {
		return Document{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return d, nil
}

// ByLabel returns the published posts carrying the given category or tag,
// in the same order as Posts.
func (s *Store) ByLabel(label string) []Document {
	var out []Document
	for _, d := range s.posts {
		if d.HasLabel(label) {
			out = append(out, d)
		}
	}
	return out
}

// Labels returns the distinct labels across all published posts, sorted.
func (s *Store) Labels() []string {
	seen := make(map[string]bool)
	for _, d := range s.posts {
		for _, l := range d.Labels {
			seen[l] = true
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Site returns the site configuration loaded alongside the documents.
func (s *Store) Site() Site {
	return s.site
}

// Len returns the total number of documents, published or not.
func (s *Store) Len() int {
	return len(s.byID)
}
