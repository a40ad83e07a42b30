// Package typed provides type-safe access to the extra front-matter keys a
// document carries beyond the fixed record.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/quillback/folio/pkg/core"
)

// Document wraps a core.Document with its extra front matter decoded into T.
type Document[T any] struct {
	core.Document
	Data T
}

// Decode converts a document's Meta map into the typed struct.
// The conversion goes through a JSON round trip so struct tags and nested
// types behave the way callers expect.
func Decode[T any](doc core.Document) (*Document[T], error) {
	var data T
	if len(doc.Meta) > 0 {
		raw, err := json.Marshal(doc.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata for %s: %w", doc.ID, err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for %s: %w", doc.ID, err)
		}
	}
	return &Document[T]{Document: doc, Data: data}, nil
}

// View is a typed read layer over an immutable store.
type View[T any] struct {
	store *core.Store
}

// NewView creates a typed view of the given store.
func NewView[T any](store *core.Store) *View[T] {
	return &View[T]{store: store}
}

// Posts returns the published posts with their extra metadata decoded.
func (v *View[T]) Posts() ([]*Document[T], error) {
	return decodeAll[T](v.store.Posts())
}

// Pages returns the page documents with their extra metadata decoded.
func (v *View[T]) Pages() ([]*Document[T], error) {
	return decodeAll[T](v.store.Pages())
}

// Find looks up a document by identifier and decodes it.
func (v *View[T]) Find(id string) (*Document[T], error) {
	doc, err := v.store.Find(id)
	if err != nil {
		return nil, err
	}
	return Decode[T](doc)
}

func decodeAll[T any](docs []core.Document) ([]*Document[T], error) {
	out := make([]*Document[T], 0, len(docs))
	for _, d := range docs {
		m, err := Decode[T](d)
		if err != nil {
			return nil, fmt.Errorf("failed to process document %s: %w", d.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}
