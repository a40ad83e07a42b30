package platform

import (
	"context"

	"github.com/quillback/folio/pkg/adapters/fs"
	"github.com/quillback/folio/pkg/core"
)

// NewSource wires a content source for the given root, honoring the options.
func NewSource(root string, opts ...Option) core.Source {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.source != nil {
		return o.source
	}

	return fs.NewSource(fs.Config{
		Root:       root,
		Logger:     o.logger,
		SystemDir:  o.systemDir,
		Extensions: o.extensions,
		Include:    o.include,
		Exclude:    o.exclude,
	})
}

// Load scans the content root and builds a validated, immutable store.
// Reload is a fresh Load: the returned store replaces the previous one
// wholesale, never incrementally.
func Load(ctx context.Context, root string, opts ...Option) (*core.Store, error) {
	src := NewSource(root, opts...)

	docs, site, err := src.Scan(ctx)
	if err != nil {
		return nil, err
	}

	return core.NewStore(docs, site)
}
