package folio

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/quillback/folio/internal/platform"
	"github.com/quillback/folio/pkg/core"
	"github.com/quillback/folio/pkg/typed"
)

// Version exposes the version of the library, taken from the VERSION file.
//
//go:embed VERSION
var Version string

// --- Types ---

// Document is a public alias for the core document record.
type Document = core.Document

// Store is a public alias for the immutable content store.
type Store = core.Store

// Site is a public alias for the site configuration record.
type Site = core.Site

// Event is a public alias for content change events.
type Event = core.Event

// TypedDocument is a public alias for a document with typed extra metadata.
type TypedDocument[T any] = typed.Document[T]

// TypedView is a public alias for the typed read layer.
type TypedView[T any] = typed.View[T]

// NewTypedView creates a type-safe view over a loaded store.
// T is the struct the extra front-matter keys decode into.
func NewTypedView[T any](store *Store) *TypedView[T] {
	return typed.NewView[T](store)
}

// --- Configuration ---

// Option defines a functional option for configuring the loader.
type Option = platform.Option

// WithLogger sets the logger used during scanning and watching.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".folio").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithExtensions replaces the set of file extensions scanned as content.
func WithExtensions(exts ...string) Option {
	return platform.WithExtensions(exts...)
}

// WithInclude restricts the scan to paths matching the given glob patterns.
func WithInclude(patterns ...string) Option {
	return platform.WithInclude(patterns...)
}

// WithExclude drops paths matching the given glob patterns from the scan.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithSource allows injecting a custom content source.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// --- Factory ---

// Load scans a content root and returns a validated, immutable Store.
// Reloading is a fresh Load whose result replaces the old store wholesale.
func Load(ctx context.Context, root string, opts ...Option) (*Store, error) {
	return platform.Load(ctx, root, opts...)
}

// NewSource wires a content source without loading it, for callers that
// want to Scan or Watch themselves.
func NewSource(root string, opts ...Option) core.Source {
	return platform.NewSource(root, opts...)
}

// FindRoot looks upwards from startDir for a content root indicator
// (_config.yml, _posts, or .git).
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
