package platform

import (
	"log/slog"

	"github.com/quillback/folio/pkg/core"
)

// DefaultSystemDir is the hidden directory holding the index cache.
const DefaultSystemDir = ".folio"

// DefaultExtensions are the file extensions treated as content documents.
var DefaultExtensions = []string{".md", ".markdown", ".html"}

// options holds the internal configuration for loading a content root.
type options struct {
	source     core.Source
	logger     *slog.Logger
	systemDir  string
	extensions []string
	include    []string
	exclude    []string
}

// Option defines a functional option for configuring the loader.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		systemDir:  DefaultSystemDir,
		extensions: DefaultExtensions,
	}
}

// WithLogger sets the logger used during scanning and watching.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".folio").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithExtensions replaces the set of file extensions scanned as content.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithInclude restricts the scan to paths matching the given glob patterns
// (doublestar syntax, relative to the content root).
func WithInclude(patterns ...string) Option {
	return func(o *options) {
		o.include = patterns
	}
}

// WithExclude drops paths matching the given glob patterns from the scan.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.exclude = patterns
	}
}

// WithSource allows injecting a custom content source (e.g. an in-memory
// one for tests). If provided, the default filesystem source is skipped.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}
