// Document is the central entity of the domain.
package core

import "time"

// LayoutPost is the layout tag that marks a document as a blog post.
// Any other layout value is treated as a page.
const LayoutPost = "post"

// Meta holds the raw front-matter keys that are not part of the fixed record.
// It is kept for typed decoding; the core never interprets it.
type Meta map[string]any

// Document represents one content unit: a blog post or a standalone page.
// The fixed fields are validated at load time; Body and Meta are opaque.
type Document struct {
	ID        string
	Path      string // root-relative source path, for error reports
	Layout    string
	Title     string
	Labels    []string // merged categories + tags, sorted, deduplicated
	Date      time.Time
	HasDate   bool
	Published bool
	Body      string
	Meta      Meta
}

// IsPost reports whether the document is a blog post.
func (d Document) IsPost() bool {
	return d.Layout == LayoutPost
}

// HasLabel reports whether the document carries the given category or tag.
func (d Document) HasLabel(label string) bool {
	for _, l := range d.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Validate checks the per-document invariants.
// Set-level invariants (ID uniqueness) are checked by NewStore.
func (d Document) Validate() error {
	if d.ID == "" {
		return &ValidationError{Path: d.Path, Reason: "empty identifier"}
	}
	if d.Title == "" {
		return &ValidationError{Path: d.Path, ID: d.ID, Reason: "missing title"}
	}
	if d.Layout == "" {
		return &ValidationError{Path: d.Path, ID: d.ID, Reason: "missing layout"}
	}
	if d.IsPost() && !d.HasDate {
		return &ValidationError{Path: d.Path, ID: d.ID, Reason: "post has no publication date"}
	}
	return nil
}

// Site is the fixed record decoded from an optional _config.yml at the
// content root. All fields are optional.
type Site struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"baseurl"`
}
