package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Documents int    `json:"documents"`
	Posts     int    `json:"posts"`
	Pages     int    `json:"pages"`
	SiteTitle string `json:"site_title,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Documents: len(s.byID),
		Posts:     len(s.posts),
		Pages:     len(s.pages),
		SiteTitle: s.site.Title,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
