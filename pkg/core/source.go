package core

import "context"

// EventType represents the kind of change observed in a content root.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a content file. Consumers react by loading a
// fresh Store; the store itself is never patched in place.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}

// Source defines the contract for reading a content root.
// Adhering to this interface keeps the core independent of the underlying
// storage (filesystem today, anything that can enumerate documents tomorrow).
type Source interface {
	// Scan reads every document in the root along with the site
	// configuration, if any. It performs no validation beyond parsing;
	// NewStore enforces the invariants.
	Scan(ctx context.Context) ([]Document, Site, error)
}

// Watchable is implemented by sources that can observe changes.
type Watchable interface {
	// Watch streams change events for files matching pattern until ctx is
	// cancelled. An empty pattern matches everything.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
