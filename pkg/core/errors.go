package core

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup miss. Callers treat it as ordinary control
// flow, not a fatal condition.
var ErrNotFound = errors.New("document not found")

// ValidationError reports a document missing a required field or carrying a
// malformed one. A single ValidationError aborts the whole load: a site with
// a broken document must not be published partially.
type ValidationError struct {
	Path   string
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid document %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid document %q: %s", e.ID, e.Reason)
}

// DuplicateIDError reports two source files resolving to the same identifier.
// Both locations are named so the author can pick the canonical one.
type DuplicateIDError struct {
	ID     string
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate identifier %q: %s and %s", e.ID, e.First, e.Second)
}
