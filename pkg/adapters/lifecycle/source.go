package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/quillback/folio/pkg/core"
)

type folioSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits content change events.
// It bridges the typed folio event channel to the generic lifecycle Event
// interface, so a host application can supervise reloads alongside its
// other components.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &folioSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *folioSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *folioSource) Start(ctx context.Context) error {
	// lifecycle.Go tracks the bridge goroutine so shutdown waits for it.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
