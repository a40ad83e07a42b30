package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/folio/pkg/core"
)

func TestSourceForwardsEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventCreate, ID: "fuzzing", Timestamp: time.Now().Unix()}

	select {
	case e := <-src.Events():
		assert.Equal(t, "CREATE fuzzing", e.String())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for forwarded event")
	}
}

func TestSourceClosesWhenInputCloses(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	close(in)

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output channel should close when the input closes")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestSourceStopsOnContextCancel(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output channel should close on cancellation")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
