package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/quillback/folio/pkg/core"
)

// eventBuffer is the capacity of the event channel handed to Watch callers.
const eventBuffer = 100

// Watch streams change events for content files matching pattern until ctx
// is cancelled. The channel is closed when the watcher stops. Consumers are
// expected to respond by loading a fresh store; events never mutate an
// existing one.
func (s *Source) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, eventBuffer)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	source    *Source
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(source *Source, pattern string, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		source:     source,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.source.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.source.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.source.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger != nil {
				if logger.Enabled(ctx, slog.LevelDebug) {
					logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
				} else {
					logger.Error("watcher panic", "error", err)
				}
			}
		}
	}()
	// LIFO: drain the debouncer before closing the events channel, so no
	// in-flight timer sends on a closed channel.
	defer close(w.events)
	defer w.source.setWatcherActive(false)
	defer w.watcher.Close()
	defer w.debouncer.stopAndWait(5 * time.Second)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if logger != nil {
				logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}

// processEvent filters, maps, and debounces one filesystem event.
func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) {
	logger := w.source.config.Logger
	if logger != nil {
		logger.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	// Directories created after Start must be watched too.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.source.skipDir(filepath.Base(event.Name), event.Name) {
				_ = w.watcher.Add(event.Name)
			}
			return
		}
	}

	relPath, ok := w.source.watchable(event.Name, w.pattern)
	if !ok {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	id, _, _, err := identify(relPath)
	if err != nil {
		if logger != nil {
			logger.Debug("unresolvable path, ignoring", "path", relPath, "err", err)
		}
		return
	}

	w.debouncer.add(core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		// The channel may close if the worker aborts on an internal error
		// while a timer is still in flight.
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// watchable reports whether an absolute event path refers to a content file
// the watcher should surface, and returns its root-relative path.
func (s *Source) watchable(absPath, pattern string) (string, bool) {
	relPath, err := filepath.Rel(s.Root, absPath)
	if err != nil {
		return "", false
	}
	relPath = filepath.ToSlash(relPath)

	if strings.HasPrefix(filepath.Base(relPath), TempFilePrefix) {
		return "", false
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(relPath)), "/") {
		if part == "." || part == PostsDir {
			continue
		}
		if part == ".git" || part == s.config.SystemDir ||
			strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
			return "", false
		}
	}
	if !s.selects(relPath) {
		return "", false
	}
	if pattern != "" {
		if ok, _ := doublestar.Match(pattern, relPath); !ok {
			return "", false
		}
	}
	return relPath, true
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// recursiveAdd registers the root and every non-skipped subdirectory.
func (s *Source) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if s.skipDir(d.Name(), path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

var _ core.Watchable = (*Source)(nil)
