package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quillback/folio/pkg/core"
)

// indexEntry holds the parsed fixed record for a single file, so an
// unchanged file can skip the YAML decode on the next scan. Bodies are not
// cached; they are re-read from the file.
type indexEntry struct {
	ID           string    `json:"id"`
	Layout       string    `json:"layout"`
	Title        string    `json:"title"`
	Labels       []string  `json:"labels,omitempty"`
	Date         time.Time `json:"date,omitempty"`
	HasDate      bool      `json:"hasDate,omitempty"`
	Published    bool      `json:"published"`
	Meta         core.Meta `json:"meta,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

func newIndexEntry(doc core.Document, mtime time.Time) *indexEntry {
	return &indexEntry{
		ID:           doc.ID,
		Layout:       doc.Layout,
		Title:        doc.Title,
		Labels:       doc.Labels,
		Date:         doc.Date,
		HasDate:      doc.HasDate,
		Published:    doc.Published,
		Meta:         doc.Meta,
		LastModified: mtime,
	}
}

// document rebuilds the fixed record; the caller supplies the body.
func (e *indexEntry) document(relPath string) core.Document {
	return core.Document{
		ID:        e.ID,
		Path:      relPath,
		Layout:    e.Layout,
		Title:     e.Title,
		Labels:    e.Labels,
		Date:      e.Date,
		HasDate:   e.HasDate,
		Published: e.Published,
		Meta:      e.Meta,
	}
}

// index represents the persistent cache state.
type index struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // keyed by root-relative path
	dirty   bool
	mu      sync.RWMutex
}

// cache manages the loading, updating, and saving of the index.
type cache struct {
	Path  string // path to {root}/{systemDir}/index.json
	index *index
}

func newCache(root, systemDir string) *cache {
	return &cache{
		Path: filepath.Join(root, systemDir, "index.json"),
		index: &index{
			Version: 1,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the cache from disk. A missing or corrupted file yields an
// empty index rather than an error; the cache self-heals on the next Save.
func (c *cache) Load() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read index cache: %w", err)
	}

	if err := json.Unmarshal(data, c.index); err != nil {
		c.index.Entries = make(map[string]*indexEntry)
		return nil
	}

	c.index.dirty = false
	return nil
}

// Save persists the cache to disk if it changed since the last Load/Save.
func (c *cache) Save() error {
	c.index.mu.RLock()
	if !c.index.dirty {
		c.index.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(c.index, "", "  ")
	c.index.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return err
	}

	if err := writeFileAtomic(c.Path, data, 0644); err != nil {
		return err
	}

	c.index.mu.Lock()
	c.index.dirty = false
	c.index.mu.Unlock()

	return nil
}

// Get retrieves an entry if it exists and its recorded mtime matches.
func (c *cache) Get(relPath string, currentMtime time.Time) (*indexEntry, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	entry, ok := c.index.Entries[relPath]
	if !ok {
		return nil, false
	}
	if !entry.LastModified.Equal(currentMtime) {
		return nil, false
	}
	return entry, true
}

// Set updates an entry in the cache.
func (c *cache) Set(relPath string, entry *indexEntry) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	c.index.Entries[relPath] = entry
	c.index.dirty = true
}

// Prune removes entries whose files were not seen by the last scan.
func (c *cache) Prune(keep map[string]bool) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	for path := range c.index.Entries {
		if !keep[path] {
			delete(c.index.Entries, path)
			c.index.dirty = true
		}
	}
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()
	return len(c.index.Entries)
}

// TempFilePrefix marks the transient files an atomic index save produces.
// The watcher skips paths carrying it so a save never looks like a content
// change.
const TempFilePrefix = "folio-tmp-"

// writeFileAtomic stages data in a temp file beside filename and renames it
// into place. A save interrupted mid-write leaves the previous index intact;
// Load treats a missing or garbled index as empty either way.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("staging index write for %s: %w", filename, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing staged index %s: %w", tmpName, err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting mode on staged index %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("replacing index %s: %w", filename, err)
	}
	return nil
}
