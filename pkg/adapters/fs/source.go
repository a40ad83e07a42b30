package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/quillback/folio/pkg/core"
)

// PostsDir is the directory holding dated posts, relative to the root.
const PostsDir = "_posts"

// ConfigFile is the optional site configuration file at the content root.
const ConfigFile = "_config.yml"

// postName matches the post filename convention: YYYY-MM-DD-slug.ext.
var postName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// Config holds the configuration for the filesystem source.
type Config struct {
	Root       string
	Logger     *slog.Logger
	SystemDir  string   // hidden directory for the index cache, e.g. ".folio"
	Extensions []string // content extensions, e.g. [".md", ".markdown", ".html"]
	Include    []string // doublestar patterns; empty means everything
	Exclude    []string // doublestar patterns applied after Include
}

// Source implements core.Source for a content root on the local filesystem.
type Source struct {
	Root   string
	config Config
	cache  *cache
	exts   map[string]bool

	mu            sync.RWMutex
	watcherActive bool
	lastScan      *time.Time
}

// NewSource creates a filesystem source for the given configuration.
func NewSource(config Config) *Source {
	exts := make(map[string]bool, len(config.Extensions))
	for _, e := range config.Extensions {
		exts[e] = true
	}
	return &Source{
		Root:   config.Root,
		config: config,
		cache:  newCache(config.Root, config.SystemDir),
		exts:   exts,
	}
}

// Scan reads every content file under the root and returns the parsed
// documents plus the site configuration, if present.
//
// Strategy, per file:
//  1. Check the mtime index. On a hit, reuse the cached fixed record and
//     only re-split the body (no YAML decode).
//  2. On a miss, parse fully and update the index.
//
// A parse failure is fatal: a broken document must surface at load time,
// never be skipped.
func (s *Source) Scan(ctx context.Context) ([]core.Document, core.Site, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, core.Site{}, fmt.Errorf("content root %s: %w", s.Root, err)
	}
	if !info.IsDir() {
		return nil, core.Site{}, fmt.Errorf("content root is not a directory: %s", s.Root)
	}

	site, err := s.loadSite()
	if err != nil {
		return nil, core.Site{}, err
	}

	if err := s.cache.Load(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("index cache unreadable, rescanning", "error", err)
	}
	seen := make(map[string]bool)

	var docs []core.Document
	err = filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if s.skipDir(d.Name(), path) {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !s.selects(relPath) {
			return nil
		}

		doc, err := s.readDocument(path, relPath, d)
		if err != nil {
			return &core.ValidationError{Path: relPath, Reason: err.Error()}
		}

		seen[relPath] = true
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, core.Site{}, err
	}

	s.cache.Prune(seen)
	if err := s.cache.Save(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("failed to persist index cache", "error", err)
	}

	s.recordScan()

	if s.config.Logger != nil {
		s.config.Logger.Debug("scan complete", "documents", len(docs))
	}
	return docs, site, nil
}

// readDocument loads a single content file, consulting the index cache.
func (s *Source) readDocument(path, relPath string, d os.DirEntry) (core.Document, error) {
	id, date, hasDate, err := identify(relPath)
	if err != nil {
		return core.Document{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, err
	}

	info, err := d.Info()
	if err != nil {
		return core.Document{}, err
	}
	mtime := info.ModTime()

	if entry, hit := s.cache.Get(relPath, mtime); hit {
		_, body, err := splitFrontMatter(data)
		if err == nil {
			doc := entry.document(relPath)
			doc.Body = string(body)
			return doc, nil
		}
		// File changed shape under an unchanged mtime; fall through to a
		// full parse.
	}

	doc, err := parseDocument(data, relPath, id, date, hasDate)
	if err != nil {
		return core.Document{}, err
	}

	s.cache.Set(relPath, newIndexEntry(doc, mtime))
	return doc, nil
}

// identify derives the identifier and publication date from the filename
// convention. Files under _posts must follow YYYY-MM-DD-slug.ext; elsewhere
// the identifier is the relative path without extension.
func identify(relPath string) (id string, date time.Time, hasDate bool, err error) {
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if !underPosts(relPath) {
		return strings.TrimSuffix(relPath, filepath.Ext(relPath)), time.Time{}, false, nil
	}

	m := postName.FindStringSubmatch(stem)
	if m == nil {
		return "", time.Time{}, false, fmt.Errorf("post filename %q does not match YYYY-MM-DD-slug", base)
	}
	d, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("malformed date in filename %q: %w", base, err)
	}
	return m[2], d, true, nil
}

func underPosts(relPath string) bool {
	return relPath == PostsDir || strings.HasPrefix(relPath, PostsDir+"/")
}

// skipDir filters out directories that never hold content: the VCS dir, the
// index cache dir, and renderer-owned underscore directories other than
// _posts.
func (s *Source) skipDir(name, path string) bool {
	if path == s.Root {
		return false
	}
	if name == ".git" || name == s.config.SystemDir {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasPrefix(name, "_") && name != PostsDir {
		return true
	}
	return false
}

// selects applies the extension filter and include/exclude glob patterns.
func (s *Source) selects(relPath string) bool {
	if !s.exts[filepath.Ext(relPath)] {
		return false
	}
	if len(s.config.Include) > 0 {
		matched := false
		for _, p := range s.config.Include {
			if ok, _ := doublestar.Match(p, relPath); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, p := range s.config.Exclude {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return false
		}
	}
	return true
}

// loadSite decodes _config.yml if present. Absence is not an error; a
// present but malformed file is, per the fail-fast policy.
func (s *Source) loadSite() (core.Site, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, ConfigFile))
	if os.IsNotExist(err) {
		return core.Site{}, nil
	}
	if err != nil {
		return core.Site{}, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var site core.Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return core.Site{}, fmt.Errorf("malformed %s: %w", ConfigFile, err)
	}
	return site, nil
}

func (s *Source) recordScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastScan = &now
}

func (s *Source) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var _ core.Source = (*Source)(nil)
