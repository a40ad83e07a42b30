package fs

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quillback/folio/pkg/core"
)

// Front-matter keys lifted out of the raw map into the fixed record.
// Everything else stays in Document.Meta for typed retrieval.
var fixedKeys = map[string]bool{
	"layout":     true,
	"title":      true,
	"date":       true,
	"categories": true,
	"category":   true,
	"tags":       true,
	"published":  true,
}

// splitFrontMatter separates the metadata block from the body.
// A document must start with a "---" fence; a fence without a closing
// delimiter is malformed.
func splitFrontMatter(data []byte) (meta, body []byte, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, nil, fmt.Errorf("missing front matter block")
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return nil, nil, fmt.Errorf("front matter started but no closing delimiter found")
	}

	body = parts[1]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return parts[0], body, nil
}

// parseDocument decodes one content file into a core.Document.
// relPath is the root-relative path; id, date and hasDate come from the
// filename convention and may be overridden by explicit front-matter keys.
func parseDocument(data []byte, relPath, id string, date time.Time, hasDate bool) (core.Document, error) {
	metaData, body, err := splitFrontMatter(data)
	if err != nil {
		return core.Document{}, err
	}

	raw := make(map[string]any)
	if err := yaml.Unmarshal(metaData, &raw); err != nil {
		return core.Document{}, fmt.Errorf("invalid front matter: %w", err)
	}

	doc := core.Document{
		ID:        id,
		Path:      relPath,
		Published: true,
		Body:      string(body),
		Date:      date,
		HasDate:   hasDate,
	}

	if v, ok := raw["layout"].(string); ok {
		doc.Layout = v
	}
	if v, ok := raw["title"].(string); ok {
		doc.Title = v
	}
	if v, ok := raw["published"]; ok {
		b, ok := v.(bool)
		if !ok {
			return core.Document{}, fmt.Errorf("published must be a boolean, got %T", v)
		}
		doc.Published = b
	}

	if v, ok := raw["date"]; ok {
		d, err := parseDate(v)
		if err != nil {
			return core.Document{}, fmt.Errorf("malformed date: %w", err)
		}
		doc.Date = d
		doc.HasDate = true
	}

	doc.Labels = mergeLabels(raw)

	for k, v := range raw {
		if !fixedKeys[k] {
			if doc.Meta == nil {
				doc.Meta = make(core.Meta)
			}
			doc.Meta[k] = v
		}
	}

	return doc, nil
}

// parseDate accepts the shapes yaml.v3 produces for a date value:
// a time.Time for canonical timestamps, or a string in a couple of
// common layouts.
func parseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
			if d, err := time.Parse(layout, t); err == nil {
				return d, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", t)
	default:
		return time.Time{}, fmt.Errorf("date must be a string or timestamp, got %T", v)
	}
}

// mergeLabels collects categories and tags into one sorted, deduplicated set.
// Both keys accept a YAML list or a space-separated string.
func mergeLabels(raw map[string]any) []string {
	seen := make(map[string]bool)
	for _, key := range []string{"categories", "category", "tags"} {
		switch v := raw[key].(type) {
		case string:
			for _, l := range strings.Fields(v) {
				seen[l] = true
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					seen[s] = true
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
