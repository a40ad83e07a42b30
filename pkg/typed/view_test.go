package typed_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quillback/folio/pkg/core"
	"github.com/quillback/folio/pkg/typed"
)

type postExtras struct {
	Author   string `json:"author"`
	Comments bool   `json:"comments"`
}

func TestView_DecodesExtras(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2016-07-15")
	store, err := core.NewStore([]core.Document{
		{
			ID:        "fuzzing",
			Path:      "_posts/2016-07-15-fuzzing.md",
			Layout:    core.LayoutPost,
			Title:     "Fuzzing",
			Date:      date,
			HasDate:   true,
			Published: true,
			Meta:      core.Meta{"author": "someone", "comments": true},
		},
	}, core.Site{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	view := typed.NewView[postExtras](store)
	posts, err := view.Posts()
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Data.Author != "someone" || !posts[0].Data.Comments {
		t.Errorf("extras not decoded: %+v", posts[0].Data)
	}
	if posts[0].Title != "Fuzzing" {
		t.Errorf("fixed record should pass through, got title %q", posts[0].Title)
	}
}

func TestView_FindMissWrapsNotFound(t *testing.T) {
	store, err := core.NewStore(nil, core.Site{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	view := typed.NewView[postExtras](store)
	_, err = view.Find("nope")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDecode_EmptyMeta(t *testing.T) {
	doc := core.Document{ID: "bare", Layout: "page", Title: "Bare", Published: true}
	m, err := typed.Decode[postExtras](doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m.Data.Author != "" {
		t.Errorf("expected zero value, got %+v", m.Data)
	}
}
