package folio_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/quillback/folio"
)

// Example_basic demonstrates loading a content root and listing its posts.
func Example_basic() {
	// Create a temporary content root for the example
	tmpDir, err := os.MkdirTemp("", "folio-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	postsDir := filepath.Join(tmpDir, "_posts")
	if err := os.MkdirAll(postsDir, 0755); err != nil {
		log.Fatal(err)
	}

	post := "---\nlayout: post\ntitle: Fuzzing in Practice\n---\nFuzz early, fuzz often.\n"
	if err := os.WriteFile(filepath.Join(postsDir, "2016-07-15-fuzzing.md"), []byte(post), 0644); err != nil {
		log.Fatal(err)
	}

	store, err := folio.Load(context.Background(), tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range store.Posts() {
		fmt.Printf("%s: %s\n", p.Date.Format("2006-01-02"), p.Title)
	}
	// Output:
	// 2016-07-15: Fuzzing in Practice
}

// ExampleNewTypedView demonstrates type-safe access to extra front-matter keys.
func ExampleNewTypedView() {
	tmpDir, err := os.MkdirTemp("", "folio-typed-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	page := "---\nlayout: page\ntitle: About\nauthor: Gopher\n---\nHello.\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "about.md"), []byte(page), 0644); err != nil {
		log.Fatal(err)
	}

	store, err := folio.Load(context.Background(), tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	type extras struct {
		Author string `json:"author"`
	}

	view := folio.NewTypedView[extras](store)
	about, err := view.Find("about")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s by %s\n", about.Title, about.Data.Author)
	// Output:
	// About by Gopher
}
