package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type exitCode int

// runCLI executes the root command in-process against args, capturing both
// output streams and the exit code a real invocation would have produced.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW

	origExit := exit
	exit = func(c int) { panic(exitCode(c)) }

	defer func() {
		exit = origExit
		os.Stdout, os.Stderr = origOut, origErr

		// Flag variables persist between Execute calls.
		verbose = false
		rootPath = ""
		listJSON = false
		filterLabel = ""
		pagesJSON = false
		showJSON = false
		watchPattern = ""
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				c, ok := r.(exitCode)
				if !ok {
					panic(r)
				}
				code = int(c)
			}
		}()
		rootCmd.SetArgs(args)
		Execute()
	}()

	outW.Close()
	errW.Close()
	outData, _ := io.ReadAll(outR)
	errData, _ := io.ReadAll(errR)
	return string(outData), string(errData), code
}

// contentRootFixture builds a loadable content root with two posts and a page.
func contentRootFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFixture(t, root, "_config.yml", "title: Example Site\n")
	writeFixture(t, root, "_posts/2016-07-15-fuzzing-in-practice.md", `---
layout: post
title: Fuzzing in Practice
tags: testing
---
Fuzzing finds the bugs you did not think to test for.
`)
	writeFixture(t, root, "_posts/2016-04-13-sanitizers.md", `---
layout: post
title: Sanitizers
category: compilers
---
Run your tests under ASan.
`)
	writeFixture(t, root, "about.md", `---
layout: page
title: About
---
This site is a test fixture.
`)
	return root
}

func writeFixture(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCLI_ListOrdersNewestFirst(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "list", "--root", root)
	if code != 0 {
		t.Fatalf("list exited %d, stderr: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 posts, got %d: %q", len(lines), stdout)
	}
	if !strings.Contains(lines[0], "2016-07-15") || !strings.Contains(lines[0], "fuzzing-in-practice") {
		t.Errorf("newest post should come first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "2016-04-13") {
		t.Errorf("oldest post should come last, got %q", lines[1])
	}
}

func TestCLI_ListFiltersByLabel(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "list", "--root", root, "--label", "compilers")
	if code != 0 {
		t.Fatalf("list exited %d, stderr: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "sanitizers") {
		t.Errorf("expected only the compilers post, got %q", stdout)
	}
}

func TestCLI_ListJSON(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "list", "--root", root, "--json")
	if code != 0 {
		t.Fatalf("list exited %d, stderr: %s", code, stderr)
	}

	var posts []struct {
		ID    string
		Title string
	}
	if err := json.Unmarshal([]byte(stdout), &posts); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if len(posts) != 2 || posts[0].ID != "fuzzing-in-practice" {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestCLI_ShowPrintsBody(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "show", "about", "--root", root)
	if code != 0 {
		t.Fatalf("show exited %d, stderr: %s", code, stderr)
	}
	if strings.TrimSpace(stdout) != "This site is a test fixture." {
		t.Errorf("expected the raw body, got %q", stdout)
	}
}

func TestCLI_ShowJSON(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "show", "about", "--root", root, "--json")
	if code != 0 {
		t.Fatalf("show exited %d, stderr: %s", code, stderr)
	}

	var doc struct {
		ID     string
		Layout string
		Title  string
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if doc.ID != "about" || doc.Layout != "page" || doc.Title != "About" {
		t.Errorf("unexpected record: %+v", doc)
	}
}

func TestCLI_ShowUnknownIdentifier(t *testing.T) {
	root := contentRootFixture(t)

	_, stderr, code := runCLI(t, "show", "no-such-doc", "--root", root)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "no-such-doc") {
		t.Errorf("stderr should name the missing identifier, got %q", stderr)
	}
}

func TestCLI_Pages(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "pages", "--root", root)
	if code != 0 {
		t.Fatalf("pages exited %d, stderr: %s", code, stderr)
	}
	if strings.TrimSpace(stdout) != "about - About" {
		t.Errorf("unexpected pages output: %q", stdout)
	}
}

func TestCLI_Labels(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "labels", "--root", root)
	if code != 0 {
		t.Fatalf("labels exited %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "compilers (1)") || !strings.Contains(stdout, "testing (1)") {
		t.Errorf("unexpected labels output: %q", stdout)
	}
}

func TestCLI_CheckOK(t *testing.T) {
	root := contentRootFixture(t)

	stdout, stderr, code := runCLI(t, "check", "--root", root)
	if code != 0 {
		t.Fatalf("check exited %d, stderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "OK ") || !strings.Contains(stdout, "2 posts, 1 pages") {
		t.Errorf("unexpected check output: %q", stdout)
	}
}

func TestCLI_CheckFailsOnBrokenRoot(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "_posts/2016-07-15-untitled.md", `---
layout: post
---
No title here.
`)

	_, stderr, code := runCLI(t, "check", "--root", root)
	if code != 1 {
		t.Fatalf("expected exit 1 for a broken root, got %d", code)
	}
	if !strings.Contains(stderr, "FAIL") || !strings.Contains(stderr, "missing title") {
		t.Errorf("stderr should report the validation failure, got %q", stderr)
	}
}

func TestCLI_Version(t *testing.T) {
	stdout, _, code := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("version exited %d", code)
	}
	if !strings.HasPrefix(stdout, "folio version ") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}
