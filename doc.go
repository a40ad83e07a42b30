// Package folio is the Composition Root for the Folio library.
//
// It connects the core content model (Domain Layer) with the filesystem
// adapter (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Folio is the content half of a static site: a read-only store of blog
// posts and pages written as front-matter-delimited text files. It loads a
// content root, validates every document, and hands an immutable, queryable
// Store to whatever renders it. Folio never produces HTML and never mutates
// content; authors edit files, Folio reloads.
//
// Features:
//
//   - **Fail-fast validation**: a missing title, layout, or post date aborts
//     the whole load. A broken document never publishes a partial site.
//   - **Deterministic ordering**: posts sort by date descending, identifier
//     ascending on ties.
//   - **Front-matter first**: fixed record (layout, title, date, labels,
//     published) validated at load; remaining keys kept for typed retrieval.
//   - **Typed retrieval**: generic view (`NewTypedView[T]`) for type-safe
//     access to the extra front-matter keys.
//   - **Watch support**: fsnotify-based change events so callers can reload.
//   - **Extensible**: alternative content sources via `core.Source`.
//
// Usage:
//
//	store, err := folio.Load(ctx, "./site",
//		folio.WithLogger(logger),
//	)
//
//	for _, post := range store.Posts() {
//		render(post)
//	}
package folio
