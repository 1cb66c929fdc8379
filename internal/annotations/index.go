// Index provides fast, deterministically-ordered enumeration of the keys
// carrying a given annotation (spec §6's `keys-with(ann)`, consumed by the
// LSP's `getSymbols`/`getReferences`). Go's maps (used by Store directly)
// have no stable iteration order; re-walking the AST on every LSP request
// the way the teacher's cmd/lsp/module_analysis.go does is also an option,
// but does not scale to "enumerate every key with annotation X" across a
// large module graph.
//
// Index is backed by an in-memory (":memory:", never touching disk —
// honoring spec.md §1's "no persistent on-disk caches" Non-goal)
// modernc.org/sqlite database. This wires up the teacher's sqlite driver
// (vendored for its own lib/sqlite standard-library virtual module,
// internal/modules/virtual_packages_other.go) for an unrelated but
// idiomatic purpose: a queryable secondary index over opaque Go values.
//
// Since SQLite cannot store a Go pointer, each recorded key is assigned a
// monotonic row id and the actual key value is kept in a parallel Go
// slice; the database only orders the ids. Each row also stores a label
// (the key's %v rendering), which no query reads.
package annotations

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Index is a queryable mirror of a Store's (annotation, key) pairs.
type Index struct {
	db   *sql.DB
	keys []any // keys[id] is the Go value recorded at row id
}

// NewIndex opens a fresh in-memory index. Callers should Close it when
// the owning Store (and its Local overlays) are discarded.
func NewIndex(ctx context.Context) (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("annotations: opening in-memory index: %w", err)
	}
	const schema = `
CREATE TABLE entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	annotation TEXT NOT NULL,
	label      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_entries_annotation ON entries(annotation, id);
CREATE INDEX idx_entries_label ON entries(annotation, label);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("annotations: creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the in-memory database.
func (idx *Index) Close() error {
	if idx.db == nil {
		return nil
	}
	return idx.db.Close()
}

// record mirrors into the index the first Store.annotateRaw call for one
// (annotation, key) pair.
func (idx *Index) record(annotation string, key any) {
	if idx.db == nil {
		return
	}
	idx.keys = append(idx.keys, key)
	id := int64(len(idx.keys) - 1)
	label := fmt.Sprintf("%v", key)
	_, err := idx.db.Exec(
		`INSERT INTO entries (id, annotation, label) VALUES (?, ?, ?)`,
		id, annotation, label,
	)
	if err != nil {
		// The index is a performance aid, not a correctness requirement
		// (Store.KeysWith falls back to its own insertion-order slice when
		// no index is attached, and a write failure here must not corrupt
		// compilation) — so a write error leaves this one entry out of
		// keysWith's enumeration; it is not propagated.
		idx.keys[id] = nil
	}
}

// keysWith returns every key recorded under annotation, in insertion order.
func (idx *Index) keysWith(annotation string) []any {
	if idx.db == nil {
		return nil
	}
	rows, err := idx.db.Query(
		`SELECT id FROM entries WHERE annotation = ? ORDER BY id`, annotation,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			continue
		}
		if int(id) < len(idx.keys) && idx.keys[id] != nil {
			out = append(out, idx.keys[id])
		}
	}
	return out
}
