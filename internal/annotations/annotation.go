// Package annotations implements spec.md §4.1: a typed key/value map
// indexed by arbitrary identity-compared keys, with a local,
// clonable/committable overlay used by the Typer during backtracking
// overload resolution.
//
// Grounded on the teacher's two-pass analyzer bookkeeping
// (internal/analyzer/analyzer.go's `TypeMap map[ast.Node]typesystem.Type`,
// and the walker's per-attempt `errorSet`/`errors` dedup slices in
// internal/analyzer/analyzer.go), generalized from a single hard-coded
// TypeMap into an arbitrary, name-indexed annotation store as spec §4.1
// requires, and from Go's un-ordered map iteration into an ordered index
// (see index.go) for the LSP's `keys-with` enumeration.
//
// Design note (see DESIGN.md "Phantom-typed annotation keys"): the source
// language has phantom-typed annotation keys so reads are statically
// typed per annotation. Go has no phantom types, but it has generics,
// which get us the same static safety for the common path
// (Annotate/Get/Require/Has are generic over (K, V)). The bulk paths
// (BulkAnnotate, CopyAnnotations, KeysWith) necessarily operate on untyped
// payloads, the way a phantom-less language would represent each
// annotation as a tagged variant — see rawEntry below.
package annotations

import "fmt"

// Annotation is a named, phantom-typed (via Go generics) key/value pair
// descriptor. K must be a type with stable reference identity — normally
// a pointer to an AST/core node or to a Symbol — since keys are compared
// by identity, never by structural equality (spec §4.1 "Key identity").
type Annotation[K any, V any] struct {
	name string
}

// Named creates an annotation descriptor with the given unique name.
func Named[K any, V any](name string) Annotation[K, V] {
	return Annotation[K, V]{name: name}
}

// Name returns the annotation's name (used by bulk operations and the
// LSP's keys-with enumeration).
func (a Annotation[K, V]) Name() string { return a.name }

func (a Annotation[K, V]) String() string { return a.name }

// rawEntry is the untyped representation used internally and by the bulk
// operations — the "tagged variant" a phantom-less language would use.
type rawEntry struct {
	annotation string
	value      any
}

func (e rawEntry) String() string {
	return fmt.Sprintf("%s=%v", e.annotation, e.value)
}
