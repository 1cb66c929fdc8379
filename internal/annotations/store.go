package annotations

import "fmt"

// entryKey identifies one (key-identity, annotation-name) slot in the
// store. key is typically a pointer, so Go's built-in interface equality
// (and therefore its use as a map key) is identity comparison, exactly as
// spec §4.1 requires ("hash = identity-hash").
type entryKey struct {
	key        any
	annotation string
}

// InternalError is raised by Require on a missing annotation — spec §4.1:
// "require on a missing annotation is a panic (internal compiler error)".
type InternalError struct {
	Annotation string
	Key        any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("[error] internal: required annotation %q missing for key %v", e.Annotation, e.Key)
}

// Store is the global annotations database (spec §4.1). The zero value is
// usable. Store is not safe for concurrent mutation (spec §5: mutated
// only by the phase currently in control).
type Store struct {
	data  map[entryKey]any
	index *Index
	// order preserves per-annotation insertion order for deterministic
	// KeysWith enumeration when no Index is attached.
	order map[string][]any
}

// New creates an empty annotations store.
func New() *Store {
	return &Store{data: make(map[entryKey]any)}
}

// AttachIndex wires an in-memory SQLite-backed index (see index.go) that
// mirrors the first Annotate call of every (annotation, key) pair for fast ordered enumeration by the
// LSP. Attaching is optional: a Store with no index still answers every
// query correctly, just via a linear scan of its insertion-order slices.
func (s *Store) AttachIndex(idx *Index) { s.index = idx }

func (s *Store) ensure() {
	if s.data == nil {
		s.data = make(map[entryKey]any)
	}
	if s.order == nil {
		s.order = make(map[string][]any)
	}
}

// annotateRaw records value under (ann, key), replacing any prior value.
// annotate never fails (spec §4.1).
func (s *Store) annotateRaw(ann string, key any, value any) {
	s.ensure()
	ek := entryKey{key: key, annotation: ann}
	if _, existed := s.data[ek]; !existed {
		s.order[ann] = append(s.order[ann], key)
		if s.index != nil {
			s.index.record(ann, key)
		}
	}
	s.data[ek] = value
}

func (s *Store) getRaw(ann string, key any) (any, bool) {
	if s.data == nil {
		return nil, false
	}
	v, ok := s.data[entryKey{key: key, annotation: ann}]
	return v, ok
}

func (s *Store) hasRaw(ann string, key any) bool {
	_, ok := s.getRaw(ann, key)
	return ok
}

// KeysWith returns every key that has a value for the named annotation,
// in insertion order (spec §6: "used by LSP to enumerate").
func (s *Store) KeysWith(annotationName string) []any {
	if s.index != nil {
		return s.index.keysWith(annotationName)
	}
	out := make([]any, len(s.order[annotationName]))
	copy(out, s.order[annotationName])
	return out
}

// Annotate records value under (ann, key), replacing any prior value for
// that pair (spec §4.1).
func Annotate[K any, V any](s *Store, ann Annotation[K, V], key K, value V) {
	s.annotateRaw(ann.name, key, value)
}

// Get looks up (ann, key); a miss is reported via ok=false, never an error
// (spec §4.1: "missing is not an error").
func Get[K any, V any](s *Store, ann Annotation[K, V], key K) (V, bool) {
	raw, ok := s.getRaw(ann.name, key)
	if !ok {
		var zero V
		return zero, false
	}
	return raw.(V), true
}

// Require looks up (ann, key); a miss panics with an *InternalError, since
// the compiler considers a missing required annotation a bug (spec §4.1,
// §7 "internal compiler errors (panics)").
func Require[K any, V any](s *Store, ann Annotation[K, V], key K) V {
	v, ok := Get(s, ann, key)
	if !ok {
		panic(&InternalError{Annotation: ann.name, Key: key})
	}
	return v
}

// Has reports whether (ann, key) has a recorded value.
func Has[K any, V any](s *Store, ann Annotation[K, V], key K) bool {
	return s.hasRaw(ann.name, key)
}

// BulkAnnotate merges a map of annotation-name -> value for a single key
// (spec §4.1). Each entry's value must match the runtime type expected by
// whichever Annotation[K,V] is later used to Get/Require it — this is the
// "tagged variant" escape hatch a phantom-less annotation necessarily has
// (see package doc).
func (s *Store) BulkAnnotate(key any, values map[string]any) {
	for name, v := range values {
		s.annotateRaw(name, key, v)
	}
}

// CopyAnnotations adds every one of from's annotations to to, without
// overwriting any annotation to already has (spec §4.1).
func (s *Store) CopyAnnotations(from, to any) {
	s.ensure()
	for ek, v := range s.data {
		if ek.key != from {
			continue
		}
		destKey := entryKey{key: to, annotation: ek.annotation}
		if _, exists := s.data[destKey]; exists {
			continue
		}
		s.annotateRaw(ek.annotation, to, v)
	}
}
