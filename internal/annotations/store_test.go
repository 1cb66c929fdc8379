package annotations

import (
	"context"
	"testing"
)

type node struct{ name string }

var valueType = Named[*node, string]("ValueType")
var blockType = Named[*node, int]("BlockType")

func TestAnnotateGetHas(t *testing.T) {
	s := New()
	n := &node{name: "x"}

	if Has(s, valueType, n) {
		t.Fatal("expected no annotation yet")
	}
	Annotate(s, valueType, n, "Int")
	if !Has(s, valueType, n) {
		t.Fatal("expected annotation to be present")
	}
	got, ok := Get(s, valueType, n)
	if !ok || got != "Int" {
		t.Fatalf("Get = %q, %v; want Int, true", got, ok)
	}

	// Replacing overwrites rather than erroring.
	Annotate(s, valueType, n, "String")
	got, _ = Get(s, valueType, n)
	if got != "String" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestRequirePanicsOnMiss(t *testing.T) {
	s := New()
	n := &node{name: "x"}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Require to panic on missing annotation")
		}
		if _, ok := r.(*InternalError); !ok {
			t.Fatalf("expected *InternalError, got %T", r)
		}
	}()
	Require(s, valueType, n)
}

func TestIdentityNotStructuralEquality(t *testing.T) {
	s := New()
	a := &node{name: "same"}
	b := &node{name: "same"} // structurally equal, distinct identity

	Annotate(s, valueType, a, "A")
	if Has(s, valueType, b) {
		t.Fatal("two structurally-equal but distinct keys must not alias")
	}
}

func TestBulkAnnotateAndCopy(t *testing.T) {
	s := New()
	a := &node{name: "a"}
	b := &node{name: "b"}

	s.BulkAnnotate(a, map[string]any{"ValueType": "Int", "BlockType": 1})
	got, ok := Get(s, valueType, a)
	if !ok || got != "Int" {
		t.Fatalf("bulk annotate failed: %q %v", got, ok)
	}

	// Seed b with its own BlockType so CopyAnnotations must not clobber it.
	Annotate(s, blockType, b, 99)
	s.CopyAnnotations(a, b)

	if v, _ := Get(s, valueType, b); v != "Int" {
		t.Fatalf("expected copied ValueType on b, got %q", v)
	}
	if v, _ := Get(s, blockType, b); v != 99 {
		t.Fatalf("CopyAnnotations must not overwrite existing annotations on dest, got %d", v)
	}
}

func TestKeysWithInsertionOrder(t *testing.T) {
	s := New()
	first := &node{name: "first"}
	second := &node{name: "second"}
	Annotate(s, valueType, first, "Int")
	Annotate(s, valueType, second, "String")

	keys := s.KeysWith("ValueType")
	if len(keys) != 2 || keys[0] != any(first) || keys[1] != any(second) {
		t.Fatalf("expected [first, second], got %v", keys)
	}
}

func TestKeysWithIndex(t *testing.T) {
	idx, err := NewIndex(context.Background())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer idx.Close()

	s := New()
	s.AttachIndex(idx)
	a := &node{name: "a"}
	b := &node{name: "b"}
	Annotate(s, valueType, a, "Int")
	Annotate(s, valueType, b, "String")

	keys := s.KeysWith("ValueType")
	if len(keys) != 2 || keys[0] != any(a) || keys[1] != any(b) {
		t.Fatalf("expected indexed [a, b], got %v", keys)
	}
}

func TestLocalCloneIndependence(t *testing.T) {
	l := NewLocal()
	n := &node{name: "x"}
	AnnotateLocal(l, valueType, n, "Int")

	clone := l.Clone()
	AnnotateLocal(clone, valueType, n, "String")

	orig, _ := GetLocal(l, valueType, n)
	if orig != "Int" {
		t.Fatalf("mutating clone must not affect source, source now %q", orig)
	}
	cloned, _ := GetLocal(clone, valueType, n)
	if cloned != "String" {
		t.Fatalf("expected clone's own mutation to stick, got %q", cloned)
	}
}

func TestLocalCommitIdempotent(t *testing.T) {
	global := New()
	n := &node{name: "x"}

	l1 := NewLocal()
	AnnotateLocal(l1, valueType, n, "Int")
	l1.Commit(global)

	l2 := NewLocal()
	AnnotateLocal(l2, valueType, n, "Int")
	l2.Commit(global)

	got, ok := Get(global, valueType, n)
	if !ok || got != "Int" {
		t.Fatalf("expected stable committed value, got %q, %v", got, ok)
	}
}
