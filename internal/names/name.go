// Package names implements the hierarchical name model of spec.md §3:
// a name is either empty, a single word, or a qualified link of a parent
// name and a child word. Equality is structural.
//
// Grounded on the teacher's qualified-import alias resolution
// (internal/ast's ImportStatement.Alias / getImportName in cmd/funxy/main.go)
// generalized into a first-class value instead of ad-hoc string joins.
package names

import "strings"

// Name is either Blk (empty), a single Word, or a Link of parent·child.
type Name interface {
	isName()
	String() string
	// Local returns the last segment of the name (its own word), or ""
	// for Blk.
	Local() string
	// Qualified reports whether the name has at least one parent segment.
	Qualified() bool
}

// Blk is the empty name — used for anonymous/synthetic scopes that never
// participate in qualified lookup.
type Blk struct{}

func (Blk) isName()        {}
func (Blk) String() string { return "" }
func (Blk) Local() string  { return "" }
func (Blk) Qualified() bool { return false }

// Word is a single unqualified name segment.
type Word struct {
	Value string
}

func (Word) isName()          {}
func (w Word) String() string { return w.Value }
func (w Word) Local() string  { return w.Value }
func (Word) Qualified() bool  { return false }

// Link is a qualified name: Parent·Child.
type Link struct {
	Parent Name
	Child  Word
}

func (Link) isName() {}
func (l Link) String() string {
	return l.Parent.String() + "·" + l.Child.Value
}
func (l Link) Local() string   { return l.Child.Value }
func (Link) Qualified() bool   { return true }

// New builds a Name from a dot/middle-dot separated qualified string.
// New("") == Blk{}; New("a") == Word{"a"}; New("a.b.c") == Link{Link{Word a, b}, c}.
func New(qualified string) Name {
	if qualified == "" {
		return Blk{}
	}
	parts := splitQualified(qualified)
	var n Name = Word{Value: parts[0]}
	for _, p := range parts[1:] {
		n = Link{Parent: n, Child: Word{Value: p}}
	}
	return n
}

func splitQualified(s string) []string {
	s = strings.ReplaceAll(s, "·", ".")
	return strings.Split(s, ".")
}

// Nest builds a qualified name with parent as the prefix of child. If
// parent is Blk, the result is simply child.
func Nest(parent Name, child Word) Name {
	if _, ok := parent.(Blk); ok {
		return child
	}
	return Link{Parent: parent, Child: child}
}

// Equal reports structural equality between two names.
func Equal(a, b Name) bool {
	switch av := a.(type) {
	case Blk:
		_, ok := b.(Blk)
		return ok
	case Word:
		bv, ok := b.(Word)
		return ok && av.Value == bv.Value
	case Link:
		bv, ok := b.(Link)
		return ok && av.Child.Value == bv.Child.Value && Equal(av.Parent, bv.Parent)
	default:
		return false
	}
}
