// Package types implements spec.md §3/§4.3: value types, block types,
// capture sets, and effect rows, with alias-expanding dealiasing and
// substitution.
//
// Grounded on the teacher's internal/typesystem/types.go (the Type
// interface, Subst, cycle-checked Apply, FreeTypeVariables) generalized
// from a single Type universe into the spec's value/block split, and on
// other_examples/02897b6c_SeleniaProject-Orizon__internal-types-effects.go.go
// for the effect-set union/difference/partition shape.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// ValueType is the value-type universe of spec.md §3.
type ValueType interface {
	isValueType()
	String() string
	Dealias() ValueType
	FreeTypeVars() []*TypeVar
	Apply(Subst) ValueType
}

// TypeVar is a type variable, with a rigid inference-variant flag (spec
// §3: "type variables (including a rigid inference variant)").
type TypeVar struct {
	Name  string
	Rigid bool
}

func (*TypeVar) isValueType() {}
func (t *TypeVar) String() string {
	if t.Rigid {
		return "^" + t.Name
	}
	return t.Name
}
func (t *TypeVar) Dealias() ValueType { return t }
func (t *TypeVar) FreeTypeVars() []*TypeVar {
	return []*TypeVar{t}
}
func (t *TypeVar) Apply(s Subst) ValueType {
	if repl, ok := s[t]; ok {
		return repl
	}
	return t
}

// TypeApp applies a head type constructor (itself a ValueType — normally
// an Alias or a Builtin) to a list of argument types.
type TypeApp struct {
	Head ValueType
	Args []ValueType
}

func (*TypeApp) isValueType() {}
func (t *TypeApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Head.String(), strings.Join(args, ", "))
}

// Dealias substitutes Alias.Params with Args in Alias.Body and recursively
// dealiases the result (spec §4.3). On a non-alias head it dealiases the
// head and args (structurally) without substitution.
func (t *TypeApp) Dealias() ValueType {
	if alias, ok := t.Head.Dealias().(*Alias); ok {
		if len(alias.Params) == len(t.Args) {
			subst := make(Subst, len(alias.Params))
			for i, p := range alias.Params {
				subst[p] = t.Args[i]
			}
			return alias.Body.Apply(subst).Dealias()
		}
	}
	newArgs := make([]ValueType, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Dealias()
	}
	return &TypeApp{Head: t.Head.Dealias(), Args: newArgs}
}
func (t *TypeApp) FreeTypeVars() []*TypeVar {
	vars := t.Head.FreeTypeVars()
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVars()...)
	}
	return vars
}
func (t *TypeApp) Apply(s Subst) ValueType {
	newArgs := make([]ValueType, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Apply(s)
	}
	return &TypeApp{Head: t.Head.Apply(s), Args: newArgs}
}

// Alias is a type alias: `type Name[Params...] = Body`.
type Alias struct {
	Name   string
	Params []*TypeVar
	Body   ValueType
}

func (*Alias) isValueType() {}
func (a *Alias) String() string { return a.Name }

// Dealias on a parameterless alias (spec §4.3: "TypeAlias(_, [], t) returns
// t.dealias") returns the dealiased body directly; a parameterized alias
// with no applied arguments dealiases to itself (it needs a TypeApp to
// substitute).
func (a *Alias) Dealias() ValueType {
	if len(a.Params) == 0 {
		return a.Body.Dealias()
	}
	return a
}
func (a *Alias) FreeTypeVars() []*TypeVar { return a.Body.FreeTypeVars() }
func (a *Alias) Apply(s Subst) ValueType {
	return &Alias{Name: a.Name, Params: a.Params, Body: a.Body.Apply(s)}
}

// Boxed is a boxed block type with its capture set: Boxed(BlockType, CaptureSet).
type Boxed struct {
	Block    BlockType
	Captures CaptureSet
}

func (*Boxed) isValueType() {}
func (b *Boxed) String() string {
	return fmt.Sprintf("%s at %s", b.Block.String(), b.Captures.String())
}
func (b *Boxed) Dealias() ValueType { return &Boxed{Block: b.Block.Dealias(), Captures: b.Captures} }
func (b *Boxed) FreeTypeVars() []*TypeVar { return b.Block.FreeTypeVars() }
func (b *Boxed) Apply(s Subst) ValueType {
	return &Boxed{Block: b.Block.Apply(s), Captures: b.Captures}
}

// FunType is a first-class function type: FunType(BlockType, Region).
type FunType struct {
	Block  BlockType
	Region Capture // the lexical region this closure is allocated in
}

func (*FunType) isValueType() {}
func (f *FunType) String() string {
	return fmt.Sprintf("%s@%s", f.Block.String(), f.Region.String())
}
func (f *FunType) Dealias() ValueType { return &FunType{Block: f.Block.Dealias(), Region: f.Region} }
func (f *FunType) FreeTypeVars() []*TypeVar { return f.Block.FreeTypeVars() }
func (f *FunType) Apply(s Subst) ValueType {
	return &FunType{Block: f.Block.Apply(s), Region: f.Region}
}

// Builtin is an atomic builtin value type (Int, Double, String, Bool, Unit, ...).
type Builtin struct {
	Name string
}

func (*Builtin) isValueType()           {}
func (b *Builtin) String() string       { return b.Name }
func (b *Builtin) Dealias() ValueType   { return b }
func (b *Builtin) FreeTypeVars() []*TypeVar { return nil }
func (b *Builtin) Apply(Subst) ValueType { return b }

// Subst maps type variables (by identity) to replacement value types.
type Subst map[*TypeVar]ValueType

// ValueTypeEqual compares two value types up to dealiasing (spec §4.3:
// "Equality compares dealiased forms").
func ValueTypeEqual(a, b ValueType) bool {
	return valueTypeEqualDealiased(a.Dealias(), b.Dealias())
}

func valueTypeEqualDealiased(a, b ValueType) bool {
	switch av := a.(type) {
	case *TypeVar:
		bv, ok := b.(*TypeVar)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av.Name == bv.Name
	case *TypeApp:
		bv, ok := b.(*TypeApp)
		if !ok || len(av.Args) != len(bv.Args) || !valueTypeEqualDealiased(av.Head, bv.Head) {
			return false
		}
		for i := range av.Args {
			if !valueTypeEqualDealiased(av.Args[i].Dealias(), bv.Args[i].Dealias()) {
				return false
			}
		}
		return true
	case *Alias:
		bv, ok := b.(*Alias)
		return ok && av.Name == bv.Name
	case *Boxed:
		bv, ok := b.(*Boxed)
		return ok && blockTypeEqualDealiased(av.Block.Dealias(), bv.Block.Dealias()) && CaptureSetEqual(av.Captures, bv.Captures)
	case *FunType:
		bv, ok := b.(*FunType)
		return ok && blockTypeEqualDealiased(av.Block.Dealias(), bv.Block.Dealias())
	default:
		return false
	}
}

// SortedTypeVarNames is a small helper used by tests/printers for
// deterministic output of a free-variable set.
func SortedTypeVarNames(vars []*TypeVar) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	sort.Strings(names)
	return names
}
