// Package symtab implements spec.md §3/§4.2: the two-universe (value vs.
// block) symbol model and the module graph, with dependency-ordered,
// shadowing-aware lookup.
//
// Grounded on the teacher's internal/symbols/symbol_table_core.go (a flat
// Symbol{Name, Type, Kind} with a SymbolKind enum covering
// Variable/Type/Constructor/Trait/Module) and internal/modules/module.go
// (Module{types, terms, imports}, dependency closure, reverse-order
// shadowed lookup) — generalized from the teacher's single symbol kind
// enum into the spec's hard value/block split (enforced structurally by
// distinct Go interfaces rather than a runtime tag, so the invariant
// "no symbol is both a TypeSymbol and a TermSymbol" holds by
// construction) and from the teacher's single symbol-as-constructor shape
// into the cross-linked type/constructor pair described in DESIGN.md
// ("The two universes and constructor duality").
package symtab

import "github.com/effect-lang/effc/internal/names"

// Symbol is the common identity of every named entity. Symbols are always
// used by pointer; identity is Go pointer identity, matching the
// annotations store's identity-keyed lookups (spec §4.1).
type Symbol interface {
	symbolMarker()
	Name() names.Name
}

// TypeSymbol is the type universe: type variables, aliases, data types,
// records (type facet), effects, interfaces (spec §3).
type TypeSymbol interface {
	Symbol
	isTypeSymbol()
}

// TermSymbol is the term universe, itself split into value and block
// symbols (spec §3).
type TermSymbol interface {
	Symbol
	isTermSymbol()
}

// ValueSymbol: value parameters, val/var binders, temporaries, wildcards.
type ValueSymbol interface {
	TermSymbol
	isValueSymbol()
}

// BlockSymbol: functions, block parameters, capabilities, resume
// parameters, methods, records-as-constructors, modules, call targets.
type BlockSymbol interface {
	TermSymbol
	isBlockSymbol()
}

// base provides the common Name() implementation for every concrete
// symbol below.
type base struct {
	name names.Name
}

func (b *base) Name() names.Name { return b.name }
func (b *base) symbolMarker()    {}

// SetName assigns sym's name. Symbols are normally constructed with their
// name already set (NewMethod, NewRecord), but the plain value/block/type
// symbol structs have no such constructor, and base.name is deliberately
// unexported (symbols outside this package must not mutate an existing
// symbol's identity once published). SetName exists solely for the Namer,
// which builds a fresh symbol and names it in the same step.
func SetName(sym Symbol, name names.Name) {
	if b, ok := sym.(interface{ setBase(names.Name) }); ok {
		b.setBase(name)
	}
}

func (b *base) setBase(name names.Name) { b.name = name }

// --- Value symbols -----------------------------------------------------

// ValueParam is a value parameter of a function/block.
type ValueParam struct{ base }

func (*ValueParam) isTermSymbol()  {}
func (*ValueParam) isValueSymbol() {}

// ValBinder is an immutable `val` binding.
type ValBinder struct{ base }

func (*ValBinder) isTermSymbol()  {}
func (*ValBinder) isValueSymbol() {}

// VarBinder is a mutable `var` binding (backed by a runtime state cell).
type VarBinder struct{ base }

func (*VarBinder) isTermSymbol()  {}
func (*VarBinder) isValueSymbol() {}

// Temporary is a synthetic value variable introduced by the transformer's
// binding buffer (spec §4.5 "bind").
type Temporary struct{ base }

func (*Temporary) isTermSymbol()  {}
func (*Temporary) isValueSymbol() {}

// Wildcard is a synthetic `_` pattern binder.
type Wildcard struct{ base }

func (*Wildcard) isTermSymbol()  {}
func (*Wildcard) isValueSymbol() {}

// --- Block symbols ------------------------------------------------------

// Function is an ordinary top-level or nested function definition.
type Function struct{ base }

func (*Function) isTermSymbol()  {}
func (*Function) isBlockSymbol() {}

// BlockParam is a block-typed parameter (e.g. a handler capability
// parameter introduced by TryHandle lowering, spec §4.5).
type BlockParam struct{ base }

func (*BlockParam) isTermSymbol()  {}
func (*BlockParam) isBlockSymbol() {}

// Capability is a capability-passing parameter granting an effect.
type Capability struct{ base }

func (*Capability) isTermSymbol()  {}
func (*Capability) isBlockSymbol() {}

// ResumeParam is the synthetic `resume`/`k` parameter of a handler clause.
type ResumeParam struct{ base }

func (*ResumeParam) isTermSymbol()  {}
func (*ResumeParam) isBlockSymbol() {}

// CallTarget is a synthetic label bound to a compiled match-clause body
// (spec §4.5.1: "each surface MatchClause is compiled once into a
// BlockLit label").
type CallTarget struct{ base }

func (*CallTarget) isTermSymbol()  {}
func (*CallTarget) isBlockSymbol() {}

// ModuleSymbol is a module-as-value (a Module(ops) block type).
type ModuleSymbol struct{ base }

func (*ModuleSymbol) isTermSymbol()  {}
func (*ModuleSymbol) isBlockSymbol() {}

// --- Type symbols --------------------------------------------------------

// TypeVarSym is a declared type parameter.
type TypeVarSym struct{ base }

func (*TypeVarSym) isTypeSymbol() {}

// AliasSym is a `type alias` declaration.
type AliasSym struct{ base }

func (*AliasSym) isTypeSymbol() {}

// DataSym is a `type ... { ... }` data type declaration.
type DataSym struct {
	base
	Constructors []*ConstructorSym
}

func (*DataSym) isTypeSymbol() {}

// ConstructorSym is the type-universe facet of a record/data constructor.
// Its term-universe facet is a separate ConstructorBlockSym (see record.go)
// — spec §4.2 invariant 3 and DESIGN.md's "constructor duality" note:
// these are two distinct symbol identities cross-linked via the
// annotations store, not one symbol bearing both a value and a block type.
type ConstructorSym struct {
	base
	Fields []string
}

func (*ConstructorSym) isTypeSymbol() {}

// InterfaceSym is an `interface` declaration (spec §3/§9 open question:
// distinguished from UserEffectSym for Method.ret purposes).
type InterfaceSym struct {
	base
	Ops []*MethodSym
}

func (*InterfaceSym) isTypeSymbol() {}
