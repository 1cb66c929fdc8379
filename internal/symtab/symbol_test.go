package symtab

import (
	"testing"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/types"
)

// TestValueBlockExclusivity checks spec §4.2's invariant "A TypeSymbol is
// never a TermSymbol and vice versa" holds by construction: every concrete
// symbol implements exactly one of TypeSymbol/TermSymbol, and every
// TermSymbol implements exactly one of ValueSymbol/BlockSymbol.
func TestValueBlockExclusivity(t *testing.T) {
	values := []TermSymbol{
		&ValueParam{}, &ValBinder{}, &VarBinder{}, &Temporary{}, &Wildcard{},
	}
	for _, v := range values {
		if _, ok := v.(ValueSymbol); !ok {
			t.Fatalf("%T must implement ValueSymbol", v)
		}
		if _, ok := v.(BlockSymbol); ok {
			t.Fatalf("%T must not also implement BlockSymbol", v)
		}
	}

	blocks := []TermSymbol{
		&Function{}, &BlockParam{}, &Capability{}, &ResumeParam{}, &CallTarget{}, &ModuleSymbol{},
		&ConstructorBlockSym{}, &MethodSym{},
	}
	for _, b := range blocks {
		if _, ok := b.(BlockSymbol); !ok {
			t.Fatalf("%T must implement BlockSymbol", b)
		}
		if _, ok := b.(ValueSymbol); ok {
			t.Fatalf("%T must not also implement ValueSymbol", b)
		}
	}
}

func TestEveryTypeSymbolIsNeverATermSymbol(t *testing.T) {
	typeSyms := []any{
		&TypeVarSym{}, &AliasSym{}, &DataSym{}, &ConstructorSym{}, &InterfaceSym{}, &UserEffectSym{}, &BuiltinEffectSym{},
	}
	for _, s := range typeSyms {
		if _, ok := s.(TermSymbol); ok {
			t.Fatalf("%T must not implement TermSymbol", s)
		}
	}
}

// TestConstructorDuality checks DESIGN.md's "constructor duality" design:
// a record is two cross-linked symbols (a ConstructorSym type facet and a
// ConstructorBlockSym term facet), not one symbol implementing both a
// TypeSymbol and a TermSymbol (which the exclusivity invariant forbids).
func TestConstructorDuality(t *testing.T) {
	store := annotations.New()
	typeFacet, termFacet := NewRecord(store, "Pair", []string{"fst", "snd"})

	if _, ok := any(typeFacet).(TermSymbol); ok {
		t.Fatal("type facet must not be a TermSymbol")
	}
	if _, ok := any(termFacet).(TypeSymbol); ok {
		t.Fatal("term facet must not be a TypeSymbol")
	}

	gotType, ok := ConstructorOf(store, termFacet)
	if !ok || gotType != typeFacet {
		t.Fatal("expected ConstructorOf to resolve back to the type facet")
	}
	gotTerm, ok := TypeOf(store, typeFacet)
	if !ok || gotTerm != termFacet {
		t.Fatal("expected TypeOf to resolve back to the term facet")
	}
}

// TestMethodEffectRowAsymmetry exercises DESIGN.md Open Question decision
// #1: an interface method's row is unchanged, a user effect operation's
// row gains the owning effect.
func TestMethodEffectRowAsymmetry(t *testing.T) {
	declared := types.Effects()
	method := NewMethod("get", nil, nil, nil, declared)

	iface := &InterfaceSym{base: base{name: names.New("Reader")}}
	if got := method.EffectRow(iface); !types.EffectSetEqual(got, declared) {
		t.Fatalf("expected interface method row to be unchanged, got %s", got)
	}

	effect := &UserEffectSym{base: base{name: names.New("State")}}
	row := method.EffectRow(effect)
	if row.IsEmpty() {
		t.Fatal("expected user effect operation to carry the owning effect")
	}
	if !row.Contains(types.EffectRef{Symbol: effect}) {
		t.Fatal("expected row to contain the owning effect")
	}
}

// TestEverySymbolHasSourceModuleViaAnnotations exercises spec §4.2's
// invariant "every symbol visible from user code has exactly one
// SourceModule in the annotations store" — ownership is recorded via the
// annotations store, not a field on the symbol itself.
func TestEverySymbolHasSourceModuleViaAnnotations(t *testing.T) {
	sourceModule := annotations.Named[Symbol, *Module]("SourceModule")
	store := annotations.New()
	m := NewSourceModule("main")
	fn := &Function{base: base{name: names.New("main")}}

	annotations.Annotate(store, sourceModule, Symbol(fn), m)

	got, ok := annotations.Get(store, sourceModule, Symbol(fn))
	if !ok || got != m {
		t.Fatal("expected fn's SourceModule annotation to resolve to m")
	}
}
