package symtab

import "github.com/effect-lang/effc/internal/types"

// UserEffectSym is a user-declared `effect Name[T...] { op... }` symbol.
// It implements types.EffectSymbol so it can appear directly as an
// types.EffectRef, and implements MethodOwner so its own MethodSyms can
// ask for the owner-adjusted effect row (DESIGN.md Open Question #1).
type UserEffectSym struct {
	base
	TParams []*types.TypeVar
	Ops     []*MethodSym
}

func (*UserEffectSym) isTypeSymbol()  {}
func (*UserEffectSym) isMethodOwner() {}

func (e *UserEffectSym) EffectName() string { return e.Name().String() }
func (e *UserEffectSym) Builtin() bool      { return false }

// BuiltinEffectSym names one of the handful of effects the runtime
// interprets directly (e.g. the synthetic effects backing `var`/region
// allocation), rather than dispatching through a user-defined handler.
// Builtin effects have no MethodSym operations of their own in the symbol
// table; the runtime recognizes them by identity.
type BuiltinEffectSym struct {
	base
}

func (*BuiltinEffectSym) isTypeSymbol() {}

func (e *BuiltinEffectSym) EffectName() string { return e.Name().String() }
func (e *BuiltinEffectSym) Builtin() bool      { return true }
