package symtab

import (
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/types"
)

// MethodOwner is either an *InterfaceSym or a *UserEffectSym. Go has no
// sealed-interface idiom, so this is enforced by a private marker method
// rather than a closed union.
type MethodOwner interface {
	TypeSymbol
	isMethodOwner()
}

func (*InterfaceSym) isMethodOwner() {}

// MethodSym is an operation signature belonging to an interface or a user
// effect. It is a BlockSymbol: calling a method (or performing an effect
// operation, which is sugar for the same thing) is a block application.
//
// DESIGN.md Open Question #1: interfaces and user effects share this one
// symbol shape, but differ in what EffectRow returns — an interface method
// call does not itself perform the enclosing interface (interfaces are not
// effects), while a user effect operation always performs its own effect
// in addition to whatever the signature declares.
type MethodSym struct {
	base
	TParams  []*types.TypeVar
	Params   []types.Param
	Return   types.ValueType
	declared types.EffectSet
}

func (*MethodSym) isTermSymbol()  {}
func (*MethodSym) isBlockSymbol() {}

// NewMethod constructs a method/operation signature with its as-declared
// effect row (before any owner-dependent adjustment).
func NewMethod(name string, tparams []*types.TypeVar, params []types.Param, ret types.ValueType, declared types.EffectSet) *MethodSym {
	return &MethodSym{
		base:     base{name: names.New(name)},
		TParams:  tparams,
		Params:   params,
		Return:   ret,
		declared: declared,
	}
}

// Declared returns the signature's effect row exactly as written, with no
// owner adjustment. EffectRow is almost always what callers want instead.
func (m *MethodSym) Declared() types.EffectSet { return m.declared }

// EffectRow returns the effective effect row of calling this method,
// given its owner. For an *InterfaceSym the row is the declared row
// unchanged — interfaces do not themselves contribute an effect. For a
// *UserEffectSym the row is the declared row with the owning effect
// unioned in, since performing one of a user effect's operations always
// performs that effect.
func (m *MethodSym) EffectRow(owner MethodOwner) types.EffectSet {
	switch o := owner.(type) {
	case *InterfaceSym:
		return m.declared
	case *UserEffectSym:
		return m.declared.Union(types.Effects(types.EffectRef{Symbol: o}))
	default:
		return m.declared
	}
}
