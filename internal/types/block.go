package types

import (
	"fmt"
	"strings"
)

// BlockType is the block (function-like) type universe of spec.md §3.
type BlockType interface {
	isBlockType()
	String() string
	Dealias() BlockType
	FreeTypeVars() []*TypeVar
	Apply(Subst) BlockType
}

// Interface is a block type for a set of abstract operations a handler
// must implement (spec §3/§4.5: "Interface" block type; §9's open
// question distinguishes it from UserEffect for the purposes of
// Method.ret).
type Interface struct {
	Name string
	Ops  []OperationSig
}

func (*Interface) isBlockType()     {}
func (i *Interface) String() string { return i.Name }
func (i *Interface) Dealias() BlockType { return i }
func (i *Interface) FreeTypeVars() []*TypeVar {
	var vars []*TypeVar
	for _, op := range i.Ops {
		vars = append(vars, op.FreeTypeVars()...)
	}
	return vars
}
func (i *Interface) Apply(s Subst) BlockType {
	ops := make([]OperationSig, len(i.Ops))
	for idx, op := range i.Ops {
		ops[idx] = op.Apply(s)
	}
	return &Interface{Name: i.Name, Ops: ops}
}

// Capability is a block type granting access to a single effect.
type Capability struct {
	Effect Effect
}

func (*Capability) isBlockType()     {}
func (c *Capability) String() string { return fmt.Sprintf("cap[%s]", c.Effect.String()) }
func (c *Capability) Dealias() BlockType { return &Capability{Effect: c.Effect.dealiasEffect()} }
func (c *Capability) FreeTypeVars() []*TypeVar { return nil }
func (c *Capability) Apply(Subst) BlockType    { return c }

// Module is a block type for a module-as-value (its operations/bindings).
type Module struct {
	Ops []OperationSig
}

func (*Module) isBlockType()     {}
func (m *Module) String() string { return "module" }
func (m *Module) Dealias() BlockType { return m }
func (m *Module) FreeTypeVars() []*TypeVar {
	var vars []*TypeVar
	for _, op := range m.Ops {
		vars = append(vars, op.FreeTypeVars()...)
	}
	return vars
}
func (m *Module) Apply(s Subst) BlockType {
	ops := make([]OperationSig, len(m.Ops))
	for idx, op := range m.Ops {
		ops[idx] = op.Apply(s)
	}
	return &Module{Ops: ops}
}

// Param is a single parameter in a Function's parameter section; Value
// holds the value-type for a value parameter, Block holds the block-type
// for a block parameter. Exactly one of the two is non-nil, matching the
// invariant that a parameter is either a value or a block parameter.
type Param struct {
	Name  string
	Value ValueType
	Block BlockType
}

func (p Param) isBlockParam() bool { return p.Block != nil }

func (p Param) String() string {
	if p.Block != nil {
		return fmt.Sprintf("{%s: %s}", p.Name, p.Block.String())
	}
	return fmt.Sprintf("(%s: %s)", p.Name, p.Value.String())
}

func (p Param) FreeTypeVars() []*TypeVar {
	if p.Block != nil {
		return p.Block.FreeTypeVars()
	}
	return p.Value.FreeTypeVars()
}

func (p Param) Apply(s Subst) Param {
	if p.Block != nil {
		return Param{Name: p.Name, Block: p.Block.Apply(s)}
	}
	return Param{Name: p.Name, Value: p.Value.Apply(s)}
}

// Function is the block type of an ordinary function/block: a list of
// parameter sections (spec §3: "sections is a list-of-lists, mixing value
// and block parameter groups"), a return value type, and an effect row.
type Function struct {
	TParams  []*TypeVar
	Sections [][]Param
	Return   ValueType
	Effects  EffectSet
}

func (*Function) isBlockType() {}
func (f *Function) String() string {
	var secs []string
	for _, sec := range f.Sections {
		var ps []string
		for _, p := range sec {
			ps = append(ps, p.String())
		}
		secs = append(secs, "("+strings.Join(ps, ", ")+")")
	}
	ret := "?"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("%s ⟹ %s / %s", strings.Join(secs, ""), ret, f.Effects.String())
}
func (f *Function) Dealias() BlockType {
	secs := make([][]Param, len(f.Sections))
	for i, sec := range f.Sections {
		ns := make([]Param, len(sec))
		for j, p := range sec {
			if p.Block != nil {
				ns[j] = Param{Name: p.Name, Block: p.Block.Dealias()}
			} else {
				ns[j] = Param{Name: p.Name, Value: p.Value.Dealias()}
			}
		}
		secs[i] = ns
	}
	var ret ValueType
	if f.Return != nil {
		ret = f.Return.Dealias()
	}
	return &Function{TParams: f.TParams, Sections: secs, Return: ret, Effects: f.Effects.Dealias()}
}
func (f *Function) FreeTypeVars() []*TypeVar {
	var vars []*TypeVar
	for _, sec := range f.Sections {
		for _, p := range sec {
			vars = append(vars, p.FreeTypeVars()...)
		}
	}
	if f.Return != nil {
		vars = append(vars, f.Return.FreeTypeVars()...)
	}
	return vars
}
func (f *Function) Apply(s Subst) BlockType {
	secs := make([][]Param, len(f.Sections))
	for i, sec := range f.Sections {
		ns := make([]Param, len(sec))
		for j, p := range sec {
			ns[j] = p.Apply(s)
		}
		secs[i] = ns
	}
	var ret ValueType
	if f.Return != nil {
		ret = f.Return.Apply(s)
	}
	return &Function{TParams: f.TParams, Sections: secs, Return: ret, Effects: f.Effects}
}

// OperationSig is the signature of a single operation declared on an
// Interface or Module block type.
type OperationSig struct {
	Name    string
	TParams []*TypeVar
	Params  []Param
	Return  ValueType
}

func (o OperationSig) FreeTypeVars() []*TypeVar {
	var vars []*TypeVar
	for _, p := range o.Params {
		vars = append(vars, p.FreeTypeVars()...)
	}
	if o.Return != nil {
		vars = append(vars, o.Return.FreeTypeVars()...)
	}
	return vars
}

func (o OperationSig) Apply(s Subst) OperationSig {
	params := make([]Param, len(o.Params))
	for i, p := range o.Params {
		params[i] = p.Apply(s)
	}
	var ret ValueType
	if o.Return != nil {
		ret = o.Return.Apply(s)
	}
	return OperationSig{Name: o.Name, TParams: o.TParams, Params: params, Return: ret}
}

// BlockTypeEqual compares two block types up to dealiasing.
func BlockTypeEqual(a, b BlockType) bool {
	return blockTypeEqualDealiased(a.Dealias(), b.Dealias())
}

func blockTypeEqualDealiased(a, b BlockType) bool {
	switch av := a.(type) {
	case *Interface:
		bv, ok := b.(*Interface)
		return ok && av.Name == bv.Name
	case *Capability:
		bv, ok := b.(*Capability)
		return ok && EffectEqual(av.Effect, bv.Effect)
	case *Module:
		_, ok := b.(*Module)
		return ok
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Sections) != len(bv.Sections) {
			return false
		}
		for i := range av.Sections {
			if len(av.Sections[i]) != len(bv.Sections[i]) {
				return false
			}
		}
		return EffectSetEqual(av.Effects, bv.Effects)
	default:
		return false
	}
}
