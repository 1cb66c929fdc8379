package treewalk

import (
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/runtime"
)

// env is a persistent, parent-linked scope — the tree-walk analogue of
// the teacher's evaluator.Environment chain (internal/evaluator/object.go
// in the deleted teacher package), keyed by names.Name.String() since
// core names compare structurally rather than by Go identity.
type env struct {
	vars   map[string]runtime.Value
	parent *env
}

func newEnv(parent *env) *env { return &env{vars: map[string]runtime.Value{}, parent: parent} }

func (e *env) bind(n names.Name, v runtime.Value) { e.vars[n.String()] = v }

func (e *env) lookup(n names.Name) (runtime.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[n.String()]; ok {
			return v, true
		}
	}
	return nil, false
}

// blockValue is anything core.Block evaluates to: something that can be
// applied to arguments and, for Member's sake, asked for one of its named
// operations.
type blockValue interface {
	apply(i *interp, args []runtime.Value) runtime.Control
}

// memberSource is implemented by every blockValue a core.Member can
// select an operation off: a capability bundle handed to a Try body, a
// mutable variable's cell, or a block literal implementing several named
// operations (core.New).
type memberSource interface {
	member(op string) blockValue
}

// closure is a BlockLit captured over its defining scope.
type closure struct {
	params []names.Name
	body   core.Stmt
	env    *env
}

func (c *closure) apply(i *interp, args []runtime.Value) runtime.Control {
	callEnv := newEnv(c.env)
	for idx, p := range c.params {
		if idx < len(args) {
			callEnv.bind(p, args[idx])
		}
	}
	return i.evalStmt(c.body, callEnv)
}

// nativeBlock wraps a Go function as a blockValue — used for the
// "$op-"-prefixed arithmetic/comparison builtins and for extern
// functions the host registers (the treewalk analogue of the teacher's
// evaluator.RegisterBuiltins).
type nativeBlock struct {
	fn func(args []runtime.Value) runtime.Control
}

func (b *nativeBlock) apply(i *interp, args []runtime.Value) runtime.Control {
	return b.fn(args)
}

// capabilityBundle is the value a Try body's single block parameter is
// bound to: selecting one of its operations by name yields a blockValue
// that, applied, shifts to the handler that installed it (spec §4.6).
type capabilityBundle map[string]runtime.Capability

func (c capabilityBundle) member(op string) blockValue {
	cap, ok := c[op]
	if !ok {
		return &nativeBlock{fn: func([]runtime.Value) runtime.Control {
			return runtime.Return(struct{}{})
		}}
	}
	return &nativeBlock{fn: func(args []runtime.Value) runtime.Control { return cap(args...) }}
}

// cellBlock is the value a mutable variable's name resolves to: a block
// exposing the "get"/"put" operations core.Member.Op selects between
// (the lowering produces Op names "state.get"/"state.put", whose
// .Local() is "get"/"put" — see internal/transformer/expr.go's
// transformIdent/transformAssign).
type cellBlock struct {
	ref runtime.CellRef
}

func (c *cellBlock) apply(i *interp, args []runtime.Value) runtime.Control {
	return runtime.Get(c.ref)
}

func (c *cellBlock) member(op string) blockValue {
	switch op {
	case "get":
		return &nativeBlock{fn: func([]runtime.Value) runtime.Control { return runtime.Get(c.ref) }}
	case "put":
		return &nativeBlock{fn: func(args []runtime.Value) runtime.Control {
			var v runtime.Value
			if len(args) > 0 {
				v = args[0]
			}
			return runtime.Put(c.ref, v)
		}}
	default:
		return &nativeBlock{fn: func([]runtime.Value) runtime.Control { return runtime.Return(struct{}{}) }}
	}
}

// newBlock is the value core.New produces: a block implementing several
// named operations, each its own BlockLit.
type newBlock struct {
	impl map[string]*closure
}

func (nb *newBlock) apply(i *interp, args []runtime.Value) runtime.Control {
	return runtime.Return(nb)
}

func (nb *newBlock) member(op string) blockValue {
	if c, ok := nb.impl[op]; ok {
		return c
	}
	return &nativeBlock{fn: func([]runtime.Value) runtime.Control { return runtime.Return(struct{}{}) }}
}

// dataValue is a constructed data/record value: a tag plus its
// positional field values.
type dataValue struct {
	ctor   string
	fields []runtime.Value
}

// regionHandle is the value a Region's block parameter binds to — an
// opaque capability the interpreter never needs to look inside, since
// every State allocated "in" it is tracked by the live runtime.Stack
// segment the Region's Reset installs rather than by this value.
type regionHandle struct{ tag string }
