package treewalk

import (
	"fmt"

	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/runtime"
)

// interp drives core IR through internal/runtime as one continuous
// Control chain (never an isolated Run(ctrl, nil) for a "synchronous"
// sub-expression): runtime.Get/Put resolve a CellRef against whatever
// Stack is actually current (findSegment walks its live Tail chain), so
// anything that might touch a mutable cell has to stay on that one
// trampoline from the top-level Run call down. The sole exception is
// evalPure's nativeBlock fast path for "$op-" builtins, which by
// construction never allocate or touch a cell, so running them against a
// throwaway nil Stack is safe.
type interp struct {
	ctorFields map[string][]string
}

func newInterp(defs []core.Definition) *interp {
	i := &interp{ctorFields: map[string][]string{}}
	for _, d := range defs {
		switch dd := d.(type) {
		case *core.DataDef:
			for _, c := range dd.Constructors {
				i.ctorFields[c.Name.Local()] = c.Fields
			}
		case *core.RecordDef:
			i.ctorFields[dd.Name.Local()] = dd.Fields
		}
	}
	return i
}

func (i *interp) isCtor(name names.Name) bool {
	_, ok := i.ctorFields[name.Local()]
	return ok
}

// evalArgs evaluates args left to right, threading each one's Control
// through the next before handing the accumulated values to k — the
// sequencing spec §4.5's ANF form already guarantees at the surface, kept
// explicit here since core.App/DirectApp's Args are typed plain Expr.
func (i *interp) evalArgs(args []core.Expr, e *env, k func([]runtime.Value) runtime.Control) runtime.Control {
	return i.evalArgsFrom(args, 0, make([]runtime.Value, len(args)), e, k)
}

func (i *interp) evalArgsFrom(args []core.Expr, idx int, acc []runtime.Value, e *env, k func([]runtime.Value) runtime.Control) runtime.Control {
	if idx >= len(args) {
		return k(acc)
	}
	return runtime.FlatMap(i.evalExpr(args[idx], e), func(v runtime.Value) runtime.Control {
		acc[idx] = v
		return i.evalArgsFrom(args, idx+1, acc, e, k)
	})
}

func (i *interp) evalStmt(s core.Stmt, e *env) runtime.Control {
	switch st := s.(type) {
	case *core.Val:
		return runtime.FlatMap(i.evalStmt(st.Binding, e), func(v runtime.Value) runtime.Control {
			child := newEnv(e)
			child.bind(st.Name, v)
			return i.evalStmt(st.Body, child)
		})

	case *core.Let:
		return runtime.FlatMap(i.evalExpr(st.Expr, e), func(v runtime.Value) runtime.Control {
			child := newEnv(e)
			child.bind(st.Name, v)
			return i.evalStmt(st.Body, child)
		})

	case *core.Def:
		child := newEnv(e)
		child.bind(st.Name, i.evalBlock(st.Block, child))
		return i.evalStmt(st.Body, child)

	case *core.Return:
		return runtime.Return(i.evalPure(st.Value, e))

	case *core.App:
		return i.evalArgs(st.Args, e, func(argVals []runtime.Value) runtime.Control {
			return i.evalBlock(st.Block, e).apply(i, argVals)
		})

	case *core.If:
		cond := i.evalPure(st.Cond, e)
		if b, _ := cond.(bool); b {
			return i.evalStmt(st.Then, e)
		}
		return i.evalStmt(st.Else, e)

	case *core.Match:
		return i.evalMatch(st, e)

	case *core.Try:
		return i.evalTry(st, e)

	case *core.Region:
		child := newEnv(e)
		if len(st.Body.Params) > 0 {
			child.bind(st.Body.Params[0], &regionHandle{tag: st.Body.Params[0].String()})
		}
		return i.evalStmt(st.Body.Body, child)

	case *core.State:
		return runtime.FlatMap(i.evalExpr(st.Init, e), func(initVal runtime.Value) runtime.Control {
			return runtime.WithState(initVal, func(ref runtime.CellRef) runtime.Control {
				child := newEnv(e)
				child.bind(st.Name, &cellBlock{ref: ref})
				return i.evalStmt(st.Body, child)
			})
		})

	case *core.Hole:
		return func(*runtime.Stack) runtime.Step {
			panic("treewalk: reached unreachable match (Hole)")
		}

	default:
		panic(fmt.Sprintf("treewalk: unhandled core.Stmt %T", s))
	}
}

func (i *interp) evalMatch(m *core.Match, e *env) runtime.Control {
	scrut, _ := e.lookup(m.Scrutinee)
	dv, isData := scrut.(*dataValue)
	if isData {
		for _, br := range m.Branches {
			if br.Constructor.Local() == dv.ctor {
				target := &closure{params: br.Target.Params, body: br.Target.Body, env: e}
				return target.apply(i, dv.fields)
			}
		}
	}
	def := &closure{params: m.Default.Params, body: m.Default.Body, env: e}
	return def.apply(i, nil)
}

// evalTry installs a fresh prompt via runtime.Handle, dispatching each
// handler clause's operation name directly into the Try body's lexical
// scope (the surface language calls an effect operation as a bare
// identifier, e.g. `ask()`, never through the handler's own capability
// parameter — see internal/transformer/expr.go's transformTryStmt, whose
// BlockLit param is a synthetic, never-referenced name).
func (i *interp) evalTry(t *core.Try, e *env) runtime.Control {
	ops := make(map[string]runtime.OpImpl, len(t.Handlers))
	bidi := make(map[string]bool, len(t.Handlers))
	for _, h := range t.Handlers {
		h := h
		ops[h.Operation.Local()] = func(args []runtime.Value, resume runtime.Resume) runtime.Control {
			callEnv := newEnv(e)
			for idx, p := range h.Body.Params {
				if idx < len(args) {
					callEnv.bind(p, args[idx])
				}
			}
			callEnv.bind(h.Resume, &nativeBlock{fn: func(rargs []runtime.Value) runtime.Control {
				var v runtime.Value
				if len(rargs) > 0 {
					v = rargs[0]
				}
				return resume(v)
			}})
			return i.evalStmt(h.Body.Body, callEnv)
		}
	}

	return runtime.Handle(ops, nil, nil, nil, bidi, func(caps map[string]runtime.Capability) runtime.Control {
		bodyEnv := newEnv(e)
		for op, cap := range caps {
			cap := cap
			bodyEnv.bind(names.New(op), &nativeBlock{fn: func(args []runtime.Value) runtime.Control { return cap(args...) }})
		}
		if len(t.Body.Params) > 0 {
			bodyEnv.bind(t.Body.Params[0], &capabilityBundle{})
		}
		return i.evalStmt(t.Body.Body, bodyEnv)
	})
}

func (i *interp) evalExpr(x core.Expr, e *env) runtime.Control {
	switch ex := x.(type) {
	case *core.DirectApp:
		return i.evalArgs(ex.Args, e, func(argVals []runtime.Value) runtime.Control {
			return i.evalBlock(ex.Block, e).apply(i, argVals)
		})
	case *core.Run:
		return i.evalStmt(ex.Stmt, e)
	case core.Pure:
		return runtime.Return(i.evalPure(ex, e))
	default:
		panic(fmt.Sprintf("treewalk: unhandled core.Expr %T", x))
	}
}

func (i *interp) evalPure(p core.Pure, e *env) runtime.Value {
	switch pv := p.(type) {
	case *core.ValueVar:
		v, _ := e.lookup(pv.Name)
		return v
	case *core.Literal:
		return pv.Value
	case *core.Box:
		return i.evalBlock(pv.Block, e)
	case *core.PureApp:
		args := make([]runtime.Value, len(pv.Args))
		for idx, a := range pv.Args {
			args[idx] = i.evalPure(a, e)
		}
		if i.isCtor(pv.Callee) {
			return &dataValue{ctor: pv.Callee.Local(), fields: args}
		}
		bv, ok := e.lookup(pv.Callee)
		if !ok {
			panic("treewalk: unresolved pure callee " + pv.Callee.String())
		}
		nb, ok := bv.(*nativeBlock)
		if !ok {
			panic("treewalk: PureApp callee " + pv.Callee.String() + " is not a pure builtin")
		}
		return runtime.Run(nb.apply(i, args), nil)
	case *core.Select:
		target := i.evalPure(pv.Target, e)
		dv, ok := target.(*dataValue)
		if !ok {
			panic("treewalk: select on non-data value")
		}
		fields := i.ctorFields[dv.ctor]
		for idx, f := range fields {
			if f == pv.Field {
				return dv.fields[idx]
			}
		}
		panic("treewalk: unknown field " + pv.Field + " on " + dv.ctor)
	default:
		panic(fmt.Sprintf("treewalk: unhandled core.Pure %T", p))
	}
}

func (i *interp) evalBlock(b core.Block, e *env) blockValue {
	switch bv := b.(type) {
	case *core.BlockVar:
		v, ok := e.lookup(bv.Name)
		if !ok {
			panic("treewalk: unresolved block " + bv.Name.String())
		}
		blk, ok := v.(blockValue)
		if !ok {
			panic("treewalk: " + bv.Name.String() + " is not a block")
		}
		return blk
	case *core.BlockLit:
		return &closure{params: bv.Params, body: bv.Body, env: e}
	case *core.Member:
		recv := i.evalBlock(bv.Receiver, e)
		src, ok := recv.(memberSource)
		if !ok {
			panic("treewalk: member select on a block with no operations")
		}
		return src.member(bv.Op.Local())
	case *core.Unbox:
		v := i.evalPure(bv.Value, e)
		blk, ok := v.(blockValue)
		if !ok {
			panic("treewalk: unbox of a non-boxed value")
		}
		return blk
	case *core.New:
		impl := make(map[string]*closure, len(bv.Impl))
		for op, lit := range bv.Impl {
			impl[op] = &closure{params: lit.Params, body: lit.Body, env: e}
		}
		return &newBlock{impl: impl}
	default:
		panic(fmt.Sprintf("treewalk: unhandled core.Block %T", b))
	}
}
