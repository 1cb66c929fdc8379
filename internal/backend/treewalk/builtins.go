package treewalk

import (
	"fmt"
	"io"

	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/runtime"
)

// registerBuiltins installs the "$op-"-prefixed operator callees the
// parser desugars infix expressions to (internal/parser/expr.go's
// parseInfix: `ast.NewCall(pos, ast.NewIdent(pos, "$op-"+op), ...)`) plus
// a handful of IO primitives, the tree-walk analogue of the teacher's
// evaluator.RegisterBuiltins (internal/evaluator/builtins.go, deleted
// from this workspace but grounding this function's shape: a flat
// name -> Go-function table installed once into the global env).
func (i *interp) registerBuiltins(global *env, stdout, stderr io.Writer) {
	bind := func(name string, fn func(a, b runtime.Value) runtime.Value) {
		global.bind(names.New(name), &nativeBlock{fn: func(args []runtime.Value) runtime.Control {
			var a, b runtime.Value
			if len(args) > 0 {
				a = args[0]
			}
			if len(args) > 1 {
				b = args[1]
			}
			return runtime.Return(fn(a, b))
		}})
	}

	bind("$op-+", addOp)
	bind("$op--", func(a, b runtime.Value) runtime.Value { return intOp(a, b, func(x, y int64) int64 { return x - y }) })
	bind("$op-*", func(a, b runtime.Value) runtime.Value { return intOp(a, b, func(x, y int64) int64 { return x * y }) })
	bind("$op-/", func(a, b runtime.Value) runtime.Value {
		return intOp(a, b, func(x, y int64) int64 {
			if y == 0 {
				return 0
			}
			return x / y
		})
	})
	bind("$op-%", func(a, b runtime.Value) runtime.Value {
		return intOp(a, b, func(x, y int64) int64 {
			if y == 0 {
				return 0
			}
			return x % y
		})
	})
	bind("$op-==", func(a, b runtime.Value) runtime.Value { return a == b })
	bind("$op-!=", func(a, b runtime.Value) runtime.Value { return a != b })
	bind("$op-<", func(a, b runtime.Value) runtime.Value { return cmpOp(a, b) < 0 })
	bind("$op->", func(a, b runtime.Value) runtime.Value { return cmpOp(a, b) > 0 })
	bind("$op-<=", func(a, b runtime.Value) runtime.Value { return cmpOp(a, b) <= 0 })
	bind("$op->=", func(a, b runtime.Value) runtime.Value { return cmpOp(a, b) >= 0 })
	bind("$op-&&", func(a, b runtime.Value) runtime.Value { return truthy(a) && truthy(b) })
	bind("$op-||", func(a, b runtime.Value) runtime.Value { return truthy(a) || truthy(b) })

	global.bind(names.New("println"), &nativeBlock{fn: func(args []runtime.Value) runtime.Control {
		for idx, a := range args {
			if idx > 0 {
				fmt.Fprint(stdout, " ")
			}
			fmt.Fprint(stdout, display(a))
		}
		fmt.Fprintln(stdout)
		return runtime.Return(struct{}{})
	}})
	global.bind(names.New("print"), &nativeBlock{fn: func(args []runtime.Value) runtime.Control {
		for _, a := range args {
			fmt.Fprint(stdout, display(a))
		}
		return runtime.Return(struct{}{})
	}})
}

func addOp(a, b runtime.Value) runtime.Value {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok || bok {
		if !aok {
			as = display(a)
		}
		if !bok {
			bs = display(b)
		}
		return as + bs
	}
	return intOp(a, b, func(x, y int64) int64 { return x + y })
}

func intOp(a, b runtime.Value, f func(x, y int64) int64) int64 {
	ai, _ := a.(int64)
	bi, _ := b.(int64)
	return f(ai, bi)
}

func cmpOp(a, b runtime.Value) int {
	switch av := a.(type) {
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func truthy(v runtime.Value) bool {
	b, _ := v.(bool)
	return b
}

func display(v runtime.Value) string {
	switch vv := v.(type) {
	case *dataValue:
		if len(vv.fields) == 0 {
			return vv.ctor
		}
		s := vv.ctor + "("
		for i, f := range vv.fields {
			if i > 0 {
				s += ", "
			}
			s += display(f)
		}
		return s + ")"
	case struct{}:
		return "()"
	default:
		return fmt.Sprint(v)
	}
}
