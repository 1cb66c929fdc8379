package transformer

import (
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
)

type bindKind int

const (
	bindVal bindKind = iota
	bindLet
	bindDef
)

// binding is one pending introduction in the scoped binding buffer (spec
// §4.5 "Binding reification"): expression-level lowering appends here
// instead of immediately nesting a Val/Let/Def, and a statement boundary
// calls reify to fold the buffer around the computed statement.
type binding struct {
	kind    bindKind
	Name    string
	Binding core.Stmt  // for bindVal
	Expr    core.Expr  // for bindLet
	Block   core.Block // for bindDef
}

func strName(s string) names.Name { return names.New(s) }

// bindStmt pushes a Val-kind binding: x is bound to the result of an
// effectful sub-statement.
func (tr *Transformer) bindStmt(name string, s core.Stmt) {
	tr.buffer = append(tr.buffer, binding{kind: bindVal, Name: name, Binding: s})
}

// bindExpr pushes a Let-kind binding: x is bound to a pure/IO expression.
func (tr *Transformer) bindExpr(name string, e core.Expr) {
	tr.buffer = append(tr.buffer, binding{kind: bindLet, Name: name, Expr: e})
}

// bindBlock pushes a Def-kind binding: x names a block literal.
func (tr *Transformer) bindBlock(name string, b core.Block) {
	tr.buffer = append(tr.buffer, binding{kind: bindDef, Name: name, Block: b})
}

// mark returns the buffer's current length, a mark that reify can
// fold back down to — used when an expression's lowering must only fold
// the bindings *it* introduced (e.g. a handler clause body), not
// everything an enclosing call has accumulated.
func (tr *Transformer) mark() int { return len(tr.buffer) }

// reify folds every binding pushed since mark (in insertion order,
// first-in-outermost — i.e. the most recently pushed binding becomes the
// innermost wrapper) around final, applying the three peephole
// reductions after each wrap (spec §4.5):
//
//	Val(x, s, Return(x))        -> s
//	Let(x, Run(s), Return(x))   -> s
//	Let(x, p:Pure, Return(x))   -> Return(p)
func (tr *Transformer) reify(mark int, final core.Stmt) core.Stmt {
	pending := tr.buffer[mark:]
	tr.buffer = tr.buffer[:mark]
	for i := len(pending) - 1; i >= 0; i-- {
		b := pending[i]
		switch b.kind {
		case bindVal:
			final = reduce(&core.Val{Name: strName(b.Name), Binding: b.Binding, Body: final})
		case bindLet:
			final = reduce(&core.Let{Name: strName(b.Name), Expr: b.Expr, Body: final})
		case bindDef:
			final = &core.Def{Name: strName(b.Name), Block: b.Block, Body: final}
		}
	}
	return final
}

func reduce(s core.Stmt) core.Stmt {
	switch v := s.(type) {
	case *core.Val:
		if ret, ok := v.Body.(*core.Return); ok {
			if vv, ok := ret.Value.(*core.ValueVar); ok && vv.Name.String() == v.Name.String() {
				return v.Binding
			}
		}
	case *core.Let:
		if ret, ok := v.Body.(*core.Return); ok {
			if vv, ok := ret.Value.(*core.ValueVar); ok && vv.Name.String() == v.Name.String() {
				if run, ok := v.Expr.(*core.Run); ok {
					return run.Stmt
				}
				if pure, ok := v.Expr.(core.Pure); ok {
					return &core.Return{Value: pure}
				}
			}
		}
	}
	return s
}
