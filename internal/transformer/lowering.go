package transformer

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/symtab"
)

func unit() core.Pure { return &core.Literal{Value: struct{}{}} }

// symbolName returns sym's canonical name if the Namer resolved one,
// falling back to a freshly-built name from the surface spelling
// (needed when tests exercise the transformer against a tree that
// skipped a full Namer pass).
func symbolName(sym symtab.Symbol, fallback string) names.Name {
	if sym != nil {
		return sym.Name()
	}
	return names.New(fallback)
}

// TransformBody lowers a function/handler/region body into a single Stmt
// chain. Every statement boundary inside gets its own reify (spec §4.5:
// "a statement boundary calls reify"); this call adds the outermost one.
func (tr *Transformer) TransformBody(body ast.Stmt) core.Stmt {
	m := tr.mark()
	final := tr.transformStmt(body, nil)
	if final == nil {
		// Only reachable for a genuinely empty block: no statement ever
		// produced a tail value, so the block's implicit result is unit.
		final = &core.Return{Value: unit()}
	}
	return tr.reify(m, final)
}

// transformStmt lowers s, threading rest as the statement to run
// afterward. rest == nil means s is in tail position: a block's last
// statement's value is the block's own value (ast.Block: "terminated
// implicitly by its last statement's value"), so an ExprStmt in tail
// position returns its value instead of discarding it into Return(unit).
func (tr *Transformer) transformStmt(s ast.Stmt, rest core.Stmt) core.Stmt {
	switch st := s.(type) {
	case *ast.Block:
		return tr.transformSeq(st.Stmts, 0, rest)
	case *ast.ValDecl:
		return tr.transformValDecl(st, rest)
	case *ast.VarDecl:
		return tr.transformVarDecl(st, rest)
	case *ast.FunDecl:
		return tr.transformFunDef(st, rest)
	case *ast.ExprStmt:
		return tr.transformExprStmt(st.Expr, rest)
	default:
		if rest != nil {
			return rest
		}
		return &core.Return{Value: unit()}
	}
}

func (tr *Transformer) continuation(rest core.Stmt) core.Stmt {
	if rest != nil {
		return rest
	}
	return &core.Return{Value: unit()}
}

// transformSeq lowers a statement list by folding from the back, so each
// statement's lowering receives everything after it as its `rest`. Each
// element gets its own reify, so bindings introduced while lowering one
// statement wrap tightly around {that statement ++ everything after it}
// rather than leaking into a sibling's scope.
//
// tail (and hence the recursion's base case) is threaded through
// unconverted, including when it's nil: that nil is what tells the very
// last statement in the list it's in tail position, so transformStmt's
// ExprStmt case can return the expression's own value instead of
// discarding it.
func (tr *Transformer) transformSeq(stmts []ast.Stmt, idx int, tail core.Stmt) core.Stmt {
	if idx >= len(stmts) {
		return tail
	}
	rest := tr.transformSeq(stmts, idx+1, tail)
	m := tr.mark()
	built := tr.transformStmt(stmts[idx], rest)
	return tr.reify(m, built)
}

// transformValDecl implements spec §4.5's ValDef rule: a pureOrIO binding
// becomes Let(x, Run(transform(binding)), rest); an effectful binding
// becomes Val(x, transform(binding), rest).
func (tr *Transformer) transformValDecl(d *ast.ValDecl, rest core.Stmt) core.Stmt {
	sym, _ := tr.symbolOf(ast.Node(d))
	name := symbolName(sym, d.Name)
	body := tr.continuation(rest)

	m := tr.mark()
	bindingStmt := tr.transformExprStmt(d.Init, nil)
	bindingStmt = tr.reify(m, bindingStmt)

	if tr.pureOrIO(d.Init) {
		return &core.Let{Name: name, Expr: &core.Run{Stmt: bindingStmt}, Body: body}
	}
	return &core.Val{Name: name, Binding: bindingStmt, Body: body}
}

// transformVarDecl implements spec §4.5's VarDef rule: State(sym,
// bind(init), region, rest).
func (tr *Transformer) transformVarDecl(d *ast.VarDecl, rest core.Stmt) core.Stmt {
	sym, _ := tr.symbolOf(ast.Node(d))
	name := symbolName(sym, d.Name)
	region := d.Region
	if region == "" {
		region = "$global"
	}
	init := tr.transformExprValue(d.Init)
	return &core.State{Name: name, Init: init, Region: strName(region), Body: tr.continuation(rest)}
}
