package transformer

import (
	"testing"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/symtab"
	"github.com/effect-lang/effc/internal/types"
)

func markPure(store *annotations.Store, n ast.Node) {
	annotations.Annotate(store, namer.CaptureSetAnn, n, types.Empty)
}

func markIO(store *annotations.Store, n ast.Node) {
	annotations.Annotate(store, namer.CaptureSetAnn, n, types.NewCaptureSet(types.IO))
}

func markControl(store *annotations.Store, n ast.Node) {
	annotations.Annotate(store, namer.CaptureSetAnn, n, types.NewCaptureSet(types.ControlCapability))
}

func TestValDeclPureBindingLowersToLet(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	init := &ast.IntLit{Value: 1}
	markPure(store, init)
	decl := &ast.ValDecl{Name: "x", Init: init}

	stmt := tr.TransformBody(&ast.Block{Stmts: []ast.Stmt{decl}})

	let, ok := stmt.(*core.Let)
	if !ok {
		t.Fatalf("expected a pureOrIO ValDecl to lower to Let, got %T", stmt)
	}
	if _, ok := let.Expr.(*core.Run); !ok {
		t.Fatalf("expected Let's expr to be Run(transform(binding)), got %T", let.Expr)
	}
}

func TestValDeclEffectfulBindingLowersToVal(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	init := &ast.IntLit{Value: 1}
	markControl(store, init)
	decl := &ast.ValDecl{Name: "x", Init: init}

	stmt := tr.TransformBody(&ast.Block{Stmts: []ast.Stmt{decl}})

	if _, ok := stmt.(*core.Val); !ok {
		t.Fatalf("expected an effectful ValDecl to lower to Val, got %T", stmt)
	}
}

func TestTrailingExprTailIsReturn(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	lit := &ast.IntLit{Value: 42}
	body := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: lit}}}

	stmt := tr.TransformBody(body)
	ret, ok := stmt.(*core.Return)
	if !ok {
		t.Fatalf("expected a lone trailing expression to lower to Return, got %T", stmt)
	}
	if lit2, ok := ret.Value.(*core.Literal); !ok || lit2.Value.(int64) != 42 {
		t.Fatalf("expected Return(Literal(42)), got %#v", ret.Value)
	}
}

func TestIfInTailPositionLowersToBareIf(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	cond := &ast.BoolLit{Value: true}
	thenB := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.IntLit{Value: 1}}}}
	elseB := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.IntLit{Value: 2}}}}
	ifExpr := &ast.If{Cond: cond, Then: thenB, Else: elseB}

	stmt := tr.TransformBody(&ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: ifExpr}}})

	// bind(ifStmt) pushes Val($t, If, Return($t)); since this is the whole
	// tail of the block, reify's Val(x, s, Return(x)) -> s peephole rule
	// collapses it straight down to the If itself.
	if _, ok := stmt.(*core.If); !ok {
		t.Fatalf("expected If in tail position to reduce to a bare core.If, got %T", stmt)
	}
}

func TestWhileDesugarsToRecursiveBlockDefAndCall(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	cond := &ast.BoolLit{Value: true}
	markControl(store, cond)
	loop := &ast.While{Cond: cond, Body: &ast.Block{}}

	stmt := tr.TransformBody(&ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: loop}}})

	def, ok := stmt.(*core.Def)
	if !ok {
		t.Fatalf("expected while-loop lowering to introduce a Def for the recursive block, got %T", stmt)
	}
	if _, ok := def.Block.(*core.BlockLit); !ok {
		t.Fatalf("expected the loop's Def to bind a BlockLit, got %T", def.Block)
	}
	if len(tr.Warnings) != 0 {
		t.Fatalf("expected no warning for an effectful while condition, got %v", tr.Warnings)
	}
}

func TestWhileWarnsOnPureCondition(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	cond := &ast.BoolLit{Value: true}
	markPure(store, cond)
	loop := &ast.While{Cond: cond, Body: &ast.Block{}}

	tr.TransformBody(&ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: loop}}})

	if len(tr.Warnings) != 1 {
		t.Fatalf("expected exactly one warning for a statically pure while condition, got %v", tr.Warnings)
	}
}

func TestTryHandleOrdersClausesByEffectDeclarationOrder(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	opA := symtab.NewMethod("a", nil, nil, nil, types.Effects())
	opB := symtab.NewMethod("b", nil, nil, nil, types.Effects())
	eff := &symtab.UserEffectSym{Ops: []*symtab.MethodSym{opA, opB}}
	symtab.SetName(eff, names.New("Eff"))
	mod.DefineType("Eff", eff)

	prog := &ast.Block{}
	handlers := []ast.HandlerImpl{
		{Operation: "b", Body: &ast.Block{}},
		{Operation: "a", Body: &ast.Block{}},
	}
	tryHandle := &ast.TryHandle{Prog: prog, Effect: "Eff", Handlers: handlers}

	stmt := tr.transformTryStmt(tryHandle)
	try, ok := stmt.(*core.Try)
	if !ok {
		t.Fatalf("expected TryHandle to lower to core.Try, got %T", stmt)
	}
	if len(try.Handlers) != 2 {
		t.Fatalf("expected 2 handler clauses, got %d", len(try.Handlers))
	}
	if try.Handlers[0].Operation.Local() != "a" || try.Handlers[1].Operation.Local() != "b" {
		t.Fatalf("expected clauses ordered a, b (declaration order), got %s, %s",
			try.Handlers[0].Operation.Local(), try.Handlers[1].Operation.Local())
	}
}

func TestReifyPeepholeCollapsesTrivialVal(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	// Exercises the Val(x, s, Return(x)) -> s peephole rule directly
	// through the binding buffer, matching the shape an expression-level
	// bind() produces when its temporary is immediately returned.
	m := tr.mark()
	name := tr.freshName("x")
	tr.bindStmt(name.String(), &core.App{})
	result := tr.reify(m, &core.Return{Value: &core.ValueVar{Name: name}})

	if _, ok := result.(*core.App); !ok {
		t.Fatalf("expected Val(x, App, Return(x)) to collapse to the App itself, got %#v", result)
	}
}
