package parser

import (
	"testing"

	"github.com/effect-lang/effc/internal/ast"
)

func TestParseSimpleFunDeclWithValAndReturn(t *testing.T) {
	src := `
def add(x: Int, y: Int): Int = {
  val z = x
  z
}
`
	prog, errs := Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	fn, ok := prog.Decls[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("expected *ast.FunDecl, got %T", prog.Decls[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected decl shape: %+v", fn)
	}
	block, ok := fn.Body.(*ast.Block)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("expected a 2-statement body block, got %#v", fn.Body)
	}
	if _, ok := block.Stmts[0].(*ast.ValDecl); !ok {
		t.Fatalf("expected first statement to be a ValDecl, got %T", block.Stmts[0])
	}
}

func TestParseDataDeclWithConstructors(t *testing.T) {
	prog, errs := Parse("t.effc", "data Option { None, Some(value) }")
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
	decl, ok := prog.Decls[0].(*ast.DataDecl)
	if !ok {
		t.Fatalf("expected *ast.DataDecl, got %T", prog.Decls[0])
	}
	if len(decl.Constructors) != 2 || decl.Constructors[1].Name != "Some" {
		t.Fatalf("unexpected constructors: %+v", decl.Constructors)
	}
}

func TestParseIfWhileAndAssign(t *testing.T) {
	src := `
def loop() = {
  var i = 0
  while i {
    i :- i
  }
  if i {
    i
  } else {
    i
  }
}
`
	_, errs := Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
}

func TestParseMatchWithCtorAndWildcardPatterns(t *testing.T) {
	src := `
def describe(o) = match o {
  case None -> 0
  case Some(x) -> x
  case _ -> 0
}
`
	_, errs := Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
}

func TestParseTryWithHandlesEffectInDeclarationOrder(t *testing.T) {
	src := `
effect Flip {
  ask(): Int
}

def run() = try {
  ask()
} with Flip {
  def ask() = 0
}
`
	prog, errs := Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
	fn := prog.Decls[1].(*ast.FunDecl)
	bodyStmt, ok := fn.Body.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt body, got %T", fn.Body)
	}
	th, ok := bodyStmt.Expr.(*ast.TryHandle)
	if !ok {
		t.Fatalf("expected *ast.TryHandle body expression, got %T", bodyStmt.Expr)
	}
	if th.Effect != "Flip" || len(th.Handlers) != 1 || th.Handlers[0].Operation != "ask" {
		t.Fatalf("unexpected handler shape: %+v", th)
	}
}

func TestParseRegionExpr(t *testing.T) {
	src := `
def run() = region r {
  var x = 0 in r
  x
}
`
	_, errs := Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Sorted())
	}
}

func TestParseReportsUnexpectedTokenError(t *testing.T) {
	_, errs := Parse("t.effc", "def () = 0")
	if !errs.HasErrors() {
		t.Fatal("expected a parse error for a function declared with no name")
	}
}
