package transformer

import (
	"testing"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/symtab"
)

func TestMatchBranchesPreserveDeclarationOrderAndBindFields(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	m := &ast.Match{
		Scrutinee: &ast.Ident{Name: "lst"},
		Clauses: []ast.MatchClause{
			{
				Pattern: &ast.CtorPattern{
					Constructor: "Cons",
					Fields:      []ast.Pattern{&ast.IdentPattern{Name: "hd"}, &ast.IdentPattern{Name: "tl"}},
				},
				Body: &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.Ident{Name: "hd"}}}},
			},
			{
				Pattern: &ast.CtorPattern{Constructor: "Nil"},
				Body:    &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.IntLit{Value: 0}}}},
			},
		},
	}

	stmt := tr.transformMatchStmt(m)
	let, ok := stmt.(*core.Let)
	if !ok {
		t.Fatalf("expected the scrutinee binding to be a Let, got %T", stmt)
	}
	match, ok := let.Body.(*core.Match)
	if !ok {
		t.Fatalf("expected the match body to be a core.Match, got %T", let.Body)
	}
	if len(match.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(match.Branches))
	}
	if match.Branches[0].Constructor.Local() != "Cons" || match.Branches[1].Constructor.Local() != "Nil" {
		t.Fatalf("expected branches in declaration order Cons, Nil; got %s, %s",
			match.Branches[0].Constructor.Local(), match.Branches[1].Constructor.Local())
	}
	if len(match.Branches[0].Target.Params) != 2 {
		t.Fatalf("expected Cons branch to bind 2 field params, got %d", len(match.Branches[0].Target.Params))
	}
}

func TestMatchWildcardRowSuppliesDefaultBranch(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	m := &ast.Match{
		Scrutinee: &ast.Ident{Name: "lst"},
		Clauses: []ast.MatchClause{
			{
				Pattern: &ast.CtorPattern{Constructor: "Cons", Fields: []ast.Pattern{&ast.WildcardPattern{}, &ast.WildcardPattern{}}},
				Body:    &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.IntLit{Value: 1}}}},
			},
			{
				Pattern: &ast.WildcardPattern{},
				Body:    &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.IntLit{Value: 2}}}},
			},
		},
	}

	stmt := tr.transformMatchStmt(m)
	let := stmt.(*core.Let)
	match, ok := let.Body.(*core.Match)
	if !ok {
		t.Fatalf("expected a core.Match, got %T", let.Body)
	}
	if len(match.Branches) != 1 {
		t.Fatalf("expected exactly 1 constructor branch (Cons), got %d", len(match.Branches))
	}
	if _, ok := match.Default.Body.(*core.Hole); ok {
		t.Fatal("expected the wildcard clause to supply a real Default, not fall back to Hole")
	}
}

func TestEmptyMatchCompilesToHole(t *testing.T) {
	store := annotations.New()
	mod := symtab.NewSourceModule("main")
	tr := New(store, mod)

	stmt := tr.compileMatch(nil, nil)
	if _, ok := stmt.(*core.Hole); !ok {
		t.Fatalf("expected an empty match to compile to Hole, got %T", stmt)
	}
}
