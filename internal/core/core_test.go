package core

import (
	"testing"

	"github.com/effect-lang/effc/internal/names"
)

func TestIsAtomic(t *testing.T) {
	v := &ValueVar{Name: names.New("x")}
	lit := &Literal{Value: 42}
	app := &PureApp{Callee: names.New("f"), Args: []Pure{v}}

	if !IsAtomic(v) {
		t.Error("ValueVar should be atomic")
	}
	if !IsAtomic(lit) {
		t.Error("Literal should be atomic")
	}
	if IsAtomic(app) {
		t.Error("PureApp should not be atomic")
	}
}

func TestStmtTreeConstruction(t *testing.T) {
	// Let(x, Literal(1), Return(ValueVar(x)))
	tree := &Let{
		Name: names.New("x"),
		Expr: &Literal{Value: 1},
		Body: &Return{Value: &ValueVar{Name: names.New("x")}},
	}

	var s Stmt = tree
	if _, ok := s.(*Let); !ok {
		t.Fatal("expected *Let")
	}
	ret, ok := tree.Body.(*Return)
	if !ok {
		t.Fatal("expected Return body")
	}
	if _, ok := ret.Value.(*ValueVar); !ok {
		t.Fatal("expected ValueVar return value")
	}
}

func TestMatchBranchesPreserveDeclarationOrder(t *testing.T) {
	m := &Match{
		Scrutinee: names.New("scrut"),
		Branches: []MatchBranch{
			{Constructor: names.New("Some"), Target: &BlockLit{}},
			{Constructor: names.New("None"), Target: &BlockLit{}},
		},
	}
	if m.Branches[0].Constructor.String() != "Some" || m.Branches[1].Constructor.String() != "None" {
		t.Fatal("expected branch order to be preserved")
	}
}

func TestHoleIsStmt(t *testing.T) {
	var s Stmt = &Hole{}
	if _, ok := s.(*Hole); !ok {
		t.Fatal("expected *Hole to satisfy Stmt")
	}
}
