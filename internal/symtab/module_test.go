package symtab

import "testing"

func TestLookupOwnTypeFirst(t *testing.T) {
	dep := NewModule("dep")
	dep.DefineType("T", &AliasSym{})

	m := NewModule("m")
	ownT := &AliasSym{}
	m.DefineType("T", ownT)
	m.AddDependency(dep)

	got, ok := m.Typ("T")
	if !ok || got != TypeSymbol(ownT) {
		t.Fatalf("expected own T to shadow dependency's T")
	}
}

func TestLookupFallsBackToDependencies(t *testing.T) {
	dep := NewModule("dep")
	depT := &AliasSym{}
	dep.DefineType("T", depT)

	m := NewModule("m")
	m.AddDependency(dep)

	got, ok := m.Typ("T")
	if !ok || got != TypeSymbol(depT) {
		t.Fatalf("expected fallback to dependency's T")
	}
}

func TestLaterImportShadowsEarlier(t *testing.T) {
	first := NewModule("first")
	first.DefineType("T", &AliasSym{})
	second := NewModule("second")
	secondT := &AliasSym{}
	second.DefineType("T", secondT)

	m := NewModule("m")
	m.AddDependency(first)
	m.AddDependency(second)

	got, ok := m.Typ("T")
	if !ok || got != TypeSymbol(secondT) {
		t.Fatal("expected the later-imported module's symbol to shadow the earlier one")
	}
}

func TestTrmAccumulatesOverloadsAcrossDependencies(t *testing.T) {
	dep := NewModule("dep")
	depFn := &Function{}
	dep.DefineTerm("f", depFn)

	m := NewModule("m")
	ownFn := &Function{}
	m.DefineTerm("f", ownFn)
	m.AddDependency(dep)

	got := m.Trm("f")
	if len(got) != 2 {
		t.Fatalf("expected both overloads visible, got %d", len(got))
	}
}

func TestQualifiedLookupThroughChildren(t *testing.T) {
	leaf := NewModule("leaf")
	leafT := &AliasSym{}
	leaf.DefineType("T", leafT)

	root := NewModule("root")
	root.AddChild("leaf", leaf)

	got, ok := root.QualifiedTyp([]string{"leaf", "T"})
	if !ok || got != TypeSymbol(leafT) {
		t.Fatal("expected qualified lookup to resolve through child module")
	}

	mod, ok := root.Mod([]string{"leaf"})
	if !ok || mod != leaf {
		t.Fatal("expected Mod to resolve the child module itself")
	}
}

func TestTopoOrderDependenciesBeforeDependents(t *testing.T) {
	base := NewModule("base")
	mid := NewModule("mid")
	mid.AddDependency(base)
	top := NewModule("top")
	top.AddDependency(mid)

	order := TopoOrder(top)
	index := make(map[*Module]int)
	for i, m := range order {
		index[m] = i
	}
	if index[base] > index[mid] || index[mid] > index[top] {
		t.Fatalf("expected base < mid < top in topo order, got %v", order)
	}
}

func TestSourceModuleDistinction(t *testing.T) {
	builtin := NewModule("builtins")
	user := NewSourceModule("main")

	if builtin.IsSourceModule() {
		t.Fatal("expected virtual module to not be a source module")
	}
	if !user.IsSourceModule() {
		t.Fatal("expected NewSourceModule to mark the module as user source")
	}
}
