package symtab

import "github.com/effect-lang/effc/internal/names"

// Module is spec §4.2's symbol-universe/module-graph node: a named scope
// owning a set of type symbols and a set of (possibly overloaded) term
// symbols, plus an ordered list of imported dependency modules.
//
// Grounded on the teacher's internal/modules/module.go (Module{types,
// terms, imports}, reverse-order shadowed lookup by import position) —
// kept nearly verbatim in shape, generalized to the two-universe split
// (TypeSymbol vs. overload-set TermSymbol) and to a SourceModule/UserModule
// distinction (builtin/virtual modules vs. modules parsed from user files,
// mirroring the teacher's Module.IsVirtual).
type Module struct {
	name names.Name

	// types holds at most one TypeSymbol per local name.
	types map[string]TypeSymbol

	// terms accumulates every TermSymbol declared under a local name,
	// since term symbols may be overloaded (multiple functions/methods
	// sharing a name, distinguished by arity/type at call sites).
	terms map[string][]TermSymbol

	// dependencies is the module's import list, in declaration order.
	// Lookup walks it in *reverse*, so a later import shadows an earlier
	// one (spec §4.2: "Imports shadow: later imports in the import list
	// are seen first when walked in reverse").
	dependencies []*Module

	// children holds qualified sub-modules reachable as `this·child`.
	children map[string]*Module

	// sourceModule distinguishes a module synthesized by the runtime
	// (virtual/builtin, e.g. funXYBuiltins) from one parsed out of user
	// source (spec §3's SourceModule annotation target).
	sourceModule bool
}

// NewModule creates an empty module with the given local name.
func NewModule(name string) *Module {
	return &Module{
		name:     names.New(name),
		types:    make(map[string]TypeSymbol),
		terms:    make(map[string][]TermSymbol),
		children: make(map[string]*Module),
	}
}

// NewSourceModule creates an empty module marked as parsed from user
// source (as opposed to a virtual/builtin module).
func NewSourceModule(name string) *Module {
	m := NewModule(name)
	m.sourceModule = true
	return m
}

func (m *Module) Name() names.Name { return m.name }

// IsSourceModule reports whether this module was parsed from user source
// rather than synthesized as a builtin/virtual module.
func (m *Module) IsSourceModule() bool { return m.sourceModule }

// AddDependency appends dep to the module's import list. Order matters:
// later calls shadow earlier ones during lookup.
func (m *Module) AddDependency(dep *Module) {
	m.dependencies = append(m.dependencies, dep)
}

// Dependencies returns the import list in declaration order.
func (m *Module) Dependencies() []*Module { return append([]*Module{}, m.dependencies...) }

// AddChild registers a qualified sub-module reachable as `name·local`.
func (m *Module) AddChild(local string, child *Module) {
	m.children[local] = child
}

// DefineType installs a type symbol under its local name. A second
// definition under the same name replaces the first — the Namer is
// responsible for rejecting duplicate user declarations before they
// reach here.
func (m *Module) DefineType(local string, sym TypeSymbol) {
	m.types[local] = sym
}

// DefineTerm appends a term symbol to the overload set under local.
func (m *Module) DefineTerm(local string, sym TermSymbol) {
	m.terms[local] = append(m.terms[local], sym)
}

// Typ resolves an unqualified type name per spec §4.2: consult this
// module's own types first, then walk dependencies in reverse import
// order, returning the first hit.
func (m *Module) Typ(local string) (TypeSymbol, bool) {
	if sym, ok := m.types[local]; ok {
		return sym, true
	}
	for i := len(m.dependencies) - 1; i >= 0; i-- {
		if sym, ok := m.dependencies[i].Typ(local); ok {
			return sym, true
		}
	}
	return nil, false
}

// Trm resolves an unqualified term name per spec §4.2: the result is the
// order-insensitive *union* of every overload visible from this module's
// own terms and every dependency's terms (not first-hit, since multiple
// overloads of the same name can legitimately coexist).
func (m *Module) Trm(local string) []TermSymbol {
	seen := make(map[TermSymbol]bool)
	var out []TermSymbol
	add := func(syms []TermSymbol) {
		for _, s := range syms {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	add(m.terms[local])
	for _, dep := range m.dependencies {
		add(dep.Trm(local))
	}
	return out
}

// QualifiedTyp resolves `typ(a·b)` by resolving the submodule chain in
// path, then recursing Typ on the final segment (spec §4.2: "Qualified
// typ(a·b)/trm(a·b): resolve sub-module a, then recurse").
func (m *Module) QualifiedTyp(path []string) (TypeSymbol, bool) {
	if len(path) == 0 {
		return nil, false
	}
	if len(path) == 1 {
		return m.Typ(path[0])
	}
	child, ok := m.Mod([]string{path[0]})
	if !ok {
		return nil, false
	}
	return child.QualifiedTyp(path[1:])
}

// QualifiedTrm resolves `trm(a·b)` analogously to QualifiedTyp.
func (m *Module) QualifiedTrm(path []string) []TermSymbol {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		return m.Trm(path[0])
	}
	child, ok := m.Mod([]string{path[0]})
	if !ok {
		return nil
	}
	return child.QualifiedTrm(path[1:])
}

// Mod resolves `mod(a·b)` by threading every segment of path through
// module children (spec §4.2: "mod(a·b) threads both segments through
// module children").
func (m *Module) Mod(path []string) (*Module, bool) {
	cur := m
	for _, seg := range path {
		child, ok := cur.children[seg]
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// TopoOrder returns the transitive closure of m's dependencies in
// reverse-postorder (each module appears after everything it depends
// on), the order in which a pipeline stage should process a module
// graph so that a module's dependencies are always already finished.
// Grounded on the teacher's loader.go dependency-closure walk.
func TopoOrder(root *Module) []*Module {
	visited := make(map[*Module]bool)
	var order []*Module
	var visit func(*Module)
	visit = func(m *Module) {
		if visited[m] {
			return
		}
		visited[m] = true
		for _, dep := range m.dependencies {
			visit(dep)
		}
		order = append(order, m)
	}
	visit(root)
	return order
}
