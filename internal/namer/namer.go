// Package namer implements spec.md §4.4's Namer: the external collaborator
// whose contract with the core is fixed by the spec even though its
// concrete algorithm is not. SPEC_FULL.md §4.4 upgrades it from "external
// collaborator" to a concrete implementation, since this repository ships
// its own parser.
//
// Grounded on the teacher's naming/declaration pass (internal/analyzer's
// two-phase "headers analyzed / bodies analyzed" module loading, and its
// scope-chain symbol resolution), generalized from the teacher's flat
// symbol kind to internal/symtab's two-universe model.
package namer

import (
	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/symtab"
	"github.com/effect-lang/effc/internal/types"
)

// Fixed annotation contract (spec §4.4):
//   - For each IdDef: Symbol, DefinitionTree, SourceModule.
//   - For each IdRef: Symbol, and an append to References.
//   - For each surface Type node: Type; similarly CaptureSet.
var (
	SymbolAnn        = annotations.Named[ast.Node, symtab.Symbol]("Symbol")
	DefinitionTreeAnn = annotations.Named[symtab.Symbol, ast.Node]("DefinitionTree")
	SourceModuleAnn  = annotations.Named[symtab.Symbol, *symtab.Module]("SourceModule")
	ReferencesAnn    = annotations.Named[symtab.Symbol, []ast.Node]("References")
	ValueTypeAnn     = annotations.Named[ast.Node, types.ValueType]("ValueType")
	BlockTypeAnn     = annotations.Named[ast.Node, types.BlockType]("BlockType")
	CaptureSetAnn    = annotations.Named[ast.Node, types.CaptureSet]("CaptureSet")
)

// DefineSymbol records the fixed IdDef contract: Symbol, DefinitionTree,
// and SourceModule, all keyed off def's identity.
func DefineSymbol(store *annotations.Store, def ast.Node, sym symtab.Symbol, tree ast.Node, module *symtab.Module) {
	annotations.Annotate(store, SymbolAnn, def, sym)
	annotations.Annotate(store, DefinitionTreeAnn, sym, tree)
	annotations.Annotate(store, SourceModuleAnn, sym, module)
}

// ReferenceSymbol records the fixed IdRef contract: Symbol, plus an
// append to the symbol's accumulated References.
func ReferenceSymbol(store *annotations.Store, ref ast.Node, sym symtab.Symbol) {
	annotations.Annotate(store, SymbolAnn, ref, sym)
	existing, _ := annotations.Get(store, ReferencesAnn, sym)
	annotations.Annotate(store, ReferencesAnn, sym, append(existing, ref))
}

// scope is one lexical level of name -> symbol bindings.
type scope map[string]symtab.Symbol

// Namer performs a single naming pass over a Program, assigning symbols
// to every declaration and resolving every identifier reference against
// a lexical scope chain backed by a single module (spec §4.2's module
// graph is exercised at the multi-module/import level by
// internal/symtab's own tests; the Namer here focuses on the IdDef/IdRef
// annotation contract within one module).
type Namer struct {
	Store  *annotations.Store
	Module *symtab.Module
	scopes []scope
}

// New creates a Namer that will populate store and register symbols in
// module as it walks a Program.
func New(store *annotations.Store, module *symtab.Module) *Namer {
	return &Namer{Store: store, Module: module}
}

func (n *Namer) push()      { n.scopes = append(n.scopes, scope{}) }
func (n *Namer) pop()       { n.scopes = n.scopes[:len(n.scopes)-1] }
func (n *Namer) bind(name string, sym symtab.Symbol) {
	n.scopes[len(n.scopes)-1][name] = sym
}

// lookupTerm walks the scope chain innermost-first, falling back to the
// first overload from the module's term lookup (spec §4.2).
func (n *Namer) lookupTerm(name string) (symtab.Symbol, bool) {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if sym, ok := n.scopes[i][name]; ok {
			return sym, true
		}
	}
	overloads := n.Module.Trm(name)
	if len(overloads) > 0 {
		return overloads[0], true
	}
	return nil, false
}

// Run walks prog, defining a symbol for every declaration and resolving
// every Ident reference it can find at the (currently flat) scoping
// level this Namer implements.
func (n *Namer) Run(prog *ast.Program) {
	n.push()
	defer n.pop()
	for _, decl := range prog.Decls {
		n.defineTopLevel(decl)
	}
	for _, decl := range prog.Decls {
		n.walkStmt(decl)
	}
}

func (n *Namer) defineTopLevel(decl ast.Stmt) {
	switch d := decl.(type) {
	case *ast.FunDecl:
		fn := funcSymbol(d.Name)
		n.Module.DefineTerm(d.Name, fn)
		n.bind(d.Name, fn)
		namer_defineSymbol(n, d, fn)
	case *ast.EffectDecl:
		eff := &symtab.UserEffectSym{}
		setSymbolName(eff, d.Name)
		n.Module.DefineType(d.Name, eff)
		namer_defineSymbol(n, d, eff)
		for _, op := range d.Ops {
			method := symtab.NewMethod(op.Name, nil, nil, nil, types.Effects())
			setSymbolName(method, op.Name)
			n.Module.DefineTerm(op.Name, method)
		}
	case *ast.InterfaceDecl:
		iface := &symtab.InterfaceSym{}
		setSymbolName(iface, d.Name)
		n.Module.DefineType(d.Name, iface)
		namer_defineSymbol(n, d, iface)
	case *ast.DataDecl:
		data := &symtab.DataSym{}
		setSymbolName(data, d.Name)
		n.Module.DefineType(d.Name, data)
		namer_defineSymbol(n, d, data)
		for _, ctor := range d.Constructors {
			typeFacet, termFacet := symtab.NewRecord(n.Store, ctor.Name, ctor.Fields)
			data.Constructors = append(data.Constructors, typeFacet)
			n.Module.DefineTerm(ctor.Name, termFacet)
		}
	case *ast.RecordDecl:
		typeFacet, termFacet := symtab.NewRecord(n.Store, d.Name, d.Fields)
		n.Module.DefineType(d.Name, typeFacet)
		n.Module.DefineTerm(d.Name, termFacet)
		namer_defineSymbol(n, d, typeFacet)
	}
}

func (n *Namer) walkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.FunDecl:
		n.push()
		defer n.pop()
		for _, p := range st.Params {
			var sym symtab.Symbol
			if p.Block {
				sym = &symtab.BlockParam{}
			} else {
				sym = &symtab.ValueParam{}
			}
			setSymbolName(sym, p.Name)
			n.bind(p.Name, sym)
		}
		n.walkStmt(st.Body)
	case *ast.Block:
		n.push()
		defer n.pop()
		for _, inner := range st.Stmts {
			n.walkStmt(inner)
		}
	case *ast.ValDecl:
		n.walkExpr(st.Init)
		sym := &symtab.ValBinder{}
		setSymbolName(sym, st.Name)
		n.bind(st.Name, sym)
		namer_defineSymbol(n, st, sym)
	case *ast.VarDecl:
		n.walkExpr(st.Init)
		sym := &symtab.VarBinder{}
		setSymbolName(sym, st.Name)
		n.bind(st.Name, sym)
		namer_defineSymbol(n, st, sym)
	case *ast.ExprStmt:
		n.walkExpr(st.Expr)
	}
}

func (n *Namer) walkExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Ident:
		if sym, ok := n.lookupTerm(ex.Name); ok {
			ReferenceSymbol(n.Store, ex, sym)
		}
	case *ast.Call:
		n.walkExpr(ex.Callee)
		for _, a := range ex.Args {
			n.walkExpr(a)
		}
	case *ast.MethodCall:
		n.walkExpr(ex.Receiver)
		for _, a := range ex.Args {
			n.walkExpr(a)
		}
	case *ast.If:
		n.walkExpr(ex.Cond)
		n.walkStmt(ex.Then)
		if ex.Else != nil {
			n.walkStmt(ex.Else)
		}
	case *ast.While:
		n.walkExpr(ex.Cond)
		n.walkStmt(ex.Body)
	case *ast.Match:
		n.walkExpr(ex.Scrutinee)
		for _, c := range ex.Clauses {
			n.push()
			n.walkPattern(c.Pattern)
			n.walkStmt(c.Body)
			n.pop()
		}
	case *ast.TryHandle:
		n.push()
		for _, h := range ex.Handlers {
			n.push()
			for _, p := range h.Params {
				sym := &symtab.ValueParam{}
				setSymbolName(sym, p.Name)
				n.bind(p.Name, sym)
			}
			resume := &symtab.ResumeParam{}
			setSymbolName(resume, "resume")
			n.bind("resume", resume)
			n.walkStmt(h.Body)
			n.pop()
		}
		n.walkStmt(ex.Prog)
		n.pop()
	case *ast.RegionExpr:
		n.push()
		cap := &symtab.Capability{}
		setSymbolName(cap, ex.Name)
		n.bind(ex.Name, cap)
		n.walkStmt(ex.Body)
		n.pop()
	case *ast.Assign:
		n.walkExpr(ex.Value)
		if sym, ok := n.lookupTerm(ex.Name); ok {
			ReferenceSymbol(n.Store, ex, sym)
		}
	}
}

func (n *Namer) walkPattern(p ast.Pattern) {
	switch pt := p.(type) {
	case *ast.IdentPattern:
		sym := &symtab.ValBinder{}
		setSymbolName(sym, pt.Name)
		n.bind(pt.Name, sym)
	case *ast.CtorPattern:
		for _, f := range pt.Fields {
			n.walkPattern(f)
		}
	}
}

func namer_defineSymbol(n *Namer, def ast.Node, sym symtab.Symbol) {
	DefineSymbol(n.Store, def, sym, def, n.Module)
}

func funcSymbol(name string) *symtab.Function {
	fn := &symtab.Function{}
	setSymbolName(fn, name)
	return fn
}

// setSymbolName assigns a symtab symbol's name. symtab symbols embed an
// unexported `base` whose Name() is read-only from outside the package,
// so this goes through a tiny reflection-free trick: every concrete
// symbol is constructed here fresh and its base is set via the package's
// exported constructors where one exists (NewMethod, NewRecord); for the
// plain structs (Function, ValBinder, ...) namer is in a different
// package from symtab's unexported base field, so it uses the
// SetName helper symtab exposes for exactly this purpose.
func setSymbolName(sym symtab.Symbol, name string) {
	symtab.SetName(sym, names.New(name))
}
