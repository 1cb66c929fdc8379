package lsp

import (
	"fmt"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/symtab"
)

// symbolKind names a symtab.Symbol's concrete Go type in the vocabulary
// an LSP client displays, grounded on the teacher's SymbolKind enum
// (internal/symbols/symbol_table_core.go's Variable/Type/Constructor/
// Trait/Module tags) but derived by type switch rather than carried as a
// stored tag, since this Symbol hierarchy is already closed by interface.
func symbolKind(sym symtab.Symbol) string {
	switch sym.(type) {
	case *symtab.ValueParam:
		return "parameter"
	case *symtab.ValBinder:
		return "value"
	case *symtab.VarBinder:
		return "variable"
	case *symtab.Temporary:
		return "temporary"
	case *symtab.Wildcard:
		return "wildcard"
	case *symtab.Function:
		return "function"
	case *symtab.BlockParam:
		return "block-parameter"
	case *symtab.Capability:
		return "capability"
	case *symtab.ResumeParam:
		return "resume-parameter"
	case *symtab.CallTarget:
		return "call-target"
	case *symtab.ModuleSymbol:
		return "module"
	case *symtab.TypeVarSym:
		return "type-variable"
	case *symtab.AliasSym:
		return "type-alias"
	case *symtab.DataSym:
		return "data-type"
	case *symtab.ConstructorSym:
		return "constructor-type"
	case *symtab.ConstructorBlockSym:
		return "constructor"
	case *symtab.InterfaceSym:
		return "interface"
	case *symtab.MethodSym:
		return "operation"
	case *symtab.UserEffectSym:
		return "effect"
	case *symtab.BuiltinEffectSym:
		return "builtin-effect"
	default:
		return fmt.Sprintf("%T", sym)
	}
}

// resolveAt resolves the symbol referenced or declared at pos in doc,
// trying an IdRef lookup first (Ident/Assign -> Symbol) and falling back
// to an IdDef lookup (a declaration node is itself a Symbol key).
func resolveAt(doc *document, pos Position) (ast.Node, symtab.Symbol, bool) {
	if doc.program == nil {
		return nil, nil, false
	}
	node := nodeAt(doc.program, pos)
	if node == nil {
		return nil, nil, false
	}
	sym, ok := annotations.Get(doc.store, namer.SymbolAnn, node)
	return node, sym, ok
}

// locationOf converts a symbol's DefinitionTree annotation into an LSP
// Location inside uri (every declaration in this single-file service
// lives in the same document it was analyzed from).
func locationOf(store *annotations.Store, sym symtab.Symbol, uri string) (Location, bool) {
	def, ok := annotations.Get(store, namer.DefinitionTreeAnn, sym)
	if !ok {
		return Location{}, false
	}
	start := toLSP(def.Position().Line, def.Position().Column)
	end := toLSP(def.Position().Line, def.Position().Column+len(sym.Name().Local()))
	return Location{URI: uri, Range: Range{Start: start, End: end}}, true
}

// GetDefinition resolves the symbol referenced at pos and returns its
// declaration site (spec §6 / handler_definition.go's handleDefinition).
func (s *Service) GetDefinition(uri string, pos Position) (Location, bool) {
	doc, ok := s.get(uri)
	if !ok {
		return Location{}, false
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()
	_, sym, ok := resolveAt(doc, pos)
	if !ok {
		return Location{}, false
	}
	return locationOf(doc.store, sym, uri)
}

// GetSymbolAt resolves the symbol referenced or declared at pos
// (handler_hover.go's resolveSymbol, exposed directly rather than only
// as hover text).
func (s *Service) GetSymbolAt(uri string, pos Position) (SymbolInfo, bool) {
	doc, ok := s.get(uri)
	if !ok {
		return SymbolInfo{}, false
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()
	_, sym, ok := resolveAt(doc, pos)
	if !ok {
		return SymbolInfo{}, false
	}
	return symbolInfo(doc.store, sym, uri), true
}

func symbolInfo(store *annotations.Store, sym symtab.Symbol, uri string) SymbolInfo {
	loc, _ := locationOf(store, sym, uri)
	return SymbolInfo{Name: sym.Name().Local(), Kind: symbolKind(sym), Definition: loc}
}

// GetSymbols enumerates every symbol declared in uri's document, via the
// annotations.Store's keys-with(SymbolAnn) index (SPEC_FULL.md §4.8) —
// the per-document equivalent of spec §6's "enumerate every key with
// annotation X", scoped to declaration nodes rather than every Ident
// reference.
func (s *Service) GetSymbols(uri string) []SymbolInfo {
	doc, ok := s.get(uri)
	if !ok {
		return nil
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()

	var out []SymbolInfo
	for _, key := range doc.store.KeysWith(namer.SymbolAnn.Name()) {
		node, ok := key.(ast.Node)
		if !ok {
			continue
		}
		if !isDeclarationNode(node) {
			continue
		}
		sym, ok := annotations.Get(doc.store, namer.SymbolAnn, node)
		if !ok {
			continue
		}
		out = append(out, symbolInfo(doc.store, sym, uri))
	}
	return out
}

// isDeclarationNode reports whether node is one of the IdDef node kinds
// namer.go's defineTopLevel/walkStmt calls DefineSymbol on, distinguishing
// a declaration key from an IdRef key (both are recorded under the same
// SymbolAnn annotation, so KeysWith alone cannot tell them apart).
func isDeclarationNode(node ast.Node) bool {
	switch node.(type) {
	case *ast.FunDecl, *ast.EffectDecl, *ast.InterfaceDecl, *ast.DataDecl,
		*ast.RecordDecl, *ast.ValDecl, *ast.VarDecl:
		return true
	default:
		return false
	}
}

// GetReferences returns every recorded use of the symbol at pos (spec
// §6, namer.ReferencesAnn's accumulated IdRef list).
func (s *Service) GetReferences(uri string, pos Position) []Location {
	doc, ok := s.get(uri)
	if !ok {
		return nil
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()

	_, sym, ok := resolveAt(doc, pos)
	if !ok {
		return nil
	}
	refs, _ := annotations.Get(doc.store, namer.ReferencesAnn, sym)
	out := make([]Location, 0, len(refs))
	for _, ref := range refs {
		p := ref.Position()
		start := toLSP(p.Line, p.Column)
		length := 0
		switch r := ref.(type) {
		case *ast.Ident:
			length = len(r.Name)
		case *ast.Assign:
			length = len(r.Name)
		}
		end := toLSP(p.Line, p.Column+length)
		out = append(out, Location{URI: uri, Range: Range{Start: start, End: end}})
	}
	return out
}

// GetHover renders a short markdown description of the symbol at pos
// (handler_hover.go's hoverText construction, without a Typer's resolved
// type to print — see SPEC_FULL.md §9/DESIGN.md's Open Question on
// deferring full type inference).
func (s *Service) GetHover(uri string, pos Position) (string, bool) {
	doc, ok := s.get(uri)
	if !ok {
		return "", false
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()

	_, sym, ok := resolveAt(doc, pos)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("```effc\n%s %s\n```", symbolKind(sym), sym.Name().Local()), true
}

// GetCodeActions offers a single quick action over the given range: ask
// the symbol under its start position to describe itself via
// executeCommand, grounded on the teacher's minimal code-action surface
// (cmd/lsp/server.go disables formatting outright rather than fabricate
// an unsupported feature; this offers the one action this Service can
// answer for real instead of stubbing the whole method to empty).
func (s *Service) GetCodeActions(uri string, rng Range) []CodeAction {
	doc, ok := s.get(uri)
	if !ok {
		return nil
	}
	doc.mu.RLock()
	_, sym, ok := resolveAt(doc, rng.Start)
	doc.mu.RUnlock()
	if !ok {
		return nil
	}
	return []CodeAction{{
		Title:   fmt.Sprintf("Describe %s", sym.Name().Local()),
		Command: "effc.describeSymbol",
		Args:    []interface{}{uri, rng.Start.Line, rng.Start.Character},
	}}
}

// ExecuteCommand runs a command previously offered by GetCodeActions.
func (s *Service) ExecuteCommand(command string, args []interface{}) (interface{}, error) {
	switch command {
	case "effc.describeSymbol":
		if len(args) != 3 {
			return nil, fmt.Errorf("lsp: %s expects (uri, line, character)", command)
		}
		uri, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("lsp: %s: arg 0 must be a uri string", command)
		}
		line, lok := toInt(args[1])
		char, cok := toInt(args[2])
		if !lok || !cok {
			return nil, fmt.Errorf("lsp: %s: line/character must be numbers", command)
		}
		text, ok := s.GetHover(uri, Position{Line: line, Character: char})
		if !ok {
			return nil, fmt.Errorf("lsp: %s: no symbol at that position", command)
		}
		return text, nil
	default:
		return nil, fmt.Errorf("lsp: unknown command %q", command)
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
