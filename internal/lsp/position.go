package lsp

import "github.com/effect-lang/effc/internal/ast"

// toLSP converts the 1-based line/column that internal/core.Pos and
// internal/token.Token use throughout the rest of the compiler to an LSP
// (0-based) Position; fromLSP is the inverse, mirroring handler_hover.go's
// own `params.Position.Line+1` convention.
func toLSP(line, column int) Position {
	return Position{Line: line - 1, Character: column - 1}
}

func fromLSP(p Position) (line, column int) {
	return p.Line + 1, p.Character + 1
}

// referenceAt finds the innermost *ast.Ident or *ast.Assign at (line,
// column) — the two node kinds internal/namer.walkExpr annotates with a
// Symbol as an IdRef (spec §4.4). Unlike the teacher's FindNodePath (a
// full path down a heterogeneous Node tree, since funxy's AST carries End
// positions), this AST only carries a start Pos per node, so matching
// uses the one piece of length information available per node: an
// Ident's own Name, and an Assign's own Name.
func referenceAt(prog *ast.Program, line, column int) ast.Node {
	var found ast.Node
	var visitExpr func(ast.Expr)
	var visitStmt func(ast.Stmt)
	var visitPattern func(ast.Pattern)

	onLine := func(pos int, length int) bool {
		return column >= pos && column < pos+length
	}

	visitExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch ex := e.(type) {
		case *ast.Ident:
			pos := ex.Position()
			if pos.Line == line && onLine(pos.Column, len(ex.Name)) {
				found = ex
			}
		case *ast.Call:
			visitExpr(ex.Callee)
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *ast.MethodCall:
			visitExpr(ex.Receiver)
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *ast.If:
			visitExpr(ex.Cond)
			visitStmt(ex.Then)
			visitStmt(ex.Else)
		case *ast.While:
			visitExpr(ex.Cond)
			visitStmt(ex.Body)
		case *ast.Match:
			visitExpr(ex.Scrutinee)
			for _, c := range ex.Clauses {
				visitPattern(c.Pattern)
				visitStmt(c.Body)
			}
		case *ast.TryHandle:
			for _, h := range ex.Handlers {
				visitStmt(h.Body)
			}
			visitStmt(ex.Prog)
		case *ast.RegionExpr:
			visitStmt(ex.Body)
		case *ast.Assign:
			visitExpr(ex.Value)
			pos := ex.Position()
			if pos.Line == line && onLine(pos.Column, len(ex.Name)) {
				found = ex
			}
		}
	}

	visitPattern = func(p ast.Pattern) {
		if p == nil {
			return
		}
		if pt, ok := p.(*ast.CtorPattern); ok {
			for _, f := range pt.Fields {
				visitPattern(f)
			}
		}
	}

	visitStmt = func(st ast.Stmt) {
		if st == nil {
			return
		}
		switch s := st.(type) {
		case *ast.FunDecl:
			visitStmt(s.Body)
		case *ast.Block:
			for _, inner := range s.Stmts {
				visitStmt(inner)
			}
		case *ast.ValDecl:
			visitExpr(s.Init)
		case *ast.VarDecl:
			visitExpr(s.Init)
		case *ast.ExprStmt:
			visitExpr(s.Expr)
		}
	}

	for _, decl := range prog.Decls {
		visitStmt(decl)
		if found != nil {
			return found
		}
	}
	return nil
}

// declAt falls back to the enclosing top-level declaration whose own
// header line matches line — lets getHover/getDefinition answer when the
// cursor sits on a declaration's own name (`def add(...)`) rather than on
// a reference to it, since this AST has no separate Ident node for a
// declaration's name (spec §4.4's IdDef is the declaration node itself).
func declAt(prog *ast.Program, line int) ast.Node {
	for _, decl := range prog.Decls {
		if decl.Position().Line == line {
			return decl
		}
	}
	return nil
}

// nodeAt is referenceAt falling back to declAt — the combined resolution
// strategy every query in queries.go uses.
func nodeAt(prog *ast.Program, pos Position) ast.Node {
	line, column := fromLSP(pos)
	if n := referenceAt(prog, line, column); n != nil {
		return n
	}
	return declAt(prog, line)
}
