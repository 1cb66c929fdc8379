package transformer

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
)

// Jacobs-style pattern-match compilation (spec §4.5.1): repeatedly pick the
// column mentioned by the most pending rows (ties broken by the column's
// insertion order), partition its rows by constructor tag (branches kept in
// declaration order — the order constructors were first encountered while
// scanning), thread wildcard/ident rows into every branch as a fall-through,
// and recurse on the residual columns. An IdentPattern binds its own name
// to the matched variable for whichever row ultimately wins; an empty
// row set compiles to Hole (unreachable match on void).

// alias records that pattern-column stripping bound name to the value
// already held in v — resolved once the winning row reaches a leaf.
type alias struct {
	name names.Name
	v    names.Name
}

// matchRow is one pending clause: pats has one entry per column still in
// play (parallel to compileMatch's vars), aliases accumulates bindings
// captured while stripping earlier columns.
type matchRow struct {
	pats    []ast.Pattern
	aliases []alias
	body    ast.Stmt
}

func removePat(pats []ast.Pattern, idx int) []ast.Pattern {
	out := make([]ast.Pattern, 0, len(pats)-1)
	out = append(out, pats[:idx]...)
	out = append(out, pats[idx+1:]...)
	return out
}

func removeVar(vars []names.Name, idx int) []names.Name {
	out := make([]names.Name, 0, len(vars)-1)
	out = append(out, vars[:idx]...)
	out = append(out, vars[idx+1:]...)
	return out
}

// stripColumn removes column idx from r, recording an alias if that
// column held an IdentPattern (which binds rather than discriminates).
func stripColumn(vars []names.Name, idx int, r matchRow) matchRow {
	newAliases := r.aliases
	if id, ok := r.pats[idx].(*ast.IdentPattern); ok {
		newAliases = append(append([]alias{}, r.aliases...), alias{name: names.New(id.Name), v: vars[idx]})
	}
	return matchRow{pats: removePat(r.pats, idx), aliases: newAliases, body: r.body}
}

func wildcards(n int) []ast.Pattern {
	out := make([]ast.Pattern, n)
	for i := range out {
		out[i] = &ast.WildcardPattern{}
	}
	return out
}

// ctorMentions counts rows whose pattern at column i is a CtorPattern —
// the "most-mentioned" split heuristic.
func ctorMentions(rows []matchRow, i int) int {
	n := 0
	for _, r := range rows {
		if _, ok := r.pats[i].(*ast.CtorPattern); ok {
			n++
		}
	}
	return n
}

// chooseSplitColumn returns the column most mentioned by a CtorPattern,
// ties broken toward the lowest (earliest-inserted) index; ok is false
// when no remaining column has any CtorPattern at all, meaning nothing
// left to discriminate on.
func chooseSplitColumn(rows []matchRow, numCols int) (idx int, ok bool) {
	best, bestCount := 0, 0
	for i := 0; i < numCols; i++ {
		if c := ctorMentions(rows, i); c > bestCount {
			best, bestCount = i, c
		}
	}
	return best, bestCount > 0
}

// stripAllColumns removes every remaining column from r in one step
// (used once no column left has a CtorPattern to discriminate on),
// recording an alias for each IdentPattern encountered.
func stripAllColumns(vars []names.Name, r matchRow) matchRow {
	aliases := r.aliases
	for i, p := range r.pats {
		if id, ok := p.(*ast.IdentPattern); ok {
			aliases = append(aliases, alias{name: names.New(id.Name), v: vars[i]})
		}
	}
	return matchRow{pats: nil, aliases: aliases, body: r.body}
}

// compileMatch lowers rows (each matching against vars, column-for-column)
// into a core.Stmt per spec §4.5.1.
func (tr *Transformer) compileMatch(vars []names.Name, rows []matchRow) core.Stmt {
	if len(rows) == 0 {
		return &core.Hole{}
	}
	if len(vars) == 0 {
		result := tr.TransformBody(rows[0].body)
		for i := len(rows[0].aliases) - 1; i >= 0; i-- {
			a := rows[0].aliases[i]
			result = &core.Let{Name: a.name, Expr: &core.ValueVar{Name: a.v}, Body: result}
		}
		return result
	}

	idx, ok := chooseSplitColumn(rows, len(vars))
	if !ok {
		stripped := make([]matchRow, len(rows))
		for i, r := range rows {
			stripped[i] = stripAllColumns(vars, r)
		}
		return tr.compileMatch(nil, stripped)
	}
	splitVar := vars[idx]
	restVars := removeVar(vars, idx)

	type group struct {
		fields int
		rows   []matchRow
	}
	groups := map[string]*group{}
	var order []string
	var defaultRows []matchRow

	for _, r := range rows {
		switch pat := r.pats[idx].(type) {
		case *ast.CtorPattern:
			g, ok := groups[pat.Constructor]
			if !ok {
				g = &group{fields: len(pat.Fields)}
				groups[pat.Constructor] = g
				order = append(order, pat.Constructor)
			}
			stripped := stripColumn(vars, idx, r)
			stripped.pats = append(stripped.pats, pat.Fields...)
			g.rows = append(g.rows, stripped)
		default:
			defaultRows = append(defaultRows, stripColumn(vars, idx, r))
		}
	}

	branches := make([]core.MatchBranch, 0, len(order))
	for _, ctorName := range order {
		g := groups[ctorName]
		for _, dr := range defaultRows {
			fallThrough := matchRow{
				pats:    append(append([]ast.Pattern{}, dr.pats...), wildcards(g.fields)...),
				aliases: dr.aliases,
				body:    dr.body,
			}
			g.rows = append(g.rows, fallThrough)
		}

		fieldVars := make([]names.Name, g.fields)
		for i := range fieldVars {
			fieldVars[i] = tr.freshName("f")
		}
		newVars := append(append([]names.Name{}, restVars...), fieldVars...)
		body := tr.compileMatch(newVars, g.rows)
		branches = append(branches, core.MatchBranch{
			Constructor: names.New(ctorName),
			Target:      &core.BlockLit{Params: fieldVars, Body: body},
		})
	}

	def := &core.BlockLit{Body: &core.Hole{}}
	if len(defaultRows) > 0 {
		def = &core.BlockLit{Body: tr.compileMatch(restVars, defaultRows)}
	}

	return &core.Match{Scrutinee: splitVar, Branches: branches, Default: def}
}

// transformMatchStmt binds the scrutinee to a fresh variable, then
// delegates to compileMatch (spec §4.5's Match rule: "delegate to the
// pattern-match compiler").
func (tr *Transformer) transformMatchStmt(ex *ast.Match) core.Stmt {
	scrutVal := tr.transformExprValue(ex.Scrutinee)
	scrutName := tr.freshName("scrut")

	rows := make([]matchRow, len(ex.Clauses))
	for i, c := range ex.Clauses {
		rows[i] = matchRow{pats: []ast.Pattern{c.Pattern}, body: c.Body}
	}

	body := tr.compileMatch([]names.Name{scrutName}, rows)
	return &core.Let{Name: scrutName, Expr: scrutVal, Body: body}
}
