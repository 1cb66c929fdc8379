package transformer

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
)

// TransformProgram lowers a whole parsed file into the shape a backend
// driver consumes (SPEC_FULL.md §4.7): the data/record/interface/effect
// definitions named at the top level, lowered directly from their AST
// declarations, and a single entry Stmt obtained by running every
// remaining top-level statement (function defs, vals, vars, bare
// expressions) through TransformBody as one implicit top-level block —
// the same "headers vs. bodies" split the teacher's analyzer makes
// between declaring a module's types/functions and walking their bodies,
// done here in one pass since core's Definition/Stmt split already keeps
// the two apart.
func (tr *Transformer) TransformProgram(prog *ast.Program) ([]core.Definition, core.Stmt) {
	var defs []core.Definition
	var execs []ast.Stmt
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.DataDecl:
			defs = append(defs, tr.lowerDataDecl(decl))
		case *ast.RecordDecl:
			defs = append(defs, tr.lowerRecordDecl(decl))
		case *ast.InterfaceDecl:
			defs = append(defs, tr.lowerOpsDef(decl.Name, decl.Ops))
		case *ast.EffectDecl:
			defs = append(defs, tr.lowerOpsDef(decl.Name, decl.Ops))
		default:
			execs = append(execs, d)
		}
	}
	body := ast.NewBlock(prog.Position(), execs)
	return defs, tr.TransformBody(body)
}

func (tr *Transformer) lowerDataDecl(d *ast.DataDecl) *core.DataDef {
	ctors := make([]core.DataConstructor, len(d.Constructors))
	for i, c := range d.Constructors {
		ctors[i] = core.DataConstructor{Name: names.New(c.Name), Fields: c.Fields}
	}
	return &core.DataDef{Name: names.New(d.Name), Constructors: ctors}
}

func (tr *Transformer) lowerRecordDecl(d *ast.RecordDecl) *core.RecordDef {
	return &core.RecordDef{Name: names.New(d.Name), Fields: d.Fields}
}

// lowerOpsDef covers both an EffectDecl and an InterfaceDecl: core has a
// single InterfaceDef shape for "a block type with named operations"
// (spec §4.2's interface/effect duality — an effect's operations are
// just an interface a handler happens to implement dynamically via Try).
func (tr *Transformer) lowerOpsDef(name string, ops []ast.OpSig) *core.InterfaceDef {
	names_ := make([]string, len(ops))
	for i, op := range ops {
		names_[i] = op.Name
	}
	return &core.InterfaceDef{Name: names.New(name), Ops: names_}
}
