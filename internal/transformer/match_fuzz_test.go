package transformer

import (
	"testing"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/symtab"
)

var fuzzCtorNames = []string{"A", "B", "C"}

// fuzzRow turns one input byte into a single-column matchRow: a
// WildcardPattern, an IdentPattern, or a CtorPattern over 0-2 fields,
// picked from the byte's low bits the way the teacher's fuzz generators
// turn raw bytes into AST shapes (tests/fuzz/generators/*.go).
func fuzzRow(b byte) matchRow {
	switch b % 3 {
	case 0:
		return matchRow{pats: []ast.Pattern{&ast.WildcardPattern{}}, body: &ast.Block{}}
	case 1:
		return matchRow{pats: []ast.Pattern{&ast.IdentPattern{Name: "x"}}, body: &ast.Block{}}
	default:
		ctor := fuzzCtorNames[int(b/3)%len(fuzzCtorNames)]
		fields := int(b>>4) % 3
		pats := make([]ast.Pattern, fields)
		for i := range pats {
			pats[i] = &ast.WildcardPattern{}
		}
		return matchRow{
			pats: []ast.Pattern{&ast.CtorPattern{Constructor: ctor, Fields: pats}},
			body: &ast.Block{},
		}
	}
}

// FuzzCompileMatch hammers the Jacobs-style pattern-match compiler
// (spec §4.5.1) with randomized row sets — mixed constructor arities,
// wildcards, and identifier bindings — checking only that it terminates
// without panicking, the same hardening goal as the teacher's
// tests/fuzz/targets (resilience against pathological generated input),
// since match compilation has no teacher file of its own to ground a
// golden-output fuzz oracle on.
func FuzzCompileMatch(f *testing.F) {
	f.Add([]byte{0, 1, 2})
	f.Add([]byte{3, 6, 9, 12})
	f.Add([]byte(nil))
	f.Add([]byte{255, 128, 64, 32, 16, 8, 4, 2, 1, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("compileMatch panicked on fuzz input %v: %v", data, r)
			}
		}()

		store := annotations.New()
		mod := symtab.NewSourceModule("main")
		tr := New(store, mod)

		rows := make([]matchRow, len(data))
		for i, b := range data {
			rows[i] = fuzzRow(b)
		}

		tr.compileMatch([]names.Name{names.New("scrut")}, rows)
	})
}
