// Package transformer lowers the typed surface tree (internal/ast,
// annotated by internal/namer and, in a full pipeline, a Typer) into the
// core IR (internal/core): spec.md §4.5.
//
// Grounded on the teacher's internal/analyzer (the "headers/bodies"
// walking discipline and its per-node annotation reads) generalized to
// emit internal/core nodes instead of directly evaluating, and on
// other_examples' sunholo-data-ailang elaborate/core.go (Elaborator,
// binding, normalizeToAtomic/wrapWithBindings — our bindingBuffer/reify
// is the same idea generalized from "atomic vs non-atomic" to the full
// Val/Let/Def peephole set spec §4.5 names).
package transformer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/symtab"
	"github.com/effect-lang/effc/internal/types"
)

// SymbolCaptureAnn is the Typer's per-symbol capture-set output: the
// capture set of a block symbol's own body, consulted by pureOrIO(symbol)
// (spec §4.5). It lives here rather than in internal/namer because it is
// a Typer output, not one of the Namer's fixed IdDef/IdRef facts — this
// repository's Typer is an external collaborator (spec §1), so tests
// populate this annotation directly to stand in for it, exactly as they
// stand in for internal/namer.CaptureSetAnn on expression nodes.
var SymbolCaptureAnn = annotations.Named[symtab.Symbol, types.CaptureSet]("Capture")

// Transformer holds the state threaded through one function/top-level
// lowering: the annotations store to read Typer/Namer facts from.
type Transformer struct {
	Store  *annotations.Store
	Module *symtab.Module
	buffer []binding

	// Warnings accumulates non-fatal diagnoses raised during lowering
	// (e.g. a while-loop with a statically pure condition), the same
	// "accumulate, don't fail" style as other_examples'
	// sunholo-data-ailang Elaborator.warnings.
	Warnings []string
}

// New creates a Transformer reading Namer/Typer facts from store.
func New(store *annotations.Store, module *symtab.Module) *Transformer {
	return &Transformer{Store: store, Module: module}
}

// freshName mints a synthetic name that will never collide with a user
// identifier or with another fresh name minted by a sibling, concurrently
// discarded overload attempt (SPEC_FULL.md §4.10): a human-readable
// prefix plus a uuid suffix, rather than a per-Transformer mutable
// counter. A counter would need resetting whenever the Typer backtracks
// out of a speculative overload attempt (spec §7); a uuid suffix never
// needs rolling back, because no two calls ever produce the same name to
// begin with.
func (tr *Transformer) freshName(prefix string) names.Name {
	return names.New(fmt.Sprintf("$%s-%s", prefix, uuid.NewString()))
}

// --- purity classification (spec §4.5 "Purity classification") ---------

func isPureCapture(c types.CaptureSet) bool { return c.IsEmpty() }

func pureOrIOCapture(c types.CaptureSet) bool { return c.IsPureOrIO() }

func (tr *Transformer) captureOf(node ast.Node) types.CaptureSet {
	c, _ := annotations.Get(tr.Store, namer.CaptureSetAnn, node)
	return c
}

func (tr *Transformer) isPure(node ast.Node) bool { return isPureCapture(tr.captureOf(node)) }

func (tr *Transformer) pureOrIO(node ast.Node) bool { return pureOrIOCapture(tr.captureOf(node)) }

// pureOrIOSymbol reports pureOrIO(symbol) per spec §4.5: "pureOrIO(symbol)
// iff pureOrIO holds on its capture."
func (tr *Transformer) pureOrIOSymbol(sym symtab.Symbol) bool {
	c, _ := annotations.Get(tr.Store, SymbolCaptureAnn, sym)
	return pureOrIOCapture(c)
}

func (tr *Transformer) symbolOf(node ast.Node) (symtab.Symbol, bool) {
	return annotations.Get(tr.Store, namer.SymbolAnn, node)
}
