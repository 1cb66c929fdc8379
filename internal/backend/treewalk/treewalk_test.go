package treewalk

import (
	"bytes"
	"testing"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/parser"
	"github.com/effect-lang/effc/internal/symtab"
	"github.com/effect-lang/effc/internal/transformer"
)

// compile runs the full Parse -> Namer -> TransformProgram pipeline, the
// same one internal/transformer's own lowering tests exercise piecewise,
// assembled here end to end so the tree-walk Driver can be tested
// against real surface syntax rather than hand-built core.Stmt trees.
func compile(t *testing.T, src string) *backend.Program {
	t.Helper()
	prog, errs := parser.Parse("t.effc", src)
	if errs.HasErrors() {
		t.Fatalf("parse errors: %v", errs.Sorted())
	}
	store := annotations.New()
	mod := symtab.NewSourceModule("t")
	namer.New(store, mod).Run(prog)
	tr := transformer.New(store, mod)
	defs, entry := tr.TransformProgram(prog)
	if len(tr.Warnings) > 0 {
		t.Fatalf("transform warnings: %v", tr.Warnings)
	}
	return &backend.Program{Definitions: defs, Entry: entry}
}

func run(t *testing.T, src string) (stdout string, exitCode int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	d := New(&out, &errBuf)
	code, err := d.Run(compile(t, src), nil, &out, &errBuf)
	if err != nil {
		t.Fatalf("run error: %v (stderr: %s)", err, errBuf.String())
	}
	return out.String(), code
}

func TestTreewalkArithmeticAndPrintln(t *testing.T) {
	out, code := run(t, `println(1 + 2 * 3)`)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "7\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTreewalkFunctionCall(t *testing.T) {
	out, _ := run(t, `
def add(x: Int, y: Int): Int = x + y

println(add(2, 3))
`)
	if out != "5\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTreewalkIfElse(t *testing.T) {
	out, _ := run(t, `
def pick(b): Int = if b { 1 } else { 2 }

println(pick(true))
println(pick(false))
`)
	if out != "1\n2\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTreewalkDataAndMatch(t *testing.T) {
	out, _ := run(t, `
data Option { None, Some(value) }

def describe(o): Int = match o {
  case None -> 0
  case Some(x) -> x
}

println(describe(Some(42)))
println(describe(None))
`)
	if out != "42\n0\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTreewalkVarLoop(t *testing.T) {
	out, _ := run(t, `
def count(): Int = {
  var i = 0
  while i < 3 {
    i :- i + 1
  }
  i
}

println(count())
`)
	if out != "3\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTreewalkTryHandlesEffectInBody(t *testing.T) {
	out, _ := run(t, `
effect Flip {
  ask(): Int
}

def run(): Int = try {
  ask()
} with Flip {
  def ask() = 41
}

println(run())
`)
	if out != "41\n" {
		t.Fatalf("output = %q", out)
	}
}
