// Package treewalk implements spec.md §6's default backend driver: a
// direct tree-walk interpreter over internal/core, the generalization of
// the teacher's TreeWalkBackend (internal/backend/treewalk.go, deleted
// from this workspace but grounding this package's split between a pure
// interpreter core (eval.go/value.go/builtins.go) and the Driver plumbing
// around it (this file)) from funvibe-funxy's own AST-walking evaluator
// onto effc's delimited-control core IR (internal/runtime).
//
// A tree-walk Driver has no separate "compiled artifact" in the usual
// sense, so Build persists the lowered Program by gob-encoding it to
// outputPath (the same encoding internal/bundle uses for its on-disk
// artifact format) and Eval decodes it back and drives it through
// internal/runtime.Run — letting Build and Eval run in different process
// invocations, as spec §6's persisted-state rule requires of every
// backend, tree-walk included.
package treewalk

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
	"github.com/effect-lang/effc/internal/runtime"
)

func init() {
	gob.Register(&core.Val{})
	gob.Register(&core.Let{})
	gob.Register(&core.Def{})
	gob.Register(&core.Return{})
	gob.Register(&core.App{})
	gob.Register(&core.If{})
	gob.Register(&core.Match{})
	gob.Register(&core.Try{})
	gob.Register(&core.Region{})
	gob.Register(&core.State{})
	gob.Register(&core.Hole{})
	gob.Register(&core.ValueVar{})
	gob.Register(&core.Literal{})
	gob.Register(&core.Box{})
	gob.Register(&core.PureApp{})
	gob.Register(&core.Select{})
	gob.Register(&core.DirectApp{})
	gob.Register(&core.Run{})
	gob.Register(&core.BlockVar{})
	gob.Register(&core.BlockLit{})
	gob.Register(&core.Member{})
	gob.Register(&core.Unbox{})
	gob.Register(&core.New{})
	gob.Register(&core.DataDef{})
	gob.Register(&core.RecordDef{})
	gob.Register(&core.InterfaceDef{})
	gob.Register(&core.ExternDef{})
	gob.Register(&core.ExternInclude{})
	gob.Register(names.Blk{})
	gob.Register(names.Word{})
	gob.Register(names.Link{})
}

// Driver is the tree-walk backend's Driver implementation (spec §6).
type Driver struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a tree-walk Driver holding stdout/stderr in its fields.
// Eval and Run write program output to the writers passed to them, not
// to these fields.
func New(stdout, stderr io.Writer) *Driver {
	return &Driver{Stdout: stdout, Stderr: stderr}
}

func (d *Driver) Name() string { return "treewalk" }

func (d *Driver) Extension() string { return ".effc-core" }

// Prelude names no modules beyond what the surface compiler's own
// standard prelude already injects; the tree-walk backend adds nothing
// backend-specific to every program's implicit imports.
func (d *Driver) Prelude() []string { return nil }

// Includes reports no additional search directories: the tree-walk
// backend interprets the already-lowered core.Program directly and never
// shells out to a separate toolchain that would need extra include
// paths (unlike e.g. a native-codegen backend needing libc headers).
func (d *Driver) Includes(stdlib string) []string { return nil }

// CheckSetup always succeeds: the tree-walk backend has no external
// toolchain dependency (spec §6's checkSetup contract exists for
// backends like grpcdriver that depend on a reachable server process).
func (d *Driver) CheckSetup() (bool, string) { return true, "" }

// Build gob-encodes prog to outputPath and returns outputPath itself as
// the "executable" (there is nothing else to produce: Eval reads the
// same file back and interprets it).
func (d *Driver) Build(prog *backend.Program, outputPath string) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(prog); err != nil {
		return "", fmt.Errorf("treewalk: encoding program: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("treewalk: writing %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// Eval decodes the program persisted at executablePath and runs it to
// completion, writing println/print output to stdout/stderr and
// returning 0 on success or 1 if the program panicked with a runtime
// error (mirroring the teacher's ExecutionProcessor, which turns a
// recovered backend error into a diagnostics.Error rather than letting it
// crash the host process).
func (d *Driver) Eval(executablePath string, args []string, stdout, stderr io.Writer) (exitCode int, err error) {
	data, err := os.ReadFile(executablePath)
	if err != nil {
		return 1, fmt.Errorf("treewalk: reading %s: %w", executablePath, err)
	}
	var prog backend.Program
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&prog); err != nil {
		return 1, fmt.Errorf("treewalk: decoding %s: %w", executablePath, err)
	}
	return d.Run(&prog, args, stdout, stderr)
}

// Run interprets prog directly, without the gob round-trip — the path
// Eval takes after decoding, and the one treewalk_test.go uses since it
// already holds a freshly-transformed Program.
func (d *Driver) Run(prog *backend.Program, args []string, stdout, stderr io.Writer) (exitCode int, err error) {
	i := newInterp(prog.Definitions)
	global := newEnv(nil)
	i.registerBuiltins(global, stdout, stderr)
	i.bindArgs(global, args)
	i.bindExterns(global, prog.Definitions)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stderr, "runtime error:", r)
			exitCode = 1
			err = fmt.Errorf("treewalk: %v", r)
		}
	}()

	runtime.Run(i.evalStmt(prog.Entry, global), nil)
	return 0, nil
}

func (i *interp) bindArgs(global *env, args []string) {
	fields := make([]runtime.Value, len(args))
	for idx, a := range args {
		fields[idx] = a
	}
	global.bind(names.New("args"), &dataValue{ctor: "Args", fields: fields})
}

// bindExterns gives every ExternDef a callable binding so references to
// them resolve even when this backend has no way to execute their body
// text: println/print-shaped externs fall back to the matching builtin
// already registered, and anything else becomes a block that panics with
// a clear message identifying the unsupported extern by name (there is
// no sensible tree-walk interpretation of backend-specific verbatim body
// text written for a native-codegen target).
func (i *interp) bindExterns(global *env, defs []core.Definition) {
	for _, d := range defs {
		ext, ok := d.(*core.ExternDef)
		if !ok {
			continue
		}
		name := ext.Name
		if _, exists := global.lookup(name); exists {
			continue
		}
		global.bind(name, &nativeBlock{fn: func([]runtime.Value) runtime.Control {
			panic("treewalk: extern \"" + name.String() + "\" has no tree-walk implementation")
		}})
	}
}
