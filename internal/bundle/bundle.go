// Package bundle implements SPEC_FULL.md §10 supplement #3: serializing
// a compiled core.Definition/core.Stmt program into a single on-disk
// artifact with encoding/gob, the generalization of the teacher's
// internal/vm/bundle.go (Bundle/BundledModule: a magic-numbered,
// versioned, gob-encoded bytecode Chunk plus a table of pre-compiled
// module dependencies) from VM bytecode chunks to this compiler's core
// IR. Any backend.Driver may choose to persist its build artifact this
// way; the tree-walk driver (internal/backend/treewalk) does not call
// this package but gob-encodes its backend.Program itself, and a
// native-codegen driver would instead persist its own generated source
// text.
package bundle

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
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

// magic identifies an effc bundle file ("EFCB").
var magic = [4]byte{'E', 'F', 'C', 'B'}

const version byte = 0x01

// Module is one compiled source file folded into a Bundle — its own
// definitions plus the entry statement produced for it, named by import
// path (the teacher's BundledModule, narrowed to what a core.Program
// needs: no separate exports list, since internal/symtab's module table
// already tracks which of a module's top-level symbols are visible to
// importers).
type Module struct {
	Path    string
	Program backend.Program
}

// Bundle is the complete persisted unit: the entry program for the
// command being run, plus every other module it (transitively) depends
// on, keyed by import path — the generalization of the teacher's
// Bundle{MainChunk, Modules} to this compiler's core IR.
type Bundle struct {
	Backend string
	Main    backend.Program
	Modules map[string]*Module
}

// New wraps a single compiled program with no module dependencies — the
// common case for the scenarios in spec §8, none of which import another
// source file.
func New(backendName string, prog *backend.Program) *Bundle {
	return &Bundle{Backend: backendName, Main: *prog, Modules: map[string]*Module{}}
}

// AddModule records a compiled dependency under path, for later
// resolution by whatever handles cross-module references at eval time.
func (b *Bundle) AddModule(path string, prog *backend.Program) {
	b.Modules[path] = &Module{Path: path, Program: *prog}
}

// Serialize encodes b as [magic(4)][version(1)][gob-encoded Bundle].
func (b *Bundle) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(version)
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, fmt.Errorf("bundle: gob encoding: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a Bundle previously produced by Serialize.
func Deserialize(data []byte) (*Bundle, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("bundle: data too short")
	}
	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return nil, fmt.Errorf("bundle: bad magic, not an effc bundle")
	}
	if got := data[4]; got != version {
		return nil, fmt.Errorf("bundle: unsupported version %d (this binary supports %d)", got, version)
	}
	var b Bundle
	if err := gob.NewDecoder(bytes.NewReader(data[5:])).Decode(&b); err != nil {
		return nil, fmt.Errorf("bundle: gob decoding: %w", err)
	}
	if b.Modules == nil {
		b.Modules = map[string]*Module{}
	}
	return &b, nil
}
