// Package backend implements spec.md §6's backend-runner contract: each
// backend exposes a file extension for generated artifacts, a prelude
// list, an includes(stdlib) list, checkSetup, build and eval. A Registry
// selects among the backends compiled into this binary by name, the way
// the teacher's internal/backend.Backend interface lets the CLI switch
// between its TreeWalkBackend and VMBackend (internal/backend/backend.go,
// internal/backend/treewalk.go, internal/backend/vmbackend.go) — except
// here a Driver may equally be an out-of-process backend reached over
// gRPC (see internal/backend/grpcdriver), which the teacher's two
// in-process engines never needed to model.
package backend

import (
	"io"

	"github.com/effect-lang/effc/internal/core"
)

// Program is the lowered unit a Driver consumes: the top-level
// definitions (data/record/interface/extern) plus the entry statement
// produced by running every other top-level declaration through
// internal/transformer.TransformProgram.
type Program struct {
	Definitions []core.Definition
	Entry       core.Stmt
}

// Driver is one backend's implementation of spec.md §6's runner
// contract.
type Driver interface {
	// Name identifies the backend for --backend selection and the
	// Registry's lookup key.
	Name() string

	// Extension is the file extension used for this backend's generated
	// artifacts (spec §6's persisted-state rule: generated files are
	// named after the backend's extension).
	Extension() string

	// Prelude lists module names to auto-import into every compiled
	// program.
	Prelude() []string

	// Includes lists extra directories this backend needs on its search
	// path, given the resolved stdlib root.
	Includes(stdlib string) []string

	// CheckSetup reports whether this backend's toolchain is usable, and
	// if not, an explanation suitable for surfacing to the user (spec §6:
	// "checkSetup() -> ok | explanation").
	CheckSetup() (ok bool, explanation string)

	// Build compiles prog into an executable artifact at outputPath,
	// returning the path of the resulting executable (which need not
	// equal outputPath — e.g. a persisted shebang/.bat wrapper around it,
	// per spec §6's persisted-state rule).
	Build(prog *Program, outputPath string) (executablePath string, err error)

	// Eval runs executablePath, forwarding args and writing its stdout
	// and stderr to the given writers, and returns its exit code.
	Eval(executablePath string, args []string, stdout, stderr io.Writer) (exitCode int, err error)
}

// Registry holds every Driver compiled into this binary, keyed by name —
// the generalization of the teacher's build-time choice between
// NewTreeWalk() and a VM backend into a name-keyed table a CLI flag
// indexes into instead of an `if vm { ... } else { ... }`.
type Registry struct {
	drivers []Driver
	byName  map[string]Driver
	dflt    string
}

// NewRegistry creates an empty Registry. The first driver Register'd
// becomes the default (spec §6's CLI surface falls back to one backend
// when --backend is not given).
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Driver)}
}

func (r *Registry) Register(d Driver) {
	if _, exists := r.byName[d.Name()]; !exists {
		r.drivers = append(r.drivers, d)
	}
	r.byName[d.Name()] = d
	if r.dflt == "" {
		r.dflt = d.Name()
	}
}

// Get resolves a backend by name, or the registry's default when name is
// empty.
func (r *Registry) Get(name string) (Driver, bool) {
	if name == "" {
		name = r.dflt
	}
	d, ok := r.byName[name]
	return d, ok
}

// Names lists every registered backend name, in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.drivers))
	for i, d := range r.drivers {
		names[i] = d.Name()
	}
	return names
}

// Default returns the name of the registry's default backend.
func (r *Registry) Default() string { return r.dflt }
