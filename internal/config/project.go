// Package config implements SPEC_FULL.md §4.9's project configuration:
// effc.yaml, the per-project backend and prelude settings a compilation
// run reads before lowering anything.
//
// Grounded on the teacher's internal/ext/config.go (funxy.yaml's
// Config/Dep shape, LoadConfig/ParseConfig/FindConfig, and its
// permissive yaml:"...,omitempty" field style).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the top-level effc.yaml document.
type ProjectConfig struct {
	// Prelude lists modules implicitly imported into every source file,
	// in the order they're linked (later entries shadow earlier ones on
	// name conflict, same as an explicit import would).
	Prelude []string `yaml:"prelude,omitempty"`

	// Backend selects the default execution/codegen backend by name
	// (e.g. "treewalk", "js", "grpc:<address>") when none is given on
	// the command line.
	Backend string `yaml:"backend,omitempty"`

	// Includes lists extra include directories per backend name, mirroring
	// cmd/effc's --gcc-includes flag but scoped per backend so a project
	// can configure more than one target.
	Includes map[string][]string `yaml:"includes,omitempty"`

	// Libraries lists extra library search directories per backend name,
	// mirroring --gcc-libraries.
	Libraries map[string][]string `yaml:"libraries,omitempty"`

	// JITBin overrides the EFFEKT_JIT_BIN environment variable when set,
	// letting a project pin the JIT binary path instead of relying on the
	// caller's environment.
	JITBin string `yaml:"jit_bin,omitempty"`
}

// LoadProjectConfig reads and parses an effc.yaml file at path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProjectConfig(data, path)
}

// ParseProjectConfig parses effc.yaml content from bytes. path is used
// only for error messages.
func ParseProjectConfig(data []byte, path string) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *ProjectConfig) setDefaults() {
	if c.Backend == "" {
		c.Backend = "treewalk"
	}
}

// FindProjectConfig searches for effc.yaml starting from dir and walking
// up through parent directories, the same upward search funxy.yaml's
// FindConfig performs. Returns "" with a nil error if none is found.
func FindProjectConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{"effc.yaml", "effc.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// EffectiveJITBin resolves EFFEKT_JIT_BIN precedence (SPEC_FULL.md §6's
// cmd/effc surface): an explicit config override wins over the
// environment variable, which wins over the empty default.
func (c *ProjectConfig) EffectiveJITBin() string {
	if c.JITBin != "" {
		return c.JITBin
	}
	return os.Getenv("EFFEKT_JIT_BIN")
}

// IncludesFor returns the configured include directories for backend,
// or nil if none are configured.
func (c *ProjectConfig) IncludesFor(backend string) []string {
	return c.Includes[backend]
}

// LibrariesFor returns the configured library directories for backend,
// or nil if none are configured.
func (c *ProjectConfig) LibrariesFor(backend string) []string {
	return c.Libraries[backend]
}
