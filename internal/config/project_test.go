package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProjectConfigDefaultsBackendWhenOmitted(t *testing.T) {
	cfg, err := ParseProjectConfig([]byte(`prelude: ["std/list"]`), "effc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "treewalk" {
		t.Fatalf("expected default backend treewalk, got %q", cfg.Backend)
	}
	if len(cfg.Prelude) != 1 || cfg.Prelude[0] != "std/list" {
		t.Fatalf("expected prelude [std/list], got %v", cfg.Prelude)
	}
}

func TestParseProjectConfigHonorsExplicitBackend(t *testing.T) {
	cfg, err := ParseProjectConfig([]byte(`backend: grpc:localhost:9090`), "effc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "grpc:localhost:9090" {
		t.Fatalf("expected explicit backend preserved, got %q", cfg.Backend)
	}
}

func TestIncludesAndLibrariesArePerBackend(t *testing.T) {
	yaml := `
includes:
  js: ["./vendor/js"]
  llvm: ["/usr/include"]
libraries:
  llvm: ["/usr/lib"]
`
	cfg, err := ParseProjectConfig([]byte(yaml), "effc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.IncludesFor("js"); len(got) != 1 || got[0] != "./vendor/js" {
		t.Fatalf("expected js includes [./vendor/js], got %v", got)
	}
	if got := cfg.IncludesFor("llvm"); len(got) != 1 || got[0] != "/usr/include" {
		t.Fatalf("expected llvm includes [/usr/include], got %v", got)
	}
	if got := cfg.LibrariesFor("js"); got != nil {
		t.Fatalf("expected no js libraries configured, got %v", got)
	}
	if got := cfg.LibrariesFor("llvm"); len(got) != 1 || got[0] != "/usr/lib" {
		t.Fatalf("expected llvm libraries [/usr/lib], got %v", got)
	}
}

func TestEffectiveJITBinPrefersConfigOverEnv(t *testing.T) {
	t.Setenv("EFFEKT_JIT_BIN", "/env/jit")

	withConfig := &ProjectConfig{JITBin: "/config/jit"}
	if got := withConfig.EffectiveJITBin(); got != "/config/jit" {
		t.Fatalf("expected config override to win, got %q", got)
	}

	withoutConfig := &ProjectConfig{}
	if got := withoutConfig.EffectiveJITBin(); got != "/env/jit" {
		t.Fatalf("expected the environment variable as fallback, got %q", got)
	}
}

func TestFindProjectConfigWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "effc.yaml"), []byte("backend: treewalk\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	found, err := FindProjectConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "a", "effc.yaml")
	if found != want {
		t.Fatalf("expected to find %q, got %q", want, found)
	}
}

func TestFindProjectConfigReturnsEmptyWhenNoneExists(t *testing.T) {
	root := t.TempDir()
	found, err := FindProjectConfig(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no config found, got %q", found)
	}
}
