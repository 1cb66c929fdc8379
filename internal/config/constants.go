package config

// Version is the current effc version, set at build time via -ldflags or
// by editing this file directly, the same release-stamping convention
// the teacher's Version var uses.
var Version = "0.1.0"

// SourceFileExt is the canonical source file extension this compiler
// recognizes (spec.md's surface-language files).
const SourceFileExt = ".effc"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{SourceFileExt}

// TrimSourceExt removes a recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates the process is running under the functional test
// harness (set once at startup in cmd/effc/main.go when FUNXY_TEST_MODE's
// generalization, EFFC_TEST_MODE, is "1"; no command-line argument sets
// it), matching the teacher's config.IsTestMode gate.
var IsTestMode = false

// IsLSPMode indicates the process is running as the language server
// (set in cmd/effc-lsp/main.go), matching the teacher's
// config.IsLSPMode gate.
var IsLSPMode = false
