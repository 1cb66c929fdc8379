// Command effc is the compiler/runner front end of SPEC_FULL.md §6's
// command-line surface: parses one source file, lowers it through
// internal/transformer, and runs it against a selected
// internal/backend.Driver.
//
// Grounded on the teacher's cmd/funxy/main.go: manual os.Args scanning
// (no flag package), a top-level panic-to-exit-1 recovery, and an
// environment-variable test-mode gate in place of the teacher's
// FUNXY_TEST_MODE/"test" subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/backend/grpcdriver"
	"github.com/effect-lang/effc/internal/backend/treewalk"
	"github.com/effect-lang/effc/internal/config"
	"github.com/effect-lang/effc/internal/diagnostics"
	"github.com/effect-lang/effc/internal/lsp"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/parser"
	"github.com/effect-lang/effc/internal/symtab"
	"github.com/effect-lang/effc/internal/transformer"
)

type cliArgs struct {
	server       bool
	debug        bool
	backend      string
	gccLibraries []string
	gccIncludes  []string
	sourcePath   string
	runArgs      []string
}

func parseArgs(argv []string) (cliArgs, error) {
	var a cliArgs
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--server":
			a.server = true
		case arg == "-debug" || arg == "--debug":
			a.debug = true
		case arg == "--backend":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--backend requires an argument")
			}
			a.backend = argv[i]
		case arg == "--gcc-libraries":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--gcc-libraries requires an argument")
			}
			a.gccLibraries = splitPathList(argv[i])
		case arg == "--gcc-includes":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--gcc-includes requires an argument")
			}
			a.gccIncludes = splitPathList(argv[i])
		case strings.HasPrefix(arg, "-"):
			return a, fmt.Errorf("unknown flag: %s", arg)
		default:
			if a.sourcePath == "" {
				a.sourcePath = arg
			} else {
				a.runArgs = append(a.runArgs, arg)
			}
		}
	}
	return a, nil
}

func splitPathList(s string) []string {
	return strings.Split(s, string(os.PathListSeparator))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("EFFC_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	args, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if args.server {
		if err := lsp.Run(lsp.NewService()); err != nil {
			fmt.Fprintf(os.Stderr, "effc --server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if args.sourcePath == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [--server] [--debug] [--backend NAME] [--gcc-libraries DIRS] [--gcc-includes DIRS] <source%s> [args...]\n",
			os.Args[0], config.SourceFileExt)
		os.Exit(1)
	}

	os.Exit(run(args))
}

// run executes the parse -> name -> lower -> backend pipeline for one
// source file, mirroring the teacher's runPipeline (selects a backend,
// drives the stages in order, prints diagnostics, and decides whether
// errors are fatal based on config.IsTestMode).
func run(args cliArgs) int {
	cfg := loadProjectConfig(filepath.Dir(args.sourcePath))

	registry := backend.NewRegistry()
	registry.Register(treewalk.New(os.Stdout, os.Stderr))

	backendName := cfg.Backend
	if args.backend != "" {
		backendName = args.backend
	}
	if strings.HasPrefix(backendName, "grpc:") {
		target := strings.TrimPrefix(backendName, "grpc:")
		driver, err := grpcdriver.Dial(backendName, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "effc: dialing backend %s: %v\n", target, err)
			return 1
		}
		defer driver.Close()
		registry.Register(driver)
	}

	driver, ok := registry.Get(backendName)
	if !ok {
		fmt.Fprintf(os.Stderr, "effc: unknown backend %q (available: %s)\n", backendName, strings.Join(registry.Names(), ", "))
		return 1
	}

	if ok, explanation := driver.CheckSetup(); !ok {
		fmt.Fprintf(os.Stderr, "effc: backend %q not usable: %s\n", driver.Name(), explanation)
		return 1
	}

	includes := append(append([]string{}, cfg.IncludesFor(driver.Name())...), args.gccIncludes...)
	libraries := append(append([]string{}, cfg.LibrariesFor(driver.Name())...), args.gccLibraries...)
	if args.debug {
		fmt.Fprintf(os.Stderr, "effc: backend=%s includes=%v libraries=%v jitBin=%s\n",
			driver.Name(), includes, libraries, cfg.EffectiveJITBin())
	}

	source, err := os.ReadFile(args.sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "effc: reading %s: %v\n", args.sourcePath, err)
		return 1
	}

	prog, errs := parser.Parse(args.sourcePath, string(source))
	if errs.HasErrors() {
		reportErrors(errs, string(source))
		if config.IsTestMode {
			return 0
		}
		return 1
	}

	store := annotations.New()
	module := symtab.NewSourceModule(config.TrimSourceExt(filepath.Base(args.sourcePath)))
	namer.New(store, module).Run(prog)

	defs, entry := transformer.New(store, module).TransformProgram(prog)
	lowered := &backend.Program{Definitions: defs, Entry: entry}
	if args.debug {
		fmt.Fprintf(os.Stderr, "effc: lowered %d top-level definitions\n", len(defs))
	}

	outputPath := args.sourcePath + driver.Extension()
	exePath, err := driver.Build(lowered, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "effc: build: %v\n", err)
		return 1
	}

	exitCode, err := driver.Eval(exePath, args.runArgs, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "effc: %v\n", err)
		if config.IsTestMode {
			return 0
		}
	}
	return exitCode
}

// loadProjectConfig searches upward from dir for effc.yaml, returning
// defaults when none is found, the same optional-config behavior the
// teacher's FindConfig/LoadConfig pairing gives funxy.yaml.
func loadProjectConfig(dir string) *config.ProjectConfig {
	path, err := config.FindProjectConfig(dir)
	if err != nil || path == "" {
		cfg, _ := config.ParseProjectConfig(nil, "")
		return cfg
	}
	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "effc: %v\n", err)
		cfg, _ = config.ParseProjectConfig(nil, "")
	}
	return cfg
}

func reportErrors(errs *diagnostics.Buffer, source string) {
	renderer := diagnostics.NewRenderer(os.Stderr)
	for _, d := range errs.Sorted() {
		fmt.Fprintln(os.Stderr, renderer.Render(d, source))
	}
}
