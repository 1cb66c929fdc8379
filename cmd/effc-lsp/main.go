// Command effc-lsp is the language-server front end for effc (SPEC_FULL.md
// §6): a Content-Length-framed JSON-RPC server over stdin/stdout wrapping
// internal/lsp.Service, grounded on the teacher's cmd/lsp/main.go.
package main

import (
	"log"
	"os"

	"github.com/effect-lang/effc/internal/config"
	"github.com/effect-lang/effc/internal/lsp"
)

func main() {
	config.IsLSPMode = true
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	svc := lsp.NewService()
	if err := lsp.Run(svc); err != nil {
		log.Fatalf("effc-lsp: %v", err)
	}
}
