package lsp

import (
	"context"
	"sync"

	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/diagnostics"
	"github.com/effect-lang/effc/internal/namer"
	"github.com/effect-lang/effc/internal/parser"
	"github.com/effect-lang/effc/internal/symtab"
)

// document holds one open file's last-analyzed state: its own
// annotations.Store/Index and symtab.Module, fresh per analysis since
// annotation keys are ast.Node pointers tied to one particular parse
// (spec §4.1 "Key identity") — re-analyzing a changed document discards
// the old tree and store wholesale rather than patching it, the same
// whole-document re-analysis handler_document.go's handleDidChange does.
type document struct {
	mu      sync.RWMutex
	uri     string
	source  string
	store   *annotations.Store
	index   *annotations.Index
	module  *symtab.Module
	program *ast.Program
	errs    *diagnostics.Buffer
}

// Service is the language-server core (SPEC_FULL.md §6): every method is
// safe to call concurrently with Open/Change/Close, guarded per-document.
type Service struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewService creates an empty Service with no open documents.
func NewService() *Service {
	return &Service{docs: make(map[string]*document)}
}

// Open analyzes source and registers it under uri, replacing any prior
// state for that URI (matching handleDidOpen's fresh-analysis behavior).
func (s *Service) Open(uri, source string) {
	s.store(uri, s.analyze(uri, source))
}

// Change re-analyzes source for an already-open uri (handleDidChange's
// full-sync re-analysis — this server only supports
// TextDocumentSyncKind.Full, like the teacher).
func (s *Service) Change(uri, source string) {
	s.store(uri, s.analyze(uri, source))
}

// Close discards uri's analyzed state.
func (s *Service) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

func (s *Service) store(uri string, doc *document) {
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
}

func (s *Service) get(uri string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// analyze runs the Parse -> (in-memory index attach) -> Namer pipeline
// over source, the LSP's equivalent of handler_document.go's
// lexer/parser/analyzer pipeline.Run, stopping at the Namer stage since
// no Typer exists yet in SPEC_FULL.md's scope (Open Question, see
// DESIGN.md) — hover/definition/references work entirely off Namer
// annotations.
func (s *Service) analyze(uri, source string) *document {
	prog, errs := parser.Parse(uri, source)

	store := annotations.New()
	idx, err := annotations.NewIndex(context.Background())
	if err == nil {
		store.AttachIndex(idx)
	}
	module := symtab.NewSourceModule(uri)

	if prog != nil {
		namer.New(store, module).Run(prog)
	}

	return &document{
		uri:     uri,
		source:  source,
		store:   store,
		index:   idx,
		module:  module,
		program: prog,
		errs:    errs,
	}
}
