// Package lsp implements SPEC_FULL.md §6's language-server interface:
// Service (getDefinition/getSymbolAt/getSymbols/getReferences/getHover/
// getCodeActions/executeCommand) wired to internal/annotations +
// internal/namer + internal/symtab, plus a minimal JSON-RPC-over-stdio
// transport.
//
// Grounded on the teacher's cmd/lsp package (server.go's Content-Length
// framing and request/notification dispatch, protocol.go's wire types,
// handler_hover.go/handler_definition.go's document-cache-then-resolve
// shape) — generalized from the teacher's HM-inference
// analyzer/pipeline.PipelineContext to this compiler's
// annotations.Store/namer.Namer/symtab.Module.
package lsp

// Wire message envelopes (JSON-RPC 2.0), identical in shape to the
// teacher's cmd/lsp/protocol.go.
type RequestMessage struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type ResponseMessage struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result"`
	Error   *RPCError   `json:"error,omitempty"`
}

type NotificationMessage struct {
	Jsonrpc string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LSP data types — Position/Range/Location use 0-based line/character,
// converted to/from the 1-based core.Pos the rest of the compiler uses.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier   `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// SymbolInfo is this service's flattened view of a symtab.Symbol, used by
// getSymbolAt/getSymbols — the LSP-facing projection of a symbol that
// never leaks the internal symtab.Symbol interface across the wire.
type SymbolInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Definition Location `json:"definition"`
}

type CodeAction struct {
	Title   string    `json:"title"`
	Command string    `json:"command"`
	Args    []interface{} `json:"arguments,omitempty"`
}

type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

type ExecuteCommandParams struct {
	Command   string        `json:"command"`
	Arguments []interface{} `json:"arguments,omitempty"`
}

type InitializeParams struct {
	ProcessID *int `json:"processId,omitempty"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

type ServerCapabilities struct {
	TextDocumentSync   int  `json:"textDocumentSync"`
	HoverProvider      bool `json:"hoverProvider"`
	DefinitionProvider bool `json:"definitionProvider"`
	ReferencesProvider bool `json:"referencesProvider"`
	DocumentSymbolProvider bool `json:"documentSymbolProvider"`
	CodeActionProvider bool `json:"codeActionProvider"`
	ExecuteCommandProvider *ExecuteCommandOptions `json:"executeCommandProvider,omitempty"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}
