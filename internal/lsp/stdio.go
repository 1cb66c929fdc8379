package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Transport is a JSON-RPC 2.0 server reading Content-Length-framed
// messages from a reader and dispatching them against a Service,
// grounded on the teacher's cmd/lsp/server.go LanguageServer — the same
// bufio.Reader header-then-body loop, generalized to dispatch against
// this package's Service instead of the teacher's DocumentState map.
type Transport struct {
	svc    *Service
	reader *bufio.Reader
	writer io.Writer
}

// NewTransport creates a Transport reading from r and writing responses
// to w (ordinarily os.Stdin/os.Stdout, split out here so stdio framing
// can be tested against in-memory buffers).
func NewTransport(svc *Service, r io.Reader, w io.Writer) *Transport {
	return &Transport{svc: svc, reader: bufio.NewReader(r), writer: w}
}

// Serve reads and dispatches messages until the reader is exhausted or
// an "exit" notification is received (returning nil in either case —
// the teacher's Start calls os.Exit(0) directly on "exit", so callers
// that want that behavior wrap Serve's return value themselves).
func (t *Transport) Serve() error {
	for {
		content, err := t.readMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := t.handleMessage(content); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Printf("lsp: error handling message: %v", err)
		}
	}
}

func (t *Transport) readMessage() ([]byte, error) {
	contentLength := -1
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length: ") {
			n, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
			if err != nil {
				return nil, fmt.Errorf("lsp: bad Content-Length: %w", err)
			}
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("lsp: message with no Content-Length header")
	}
	content := make([]byte, contentLength)
	if _, err := io.ReadFull(t.reader, content); err != nil {
		return nil, err
	}
	return content, nil
}

type envelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (t *Transport) handleMessage(content []byte) error {
	var msg envelope
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("lsp: unmarshal message: %w", err)
	}
	if msg.ID != nil {
		return t.handleRequest(msg)
	}
	return t.handleNotification(msg)
}

func (t *Transport) handleRequest(msg envelope) error {
	result, rpcErr := t.dispatch(msg)
	return t.sendMessage(ResponseMessage{Jsonrpc: "2.0", ID: msg.ID, Result: result, Error: rpcErr})
}

func (t *Transport) dispatch(msg envelope) (interface{}, *RPCError) {
	switch msg.Method {
	case "initialize":
		return InitializeResult{Capabilities: ServerCapabilities{
			TextDocumentSync:       1,
			HoverProvider:          true,
			DefinitionProvider:     true,
			ReferencesProvider:     true,
			DocumentSymbolProvider: true,
			CodeActionProvider:     true,
			ExecuteCommandProvider: &ExecuteCommandOptions{Commands: []string{"effc.describeSymbol"}},
		}}, nil

	case "shutdown":
		return nil, nil

	case "textDocument/hover":
		var p TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		text, ok := t.svc.GetHover(p.TextDocument.URI, p.Position)
		if !ok {
			return nil, nil
		}
		return Hover{Contents: MarkupContent{Kind: "markdown", Value: text}}, nil

	case "textDocument/definition":
		var p TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		loc, ok := t.svc.GetDefinition(p.TextDocument.URI, p.Position)
		if !ok {
			return nil, nil
		}
		return loc, nil

	case "textDocument/references":
		var p TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		return t.svc.GetReferences(p.TextDocument.URI, p.Position), nil

	case "textDocument/documentSymbol":
		var p struct {
			TextDocument TextDocumentIdentifier `json:"textDocument"`
		}
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		return t.svc.GetSymbols(p.TextDocument.URI), nil

	case "textDocument/codeAction":
		var p CodeActionParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		return t.svc.GetCodeActions(p.TextDocument.URI, p.Range), nil

	case "workspace/executeCommand":
		var p ExecuteCommandParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return nil, parseErr(err)
		}
		result, err := t.svc.ExecuteCommand(p.Command, p.Arguments)
		if err != nil {
			return nil, &RPCError{Code: -32603, Message: err.Error()}
		}
		return result, nil

	case "textDocument/formatting", "textDocument/completion":
		// Disabled, matching the teacher's own advertised capabilities.
		return nil, &RPCError{Code: -32601, Message: fmt.Sprintf("method not found: %s", msg.Method)}

	default:
		return nil, &RPCError{Code: -32601, Message: fmt.Sprintf("method not found: %s", msg.Method)}
	}
}

func (t *Transport) handleNotification(msg envelope) error {
	switch msg.Method {
	case "initialized":
		return nil

	case "textDocument/didOpen":
		var p DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		t.svc.Open(p.TextDocument.URI, p.TextDocument.Text)
		return nil

	case "textDocument/didChange":
		var p DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		if len(p.ContentChanges) == 0 {
			return nil
		}
		// Only full-document sync is advertised, so the last change
		// carries the whole document text.
		t.svc.Change(p.TextDocument.URI, p.ContentChanges[len(p.ContentChanges)-1].Text)
		return nil

	case "textDocument/didClose":
		var p DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		t.svc.Close(p.TextDocument.URI)
		return nil

	case "exit":
		return io.EOF

	default:
		return nil
	}
}

func (t *Transport) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(t.writer, "Content-Length: %d\r\n\r\n%s", len(data), data); err != nil {
		return err
	}
	return nil
}

func parseErr(err error) *RPCError {
	return &RPCError{Code: -32700, Message: fmt.Sprintf("parse error: %v", err)}
}

// Run wires a Transport to os.Stdin/os.Stdout and serves until exit or
// EOF, the entry point cmd/effc-lsp's main calls directly.
func Run(svc *Service) error {
	t := NewTransport(svc, os.Stdin, os.Stdout)
	return t.Serve()
}
