// Package diagnostics implements the error-handling design of spec §7:
// a user-error taxonomy, a sorted-deduplicating message buffer, and an
// isatty-gated caret-underlined source excerpt renderer.
package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/effect-lang/effc/internal/token"
)

// ErrorCode classifies a diagnostic. Codes are stable strings so LSP
// clients and golden tests can match on them independent of message
// wording, grounded on the teacher's parser ErrP001..ErrP007 codes
// (internal/parser/parser_kind.go and its callers).
type ErrorCode string

const (
	// Parser errors: a single message with a range (spec §7).
	ErrUnexpectedToken  ErrorCode = "P001"
	ErrInvalidAssignTgt ErrorCode = "P002"
	ErrUnterminatedExpr ErrorCode = "P005"
	ErrUnexpectedEOF    ErrorCode = "P004"
	ErrMissingBody      ErrorCode = "P006"
	ErrInvalidIndex     ErrorCode = "P007"

	// User (semantic) errors.
	ErrSymbolNotFound       ErrorCode = "T001"
	ErrUniverseMismatch     ErrorCode = "T002"
	ErrAmbiguousOverload    ErrorCode = "T003"
	ErrFailedOverload       ErrorCode = "T004"
	ErrEffectMismatch       ErrorCode = "T005"
	ErrTopLevelEffectfulVal ErrorCode = "T006"
	ErrBlockArgToConstructor ErrorCode = "T007"

	// Internal compiler errors (panics; spec §7 "abort compilation").
	ErrInternal ErrorCode = "I001"

	// Backend errors (missing tool, non-zero exit; spec §7).
	ErrBackendTool ErrorCode = "B001"
)

// Severity is a diagnostic's display level.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticError is one reported problem: a code, a position (via the
// offending token), a human message, and severity. It implements error
// so it composes with ordinary Go error handling at package boundaries
// that don't otherwise know about diagnostics.
type DiagnosticError struct {
	Code     ErrorCode
	Severity Severity
	File     string
	Token    token.Token
	Message  string
	// Attempts holds, for a FailedOverloadError, the nested error from
	// each overload candidate that was tried and rejected (spec §7:
	// "each attempted match reported with its own nested error").
	Attempts []*DiagnosticError
}

func (e *DiagnosticError) Error() string {
	return e.Message
}

// NewError builds a DiagnosticError at error severity, formatting msg
// with args the way the teacher's diagnostics.NewError(code, token, ...)
// call sites do (fmt.Sprintf over the trailing arguments).
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityError, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// NewWarning builds a DiagnosticError at warning severity — used for
// spec §8 scenario 5's "Condition to while loop is pure" diagnostic.
func NewWarning(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityWarning, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// NewInternal builds the "internal compiler error" kind spec §7 names:
// unreachable branches, universe misuse, missing required annotations.
// Callers panic with these rather than returning them through the
// ordinary message buffer (spec: "abort compilation").
func NewInternal(format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: ErrInternal, Severity: SeverityError, Message: "[error] internal: " + fmt.Sprintf(format, args...)}
}

// AmbiguousOverloadError is spec §7's structured ambiguous-overload
// report: multiple candidates match a call site equally well, each
// named by fully-qualified symbol and inferred type.
type AmbiguousOverloadError struct {
	Call       token.Token
	Candidates []OverloadCandidate
}

// OverloadCandidate names one symbol considered for a call site and the
// signature it would have contributed, for both ambiguous- and
// failed-overload reporting.
type OverloadCandidate struct {
	QualifiedName string
	Signature     string
}

func (e *AmbiguousOverloadError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%s: %s", c.QualifiedName, c.Signature)
	}
	return fmt.Sprintf("ambiguous overload at %s: %s", formatPos(e.Call), strings.Join(names, "; "))
}

// NewAmbiguousOverload builds an AmbiguousOverloadError and wraps it as
// the DiagnosticError the rest of the pipeline accumulates.
func NewAmbiguousOverload(call token.Token, candidates []OverloadCandidate) *DiagnosticError {
	inner := &AmbiguousOverloadError{Call: call, Candidates: candidates}
	return &DiagnosticError{Code: ErrAmbiguousOverload, Severity: SeverityError, Token: call, Message: inner.Error()}
}

// NewFailedOverload merges the per-attempt scoped error buffers the
// Typer's backtracking path collects (spec §7: "catches a scoped error
// buffer per overload attempt and merges the loser into a
// FailedOverloadError") into one DiagnosticError carrying every
// attempt's own nested error.
func NewFailedOverload(call token.Token, attempts []*DiagnosticError) *DiagnosticError {
	lines := make([]string, len(attempts))
	for i, a := range attempts {
		lines[i] = a.Error()
	}
	return &DiagnosticError{
		Code:     ErrFailedOverload,
		Severity: SeverityError,
		Token:    call,
		Message:  fmt.Sprintf("no overload of the call at %s matched:\n  %s", formatPos(call), strings.Join(lines, "\n  ")),
		Attempts: attempts,
	}
}

func formatPos(tok token.Token) string {
	return fmt.Sprintf("%d:%d", tok.Line, tok.Column)
}

// Buffer accumulates user errors across a compilation phase (spec §7:
// "User errors accumulate in a message buffer; compilation of the
// enclosing phase continues until a natural checkpoint, then reports
// sorted-deduplicated messages"). Internal errors are never buffered —
// NewInternal's caller panics immediately instead.
type Buffer struct {
	errors []*DiagnosticError
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Add appends a diagnostic to the buffer.
func (b *Buffer) Add(d *DiagnosticError) {
	b.errors = append(b.errors, d)
}

// HasErrors reports whether any buffered diagnostic is at error
// severity (warnings alone don't fail a phase).
func (b *Buffer) HasErrors() bool {
	for _, e := range b.errors {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of b, for the Typer's per-overload
// scoped buffer (spec §7): mutating the clone while an overload
// candidate is attempted never touches the original, so a rejected
// candidate's diagnostics can be discarded (or merged into a
// FailedOverloadError) without contaminating the enclosing buffer.
func (b *Buffer) Clone() *Buffer {
	cloned := make([]*DiagnosticError, len(b.errors))
	copy(cloned, b.errors)
	return &Buffer{errors: cloned}
}

// Merge appends other's diagnostics onto b, in other's order.
func (b *Buffer) Merge(other *Buffer) {
	b.errors = append(b.errors, other.errors...)
}

// Sorted returns the buffer's diagnostics ordered by (file, line,
// column), duplicates (same code, position, and message) collapsed to
// one (spec §7: "sorted-deduplicated messages").
func (b *Buffer) Sorted() []*DiagnosticError {
	sorted := make([]*DiagnosticError, len(b.errors))
	copy(sorted, b.errors)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i], sorted[j]
		if a.File != c.File {
			return a.File < c.File
		}
		if a.Token.Line != c.Token.Line {
			return a.Token.Line < c.Token.Line
		}
		return a.Token.Column < c.Token.Column
	})

	deduped := sorted[:0:0]
	var lastKey string
	for _, e := range sorted {
		key := fmt.Sprintf("%s|%s|%d|%d|%s", e.File, e.Code, e.Token.Line, e.Token.Column, e.Message)
		if key == lastKey {
			continue
		}
		lastKey = key
		deduped = append(deduped, e)
	}
	return deduped
}

// NormalizePath rewrites path to forward-slash form so reported
// positions and test expectations agree across platforms (spec §7).
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// Renderer formats diagnostics for a terminal or a plain log, deciding
// once at construction whether ANSI color is appropriate — grounded on
// the teacher's detectColorLevel (internal/evaluator/builtins_term.go):
// NO_COLOR opts out unconditionally, otherwise isatty.IsTerminal /
// IsCygwinTerminal gates color.
type Renderer struct {
	color bool
}

// NewRenderer builds a Renderer for out, auto-detecting color support.
func NewRenderer(out *os.File) *Renderer {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return &Renderer{color: false}
	}
	fd := out.Fd()
	return &Renderer{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiYellow = "\x1b[33m"
)

// Render formats one diagnostic as spec §7 requires: severity, position
// (path:line:col, forward-slash normalized), message, and a
// caret-underlined excerpt of the offending source line. source is the
// full text of the file the diagnostic's token came from; pass "" to
// omit the excerpt (e.g. when the source text isn't available).
func (r *Renderer) Render(d *DiagnosticError, source string) string {
	var b strings.Builder

	sevWord := d.Severity.String()
	if r.color {
		color := ansiRed
		if d.Severity == SeverityWarning {
			color = ansiYellow
		}
		fmt.Fprintf(&b, "%s%s[%s]%s ", color, ansiBold, sevWord, ansiReset)
	} else {
		fmt.Fprintf(&b, "[%s] ", sevWord)
	}

	path := NormalizePath(d.File)
	if path != "" {
		fmt.Fprintf(&b, "%s:%d:%d: ", path, d.Token.Line, d.Token.Column)
	}
	b.WriteString(d.Message)

	if source != "" {
		if excerpt := r.renderExcerpt(source, d.Token); excerpt != "" {
			b.WriteByte('\n')
			b.WriteString(excerpt)
		}
	}

	return b.String()
}

// renderExcerpt returns the source line the token sits on, with a caret
// run underlining the token's span beneath it.
func (r *Renderer) renderExcerpt(source string, tok token.Token) string {
	lines := strings.Split(source, "\n")
	if tok.Line < 1 || tok.Line > len(lines) {
		return ""
	}
	line := lines[tok.Line-1]

	width := len([]rune(tok.Lexeme))
	if width < 1 {
		width = 1
	}
	col := tok.Column
	if col < 1 {
		col = 1
	}
	pad := strings.Repeat(" ", col-1)
	carets := strings.Repeat("^", width)

	if r.color {
		return fmt.Sprintf("  %s\n  %s%s%s%s", line, pad, ansiBold, carets, ansiReset)
	}
	return fmt.Sprintf("  %s\n  %s%s", line, pad, carets)
}
