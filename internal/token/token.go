// Package token defines the lexical token kinds the lexer/parser pair
// exchange, grounded on the teacher's flat TokenType enum plus
// lexeme/literal/position Token struct (the shape internal/lexer's
// tokenizer already builds token.Token values against).
package token

import "fmt"

// TokenType is a lexical category. Kept as a plain int enum rather than
// a string enum, matching the teacher's convention of cheap-to-compare
// token kinds.
type TokenType int

// Token is one lexical unit: its kind, the exact source text it came
// from, a decoded literal value for literal kinds (int64, float64,
// *big.Int, *big.Rat, string, rune — whatever the lexer decoded), and
// its source position (1-based line, 1-based column).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
}

const (
	ILLEGAL TokenType = iota
	EOF
	NEWLINE

	// Literals
	IDENT_LOWER
	IDENT_UPPER
	INT
	FLOAT
	BIG_INT
	RATIONAL
	STRING
	INTERP_STRING
	FORMAT_STRING
	CHAR
	BYTES_STRING
	BYTES_HEX
	BYTES_BIN
	BITS_HEX
	BITS_BIN
	BITS_OCT

	// Operators
	ASSIGN
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	POWER
	BANG
	PLUS_ASSIGN
	MINUS_ASSIGN
	ASTERISK_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	POWER_ASSIGN
	EQ
	NOT_EQ
	LT
	GT
	LTE
	GTE
	AND
	OR
	AMPERSAND
	PIPE
	CARET
	TILDE
	LSHIFT
	RSHIFT
	ARROW
	L_ARROW
	COMPOSE
	CONCAT
	CONS
	PIPE_GT
	PIPE_GT_UNWRAP
	NULL_COALESCE
	OPTIONAL_CHAIN
	COLON_MINUS

	// User-definable operator family (teacher's operator-overload surface)
	USER_OP_APP
	USER_OP_APPLY
	USER_OP_BIND
	USER_OP_CHOOSE
	USER_OP_COMBINE
	USER_OP_CONS
	USER_OP_IMPLY
	USER_OP_MAP
	USER_OP_PIPE_LEFT
	USER_OP_SWAP

	// Delimiters
	COMMA
	DOT
	DOT_DOT
	ELLIPSIS
	COLON
	QUESTION
	BACKSLASH
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	PERCENT_LBRACE

	// Keywords — effc surface (SPEC_FULL §4.5's lowering rules name
	// function/effect/interface/data/record declarations, val/var/if/
	// while/match/try-handle/region/assign/hole)
	DEF
	TYPE
	VAL
	VAR
	IF
	ELSE
	WHILE
	MATCH
	CASE
	TRY
	WITH
	EFFECT
	INTERFACE
	RECORD
	DATA
	REGION
	HANDLE
	DO
	TRUE
	FALSE
	RETURN
	BREAK
	CONTINUE
	IMPORT
	PACKAGE
	IN

	// Keywords inherited from the teacher's surface (still produced by
	// LookupIdent, but no parser production in this repository consumes
	// them)
	FUN
	TRAIT
	INSTANCE
	CONST
	ALIAS
	OPERATOR
	FORALL
	UNDERSCORE

	// Generic identifier kind that no code in this repository emits or
	// compares against; lexer.go always emits IDENT_LOWER/IDENT_UPPER.
	IDENT
)

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE",
	IDENT_LOWER: "IDENT_LOWER", IDENT_UPPER: "IDENT_UPPER", IDENT: "IDENT",
	INT: "INT", FLOAT: "FLOAT", BIG_INT: "BIG_INT", RATIONAL: "RATIONAL",
	STRING: "STRING", INTERP_STRING: "INTERP_STRING", FORMAT_STRING: "FORMAT_STRING",
	CHAR: "CHAR", BYTES_STRING: "BYTES_STRING", BYTES_HEX: "BYTES_HEX", BYTES_BIN: "BYTES_BIN",
	BITS_HEX: "BITS_HEX", BITS_BIN: "BITS_BIN", BITS_OCT: "BITS_OCT",
	ASSIGN: "=", PLUS: "+", MINUS: "-", ASTERISK: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	BANG: "!", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", ASTERISK_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	PERCENT_ASSIGN: "%=", POWER_ASSIGN: "**=", EQ: "==", NOT_EQ: "!=",
	LT: "<", GT: ">", LTE: "<=", GTE: ">=", AND: "&&", OR: "||",
	AMPERSAND: "&", PIPE: "|", CARET: "^", TILDE: "~", LSHIFT: "<<", RSHIFT: ">>",
	ARROW: "->", L_ARROW: "<-", COMPOSE: ">>>", CONCAT: "++", CONS: "::",
	PIPE_GT: "|>", PIPE_GT_UNWRAP: "|>!", NULL_COALESCE: "??", OPTIONAL_CHAIN: "?.",
	COLON_MINUS: ":-",
	COMMA:       ",", DOT: ".", DOT_DOT: "..", ELLIPSIS: "...", COLON: ":", QUESTION: "?",
	BACKSLASH:   "\\",
	LPAREN:      "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	PERCENT_LBRACE: "%{",
	DEF:            "def", VAL: "val", VAR: "var", IF: "if", ELSE: "else", WHILE: "while",
	MATCH: "match", CASE: "case", TRY: "try", WITH: "with", EFFECT: "effect",
	INTERFACE: "interface", RECORD: "record", DATA: "data", REGION: "region",
	HANDLE: "handle", DO: "do", TRUE: "true", FALSE: "false", RETURN: "return",
	BREAK: "break", CONTINUE: "continue", IMPORT: "import", PACKAGE: "package", IN: "in",
	FUN: "fun", TRAIT: "trait", INSTANCE: "instance", CONST: "const", ALIAS: "alias",
	OPERATOR: "operator", FORALL: "forall", UNDERSCORE: "_",
}

func (t TokenType) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Keywords maps every reserved lexeme to its TokenType. LookupIdent
// consults this first; anything else is an ordinary identifier.
var Keywords = map[string]TokenType{
	"def": DEF, "type": TYPE, "val": VAL, "var": VAR, "if": IF, "else": ELSE, "while": WHILE,
	"match": MATCH, "case": CASE, "try": TRY, "with": WITH, "effect": EFFECT,
	"interface": INTERFACE, "record": RECORD, "data": DATA, "region": REGION,
	"handle": HANDLE, "do": DO, "true": TRUE, "false": FALSE, "return": RETURN,
	"break": BREAK, "continue": CONTINUE, "import": IMPORT, "package": PACKAGE, "in": IN,
	"fun": FUN, "trait": TRAIT, "instance": INSTANCE, "const": CONST, "alias": ALIAS,
	"operator": OPERATOR, "forall": FORALL, "_": UNDERSCORE,
}

// LookupIdent resolves a lowercase identifier's lexeme to a keyword
// TokenType, or IDENT_LOWER if it isn't reserved. Callers are
// responsible for routing uppercase-leading identifiers to IDENT_UPPER
// before reaching here (constructor names are never keywords).
func LookupIdent(ident string) TokenType {
	if tt, ok := Keywords[ident]; ok {
		return tt
	}
	return IDENT_LOWER
}
