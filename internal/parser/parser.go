// Package parser implements a recursive-descent/Pratt parser producing
// internal/ast's minimal surface tree (SPEC_FULL.md §10 supplement #1):
// restricted to the constructs the core IR and its lowering rules need
// to exercise (def/type/effect/interface/data/record/val/var/if/while/
// match/try/with/region declarations), not a full-language frontend.
//
// Grounded on the teacher's internal/parser (expressions_core.go's
// curToken/peekToken two-token lookahead, prefixParseFns/infixParseFns
// dispatch tables, precedence-climbing parseExpression, and its
// diagnostics.NewError-on-error-recovery style), reusing internal/lexer
// unchanged since it already tokenizes into the shared internal/token
// vocabulary independent of any concrete surface grammar.
package parser

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/diagnostics"
	"github.com/effect-lang/effc/internal/lexer"
	"github.com/effect-lang/effc/internal/token"
)

// Operator precedence levels, lowest to highest — the teacher's
// expressions_core.go precedence-climbing scheme.
const (
	LOWEST int = iota
	ASSIGNMENT
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	DOT
)

var precedences = map[token.TokenType]int{
	token.COLON_MINUS: ASSIGNMENT,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.DOT:      DOT,
}

const maxRecursionDepth = 200

// Parser parses one source file into an *ast.Program.
type Parser struct {
	lex   *lexer.Lexer
	file  string
	cur   token.Token
	peek  token.Token
	depth int
	errs  *diagnostics.Buffer
}

// Parse lexes and parses src (from file, used only for diagnostics
// positions) into a Program, returning any parse errors accumulated in
// errs (spec §7: parser errors are a single message with a range, never
// structured).
func Parse(file, src string) (*ast.Program, *diagnostics.Buffer) {
	p := &Parser{lex: lexer.New(src), file: file, errs: diagnostics.NewBuffer()}
	p.next()
	p.next()
	pos := p.pos()
	p.skipNewlines()
	var decls []ast.Stmt
	for !p.curIs(token.EOF) {
		if decl := p.parseTopDecl(); decl != nil {
			decls = append(decls, decl)
		}
		p.skipNewlines()
	}
	return ast.NewProgram(pos, decls), p.errs
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) pos() core.Pos {
	return core.Pos{File: p.file, Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) curIs(t token.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.TokenType) bool { return p.peek.Type == t }

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.next()
	}
}

// expect reports a parser error (spec §7's plain-text, ranged parser
// error) and still advances, to keep recovering rather than abort —
// the teacher's expressions_core.go does the same (skip to a likely
// boundary rather than panic).
func (p *Parser) expect(t token.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.errs.Add(diagnostics.NewError(diagnostics.ErrUnexpectedToken, p.cur,
		"expected %s, got %s %q", t, p.cur.Type, p.cur.Lexeme))
	return false
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

// --- Top-level declarations ------------------------------------------------

func (p *Parser) parseTopDecl() ast.Stmt {
	switch p.cur.Type {
	case token.DEF:
		return p.parseFunDecl()
	case token.EFFECT:
		return p.parseEffectDecl()
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.DATA, token.TYPE:
		return p.parseDataDecl()
	case token.RECORD:
		return p.parseRecordDecl()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseFunDecl() *ast.FunDecl {
	pos := p.pos()
	p.next() // consume 'def'
	name := p.cur.Lexeme
	p.expect(token.IDENT_LOWER)

	var tparams []string
	if p.curIs(token.LBRACKET) {
		p.next()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			tparams = append(tparams, p.cur.Lexeme)
			p.next()
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RBRACKET)
	}

	params := p.parseParamList()

	var ret ast.Type
	if p.curIs(token.COLON) {
		p.next()
		ret = p.parseType()
	}

	var effects []string
	if p.curIs(token.SLASH) {
		p.next()
		effects = append(effects, p.cur.Lexeme)
		p.next()
		for p.curIs(token.COMMA) {
			p.next()
			effects = append(effects, p.cur.Lexeme)
			p.next()
		}
	}

	var body ast.Stmt
	if p.curIs(token.ASSIGN) {
		p.next()
		body = p.parseStmt()
	} else if p.curIs(token.LBRACE) {
		body = p.parseBlock()
	}

	return ast.NewFunDecl(pos, name, tparams, params, ret, effects, body)
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.expect(token.LPAREN) {
		return params
	}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		block := false
		if p.curIs(token.LBRACE) {
			block = true
			p.next()
		}
		name := p.cur.Lexeme
		p.next()
		var typ ast.Type
		if p.curIs(token.COLON) {
			p.next()
			typ = p.parseType()
		}
		params = append(params, ast.Param{Name: name, Type: typ, Block: block})
		if block {
			p.expect(token.RBRACE)
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseType() ast.Type {
	pos := p.pos()
	name := p.cur.Lexeme
	p.next()
	var args []ast.Type
	if p.curIs(token.LBRACKET) {
		p.next()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			args = append(args, p.parseType())
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RBRACKET)
	}
	return ast.NewNamedType(pos, name, args)
}

func (p *Parser) parseOpSig() ast.OpSig {
	name := p.cur.Lexeme
	p.next()
	params := p.parseParamList()
	var ret ast.Type
	if p.curIs(token.COLON) {
		p.next()
		ret = p.parseType()
	}
	return ast.OpSig{Name: name, Params: params, Ret: ret}
}

func (p *Parser) parseOpSigList() []ast.OpSig {
	var ops []ast.OpSig
	p.expect(token.LBRACE)
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		ops = append(ops, p.parseOpSig())
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return ops
}

func (p *Parser) parseEffectDecl() *ast.EffectDecl {
	pos := p.pos()
	p.next()
	name := p.cur.Lexeme
	p.expect(token.IDENT_UPPER)
	if p.curIs(token.LBRACKET) {
		p.next()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			p.next()
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RBRACKET)
	}
	return ast.NewEffectDecl(pos, name, p.parseOpSigList())
}

func (p *Parser) parseInterfaceDecl() *ast.InterfaceDecl {
	pos := p.pos()
	p.next()
	name := p.cur.Lexeme
	p.expect(token.IDENT_UPPER)
	return ast.NewInterfaceDecl(pos, name, p.parseOpSigList())
}

func (p *Parser) parseDataDecl() *ast.DataDecl {
	pos := p.pos()
	p.next() // consume 'data'/'type'
	name := p.cur.Lexeme
	p.expect(token.IDENT_UPPER)
	var ctors []ast.DataCtor
	p.expect(token.LBRACE)
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		cname := p.cur.Lexeme
		p.expect(token.IDENT_UPPER)
		var fields []string
		if p.curIs(token.LPAREN) {
			p.next()
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				fields = append(fields, p.cur.Lexeme)
				p.next()
				if p.curIs(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.RPAREN)
		}
		ctors = append(ctors, ast.DataCtor{Name: cname, Fields: fields})
		for p.curIs(token.COMMA) || p.curIs(token.NEWLINE) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return ast.NewDataDecl(pos, name, ctors)
}

func (p *Parser) parseRecordDecl() *ast.RecordDecl {
	pos := p.pos()
	p.next()
	name := p.cur.Lexeme
	p.expect(token.IDENT_UPPER)
	var fields []string
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		fields = append(fields, p.cur.Lexeme)
		p.next()
		if p.curIs(token.COLON) {
			p.next()
			p.parseType()
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return ast.NewRecordDecl(pos, name, fields)
}
