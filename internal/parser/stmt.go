package parser

import (
	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/diagnostics"
	"github.com/effect-lang/effc/internal/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	p.skipNewlines()
	switch p.cur.Type {
	case token.VAL:
		return p.parseValDecl()
	case token.VAR:
		return p.parseVarDecl()
	case token.LBRACE:
		return p.parseBlock()
	default:
		pos := p.pos()
		e := p.parseExpr(LOWEST)
		if e == nil {
			return nil
		}
		return ast.NewExprStmt(pos, e)
	}
}

// parseBlock parses `{ stmt* }`, the body of a function/handler/loop —
// every line's trailing newline is a statement separator, mirroring the
// teacher's newline-sensitive statement list (newline_test.go).
func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos()
	p.expect(token.LBRACE)
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return ast.NewBlock(pos, stmts)
}

func (p *Parser) parseValDecl() *ast.ValDecl {
	pos := p.pos()
	p.next() // consume 'val'
	name := p.cur.Lexeme
	p.expect(token.IDENT_LOWER)
	p.expect(token.ASSIGN)
	init := p.parseExpr(LOWEST)
	return ast.NewValDecl(pos, name, init)
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.pos()
	p.next() // consume 'var'
	name := p.cur.Lexeme
	p.expect(token.IDENT_LOWER)
	p.expect(token.ASSIGN)
	init := p.parseExpr(LOWEST)
	var region string
	if p.curIs(token.IN) {
		p.next()
		region = p.cur.Lexeme
		p.expect(token.IDENT_LOWER)
	}
	return ast.NewVarDecl(pos, name, init, region)
}

func (p *Parser) parseMatchExpr() ast.Expr {
	pos := p.pos()
	p.next() // consume 'match'
	scrutinee := p.parseExpr(LOWEST)
	p.expect(token.LBRACE)
	p.skipNewlines()
	var clauses []ast.MatchClause
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		p.expect(token.CASE)
		pat := p.parsePattern()
		p.expect(token.ARROW)
		body := p.parseStmt()
		clauses = append(clauses, ast.MatchClause{Pattern: pat, Body: body})
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return ast.NewMatch(pos, scrutinee, clauses)
}

func (p *Parser) parseTryExpr() ast.Expr {
	pos := p.pos()
	p.next() // consume 'try'
	prog := p.parseBlock()
	p.skipNewlines()
	p.expect(token.WITH)
	effect := p.cur.Lexeme
	p.expect(token.IDENT_UPPER)
	p.expect(token.LBRACE)
	p.skipNewlines()
	var handlers []ast.HandlerImpl
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		p.expect(token.DEF)
		opName := p.cur.Lexeme
		p.expect(token.IDENT_LOWER)
		params := p.parseParamList()
		p.expect(token.ASSIGN)
		body := p.parseStmt()
		handlers = append(handlers, ast.HandlerImpl{Operation: opName, Params: params, Body: body})
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return ast.NewTryHandle(pos, prog, effect, handlers)
}

// --- Patterns ---------------------------------------------------------------

func (p *Parser) parsePattern() ast.Pattern {
	pos := p.pos()
	switch p.cur.Type {
	case token.UNDERSCORE:
		p.next()
		return ast.NewWildcardPattern(pos)
	case token.IDENT_LOWER:
		name := p.cur.Lexeme
		p.next()
		return ast.NewIdentPattern(pos, name)
	case token.IDENT_UPPER:
		ctor := p.cur.Lexeme
		p.next()
		var fields []ast.Pattern
		if p.curIs(token.LPAREN) {
			p.next()
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				fields = append(fields, p.parsePattern())
				if p.curIs(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.RPAREN)
		}
		return ast.NewCtorPattern(pos, ctor, fields)
	default:
		p.errs.Add(diagnostics.NewError(diagnostics.ErrUnexpectedToken, p.cur,
			"expected pattern, got %s %q", p.cur.Type, p.cur.Lexeme))
		p.next()
		return ast.NewWildcardPattern(pos)
	}
}
