package parser

import (
	"strconv"

	"github.com/effect-lang/effc/internal/ast"
	"github.com/effect-lang/effc/internal/diagnostics"
	"github.com/effect-lang/effc/internal/token"
)

// parseExpr is the teacher's parseExpression precedence-climbing loop
// (expressions_core.go), bounded by a recursion-depth guard against
// pathological input instead of recursing unbounded.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		p.errs.Add(diagnostics.NewError(diagnostics.ErrUnterminatedExpr, p.cur,
			"expression too complex: recursion depth limit exceeded"))
		return nil
	}

	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for !p.curIs(token.NEWLINE) && precedence < p.curPrecedence() {
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Type {
	case token.IDENT_LOWER, token.IDENT_UPPER:
		return p.parseIdentOrCall()
	case token.INT:
		return p.parseIntLit()
	case token.STRING:
		return p.parseStringLit()
	case token.TRUE, token.FALSE:
		return p.parseBoolLit()
	case token.LPAREN:
		return p.parseGroupedExpr()
	case token.IF:
		return p.parseIfExpr()
	case token.WHILE:
		return p.parseWhileExpr()
	case token.MATCH:
		return p.parseMatchExpr()
	case token.TRY:
		return p.parseTryExpr()
	case token.REGION:
		return p.parseRegionExpr()
	case token.QUESTION:
		pos := p.pos()
		p.next()
		return ast.NewHoleExpr(pos)
	default:
		p.errs.Add(diagnostics.NewError(diagnostics.ErrUnexpectedToken, p.cur,
			"no prefix parse rule for %s %q", p.cur.Type, p.cur.Lexeme))
		p.next()
		return nil
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.cur.Type {
	case token.LPAREN:
		return p.parseCallArgs(left)
	case token.DOT:
		return p.parseMethodCall(left)
	case token.COLON_MINUS:
		return p.parseAssignFrom(left)
	default:
		pos := p.pos()
		op := p.cur.Lexeme
		prec := p.curPrecedence()
		p.next()
		right := p.parseExpr(prec)
		callee := ast.NewIdent(pos, "$op-"+op)
		return ast.NewCall(pos, callee, nil, []ast.Expr{left, right})
	}
}

func (p *Parser) parseIdentOrCall() ast.Expr {
	pos := p.pos()
	name := p.cur.Lexeme
	p.next()
	return ast.NewIdent(pos, name)
}

func (p *Parser) parseCallArgs(callee ast.Expr) ast.Expr {
	pos := p.pos()
	p.next() // consume '('
	var args []ast.Expr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if a := p.parseExpr(LOWEST); a != nil {
			args = append(args, a)
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return ast.NewCall(pos, callee, nil, args)
}

func (p *Parser) parseMethodCall(receiver ast.Expr) ast.Expr {
	pos := p.pos()
	p.next() // consume '.'
	method := p.cur.Lexeme
	p.next()
	var args []ast.Expr
	if p.curIs(token.LPAREN) {
		p.next()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			if a := p.parseExpr(LOWEST); a != nil {
				args = append(args, a)
			}
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
	}
	return ast.NewMethodCall(pos, receiver, method, args)
}

// parseAssignFrom handles `name :- e` style mutation update, the
// left-hand side having already been parsed as an Ident expression.
func (p *Parser) parseAssignFrom(left ast.Expr) ast.Expr {
	pos := p.pos()
	id, ok := left.(*ast.Ident)
	if !ok {
		p.errs.Add(diagnostics.NewError(diagnostics.ErrInvalidAssignTgt, p.cur,
			"invalid assignment target"))
		return left
	}
	p.next() // consume ':-'
	value := p.parseExpr(LOWEST)
	return ast.NewAssign(pos, id.Name, value)
}

func (p *Parser) parseIntLit() ast.Expr {
	pos := p.pos()
	n, _ := strconv.ParseInt(p.cur.Lexeme, 10, 64)
	p.next()
	return ast.NewIntLit(pos, n)
}

func (p *Parser) parseStringLit() ast.Expr {
	pos := p.pos()
	v, _ := p.cur.Literal.(string)
	p.next()
	return ast.NewStringLit(pos, v)
}

func (p *Parser) parseBoolLit() ast.Expr {
	pos := p.pos()
	v := p.curIs(token.TRUE)
	p.next()
	return ast.NewBoolLit(pos, v)
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.next() // consume '('
	e := p.parseExpr(LOWEST)
	p.expect(token.RPAREN)
	return e
}

func (p *Parser) parseIfExpr() ast.Expr {
	pos := p.pos()
	p.next() // consume 'if'
	cond := p.parseExpr(LOWEST)
	then := p.parseBlock()
	var els ast.Stmt
	p.skipNewlines()
	if p.curIs(token.ELSE) {
		p.next()
		if p.curIs(token.IF) {
			els = ast.NewExprStmt(p.pos(), p.parseIfExpr())
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIf(pos, cond, then, els)
}

func (p *Parser) parseWhileExpr() ast.Expr {
	pos := p.pos()
	p.next() // consume 'while'
	cond := p.parseExpr(LOWEST)
	body := p.parseBlock()
	return ast.NewWhile(pos, cond, body)
}

func (p *Parser) parseRegionExpr() ast.Expr {
	pos := p.pos()
	p.next() // consume 'region'
	name := p.cur.Lexeme
	p.expect(token.IDENT_LOWER)
	body := p.parseBlock()
	return ast.NewRegionExpr(pos, name, body)
}
