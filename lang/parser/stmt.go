package parser

import (
	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	var s ast.Stmt
	switch p.tok {
	case token.IF:
		s = p.parseIf()
	case token.WHILE:
		s = p.parseWhile()
	case token.BREAK:
		pos := p.pos
		p.next()
		s = &ast.BreakStmt{Pos: pos}
	case token.CONTINUE:
		pos := p.pos
		p.next()
		s = &ast.ContinueStmt{Pos: pos}
	case token.RETURN:
		pos := p.pos
		p.next()
		s = &ast.ReturnStmt{Pos: pos, Result: p.parseExpr()}
	case token.IDENT:
		s = p.parseIdentLedStmt()
	default:
		start := p.pos
		p.errorf(p.pos, "unexpected token %s", p.tok.GoString())
		p.next()
		s = &ast.BadStmt{Start: start, End: p.pos}
	}
	p.skipSemis()
	return s
}

// parseIdentLedStmt parses a statement that starts with an identifier: an
// assignment (x = expr, or a.b.c = expr) or a bare call used as a statement
// (f(x)).
func (p *parser) parseIdentLedStmt() ast.Stmt {
	start := p.pos
	e := p.parsePrimaryLHS()

	if p.tok == token.ASSIGN {
		eq := p.pos
		p.next()
		right := p.parseExpr()
		return &ast.AssignStmt{Left: e, Eq: eq, Right: right}
	}
	if call, ok := e.(*ast.CallExpr); ok {
		return &ast.CallStmt{Call: call}
	}
	p.errorf(start, "expected assignment or call statement")
	end := p.pos
	return &ast.BadStmt{Start: start, End: end}
}

// parsePrimaryLHS parses an identifier, a dotted chain, or a call
// expression - the set of expressions that can appear at statement level.
func (p *parser) parsePrimaryLHS() ast.Expr {
	id := p.parseIdent()
	var e ast.Expr = id
	for {
		switch p.tok {
		case token.DOT:
			p.next()
			right := p.parseIdent()
			e = &ast.DotExpr{Left: e, Right: right}
		case token.LPAREN:
			ident, ok := e.(*ast.IdentExpr)
			if !ok {
				p.errorf(p.pos, "cannot call a dotted expression")
				ident = id
			}
			e = p.parseCallArgs(ident)
			return e
		default:
			return e
		}
	}
}

func (p *parser) parseCallArgs(fn *ast.IdentExpr) *ast.CallExpr {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if p.tok == token.COMMA {
			p.next()
		} else {
			break
		}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Fn: fn, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *parser) parseIf() *ast.IfStmt {
	ifPos := p.expect(token.IF)
	stmt := &ast.IfStmt{IfPos: ifPos}

	cond := p.parseExpr()
	body := p.parseBlock()
	stmt.Arms = append(stmt.Arms, &ast.CondArm{Cond: cond, Body: body})

	for p.tok == token.ELIF {
		p.next()
		cond := p.parseExpr()
		body := p.parseBlock()
		stmt.Arms = append(stmt.Arms, &ast.CondArm{Cond: cond, Body: body})
	}
	if p.tok == token.ELSE {
		p.next()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *parser) parseWhile() *ast.WhileStmt {
	whilePos := p.expect(token.WHILE)
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{WhilePos: whilePos, Cond: cond, Body: body}
}
