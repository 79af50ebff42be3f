package parser

import (
	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/token"
)

// precedence returns the binding power of a binary operator token, or 0 if
// tok is not a binary operator.
func precedence(tok token.Token) int {
	switch tok {
	case token.OR:
		return 1
	case token.AND:
		return 2
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		return 3
	case token.PLUS, token.MINUS:
		return 4
	case token.STAR, token.SLASH, token.PERCENT:
		return 5
	case token.CARET:
		return 6
	default:
		return 0
	}
}

// rightAssoc reports whether tok should be parsed right-associatively; only
// exponentiation is, in this grammar.
func rightAssoc(tok token.Token) bool { return tok == token.CARET }

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(1)
}

func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	left := p.parseUnaryExpr()
	for {
		prec := precedence(p.tok)
		if prec < minPrec {
			return left
		}
		op, opPos := p.tok, p.pos
		p.next()

		nextMin := prec + 1
		if rightAssoc(op) {
			nextMin = prec
		}
		right := p.parseBinExpr(nextMin)
		left = &ast.BinOpExpr{Left: left, Op: op, OpPos: opPos, Right: right}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.MINUS, token.NOT:
		op, pos := p.tok, p.pos
		p.next()
		right := p.parseUnaryExpr()
		return &ast.UnaryOpExpr{Op: op, OpPos: pos, Right: right}
	default:
		return p.parseAtomExpr()
	}
}

func (p *parser) parseAtomExpr() ast.Expr {
	switch p.tok {
	case token.INT:
		e := &ast.IntLit{ValuePos: p.pos, Raw: p.val.Raw, Value: p.val.Int}
		p.next()
		return e
	case token.FLOAT:
		e := &ast.FloatLit{ValuePos: p.pos, Raw: p.val.Raw, Value: p.val.Float}
		p.next()
		return e
	case token.STRING:
		e := &ast.StringLit{ValuePos: p.pos, Raw: p.val.Raw, Value: p.val.String}
		p.next()
		return e
	case token.TRUE, token.FALSE:
		e := &ast.BoolLit{ValuePos: p.pos, Value: p.tok == token.TRUE}
		p.next()
		return e
	case token.LPAREN:
		lparen := p.pos
		p.next()
		x := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
	case token.IDENT:
		return p.parsePrimaryLHS()
	default:
		start := p.pos
		p.errorf(p.pos, "unexpected token %s in expression", p.tok.GoString())
		p.next()
		return &ast.BadExpr{Start: start, End: p.pos}
	}
}
