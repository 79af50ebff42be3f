// Package parser implements the parser: a thin front-end collaborator that
// turns scanner tokens into the AST consumed by the compiler package. Per
// the toolchain's design, only the shape of the AST it produces is a
// contract the rest of the toolchain depends on; the grammar and the
// concrete recursive-descent implementation here are free to evolve.
package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/scanner"
	"github.com/mna/blc/lang/token"
)

// Mode controls optional parsing behavior.
type Mode uint

// Comments, when set, includes CommentStmt nodes in the resulting chunk's
// top-level statement list (they are always dropped from nested blocks'
// contribution to code generation regardless of this mode, since they carry
// no semantics).
const Comments Mode = 1 << iota

// parser holds the state for parsing a single file.
type parser struct {
	sc   scanner.Scanner
	mode Mode

	pos token.Pos
	tok token.Token
	val scanner.TokenValue

	errs errorList
}

type errorList []error

func (el errorList) Error() string {
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0], len(el)-1)
}

func (el errorList) Unwrap() []error { return el }

// ParseFile parses a single source file into a Chunk.
func ParseFile(_ context.Context, filename string, src []byte, mode Mode) (*ast.Chunk, error) {
	p := &parser{mode: mode}
	p.sc.Init(filename, src)
	p.next()

	chunk := &ast.Chunk{Name: filename}
	for p.tok != token.EOF {
		if p.tok == token.COMMENT {
			if mode&Comments != 0 {
				chunk.Stmts = append(chunk.Stmts, &ast.CommentStmt{Pos: p.pos, Text: p.val.String})
			}
			p.next()
			continue
		}
		if p.tok == token.FN {
			fn := p.parseFuncDecl()
			chunk.Funcs = append(chunk.Funcs, fn)
			continue
		}
		stmt := p.parseStmt()
		chunk.Stmts = append(chunk.Stmts, stmt)
	}
	chunk.EOF = p.pos

	if serr := p.sc.Errs(); serr != nil {
		p.errs = append(p.errs, serr)
	}
	if len(p.errs) > 0 {
		return chunk, p.errs
	}
	return chunk, nil
}

// ParseFiles parses each of the named files and returns the resulting
// chunks, in the same order. If any file fails to parse, the error returned
// wraps every individual file's error (via Unwrap() []error) and the
// corresponding chunk may be partial.
func ParseFiles(ctx context.Context, mode Mode, files ...string) ([]*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	chunks := make([]*ast.Chunk, len(files))
	var errs errorList
	for i, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ch, err := ParseFile(ctx, file, src, mode)
		chunks[i] = ch
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return chunks, errs
	}
	return chunks, nil
}

func (p *parser) next() {
	for {
		p.pos, p.tok, p.val = p.sc.Scan()
		if p.tok == token.COMMENT && p.mode&Comments == 0 {
			continue
		}
		return
	}
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("%s: "+format, append([]interface{}{posString(pos)}, args...)...))
}

func posString(pos token.Pos) string {
	line, col := pos.LineCol()
	return fmt.Sprintf("%d:%d", line, col)
}

// expect consumes the current token if it matches tok, recording an error
// otherwise, and advances regardless so parsing can continue.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, got %s", tok.GoString(), p.tok.GoString())
	} else {
		p.next()
	}
	return pos
}

func (p *parser) parseFuncDecl() *ast.FuncDecl {
	fnPos := p.expect(token.FN)
	name := p.parseIdentName()
	p.expect(token.LPAREN)

	var params []*ast.IdentExpr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseIdent())
		if p.tok == token.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.FuncDecl{FnPos: fnPos, Name: name, Params: params, Body: body}
}

func (p *parser) parseBlock() *ast.Block {
	lbrace := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if p.tok == token.COMMENT {
			if p.mode&Comments != 0 {
				stmts = append(stmts, &ast.CommentStmt{Pos: p.pos, Text: p.val.String})
			}
			p.next()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Block{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}
}

func (p *parser) parseIdent() *ast.IdentExpr {
	pos := p.pos
	name := p.parseIdentName()
	return &ast.IdentExpr{NamePos: pos, Name: name}
}

func (p *parser) parseIdentName() string {
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected identifier, got %s", p.tok.GoString())
		name := p.val.Raw
		p.next()
		return name
	}
	name := p.val.Raw
	p.next()
	return name
}

func (p *parser) skipSemis() {
	for p.tok == token.SEMI {
		p.next()
	}
}
