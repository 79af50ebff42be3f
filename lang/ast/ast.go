// Package ast defines the types used to represent the abstract syntax tree
// of a parsed program: expressions, statements, function declarations and
// the top-level chunk that groups them. The parser builds this tree; the
// compiler package is the only other package that needs to know its shape
// in detail.
package ast

import "github.com/mna/blc/lang/token"

// Node represents any node in the AST.
type Node interface {
	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	// BlockEnding returns true if the statement should only appear as the
	// last statement in a block (break, continue, return).
	BlockEnding() bool
	stmt()
}

// Chunk is the root of a parsed program: the top-level statements and the
// top-level function declarations, partitioned the way the translator
// expects them (see compiler.Compile).
type Chunk struct {
	Name  string // source filename, may be empty
	Stmts []Stmt
	Funcs []*FuncDecl
	EOF   token.Pos
}

func (c *Chunk) Span() (start, end token.Pos) {
	if len(c.Funcs) > 0 {
		s, _ := c.Funcs[0].Span()
		return s, c.EOF
	}
	if len(c.Stmts) > 0 {
		s, _ := c.Stmts[0].Span()
		return s, c.EOF
	}
	return c.EOF, c.EOF
}

func (c *Chunk) Walk(v Visitor) {
	for _, fn := range c.Funcs {
		Walk(v, fn)
	}
	for _, s := range c.Stmts {
		Walk(v, s)
	}
}
