package ast

import "github.com/mna/blc/lang/token"

type (
	// BadExpr represents an expression that failed to parse. It allows the
	// parser to keep going past a single malformed expression.
	BadExpr struct {
		Start, End token.Pos
	}

	// IdentExpr represents a variable reference, e.g. x. A dotted reference
	// such as a.b.c is parsed as nested DotExpr nodes with an IdentExpr at
	// the root; see DotExpr.
	IdentExpr struct {
		NamePos token.Pos
		Name    string
	}

	// DotExpr represents a dotted member reference, e.g. x.y. It is a
	// front-end-only concept: the translator flattens a chain of DotExpr
	// nodes rooted at an IdentExpr into a single synthetic variable name.
	DotExpr struct {
		Left  Expr
		Dot   token.Pos
		Right *IdentExpr
	}

	// IntLit represents an integer literal.
	IntLit struct {
		ValuePos token.Pos
		Raw      string
		Value    int64
	}

	// FloatLit represents a floating point literal.
	FloatLit struct {
		ValuePos token.Pos
		Raw      string
		Value    float64
	}

	// StringLit represents a quoted string literal.
	StringLit struct {
		ValuePos token.Pos
		Raw      string
		Value    string
	}

	// BoolLit represents the true/false literals.
	BoolLit struct {
		ValuePos token.Pos
		Value    bool
	}

	// BinOpExpr represents a binary expression, e.g. x + y, x == y, x and y.
	BinOpExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// UnaryOpExpr represents a unary expression, e.g. not x, -x.
	UnaryOpExpr struct {
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// ParenExpr represents a parenthesized expression, e.g. (x + y).
	ParenExpr struct {
		Lparen token.Pos
		X      Expr
		Rparen token.Pos
	}

	// CallExpr represents a function call, e.g. f(x, y). Fn is always an
	// IdentExpr: the language has no first-class function values.
	CallExpr struct {
		Fn     *IdentExpr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}
)

func (e *BadExpr) expr()     {}
func (e *IdentExpr) expr()   {}
func (e *DotExpr) expr()     {}
func (e *IntLit) expr()      {}
func (e *FloatLit) expr()    {}
func (e *StringLit) expr()   {}
func (e *BoolLit) expr()     {}
func (e *BinOpExpr) expr()   {}
func (e *UnaryOpExpr) expr() {}
func (e *ParenExpr) expr()   {}
func (e *CallExpr) expr()    {}

func (e *BadExpr) Span() (start, end token.Pos) { return e.Start, e.End }
func (e *BadExpr) Walk(_ Visitor)               {}

func (e *IdentExpr) Span() (start, end token.Pos) {
	return e.NamePos, e.NamePos + token.Pos(len(e.Name))
}
func (e *IdentExpr) Walk(_ Visitor) {}

func (e *DotExpr) Span() (start, end token.Pos) {
	s, _ := e.Left.Span()
	_, e2 := e.Right.Span()
	return s, e2
}
func (e *DotExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

func (e *IntLit) Span() (start, end token.Pos) {
	return e.ValuePos, e.ValuePos + token.Pos(len(e.Raw))
}
func (e *IntLit) Walk(_ Visitor) {}

func (e *FloatLit) Span() (start, end token.Pos) {
	return e.ValuePos, e.ValuePos + token.Pos(len(e.Raw))
}
func (e *FloatLit) Walk(_ Visitor) {}

func (e *StringLit) Span() (start, end token.Pos) {
	return e.ValuePos, e.ValuePos + token.Pos(len(e.Raw))
}
func (e *StringLit) Walk(_ Visitor) {}

func (e *BoolLit) Span() (start, end token.Pos) {
	n := 4 // len("true")
	if !e.Value {
		n = 5 // len("false")
	}
	return e.ValuePos, e.ValuePos + token.Pos(n)
}
func (e *BoolLit) Walk(_ Visitor) {}

func (e *BinOpExpr) Span() (start, end token.Pos) {
	s, _ := e.Left.Span()
	_, e2 := e.Right.Span()
	return s, e2
}
func (e *BinOpExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

func (e *UnaryOpExpr) Span() (start, end token.Pos) {
	_, e2 := e.Right.Span()
	return e.OpPos, e2
}
func (e *UnaryOpExpr) Walk(v Visitor) { Walk(v, e.Right) }

func (e *ParenExpr) Span() (start, end token.Pos) {
	return e.Lparen, e.Rparen + 1
}
func (e *ParenExpr) Walk(v Visitor) { Walk(v, e.X) }

func (e *CallExpr) Span() (start, end token.Pos) {
	s, _ := e.Fn.Span()
	return s, e.Rparen + 1
}
func (e *CallExpr) Walk(v Visitor) {
	Walk(v, e.Fn)
	for _, a := range e.Args {
		Walk(v, a)
	}
}

// FlattenDotted returns the synthetic flattened name for a chain of DotExpr
// nodes rooted at an IdentExpr (e.g. a.b.c -> "a.b.c"), and reports whether e
// was indeed such a chain.
func FlattenDotted(e Expr) (string, bool) {
	switch e := e.(type) {
	case *IdentExpr:
		return e.Name, true
	case *DotExpr:
		left, ok := FlattenDotted(e.Left)
		if !ok {
			return "", false
		}
		return left + "." + e.Right.Name, true
	default:
		return "", false
	}
}
