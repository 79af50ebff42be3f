package compiler

import (
	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/token"
)

// lowerExpr emits code that leaves exactly one value on the operand stack:
// the value of e (§4.2 "Expression lowering", post-order).
func (c *compiler) lowerExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IntLit:
		c.emitOpArg(bytecode.Push, c.constIndex(bytecode.Int(e.Value)))
	case *ast.FloatLit:
		c.emitOpArg(bytecode.Push, c.constIndex(bytecode.Float(e.Value)))
	case *ast.BoolLit:
		c.emitOpArg(bytecode.Push, c.constIndex(bytecode.Bool(e.Value)))
	case *ast.StringLit:
		sid := c.strings.intern(e.Value)
		c.emitOpArg(bytecode.Push, c.constIndex(bytecode.StrRef(sid)))
	case *ast.IdentExpr:
		c.emitOpArg(bytecode.Load, c.vars.intern(e.Name))
	case *ast.DotExpr:
		name, ok := ast.FlattenDotted(e)
		if !ok {
			c.errorf("invalid dotted reference")
			return
		}
		c.emitOpArg(bytecode.Load, c.vars.intern(name))
	case *ast.ParenExpr:
		c.lowerExpr(e.X)
	case *ast.UnaryOpExpr:
		c.lowerUnaryExpr(e)
	case *ast.BinOpExpr:
		c.lowerBinExpr(e)
	case *ast.CallExpr:
		c.lowerCall(e)
	case *ast.BadExpr:
		c.errorf("bad expression at %s", e.Start)
	default:
		c.errorf("unknown expression shape %T", e)
	}
}

func (c *compiler) lowerUnaryExpr(e *ast.UnaryOpExpr) {
	switch e.Op {
	case token.NOT:
		c.lowerExpr(e.Right)
		c.emitOp(bytecode.Not)
	case token.MINUS:
		// no dedicated unary-negate opcode: lower as 0 - x.
		c.emitOpArg(bytecode.Push, c.constIndex(bytecode.Int(0)))
		c.lowerExpr(e.Right)
		c.emitOp(bytecode.Sub)
	default:
		c.errorf("unsupported unary operator %s", e.Op.GoString())
	}
}

func (c *compiler) lowerBinExpr(e *ast.BinOpExpr) {
	c.lowerExpr(e.Left)
	c.lowerExpr(e.Right)
	op, ok := binOpcode(e.Op)
	if !ok {
		c.errorf("unsupported binary operator %s", e.Op.GoString())
		return
	}
	c.emitOp(op)
}

func binOpcode(tok token.Token) (bytecode.Opcode, bool) {
	switch tok {
	case token.PLUS:
		return bytecode.Add, true
	case token.MINUS:
		return bytecode.Sub, true
	case token.STAR:
		return bytecode.Mul, true
	case token.SLASH:
		return bytecode.Div, true
	case token.PERCENT:
		return bytecode.Mod, true
	case token.CARET:
		return bytecode.Pow, true
	case token.EQ:
		return bytecode.Eq, true
	case token.NEQ:
		return bytecode.Neq, true
	case token.GT:
		return bytecode.Gt, true
	case token.LT:
		return bytecode.Lt, true
	case token.GE:
		return bytecode.Gte, true
	case token.LE:
		return bytecode.Lte, true
	case token.AND:
		return bytecode.And, true
	case token.OR:
		return bytecode.Or, true
	default:
		return 0, false
	}
}

// lowerCall lowers a call to either a host extern or a user-declared
// function (§4.2 "Function calls").
func (c *compiler) lowerCall(call *ast.CallExpr) {
	name := call.Fn.Name

	if variadic, isExtern := Externs[name]; isExtern {
		for i := len(call.Args) - 1; i >= 0; i-- {
			c.lowerExpr(call.Args[i])
		}
		if variadic {
			c.emitOpArg(bytecode.Push, c.constIndex(bytecode.Int(int64(len(call.Args)))))
		}
		c.emitOpArg(bytecode.ExternCall, c.strings.intern(name))
		return
	}

	params, ok := c.funcs[name]
	if !ok {
		c.errorf("call to undefined function %q", name)
		return
	}
	if len(call.Args) != len(params) {
		c.errorf("call to %q: expected %d arguments, got %d", name, len(params), len(call.Args))
		return
	}
	for i := len(call.Args) - 1; i >= 0; i-- {
		c.lowerExpr(call.Args[i])
	}
	for i := len(params) - 1; i >= 0; i-- {
		c.emitOpArg(bytecode.Store, c.vars.intern(params[i]))
	}
	c.emit(irCall("function_" + name))
}
