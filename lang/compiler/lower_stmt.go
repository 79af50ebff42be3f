package compiler

import (
	"fmt"

	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/bytecode"
)

func (c *compiler) lowerBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		c.lowerStmt(s)
	}
}

func (c *compiler) lowerStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		c.lowerExpr(s.Right)
		name, ok := ast.FlattenDotted(s.Left)
		if !ok {
			c.errorf("invalid assignment target")
			return
		}
		c.emitOpArg(bytecode.Store, c.vars.intern(name))
	case *ast.CallStmt:
		c.lowerCall(s.Call)
	case *ast.IfStmt:
		c.lowerIf(s)
	case *ast.WhileStmt:
		c.lowerWhile(s)
	case *ast.BreakStmt:
		if len(c.loopStack) == 0 {
			c.errorf("break outside of a loop")
			return
		}
		scope := c.loopStack[len(c.loopStack)-1]
		c.emit(irJump(fmt.Sprintf("end_while_%d", scope)))
	case *ast.ContinueStmt:
		if len(c.loopStack) == 0 {
			c.errorf("continue outside of a loop")
			return
		}
		scope := c.loopStack[len(c.loopStack)-1]
		c.emit(irJump(fmt.Sprintf("while_%d", scope)))
	case *ast.ReturnStmt:
		c.lowerExpr(s.Result)
		c.emitOp(bytecode.Ret)
	case *ast.CommentStmt:
		// carries no semantics; translated to no code (§3).
	case *ast.BadStmt:
		c.errorf("bad statement at %s", s.Start)
	case *ast.EOFStmt:
	default:
		c.errorf("unknown statement shape %T", s)
	}
}

// lowerIf lowers an if/elif*/else chain (§4.2 "Conditional").
//
// Per §9's open question, the trailing unconditional jump out of the last
// branch is only emitted when an else body follows, instead of emitting it
// unconditionally and then pruning it from the last-seen IR entries.
func (c *compiler) lowerIf(s *ast.IfStmt) {
	k := c.condCounter
	c.condCounter++
	end := fmt.Sprintf("end_%d", k)

	for i, arm := range s.Arms {
		last := i == len(s.Arms)-1
		armLabel := fmt.Sprintf("if_%d_%d", k, i)

		c.lowerExpr(arm.Cond)
		c.emit(irJumpIfFalse(armLabel))
		c.lowerBlock(arm.Body)
		if !last || s.Else != nil {
			c.emit(irJump(end))
		}
		c.emitLabel(armLabel)
	}
	if s.Else != nil {
		c.lowerBlock(s.Else)
	}
	c.emitLabel(end)
}

// lowerWhile lowers a while loop (§4.2 "While loop"), tracking the current
// loop scope so nested break/continue resolve to the innermost loop.
func (c *compiler) lowerWhile(s *ast.WhileStmt) {
	k := c.loopCounter
	c.loopCounter++
	start := fmt.Sprintf("while_%d", k)
	end := fmt.Sprintf("end_while_%d", k)

	c.emitLabel(start)
	c.lowerExpr(s.Cond)
	c.emit(irJumpIfFalse(end))

	c.loopStack = append(c.loopStack, k)
	c.lowerBlock(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.emit(irJump(start))
	c.emitLabel(end)
}
