// Package compiler implements the bytecode translator: it lowers a parsed
// AST into a bytecode.Program with resolved jump/call targets, an interned
// constant/string pool, and an address-assigned global variable heap. It is
// the toolchain's hard core alongside package machine.
//
// Function parameters and locals share the same global heap as top-level
// variables; there are no activation frames. A call therefore shadows
// whatever slot its parameters already occupy, which makes recursion and
// reentrant calls to the same function unsafe. This is an intentional
// limitation of the translation scheme, not an oversight.
package compiler

import (
	"context"
	"fmt"
	"sort"

	"github.com/mna/blc/lang/ast"
	"github.com/mna/blc/lang/bytecode"
)

// Externs is the fixed set of host extern function names the translator
// must recognize, and whether each is variadic (§9 "Variadic call
// convention"). This is a hard contract shared with the default host
// (package externs): the set of variadic names must match on both sides.
var Externs = map[string]bool{
	"print":                        true,
	"push":                         false,
	"pop":                          false,
	"new_list":                     false,
	"new_list_with_values":         true,
	"new_list_with_default_values": false,
	"index_set":                    false,
	"index_get":                    false,
	"len":                          false,
}

// Compile translates chunk's top-level statements and function declarations
// into a resolved, serializable Program (§4.2 "Top-level assembly").
func Compile(ctx context.Context, chunk *ast.Chunk) (*bytecode.Program, error) {
	c := &compiler{
		strings: newInterner(),
		vars:    newInterner(),
		funcs:   make(map[string][]string),
	}
	// Pre-intern extern names so their ids are stable regardless of which
	// ones the program actually calls (§4.1). Names are interned in sorted
	// order, since map iteration order is not deterministic.
	externNames := make([]string, 0, len(Externs))
	for name := range Externs {
		externNames = append(externNames, name)
	}
	sort.Strings(externNames)
	for _, name := range externNames {
		c.strings.intern(name)
	}
	for _, fn := range chunk.Funcs {
		if _, dup := c.funcs[fn.Name]; dup {
			c.errorf("function %q declared more than once", fn.Name)
			continue
		}
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Name
		}
		c.funcs[fn.Name] = params
	}
	if len(c.errs) > 0 {
		return nil, c.errs[0]
	}

	c.emit(irJump("_start"))
	for _, fn := range chunk.Funcs {
		c.emitLabel("function_" + fn.Name)
		for _, p := range fn.Params {
			c.vars.intern(p.Name) // ensure a stable address even if unused
		}
		c.lowerBlock(fn.Body)
	}
	c.emitLabel("_start")
	for _, s := range chunk.Stmts {
		c.lowerStmt(s)
	}
	c.emitOp(bytecode.Nop)

	if len(c.errs) > 0 {
		return nil, fmt.Errorf("compiler: %w (and %d more)", c.errs[0], len(c.errs)-1)
	}

	instrs, err := resolveLabels(c.ir)
	if err != nil {
		return nil, err
	}
	p := &bytecode.Program{
		Instructions:      instrs,
		Consts:            c.consts,
		Strings:           c.strings.names,
		HeapSize:          uint32(c.vars.len()),
		ObjectDescriptors: c.descriptors,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("compiler: produced invalid program: %w", err)
	}
	_ = ctx
	return p, nil
}

// compiler holds the translator's state for a single chunk.
type compiler struct {
	ir          []irEntry
	consts      []bytecode.Value
	strings     *interner
	vars        *interner
	funcs       map[string][]string // function name -> parameter names, in declaration order
	descriptors []bytecode.ObjectDescriptor

	condCounter int
	loopCounter int
	loopStack   []int // stack of enclosing while loop ids, innermost last

	errs []error
}

func (c *compiler) errorf(format string, args ...interface{}) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *compiler) emit(e irEntry)            { c.ir = append(c.ir, e) }
func (c *compiler) emitLabel(name string)     { c.emit(irLabel(name)) }
func (c *compiler) emitOp(op bytecode.Opcode) { c.emit(irInst(bytecode.Instruction{Op: op})) }
func (c *compiler) emitOpArg(op bytecode.Opcode, arg uint32) {
	c.emit(irInst(bytecode.Instruction{Op: op, Operand: arg}))
}

// constIndex records v in the constant pool and returns its index.
func (c *compiler) constIndex(v bytecode.Value) uint32 {
	c.consts = append(c.consts, v)
	return uint32(len(c.consts) - 1)
}
