package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of p's instruction stream to
// w: one line per instruction, prefixed with its index so jump/call operands
// can be cross-referenced by eye. This is a debugging aid only (the Compiler
// and Runner CLIs' --debug flag); the canonical program representation
// remains the gob encoding produced by Encode.
func Disassemble(w io.Writer, p *Program) error {
	for i, in := range p.Instructions {
		if _, err := fmt.Fprintf(w, "%4d  %s", i, in.Op); err != nil {
			return err
		}
		if in.Op.HasOperand() {
			if _, err := fmt.Fprintf(w, " %s", operandString(p, in)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// operandString annotates an instruction's raw operand with the value it
// resolves to, when that's cheap and useful to a reader (a Push's constant,
// an ExternCall's string).
func operandString(p *Program, in Instruction) string {
	switch in.Op {
	case Push:
		if int(in.Operand) < len(p.Consts) {
			return fmt.Sprintf("%d\t; %s", in.Operand, p.Consts[in.Operand])
		}
	case ExternCall:
		if int(in.Operand) < len(p.Strings) {
			return fmt.Sprintf("%d\t; %q", in.Operand, p.Strings[in.Operand])
		}
	}
	return fmt.Sprintf("%d", in.Operand)
}
