package compiler

import (
	"fmt"

	"github.com/mna/blc/lang/bytecode"
)

// irKind discriminates the variants of the translator's intermediate code,
// the label-bearing stream emitted before label resolution (§4.2).
type irKind uint8

const (
	irKindKind irKind = iota
	irKindLabel
	irKindJump
	irKindJumpIfFalse
	irKindCall
)

// irEntry is one entry of the intermediate stream: either a resolved
// Instruction, a label declaration, or a symbolic jump/call naming the
// label it targets.
type irEntry struct {
	kind  irKind
	inst  bytecode.Instruction
	label string
}

func irInst(in bytecode.Instruction) irEntry { return irEntry{kind: irKindKind, inst: in} }
func irLabel(name string) irEntry            { return irEntry{kind: irKindLabel, label: name} }
func irJump(name string) irEntry             { return irEntry{kind: irKindJump, label: name} }
func irJumpIfFalse(name string) irEntry      { return irEntry{kind: irKindJumpIfFalse, label: name} }
func irCall(name string) irEntry             { return irEntry{kind: irKindCall, label: name} }

// resolveLabels walks the intermediate stream with a counter that starts at 1 and
// increments for every non-label entry, recording label->index without
// advancing the counter, then emits the final instruction slice prefixed by
// a Nop sentinel at index 0, translating symbolic jumps/calls to resolved
// addresses (§4.2 "Label resolution").
func resolveLabels(stream []irEntry) ([]bytecode.Instruction, error) {
	labels := make(map[string]uint32)
	counter := uint32(1)
	for _, e := range stream {
		if e.kind == irKindLabel {
			if _, dup := labels[e.label]; dup {
				return nil, fmt.Errorf("compiler: duplicate label %q", e.label)
			}
			labels[e.label] = counter
			continue
		}
		counter++
	}

	instrs := make([]bytecode.Instruction, 1, counter)
	instrs[0] = bytecode.Instruction{Op: bytecode.Nop}
	for _, e := range stream {
		switch e.kind {
		case irKindLabel:
			continue
		case irKindKind:
			instrs = append(instrs, e.inst)
		case irKindJump, irKindJumpIfFalse, irKindCall:
			target, ok := labels[e.label]
			if !ok {
				return nil, fmt.Errorf("compiler: unresolved label %q", e.label)
			}
			op := bytecode.Jump
			switch e.kind {
			case irKindJumpIfFalse:
				op = bytecode.JumpIfFalse
			case irKindCall:
				op = bytecode.Call
			}
			instrs = append(instrs, bytecode.Instruction{Op: op, Operand: target})
		}
	}
	return instrs, nil
}
