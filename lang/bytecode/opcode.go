package bytecode

import "fmt"

// Opcode is the operation code of a single Instruction. Opcodes below
// OpcodeArgMin take no operand; opcodes at or above it carry one inline
// operand interpreted according to the opcode (a heap address, jump target,
// string id, or descriptor/member index).
type Opcode uint8

//nolint:revive
const (
	Nop Opcode = iota

	Add
	Sub
	Mul
	Div
	Mod
	Pow

	Eq
	Neq
	Gt
	Lt
	Gte
	Lte

	And
	Or
	Not

	Ret

	// --- opcodes with an inline operand go below this line ---

	Push // Push<const> pushes the constant at the given index in the Program's constant pool
	Load
	Store
	Jump
	JumpIfTrue
	JumpIfFalse
	Call
	ExternCall
	CreateObject
	AccessMember
	SetMember

	OpcodeArgMin = Push
	OpcodeMax    = SetMember
)

var opcodeNames = [...]string{
	Nop: "nop",

	Add: "add",
	Sub: "sub",
	Mul: "mul",
	Div: "div",
	Mod: "mod",
	Pow: "pow",

	Eq:  "eq",
	Neq: "neq",
	Gt:  "gt",
	Lt:  "lt",
	Gte: "gte",
	Lte: "lte",

	And: "and",
	Or:  "or",
	Not: "not",

	Ret: "ret",

	Push:         "push",
	Load:         "load",
	Store:        "store",
	Jump:         "jump",
	JumpIfTrue:   "jumpiftrue",
	JumpIfFalse:  "jumpiffalse",
	Call:         "call",
	ExternCall:   "externcall",
	CreateObject: "createobject",
	AccessMember: "accessmember",
	SetMember:    "setmember",
}

// HasOperand reports whether op carries an inline operand.
func (op Opcode) HasOperand() bool { return op >= OpcodeArgMin }

func (op Opcode) String() string {
	if op <= OpcodeMax {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal opcode (%d)", uint8(op))
}

// Instruction is a single fetch-decode-execute unit: an opcode plus, for
// opcodes at or above OpcodeArgMin, one operand. Push's operand indexes the
// Program's constant pool (see Program.Consts) rather than embedding a Value
// directly, keeping Instruction a fixed-width record.
type Instruction struct {
	Op      Opcode
	Operand uint32
}

func (in Instruction) String() string {
	if in.Op.HasOperand() {
		return fmt.Sprintf("%s %d", in.Op, in.Operand)
	}
	return in.Op.String()
}
