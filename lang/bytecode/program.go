package bytecode

import "fmt"

// ObjectDescriptor is the shape of an object type: its name and the ordered
// list of its member names. CreateObject references a descriptor by its
// index in Program.ObjectDescriptors; AccessMember/SetMember reference a
// member by its index within the descriptor's Members slice.
type ObjectDescriptor struct {
	Name    string
	Members []string

	// index is built lazily by MemberIndex; not part of the serialized
	// form (gob skips unexported fields), so a decoded descriptor rebuilds
	// it on its first MemberIndex call.
	index map[string]int
}

// MemberIndex returns the index of the named member, and whether it exists.
func (d *ObjectDescriptor) MemberIndex(name string) (int, bool) {
	if d.index == nil {
		d.index = make(map[string]int, len(d.Members))
		for i, m := range d.Members {
			d.index[m] = i
		}
	}
	i, ok := d.index[name]
	return i, ok
}

// Program is the deterministic, serializable output of the translator: a
// resolved instruction stream plus everything the runtime needs to
// materialize its initial state without consulting the front end again.
type Program struct {
	// Instructions is 1-indexed in spirit: index 0 is always a Nop sentinel
	// so that jump/call targets (which are never 0) can double as a
	// "no target" zero value.
	Instructions []Instruction

	// Consts holds every literal value pushed by the program; Push's
	// operand is an index into this slice. Strings referenced here (and by
	// ExternCall) are also duplicated into Strings below, since the
	// runtime seeds its string arena from Strings alone, independent of
	// which constants happen to be Push'd.
	Consts []Value

	// Strings is the ordered set of string literals and extern-function
	// names the translator interned; its indices are the string ids used
	// by StrRef constants and by ExternCall's operand.
	Strings []string

	// HeapSize is the exact number of globally addressable variable slots
	// the program needs.
	HeapSize uint32

	ObjectDescriptors []ObjectDescriptor
}

// Validate performs the structural checks the translator is responsible for
// upholding; the runtime does not re-check these at load time (§4.4: "no
// verification pass is mandated").
func (p *Program) Validate() error {
	if len(p.Instructions) == 0 || p.Instructions[0].Op != Nop {
		return fmt.Errorf("bytecode: program must start with a Nop sentinel at index 0")
	}
	n := uint32(len(p.Instructions))
	for i, in := range p.Instructions {
		switch in.Op {
		case Jump, JumpIfTrue, JumpIfFalse, Call:
			if in.Operand == 0 || in.Operand >= n {
				return fmt.Errorf("bytecode: instruction %d (%s): target %d out of range [1,%d)", i, in.Op, in.Operand, n)
			}
		case Push:
			if int(in.Operand) >= len(p.Consts) {
				return fmt.Errorf("bytecode: instruction %d (%s): const index %d out of range", i, in.Op, in.Operand)
			}
		case ExternCall:
			if int(in.Operand) >= len(p.Strings) {
				return fmt.Errorf("bytecode: instruction %d (%s): string id %d out of range", i, in.Op, in.Operand)
			}
		case CreateObject:
			if int(in.Operand) >= len(p.ObjectDescriptors) {
				return fmt.Errorf("bytecode: instruction %d (%s): descriptor %d out of range", i, in.Op, in.Operand)
			}
		}
	}
	return nil
}
