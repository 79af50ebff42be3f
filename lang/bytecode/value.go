// Package bytecode defines the data shared by the translator (package
// compiler) and the runtime (package machine): the tagged Value union, the
// fixed opcode set, the Instruction encoding and the serializable Program
// record. Neither the translator nor the runtime should need to agree on
// anything beyond what is defined here.
package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

//nolint:revive
const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindChar
	KindStrRef
	KindListRef
	KindObjectRef
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindStrRef:
		return "string"
	case KindListRef:
		return "list"
	case KindObjectRef:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a tagged union over the scalar and reference variants described
// by the data model: Int, Float, Bool and Char are inline scalars; StrRef,
// ListRef and ObjectRef are dense non-negative integer handles into the
// runtime's string, list and object arenas, respectively.
//
// The zero Value is Int(0), which is also the heap's initial fill value.
type Value struct {
	kind Kind
	i    int64   // Int, Bool (0/1), Char (rune), *Ref (arena id)
	f    float64 // Float
}

func Int(i int64) Value        { return Value{kind: KindInt, i: i} }
func Float(f float64) Value    { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value        { return Value{kind: KindBool, i: b2i(b)} }
func Char(r rune) Value        { return Value{kind: KindChar, i: int64(r)} }
func StrRef(id uint32) Value   { return Value{kind: KindStrRef, i: int64(id)} }
func ListRef(id uint32) Value  { return Value{kind: KindListRef, i: int64(id)} }
func ObjectRef(id uint32) Value { return Value{kind: KindObjectRef, i: int64(id)} }

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsInt, IsFloat, etc. report whether v holds the named variant.
func (v Value) IsInt() bool      { return v.kind == KindInt }
func (v Value) IsFloat() bool    { return v.kind == KindFloat }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsChar() bool     { return v.kind == KindChar }
func (v Value) IsStrRef() bool   { return v.kind == KindStrRef }
func (v Value) IsListRef() bool  { return v.kind == KindListRef }
func (v Value) IsObjectRef() bool { return v.kind == KindObjectRef }

// AsInt, AsFloat, etc. extract the underlying representation. The caller
// must have already checked the Kind; these do not panic on mismatch (they
// simply return whatever happens to be in the union), by design the VM
// always checks Kind before calling these.
func (v Value) AsInt() int64    { return v.i }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsBool() bool    { return v.i != 0 }
func (v Value) AsChar() rune    { return rune(v.i) }
func (v Value) AsRef() uint32   { return uint32(v.i) }

// Type returns a short string describing the value's type, used in
// diagnostics.
func (v Value) Type() string { return v.kind.String() }

// String returns a human readable representation of v, used in diagnostics
// and by the debug disassembler. It never dereferences string/list/object
// arenas (Value alone doesn't have access to them); callers that want the
// dereferenced content should format it themselves.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindChar:
		return strconv.QuoteRune(rune(v.i))
	case KindStrRef:
		return fmt.Sprintf("str#%d", v.i)
	case KindListRef:
		return fmt.Sprintf("list#%d", v.i)
	case KindObjectRef:
		return fmt.Sprintf("obj#%d", v.i)
	default:
		return "?"
	}
}

// GobEncode/GobDecode let Value round-trip through encoding/gob despite its
// unexported fields, which the Program codec relies on (see codec.go).
func (v Value) GobEncode() ([]byte, error) {
	buf := make([]byte, 0, 17)
	buf = append(buf, byte(v.kind))
	buf = appendUint64(buf, uint64(v.i))
	buf = appendUint64(buf, math.Float64bits(v.f))
	return buf, nil
}

func (v *Value) GobDecode(data []byte) error {
	if len(data) != 17 {
		return fmt.Errorf("bytecode: invalid encoded value length %d", len(data))
	}
	v.kind = Kind(data[0])
	v.i = int64(readUint64(data[1:9]))
	v.f = math.Float64frombits(readUint64(data[9:17]))
	return nil
}

func appendUint64(buf []byte, x uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(x>>(8*i)))
	}
	return buf
}

func readUint64(b []byte) uint64 {
	var x uint64
	for i := 0; i < 8; i++ {
		x |= uint64(b[i]) << (8 * i)
	}
	return x
}
