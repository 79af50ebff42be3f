package machine

import (
	"testing"

	"github.com/mna/blc/lang/bytecode"
)

// Objects have no source-level literal syntax in this front end (there
// never was one in the reference host either); CreateObject/AccessMember/
// SetMember are exercised here directly at the instruction level, the way
// a host embedding the VM would construct them.
func TestCreateObjectAccessSetMember(t *testing.T) {
	p := &bytecode.Program{
		Instructions: []bytecode.Instruction{{Op: bytecode.Nop}},
		Consts: []bytecode.Value{
			bytecode.Int(1),
			bytecode.Int(2),
			bytecode.Int(99),
		},
		ObjectDescriptors: []bytecode.ObjectDescriptor{
			{Name: "Point", Members: []string{"x", "y"}},
		},
	}
	rt := New(p)

	// push(2); push(1); createobject 0 -> Point{x:1, y:2} (the top of the
	// stack becomes members[0])
	rt.push(p.Consts[1])
	rt.push(p.Consts[0])
	if err := rt.exec(bytecode.Instruction{Op: bytecode.CreateObject, Operand: 0}); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	obj, err := rt.pop()
	if err != nil {
		t.Fatal(err)
	}
	if !obj.IsObjectRef() {
		t.Fatalf("expected ObjectRef, got %s", obj.Type())
	}

	rt.push(obj)
	if err := rt.exec(bytecode.Instruction{Op: bytecode.AccessMember, Operand: 0}); err != nil {
		t.Fatalf("AccessMember: %v", err)
	}
	x, err := rt.pop()
	if err != nil {
		t.Fatal(err)
	}
	if !x.IsInt() || x.AsInt() != 1 {
		t.Fatalf("members[0] = %v, want Int(1)", x)
	}

	rt.push(obj)
	rt.push(p.Consts[2])
	if err := rt.exec(bytecode.Instruction{Op: bytecode.SetMember, Operand: 1}); err != nil {
		t.Fatalf("SetMember: %v", err)
	}

	rt.push(obj)
	if err := rt.exec(bytecode.Instruction{Op: bytecode.AccessMember, Operand: 1}); err != nil {
		t.Fatalf("AccessMember after set: %v", err)
	}
	y, err := rt.pop()
	if err != nil {
		t.Fatal(err)
	}
	if !y.IsInt() || y.AsInt() != 99 {
		t.Fatalf("members[1] after SetMember = %v, want Int(99)", y)
	}
}
