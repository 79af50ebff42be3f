package machine

import (
	"testing"

	"github.com/mna/blc/lang/bytecode"
)

func newTestRuntime(heapSize uint32) *Runtime {
	p := &bytecode.Program{
		Instructions: []bytecode.Instruction{{Op: bytecode.Nop}},
		HeapSize:     heapSize,
	}
	return New(p)
}

func TestPushPopRoundTrips(t *testing.T) {
	rt := newTestRuntime(0)
	rt.push(bytecode.Int(7))
	v, err := rt.pop()
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsInt() || v.AsInt() != 7 {
		t.Fatalf("got %v", v)
	}
}

func TestPopUnderflowIsFatal(t *testing.T) {
	rt := newTestRuntime(0)
	if _, err := rt.pop(); err == nil {
		t.Fatal("expected underflow error")
	}
}

func TestStoreLoadRoundTrips(t *testing.T) {
	rt := newTestRuntime(1)
	rt.push(bytecode.Int(42))
	if err := rt.exec(bytecode.Instruction{Op: bytecode.Store, Operand: 0}); err != nil {
		t.Fatal(err)
	}
	if err := rt.exec(bytecode.Instruction{Op: bytecode.Load, Operand: 0}); err != nil {
		t.Fatal(err)
	}
	v, err := rt.pop()
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsInt() || v.AsInt() != 42 {
		t.Fatalf("Store/Load round trip = %v, want Int(42)", v)
	}
}

func TestStackGrows(t *testing.T) {
	rt := newTestRuntime(0)
	initial := len(rt.stack)
	for i := 0; i < initial*2; i++ {
		rt.push(bytecode.Int(int64(i)))
	}
	if len(rt.stack) <= initial {
		t.Fatalf("stack did not grow: len=%d", len(rt.stack))
	}
	if rt.sp != initial*2 {
		t.Fatalf("sp = %d, want %d", rt.sp, initial*2)
	}
}

func TestArenaIdsAreMonotonic(t *testing.T) {
	rt := newTestRuntime(0)
	a := rt.NewString("a")
	b := rt.NewString("b")
	if a.AsRef() >= b.AsRef() {
		t.Fatalf("string arena ids not monotonic: %d, %d", a.AsRef(), b.AsRef())
	}

	l1 := rt.newList(nil)
	l2 := rt.newList(nil)
	if l1.AsRef() >= l2.AsRef() {
		t.Fatalf("list arena ids not monotonic: %d, %d", l1.AsRef(), l2.AsRef())
	}
}

func TestArithIntMatrix(t *testing.T) {
	rt := newTestRuntime(0)
	cases := []struct {
		op   bytecode.Opcode
		l, r int64
		want int64
	}{
		{bytecode.Add, 2, 3, 5},
		{bytecode.Sub, 5, 3, 2},
		{bytecode.Mul, 4, 3, 12},
		{bytecode.Div, 7, 2, 3},
		{bytecode.Div, -7, 2, -3}, // truncation toward zero
		{bytecode.Mod, 7, 2, 1},
		{bytecode.Pow, 2, 10, 1024},
	}
	for _, c := range cases {
		got, err := rt.arithInt(c.op, c.l, c.r)
		if err != nil {
			t.Fatalf("%s(%d,%d): %v", c.op, c.l, c.r, err)
		}
		if got.AsInt() != c.want {
			t.Errorf("%s(%d,%d) = %d, want %d", c.op, c.l, c.r, got.AsInt(), c.want)
		}
	}
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	rt := newTestRuntime(0)
	if _, err := rt.arithInt(bytecode.Div, 1, 0); err == nil {
		t.Fatal("expected fatal error")
	}
	if _, err := rt.arithInt(bytecode.Mod, 1, 0); err == nil {
		t.Fatal("expected fatal error")
	}
}

func TestValueEqualityCrossType(t *testing.T) {
	rt := newTestRuntime(0)
	s1 := rt.NewString("hi")
	s2 := rt.NewString("hi")
	eq, err := rt.valueEqual(s1, s2)
	if err != nil || !eq {
		t.Fatalf("expected equal strings by content, got eq=%v err=%v", eq, err)
	}

	c := bytecode.Char('h')
	str := rt.NewString("h")
	eq, err = rt.valueEqual(str, c)
	if err != nil || !eq {
		t.Fatalf("expected StrRef/Char single-char equivalence, got eq=%v err=%v", eq, err)
	}
}

func TestRunFallsOffEnd(t *testing.T) {
	rt := newTestRuntime(0)
	if err := rt.Run(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
