package compiler_test

import (
	"context"
	"testing"

	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/compiler"
	"github.com/mna/blc/lang/parser"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	ch, err := parser.ParseFile(context.Background(), "test", []byte(src), 0)
	require.NoError(t, err)
	p, err := compiler.Compile(context.Background(), ch)
	require.NoError(t, err)
	return p
}

func TestCompileArithmeticAssign(t *testing.T) {
	p := compile(t, "x = 2 + 3 * 4")
	require.EqualValues(t, 1, p.HeapSize)
	require.NotEmpty(t, p.Instructions)
	require.Equal(t, "nop", p.Instructions[0].Op.String())
}

func TestCompileIfElifElse(t *testing.T) {
	p := compile(t, `if 1 == 2 { print("a") } elif 3 > 2 { print("b") } else { print("c") }`)
	var jumpIfFalse, jump int
	for _, in := range p.Instructions {
		switch in.Op.String() {
		case "jumpiffalse":
			jumpIfFalse++
		case "jump":
			jump++
		}
	}
	require.Equal(t, 2, jumpIfFalse)
	// the leading jump to _start, plus one jump to end per arm (an else
	// follows every arm, so none of them is omitted)
	require.Equal(t, 3, jump)
}

func TestCompileWhileBreak(t *testing.T) {
	p := compile(t, `i = 0; while i < 10 { if i == 3 { break } i = i + 1 } print(i)`)
	require.NotEmpty(t, p.Instructions)
}

func TestCompileFuncCall(t *testing.T) {
	p := compile(t, `fn add(a, b) { return a + b } print(add(40, 2))`)
	require.EqualValues(t, 2, p.HeapSize)
	var sawCall, sawRet bool
	for _, in := range p.Instructions {
		switch in.Op.String() {
		case "call":
			sawCall = true
		case "ret":
			sawRet = true
		}
	}
	require.True(t, sawCall)
	require.True(t, sawRet)
}

func TestCompileUndefinedFunctionIsError(t *testing.T) {
	ch, err := parser.ParseFile(context.Background(), "test", []byte("missing()"), 0)
	require.NoError(t, err)
	_, err = compiler.Compile(context.Background(), ch)
	require.Error(t, err)
}

func TestCompileBreakOutsideLoopIsError(t *testing.T) {
	ch, err := parser.ParseFile(context.Background(), "test", []byte("break"), 0)
	require.NoError(t, err)
	_, err = compiler.Compile(context.Background(), ch)
	require.Error(t, err)
}
