package bytecode_test

import (
	"bytes"
	"testing"

	"github.com/mna/blc/lang/bytecode"
	"github.com/stretchr/testify/require"
)

func TestDisassembleAnnotatesPushAndExternCall(t *testing.T) {
	p := &bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.Nop},
			{Op: bytecode.Push, Operand: 0},
			{Op: bytecode.ExternCall, Operand: 0},
			{Op: bytecode.Ret},
		},
		Consts:  []bytecode.Value{bytecode.Int(42)},
		Strings: []string{"print"},
	}

	var buf bytes.Buffer
	require.NoError(t, bytecode.Disassemble(&buf, p))
	out := buf.String()
	require.Contains(t, out, "push 0")
	require.Contains(t, out, "42")
	require.Contains(t, out, "externcall 0")
	require.Contains(t, out, `"print"`)
	require.Contains(t, out, "ret")
}
