package runnercmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/compiler"
	"github.com/mna/blc/lang/parser"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func writeProgram(t *testing.T, dir, src string) string {
	t.Helper()
	ch, err := parser.ParseFile(context.Background(), "test", []byte(src), 0)
	require.NoError(t, err)
	prog, err := compiler.Compile(context.Background(), ch)
	require.NoError(t, err)

	path := filepath.Join(dir, "prog.blc")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bytecode.Encode(f, prog))
	return path
}

func TestValidateDefaultsInputFromPositional(t *testing.T) {
	c := &Cmd{args: []string{"prog.blc"}}
	require.NoError(t, c.Validate())
	require.Equal(t, "prog.blc", c.Input)
}

func TestValidateRequiresInput(t *testing.T) {
	c := &Cmd{}
	require.Error(t, c.Validate())
}

func TestMainRunsProgramToCompletion(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, `print(40 + 2)`)

	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blcrun", "--input", path}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Success, code, "stderr: %s", stderr.String())
	require.Equal(t, "42\n", stdout.String())
}

func TestMainDebugPrintsDisassembly(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, `print(1)`)

	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blcrun", "-i", path, "-d"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Success, code)
	require.Contains(t, stderr.String(), "externcall")
}

func TestMainMissingInputFails(t *testing.T) {
	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blcrun", "--input", "/no/such/file.blc"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Failure, code)
}
