package compilercmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsOutputFromPositional(t *testing.T) {
	c := &Cmd{args: []string{"prog.blcsrc"}}
	require.NoError(t, c.Validate())
	require.Equal(t, "prog.blcsrc", c.File)
	require.Equal(t, "prog.blc", c.Output)
}

func TestValidateRequiresInput(t *testing.T) {
	c := &Cmd{}
	require.Error(t, c.Validate())
}

func TestValidateExplicitOutputWins(t *testing.T) {
	c := &Cmd{File: "a.blcsrc", Output: "out.bin"}
	require.NoError(t, c.Validate())
	require.Equal(t, "out.bin", c.Output)
}

func TestMainCompilesAndWritesProgram(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.blcsrc")
	require.NoError(t, os.WriteFile(src, []byte(`x = 1 + 2; print(x)`), 0o644))
	out := filepath.Join(dir, "prog.blc")

	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blc", "--file", src, "--output", out}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Success, code, "stderr: %s", stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	prog, err := bytecode.Decode(f)
	require.NoError(t, err)
	require.NotEmpty(t, prog.Instructions)
}

func TestMainDebugPrintsDisassembly(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.blcsrc")
	require.NoError(t, os.WriteFile(src, []byte(`x = 1`), 0o644))

	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blc", "-f", src, "-o", filepath.Join(dir, "prog.blc"), "-d"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Success, code)
	require.Contains(t, stderr.String(), "push")
}

func TestMainMissingFileFails(t *testing.T) {
	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.Main([]string{"blc", "--file", "/no/such/file.blcsrc"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, mainer.Failure, code)
}
