// Package compilercmd implements the Compiler CLI collaborator contract
// (§6 "External interfaces"): parse a source file, translate it to a
// Program, and write the serialized result.
package compilercmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/compiler"
	"github.com/mna/blc/lang/parser"
	"github.com/mna/mainer"
)

const binName = "blc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] --file <path> [--output <path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <file> [<output>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiles a source file to a serialized bytecode Program.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -f --file <path>          Input source path (required, or first
                                 positional argument).
       -o --output <path>        Output program path (or second positional
                                 argument). Defaults to the input basename
                                 with its extension replaced by .blc.
       -d --debug                Print the resolved instruction stream to
                                 stderr after a successful compile.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	File   string `flag:"f,file"`
	Output string `flag:"o,output"`
	Debug  bool   `flag:"d,debug"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.File == "" && len(c.args) > 0 {
		c.File = c.args[0]
		c.args = c.args[1:]
	}
	if c.Output == "" && len(c.args) > 0 {
		c.Output = c.args[0]
		c.args = c.args[1:]
	}
	if c.File == "" {
		return errors.New("input file is required (--file or first positional argument)")
	}
	if c.Output == "" {
		base := filepath.Base(c.File)
		if ext := filepath.Ext(base); ext != "" {
			base = strings.TrimSuffix(base, ext)
		}
		c.Output = base + ".blc"
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.compile(ctx, stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) compile(ctx context.Context, stdio mainer.Stdio) error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.File, err)
	}

	chunk, err := parser.ParseFile(ctx, c.File, src, 0)
	if err != nil {
		return fmt.Errorf("parse %s: %w", c.File, err)
	}

	prog, err := compiler.Compile(ctx, chunk)
	if err != nil {
		return fmt.Errorf("compile %s: %w", c.File, err)
	}

	if c.Debug {
		if err := bytecode.Disassemble(stdio.Stderr, prog); err != nil {
			return fmt.Errorf("disassemble %s: %w", c.File, err)
		}
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Output, err)
	}
	defer out.Close()

	if err := bytecode.Encode(out, prog); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	return nil
}
