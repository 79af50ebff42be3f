// Package runnercmd implements the Runner CLI collaborator contract (§6
// "External interfaces"): load a serialized Program, register the
// reference host externs, and run it to completion.
package runnercmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/blc/internal/runtimeconfig"
	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/externs"
	"github.com/mna/blc/lang/machine"
	"github.com/mna/mainer"
)

const binName = "blcrun"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] --input <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <input>
       %[1]s -h|--help
       %[1]s -v|--version

Loads a serialized bytecode Program and runs it to completion against the
reference host extern set.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -i --input <path>         Input program path (required, or first
                                 positional argument).
       -d --debug                Print the loaded instruction stream to
                                 stderr before running.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Input string `flag:"i,input"`
	Debug bool   `flag:"d,debug"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.Input == "" && len(c.args) > 0 {
		c.Input = c.args[0]
		c.args = c.args[1:]
	}
	if c.Input == "" {
		return errors.New("input program is required (--input or first positional argument)")
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
	if err := c.run(ctx, stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) error {
	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Input, err)
	}
	prog, err := bytecode.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.Input, err)
	}

	if c.Debug {
		if err := bytecode.Disassemble(stdio.Stderr, prog); err != nil {
			return fmt.Errorf("disassemble %s: %w", c.Input, err)
		}
	}

	cfg, err := runtimeconfig.Load()
	if err != nil {
		return fmt.Errorf("load runtime config: %w", err)
	}

	rt := machine.New(prog)
	rt.Stdout = stdio.Stdout
	rt.Stderr = stdio.Stderr
	rt.Stdin = stdio.Stdin
	rt.MaxSteps = cfg.MaxSteps
	externs.Register(rt)

	if err := rt.Run(ctx); err != nil {
		return fmt.Errorf("run %s: %w", c.Input, err)
	}
	return nil
}
