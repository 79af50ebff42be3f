// Command blc is the Compiler CLI: it compiles a source file to a
// serialized bytecode Program.
package main

import (
	"os"

	"github.com/mna/blc/internal/compilercmd"
	"github.com/mna/mainer"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := compilercmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
