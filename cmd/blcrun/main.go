// Command blcrun is the Runner CLI: it loads a serialized bytecode Program
// and runs it to completion against the reference host extern set.
package main

import (
	"os"

	"github.com/mna/blc/internal/runnercmd"
	"github.com/mna/mainer"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := runnercmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
