// Package runtimeconfig loads environment-driven tuning for the Runner CLI
// using caarlos0/env, the same struct-tag-driven approach mainer.Parser
// uses for command-line flags (see internal/runnercmd). This covers the
// settings a host operator would reach for without a recompile: the one
// place the core lets a host bound otherwise-unbounded execution (§5
// "Concurrency & resource model").
package runtimeconfig

import "github.com/caarlos0/env/v6"

// Runtime holds the environment-overridable knobs applied to a machine.Runtime
// before Run is called.
type Runtime struct {
	// MaxSteps caps the number of dispatched instructions; 0 means no limit,
	// matching machine.Runtime.MaxSteps's own zero-value semantics.
	MaxSteps int `env:"BLC_MAX_STEPS" envDefault:"0"`
}

// Load reads Runtime fields from the process environment, applying defaults
// for anything unset.
func Load() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, err
	}
	return rt, nil
}
