// Package machine implements the virtual machine that executes a compiled
// bytecode.Program: a tagged-value interpreter with a pre-sized operand
// stack, an address-indexed heap, arena-managed strings/lists/objects, and a
// host-extensible foreign function mechanism. It is the toolchain's hard
// core alongside package compiler.
package machine

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/mna/blc/lang/bytecode"
)

// stackInitialCap and stackGrowChunk tune the operand stack's growth policy
// (§4.3 "Operand stack policy"): the stack starts at stackInitialCap
// entries, and grows by stackGrowChunk whenever stackLowWater or fewer
// free slots remain at or above the stack pointer.
const (
	stackInitialCap = 256
	stackGrowChunk  = 256
	stackLowWater   = 8
)

// Extern is a host-registered callback invoked by ExternCall. It owns all
// stack interaction: popping its arguments (and, for variadic externs, the
// preceding count), and pushing a single result value if any (§4.5).
type Extern func(rt *Runtime) error

// Runtime is the materialized, executable form of a Program: its operand
// stack, call stack, heap, and string/list/object arenas (§3 "Runtime
// state"). A Runtime executes at most one program, via Run.
type Runtime struct {
	// Name optionally identifies the runtime, for diagnostics.
	Name string

	// Stdout, Stderr and Stdin are the standard I/O abstractions made
	// available to extern callbacks (notably print). If nil, os.Stdout,
	// os.Stderr and os.Stdin are used.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxSteps bounds the number of dispatched instructions before the run
	// is aborted with a fatal error; a value <= 0 means no limit. This is
	// the host's only way to bound execution (§5): the core has no
	// suspension points.
	MaxSteps int

	prog *bytecode.Program

	stack []bytecode.Value
	sp    int

	callStack []uint32 // return addresses (instruction indices)

	heap []bytecode.Value

	strings    []string // arena: id -> string, seeded from prog.Strings
	lists      [][]bytecode.Value
	objects    []object
	nextString uint32
	nextList   uint32
	nextObject uint32

	externs map[string]Extern

	ip uint32

	steps, maxSteps uint64

	ctx       context.Context
	cancelled atomic.Bool

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

type object struct {
	descriptor uint32
	members    []bytecode.Value
}

// New materializes a Runtime from p: it allocates the heap, seeds the
// string arena, and initializes the operand stack and monotonic counters
// (§4.4 "Program Materialization"). No verification pass is performed; the
// runtime trusts the translator (call p.Validate() first if that trust is
// not warranted).
func New(p *bytecode.Program) *Runtime {
	rt := &Runtime{
		prog:       p,
		stack:      make([]bytecode.Value, stackInitialCap),
		heap:       make([]bytecode.Value, p.HeapSize),
		strings:    append([]string(nil), p.Strings...),
		externs:    make(map[string]Extern),
		nextString: uint32(len(p.Strings)),
		ip:         1,
	}
	return rt
}

// RegisterExtern installs fn as the callback for the named extern function.
// It is the host's responsibility to register every name the program may
// call; an unregistered name invoked via ExternCall is a fatal host error
// (§4.5, §7.4).
func (rt *Runtime) RegisterExtern(name string, fn Extern) {
	rt.externs[name] = fn
}

func (rt *Runtime) init() {
	if rt.MaxSteps <= 0 {
		rt.maxSteps-- // wraps to MaxUint64: effectively unbounded
	} else {
		rt.maxSteps = uint64(rt.MaxSteps)
	}
	if rt.Stdout != nil {
		rt.stdout = rt.Stdout
	} else {
		rt.stdout = os.Stdout
	}
	if rt.Stderr != nil {
		rt.stderr = rt.Stderr
	} else {
		rt.stderr = os.Stderr
	}
	if rt.Stdin != nil {
		rt.stdin = rt.Stdin
	} else {
		rt.stdin = os.Stdin
	}
}

// Run drives execution to quiescence: fetch, increment ip, execute, repeat
// until ip walks past the end of the instruction stream (§4.3 "Dispatch
// loop"). There is no halt opcode; termination is purely structural. Run
// returns a *FatalError for any invariant violation encountered along the
// way, per §7's error handling policy (no in-band error values).
func (rt *Runtime) Run(ctx context.Context) error {
	rt.init()
	if ctx == nil {
		ctx = context.Background()
	}
	rt.ctx = ctx
	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			rt.cancelled.Store(true)
		}()
	}

	instrs := rt.prog.Instructions
	for int(rt.ip) < len(instrs) {
		if rt.cancelled.Load() {
			return rt.fatalf("execution cancelled")
		}
		rt.steps++
		if rt.steps > rt.maxSteps {
			return rt.fatalf("exceeded MaxSteps (%d)", rt.MaxSteps)
		}

		in := instrs[rt.ip]
		rt.ip++
		if err := rt.exec(in); err != nil {
			return err
		}
	}
	return nil
}

// Out returns the writer extern callbacks should use for program output,
// defaulting to os.Stdout if Run has not yet initialized it.
func (rt *Runtime) Out() io.Writer {
	if rt.stdout != nil {
		return rt.stdout
	}
	return os.Stdout
}

func (rt *Runtime) fatalf(format string, args ...interface{}) error {
	return &FatalError{
		IP:      rt.ip,
		Message: fmt.Sprintf(format, args...),
	}
}
