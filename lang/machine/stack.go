package machine

import "github.com/mna/blc/lang/bytecode"

// growIfNeeded implements §4.3's "operand stack policy": before every push,
// if stackLowWater or fewer free slots remain at or above sp, grow by
// stackGrowChunk. The stack is never shrunk.
func (rt *Runtime) growIfNeeded() {
	if rt.sp+stackLowWater >= len(rt.stack) {
		grown := make([]bytecode.Value, len(rt.stack)+stackGrowChunk)
		copy(grown, rt.stack)
		rt.stack = grown
	}
}

func (rt *Runtime) push(v bytecode.Value) {
	rt.growIfNeeded()
	rt.stack[rt.sp] = v
	rt.sp++
}

// pop removes and returns the top of the operand stack. Underflow is a
// fatal invariant violation per §4.3 ("Underflow is a fatal invariant
// violation").
func (rt *Runtime) pop() (bytecode.Value, error) {
	if rt.sp == 0 {
		return bytecode.Value{}, rt.fatalf("operand stack underflow")
	}
	rt.sp--
	return rt.stack[rt.sp], nil
}

// Push and Pop expose the operand stack to extern callbacks, which own all
// stack interaction for their invocation (§4.5).
func (rt *Runtime) Push(v bytecode.Value) { rt.push(v) }
func (rt *Runtime) Pop() (bytecode.Value, error) { return rt.pop() }

// Len reports the current operand stack depth, for callbacks that need to
// know how many values remain (e.g. a variadic's leading count having
// already been popped).
func (rt *Runtime) Len() int { return rt.sp }
