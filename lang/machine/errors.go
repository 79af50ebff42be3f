package machine

import "fmt"

// FatalError reports an execution-time invariant violation: a type
// mismatch at an opcode, an arena/heap miss, or a host error (§7 "Error
// Handling Design", kinds 2-4). The core has no "fatal" state machine
// transition; raising a FatalError simply aborts Run.
type FatalError struct {
	IP      uint32
	Op      string
	Message string
}

func (e *FatalError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("machine: fatal error at ip=%d (%s): %s", e.IP, e.Op, e.Message)
	}
	return fmt.Sprintf("machine: fatal error at ip=%d: %s", e.IP, e.Message)
}

func (rt *Runtime) opErrorf(op fmt.Stringer, format string, args ...interface{}) error {
	return &FatalError{
		IP:      rt.ip - 1,
		Op:      op.String(),
		Message: fmt.Sprintf(format, args...),
	}
}
