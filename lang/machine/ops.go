package machine

import (
	"fmt"
	"math"

	"github.com/mna/blc/lang/bytecode"
)

// arith implements the Add/Sub/Mul/Div/Mod/Pow numeric matrix (§4.3
// "Arithmetic"). op identifies which opcode is executing, for diagnostics.
func (rt *Runtime) arith(op bytecode.Opcode, left, right bytecode.Value) (bytecode.Value, error) {
	switch {
	case left.IsInt() && right.IsInt():
		return rt.arithInt(op, left.AsInt(), right.AsInt())
	case left.IsFloat() && right.IsFloat():
		return rt.arithFloat(op, left.AsFloat(), right.AsFloat())
	}

	if op == bytecode.Add {
		if v, ok, err := rt.tryConcat(left, right); ok || err != nil {
			return v, err
		}
	}
	return bytecode.Value{}, rt.opErrorf(op, "unsupported operand types %s, %s", left.Type(), right.Type())
}

func (rt *Runtime) arithInt(op bytecode.Opcode, l, r int64) (bytecode.Value, error) {
	switch op {
	case bytecode.Add:
		return bytecode.Int(l + r), nil
	case bytecode.Sub:
		return bytecode.Int(l - r), nil
	case bytecode.Mul:
		return bytecode.Int(l * r), nil
	case bytecode.Div:
		if r == 0 {
			return bytecode.Value{}, rt.opErrorf(op, "integer division by zero")
		}
		return bytecode.Int(l / r), nil // Go's / already truncates toward zero
	case bytecode.Mod:
		if r == 0 {
			return bytecode.Value{}, rt.opErrorf(op, "integer modulo by zero")
		}
		return bytecode.Int(l % r), nil
	case bytecode.Pow:
		if r < 0 {
			return bytecode.Value{}, rt.opErrorf(op, "negative exponent %d for integer base", r)
		}
		return bytecode.Int(intPow(l, r)), nil
	default:
		return bytecode.Value{}, rt.opErrorf(op, "not an arithmetic opcode")
	}
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func (rt *Runtime) arithFloat(op bytecode.Opcode, l, r float64) (bytecode.Value, error) {
	switch op {
	case bytecode.Add:
		return bytecode.Float(l + r), nil
	case bytecode.Sub:
		return bytecode.Float(l - r), nil
	case bytecode.Mul:
		return bytecode.Float(l * r), nil
	case bytecode.Div:
		return bytecode.Float(l / r), nil
	case bytecode.Mod:
		return bytecode.Float(math.Mod(l, r)), nil
	case bytecode.Pow:
		return bytecode.Float(math.Pow(l, r)), nil
	default:
		return bytecode.Value{}, rt.opErrorf(op, "not an arithmetic opcode")
	}
}

// tryConcat implements Add's string/char/list concatenation cases.
func (rt *Runtime) tryConcat(left, right bytecode.Value) (bytecode.Value, bool, error) {
	switch {
	case left.IsStrRef() && right.IsStrRef():
		ls, err := rt.stringAt(left.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		rs, err := rt.stringAt(right.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		return rt.NewString(ls + rs), true, nil
	case left.IsStrRef() && right.IsChar():
		ls, err := rt.stringAt(left.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		return rt.NewString(ls + string(right.AsChar())), true, nil
	case left.IsChar() && right.IsStrRef():
		rs, err := rt.stringAt(right.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		return rt.NewString(string(left.AsChar()) + rs), true, nil
	case left.IsChar() && right.IsChar():
		return rt.NewString(string(left.AsChar()) + string(right.AsChar())), true, nil
	case left.IsListRef() && right.IsListRef():
		ll, err := rt.listAt(left.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		rl, err := rt.listAt(right.AsRef())
		if err != nil {
			return bytecode.Value{}, true, err
		}
		merged := make([]bytecode.Value, 0, len(ll)+len(rl))
		merged = append(merged, ll...)
		merged = append(merged, rl...)
		return rt.newList(merged), true, nil
	default:
		return bytecode.Value{}, false, nil
	}
}

// compare implements Gt/Lt/Gte/Lte (§4.3 "Comparisons"): numeric only.
func (rt *Runtime) compare(op bytecode.Opcode, left, right bytecode.Value) (bytecode.Value, error) {
	var l, r float64
	switch {
	case left.IsInt() && right.IsInt():
		l, r = float64(left.AsInt()), float64(right.AsInt())
	case left.IsFloat() && right.IsFloat():
		l, r = left.AsFloat(), right.AsFloat()
	default:
		return bytecode.Value{}, rt.opErrorf(op, "unsupported operand types %s, %s", left.Type(), right.Type())
	}
	switch op {
	case bytecode.Gt:
		return bytecode.Bool(l > r), nil
	case bytecode.Lt:
		return bytecode.Bool(l < r), nil
	case bytecode.Gte:
		return bytecode.Bool(l >= r), nil
	case bytecode.Lte:
		return bytecode.Bool(l <= r), nil
	default:
		return bytecode.Value{}, rt.opErrorf(op, "not a comparison opcode")
	}
}

// valueEqual implements Eq/Neq's cross-type rules (§4.3 "Eq / Neq").
func (rt *Runtime) valueEqual(left, right bytecode.Value) (bool, error) {
	switch {
	case left.IsInt() && right.IsInt():
		return left.AsInt() == right.AsInt(), nil
	case left.IsFloat() && right.IsFloat():
		return left.AsFloat() == right.AsFloat(), nil
	case left.IsBool() && right.IsBool():
		return left.AsBool() == right.AsBool(), nil
	case left.IsChar() && right.IsChar():
		return left.AsChar() == right.AsChar(), nil
	case left.IsStrRef() && right.IsStrRef():
		ls, err := rt.stringAt(left.AsRef())
		if err != nil {
			return false, err
		}
		rs, err := rt.stringAt(right.AsRef())
		if err != nil {
			return false, err
		}
		return ls == rs, nil
	case left.IsStrRef() && right.IsChar():
		ls, err := rt.stringAt(left.AsRef())
		if err != nil {
			return false, err
		}
		return ls == string(right.AsChar()), nil
	case left.IsChar() && right.IsStrRef():
		rs, err := rt.stringAt(right.AsRef())
		if err != nil {
			return false, err
		}
		return string(left.AsChar()) == rs, nil
	case left.IsListRef() && right.IsListRef():
		ll, err := rt.listAt(left.AsRef())
		if err != nil {
			return false, err
		}
		rl, err := rt.listAt(right.AsRef())
		if err != nil {
			return false, err
		}
		if len(ll) != len(rl) {
			return false, nil
		}
		for i := range ll {
			eq, err := rt.valueEqual(ll[i], rl[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("mismatched tags %s, %s", left.Type(), right.Type())
	}
}
