package machine

import "github.com/mna/blc/lang/bytecode"

// exec executes a single already-fetched instruction (§4.3 "Per-opcode
// semantics"). rt.ip has already been advanced past in by the caller.
func (rt *Runtime) exec(in bytecode.Instruction) error {
	switch in.Op {
	case bytecode.Nop:
		return nil

	case bytecode.Push:
		if int(in.Operand) >= len(rt.prog.Consts) {
			return rt.fatalf("const index %d out of range", in.Operand)
		}
		rt.push(rt.prog.Consts[in.Operand])
		return nil

	case bytecode.Load:
		if int(in.Operand) >= len(rt.heap) {
			return rt.opErrorf(in.Op, "heap address %d out of range", in.Operand)
		}
		rt.push(rt.heap[in.Operand])
		return nil

	case bytecode.Store:
		v, err := rt.pop()
		if err != nil {
			return err
		}
		if int(in.Operand) >= len(rt.heap) {
			return rt.opErrorf(in.Op, "heap address %d out of range", in.Operand)
		}
		rt.heap[in.Operand] = v
		return nil

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Mod, bytecode.Pow:
		right, err := rt.pop()
		if err != nil {
			return err
		}
		left, err := rt.pop()
		if err != nil {
			return err
		}
		result, err := rt.arith(in.Op, left, right)
		if err != nil {
			return err
		}
		rt.push(result)
		return nil

	case bytecode.Gt, bytecode.Lt, bytecode.Gte, bytecode.Lte:
		right, err := rt.pop()
		if err != nil {
			return err
		}
		left, err := rt.pop()
		if err != nil {
			return err
		}
		result, err := rt.compare(in.Op, left, right)
		if err != nil {
			return err
		}
		rt.push(result)
		return nil

	case bytecode.Eq, bytecode.Neq:
		right, err := rt.pop()
		if err != nil {
			return err
		}
		left, err := rt.pop()
		if err != nil {
			return err
		}
		eq, err := rt.valueEqual(left, right)
		if err != nil {
			return rt.opErrorf(in.Op, "%s", err)
		}
		if in.Op == bytecode.Neq {
			eq = !eq
		}
		rt.push(bytecode.Bool(eq))
		return nil

	case bytecode.And, bytecode.Or:
		right, err := rt.pop()
		if err != nil {
			return err
		}
		left, err := rt.pop()
		if err != nil {
			return err
		}
		if !left.IsBool() || !right.IsBool() {
			return rt.opErrorf(in.Op, "unsupported operand types %s, %s", left.Type(), right.Type())
		}
		var result bool
		if in.Op == bytecode.And {
			result = left.AsBool() && right.AsBool()
		} else {
			result = left.AsBool() || right.AsBool()
		}
		rt.push(bytecode.Bool(result))
		return nil

	case bytecode.Not:
		v, err := rt.pop()
		if err != nil {
			return err
		}
		if !v.IsBool() {
			return rt.opErrorf(in.Op, "unsupported operand type %s", v.Type())
		}
		rt.push(bytecode.Bool(!v.AsBool()))
		return nil

	case bytecode.Jump:
		rt.ip = in.Operand
		return nil

	case bytecode.JumpIfTrue, bytecode.JumpIfFalse:
		v, err := rt.pop()
		if err != nil {
			return err
		}
		if !v.IsBool() {
			return rt.opErrorf(in.Op, "unsupported operand type %s", v.Type())
		}
		want := in.Op == bytecode.JumpIfTrue
		if v.AsBool() == want {
			rt.ip = in.Operand
		}
		return nil

	case bytecode.Call:
		rt.callStack = append(rt.callStack, rt.ip)
		rt.ip = in.Operand
		return nil

	case bytecode.Ret:
		if len(rt.callStack) == 0 {
			return rt.opErrorf(in.Op, "call stack underflow")
		}
		n := len(rt.callStack) - 1
		rt.ip = rt.callStack[n]
		rt.callStack = rt.callStack[:n]
		return nil

	case bytecode.ExternCall:
		name, err := rt.stringAt(in.Operand)
		if err != nil {
			return err
		}
		fn, ok := rt.externs[name]
		if !ok {
			return rt.opErrorf(in.Op, "unknown extern function %q", name)
		}
		if err := fn(rt); err != nil {
			return rt.opErrorf(in.Op, "%s: %s", name, err)
		}
		return nil

	case bytecode.CreateObject:
		return rt.execCreateObject(in)

	case bytecode.AccessMember:
		return rt.execAccessMember(in)

	case bytecode.SetMember:
		return rt.execSetMember(in)

	default:
		return rt.fatalf("illegal opcode %s", in.Op)
	}
}

func (rt *Runtime) execCreateObject(in bytecode.Instruction) error {
	if int(in.Operand) >= len(rt.prog.ObjectDescriptors) {
		return rt.opErrorf(in.Op, "descriptor index %d out of range", in.Operand)
	}
	desc := rt.prog.ObjectDescriptors[in.Operand]
	members := make([]bytecode.Value, len(desc.Members))
	for i := 0; i < len(members); i++ {
		v, err := rt.pop()
		if err != nil {
			return err
		}
		members[i] = v
	}
	id := rt.nextObject
	rt.nextObject++
	rt.objects = append(rt.objects, object{descriptor: in.Operand, members: members})
	rt.push(bytecode.ObjectRef(id))
	return nil
}

func (rt *Runtime) execAccessMember(in bytecode.Instruction) error {
	v, err := rt.pop()
	if err != nil {
		return err
	}
	if !v.IsObjectRef() {
		return rt.opErrorf(in.Op, "unsupported operand type %s", v.Type())
	}
	obj, err := rt.objectAt(v.AsRef())
	if err != nil {
		return err
	}
	if int(in.Operand) >= len(obj.members) {
		return rt.opErrorf(in.Op, "member index %d out of range", in.Operand)
	}
	rt.push(obj.members[in.Operand])
	return nil
}

func (rt *Runtime) execSetMember(in bytecode.Instruction) error {
	v, err := rt.pop()
	if err != nil {
		return err
	}
	ref, err := rt.pop()
	if err != nil {
		return err
	}
	if !ref.IsObjectRef() {
		return rt.opErrorf(in.Op, "unsupported operand type %s", ref.Type())
	}
	obj, err := rt.objectAt(ref.AsRef())
	if err != nil {
		return err
	}
	if int(in.Operand) >= len(obj.members) {
		return rt.opErrorf(in.Op, "member index %d out of range", in.Operand)
	}
	obj.members[in.Operand] = v
	return nil
}
