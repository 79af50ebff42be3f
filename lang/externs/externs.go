// Package externs implements the reference host extern function set (§6
// "Host extern set"): the fixed vocabulary of host callbacks a compiled
// program may invoke via ExternCall. Each callback owns all stack
// interaction for its own invocation, per the §4.5 extern contract.
package externs

import (
	"fmt"

	"github.com/mna/blc/lang/bytecode"
	"github.com/mna/blc/lang/machine"
)

// Register installs the reference host's externs onto rt. The set of names
// and their variadic-ness is a hard contract with package compiler's
// Externs map; the two must never drift apart.
func Register(rt *machine.Runtime) {
	rt.RegisterExtern("print", print_)
	rt.RegisterExtern("push", push)
	rt.RegisterExtern("pop", pop)
	rt.RegisterExtern("new_list", newList)
	rt.RegisterExtern("new_list_with_values", newListWithValues)
	rt.RegisterExtern("new_list_with_default_values", newListWithDefaultValues)
	rt.RegisterExtern("index_set", indexSet)
	rt.RegisterExtern("index_get", indexGet)
	rt.RegisterExtern("len", length)
}

// print is variadic: the translator pushes the arguments rightmost first and
// then an Int count, so the callback pops the count and then each argument
// in left-to-right order (see §9 "Variadic call convention").
func print_(rt *machine.Runtime) error {
	count, err := popInt(rt)
	if err != nil {
		return err
	}
	args := make([]bytecode.Value, count)
	for i := int64(0); i < count; i++ {
		v, err := rt.Pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	for _, v := range args {
		s, err := rt.Display(v)
		if err != nil {
			return err
		}
		fmt.Fprint(rt.Out(), s)
	}
	fmt.Fprintln(rt.Out())
	return nil
}

// push(value, list) appends value to the list referenced by list, in place.
// value is the leftmost argument, so it is the one closest to the top of
// the stack (§4.2 "Function calls").
func push(rt *machine.Runtime) error {
	value, err := rt.Pop()
	if err != nil {
		return err
	}
	listVal, err := rt.Pop()
	if err != nil {
		return err
	}
	if !listVal.IsListRef() {
		return fmt.Errorf("push: second argument must be a list, got %s", listVal.Type())
	}
	elems, err := rt.ListAt(listVal.AsRef())
	if err != nil {
		return err
	}
	elems = append(elems, value)
	return rt.SetListAt(listVal.AsRef(), elems)
}

// pop(list) removes and returns the last element of list.
func pop(rt *machine.Runtime) error {
	listVal, err := rt.Pop()
	if err != nil {
		return err
	}
	if !listVal.IsListRef() {
		return fmt.Errorf("pop: argument must be a list, got %s", listVal.Type())
	}
	elems, err := rt.ListAt(listVal.AsRef())
	if err != nil {
		return err
	}
	if len(elems) == 0 {
		return fmt.Errorf("pop: list is empty")
	}
	last := elems[len(elems)-1]
	if err := rt.SetListAt(listVal.AsRef(), elems[:len(elems)-1]); err != nil {
		return err
	}
	rt.Push(last)
	return nil
}

// new_list() creates and pushes a new empty list.
func newList(rt *machine.Runtime) error {
	rt.Push(rt.NewList(nil))
	return nil
}

// new_list_with_values is variadic: creates a new list containing the given
// values, in left-to-right order.
func newListWithValues(rt *machine.Runtime) error {
	count, err := popInt(rt)
	if err != nil {
		return err
	}
	elems := make([]bytecode.Value, count)
	for i := int64(0); i < count; i++ {
		v, err := rt.Pop()
		if err != nil {
			return err
		}
		elems[i] = v
	}
	rt.Push(rt.NewList(elems))
	return nil
}

// new_list_with_default_values(default, n) creates a new list of n copies
// of default; default is the leftmost argument.
func newListWithDefaultValues(rt *machine.Runtime) error {
	defaultVal, err := rt.Pop()
	if err != nil {
		return err
	}
	nVal, err := rt.Pop()
	if err != nil {
		return err
	}
	if !nVal.IsInt() {
		return fmt.Errorf("new_list_with_default_values: second argument must be an int, got %s", nVal.Type())
	}
	n := nVal.AsInt()
	if n < 0 {
		return fmt.Errorf("new_list_with_default_values: negative length %d", n)
	}
	elems := make([]bytecode.Value, n)
	for i := range elems {
		elems[i] = defaultVal
	}
	rt.Push(rt.NewList(elems))
	return nil
}

// index_set(list, index, value) sets list[index] = value; defined only for
// ListRef (§6). list is the leftmost argument.
func indexSet(rt *machine.Runtime) error {
	listVal, err := rt.Pop()
	if err != nil {
		return err
	}
	idxVal, err := rt.Pop()
	if err != nil {
		return err
	}
	value, err := rt.Pop()
	if err != nil {
		return err
	}
	if !listVal.IsListRef() {
		return fmt.Errorf("index_set: first argument must be a list, got %s", listVal.Type())
	}
	if !idxVal.IsInt() {
		return fmt.Errorf("index_set: second argument must be an int, got %s", idxVal.Type())
	}
	elems, err := rt.ListAt(listVal.AsRef())
	if err != nil {
		return err
	}
	idx := idxVal.AsInt()
	if idx < 0 || int(idx) >= len(elems) {
		return fmt.Errorf("index_set: index %d out of range [0,%d)", idx, len(elems))
	}
	elems[idx] = value
	return nil
}

// index_get(container, index) returns container[index]. For ListRef this
// returns the element; for StrRef it returns a Char (§6). container is the
// leftmost argument.
func indexGet(rt *machine.Runtime) error {
	containerVal, err := rt.Pop()
	if err != nil {
		return err
	}
	idxVal, err := rt.Pop()
	if err != nil {
		return err
	}
	if !idxVal.IsInt() {
		return fmt.Errorf("index_get: second argument must be an int, got %s", idxVal.Type())
	}
	idx := idxVal.AsInt()

	switch {
	case containerVal.IsListRef():
		elems, err := rt.ListAt(containerVal.AsRef())
		if err != nil {
			return err
		}
		if idx < 0 || int(idx) >= len(elems) {
			return fmt.Errorf("index_get: index %d out of range [0,%d)", idx, len(elems))
		}
		rt.Push(elems[idx])
		return nil
	case containerVal.IsStrRef():
		s, err := rt.StringAt(containerVal.AsRef())
		if err != nil {
			return err
		}
		runes := []rune(s)
		if idx < 0 || int(idx) >= len(runes) {
			return fmt.Errorf("index_get: index %d out of range [0,%d)", idx, len(runes))
		}
		rt.Push(bytecode.Char(runes[idx]))
		return nil
	default:
		return fmt.Errorf("index_get: first argument must be a list or string, got %s", containerVal.Type())
	}
}

// len(container) returns the element count of a list or the byte length of
// a string (§6).
func length(rt *machine.Runtime) error {
	v, err := rt.Pop()
	if err != nil {
		return err
	}
	switch {
	case v.IsListRef():
		elems, err := rt.ListAt(v.AsRef())
		if err != nil {
			return err
		}
		rt.Push(bytecode.Int(int64(len(elems))))
		return nil
	case v.IsStrRef():
		s, err := rt.StringAt(v.AsRef())
		if err != nil {
			return err
		}
		rt.Push(bytecode.Int(int64(len(s))))
		return nil
	default:
		return fmt.Errorf("len: argument must be a list or string, got %s", v.Type())
	}
}

func popInt(rt *machine.Runtime) (int64, error) {
	v, err := rt.Pop()
	if err != nil {
		return 0, err
	}
	if !v.IsInt() {
		return 0, fmt.Errorf("expected a leading int count, got %s", v.Type())
	}
	return v.AsInt(), nil
}
