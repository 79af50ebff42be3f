package machine

import "github.com/mna/blc/lang/bytecode"

// internString allocates a fresh entry in the string arena and returns its
// id (§3 "String arena"). Arena ids are strictly monotonic and never
// reused within one run.
func (rt *Runtime) internString(s string) uint32 {
	id := rt.nextString
	rt.nextString++
	rt.strings = append(rt.strings, s)
	return id
}

func (rt *Runtime) stringAt(id uint32) (string, error) {
	if int(id) >= len(rt.strings) {
		return "", rt.fatalf("string arena miss: id %d", id)
	}
	return rt.strings[id], nil
}

// NewString allocates s in the string arena and returns it as a Value,
// exposed for extern callbacks that produce new strings.
func (rt *Runtime) NewString(s string) bytecode.Value {
	return bytecode.StrRef(rt.internString(s))
}

// StringAt returns the string held by the given StrRef id, exposed for
// extern callbacks.
func (rt *Runtime) StringAt(id uint32) (string, error) { return rt.stringAt(id) }

func (rt *Runtime) newList(elems []bytecode.Value) bytecode.Value {
	id := rt.nextList
	rt.nextList++
	rt.lists = append(rt.lists, elems)
	return bytecode.ListRef(id)
}

func (rt *Runtime) listAt(id uint32) ([]bytecode.Value, error) {
	if int(id) >= len(rt.lists) {
		return nil, rt.fatalf("list arena miss: id %d", id)
	}
	return rt.lists[id], nil
}

func (rt *Runtime) setListAt(id uint32, elems []bytecode.Value) error {
	if int(id) >= len(rt.lists) {
		return rt.fatalf("list arena miss: id %d", id)
	}
	rt.lists[id] = elems
	return nil
}

// NewList, ListAt and SetListAt expose the list arena to extern callbacks
// (push/pop/new_list/index_set/index_get/len, see package externs).
func (rt *Runtime) NewList(elems []bytecode.Value) bytecode.Value { return rt.newList(elems) }
func (rt *Runtime) ListAt(id uint32) ([]bytecode.Value, error)    { return rt.listAt(id) }
func (rt *Runtime) SetListAt(id uint32, elems []bytecode.Value) error {
	return rt.setListAt(id, elems)
}

func (rt *Runtime) objectAt(id uint32) (*object, error) {
	if int(id) >= len(rt.objects) {
		return nil, rt.fatalf("object arena miss: id %d", id)
	}
	return &rt.objects[id], nil
}
