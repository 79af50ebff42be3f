package compiler

import "github.com/dolthub/swiss"

// interner assigns a dense, stable id to each distinct name on first
// occurrence; repeat lookups return the same id. The translator keeps two
// independent interners: one for string literals and extern-function names
// (seeds the runtime's string arena), one for variable names (maps to heap
// addresses, see §4.1). Lookup uses a swiss.Map rather than a builtin map
// since a chunk's name set is read far more than it's written, and open
// addressing with SIMD probing wins on that access pattern.
type interner struct {
	ids   *swiss.Map[string, uint32]
	names []string
}

func newInterner() *interner {
	return &interner{ids: swiss.NewMap[string, uint32](16)}
}

// intern returns name's id, assigning the next unused dense id on first
// occurrence.
func (in *interner) intern(name string) uint32 {
	if id, ok := in.ids.Get(name); ok {
		return id
	}
	id := uint32(len(in.names))
	in.ids.Put(name, id)
	in.names = append(in.names, name)
	return id
}

func (in *interner) len() int { return len(in.names) }
