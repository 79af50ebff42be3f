package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/blc/lang/bytecode"
)

// Display renders v as program-facing text: scalars print their natural
// representation, StrRef dereferences to its raw content (no quoting),
// ListRef dereferences recursively, and ObjectRef renders its descriptor
// name and member values. This is distinct from Value.String, which never
// dereferences arenas and is meant for opcode-level diagnostics only.
func (rt *Runtime) Display(v bytecode.Value) (string, error) {
	switch v.Kind() {
	case bytecode.KindInt:
		return strconv.FormatInt(v.AsInt(), 10), nil
	case bytecode.KindFloat:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64), nil
	case bytecode.KindBool:
		return strconv.FormatBool(v.AsBool()), nil
	case bytecode.KindChar:
		return string(v.AsChar()), nil
	case bytecode.KindStrRef:
		return rt.stringAt(v.AsRef())
	case bytecode.KindListRef:
		elems, err := rt.listAt(v.AsRef())
		if err != nil {
			return "", err
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			s, err := rt.Display(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case bytecode.KindObjectRef:
		obj, err := rt.objectAt(v.AsRef())
		if err != nil {
			return "", err
		}
		desc := rt.prog.ObjectDescriptors[obj.descriptor]
		parts := make([]string, len(obj.members))
		for i, m := range obj.members {
			s, err := rt.Display(m)
			if err != nil {
				return "", err
			}
			parts[i] = fmt.Sprintf("%s: %s", desc.Members[i], s)
		}
		return fmt.Sprintf("%s{%s}", desc.Name, strings.Join(parts, ", ")), nil
	default:
		return "", fmt.Errorf("machine: cannot display value of kind %s", v.Kind())
	}
}
