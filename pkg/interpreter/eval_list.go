package interpreter

import (
	"math"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// EvaluateList builds or transforms a list. The first word is the subject:
// a [literal], a "string", or a name or group holding a list. What follows
// selects the operation:
//
//	(none)        the list itself
//	len           its length
//	+ item        append
//	+ index item  insert before index
//	- index       remove
//	++ other      concatenate
//	@ index       take the element at index
func EvaluateList(words []string, env *runtime.Environment) (runtime.Value, error) {
	if len(words) == 0 {
		return nil, runtime.SyntaxError("list", "missing list expression")
	}
	list, err := listSubject(words[0], env)
	if err != nil {
		return nil, err
	}
	rest := words[1:]

	switch {
	case len(rest) == 0:
		return list, nil

	case len(rest) == 1 && rest[0] == "len":
		return runtime.NumberValue{Val: float64(list.Len())}, nil

	case len(rest) == 2 && rest[0] == "+":
		item, err := listItem(rest[1], list.Elem, env)
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, item)
		return list, nil

	case len(rest) == 3 && rest[0] == "+":
		idx, err := listIndex(rest[1], list.Len()+1, env)
		if err != nil {
			return nil, err
		}
		item, err := listItem(rest[2], list.Elem, env)
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements[:idx], append([]runtime.Value{item}, list.Elements[idx:]...)...)
		return list, nil

	case len(rest) == 2 && rest[0] == "-":
		idx, err := listIndex(rest[1], list.Len(), env)
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
		return list, nil

	case len(rest) == 2 && rest[0] == "++":
		v, err := EvaluateStatement([]string{rest[1]}, env)
		if err != nil {
			return nil, err
		}
		other, err := runtime.AsList(v)
		if err != nil {
			return nil, err
		}
		if !other.Elem.Equal(list.Elem) {
			return nil, runtime.TypeError("list", "cannot concatenate %s with %s", runtime.TypeOf(other), runtime.TypeOf(list))
		}
		list.Elements = append(list.Elements, other.Elements...)
		return list, nil

	case len(rest) == 2 && rest[0] == "@":
		idx, err := listIndex(rest[1], list.Len(), env)
		if err != nil {
			return nil, err
		}
		return takeElement(list, idx), nil
	}
	return nil, runtime.ParseError("list", "unrecognised list operation")
}

// takeElement removes the element at idx from list and returns it. The list
// is always a private copy, so bound variables keep their elements.
func takeElement(list *runtime.ListValue, idx int) runtime.Value {
	el := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return el
}

func listSubject(word string, env *runtime.Environment) (*runtime.ListValue, error) {
	switch {
	case parser.IsList(word):
		return listLiteral(word, env)
	case parser.IsString(word):
		return runtime.NewString(parser.Unescape(parser.Unwrap(word))), nil
	}
	v, err := resolveLeaf(word, env, func(w string) (runtime.Value, error) {
		return nil, runtime.ParseError("list", "%q is not a list", w)
	})
	if err != nil {
		return nil, err
	}
	return runtime.AsList(v)
}

func listLiteral(word string, env *runtime.Environment) (*runtime.ListValue, error) {
	items, err := parser.Split(parser.Unwrap(word))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, runtime.ParseError("list", "empty list literal has no element type")
	}
	out := &runtime.ListValue{Elements: make([]runtime.Value, 0, len(items))}
	for i, item := range items {
		v, err := EvaluateStatement([]string{item}, env)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			out.Elem = runtime.TypeOf(v)
		} else if err := runtime.AssertType(out.Elem, runtime.TypeOf(v)); err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, v)
	}
	return out, nil
}

func listItem(word string, elem runtime.Type, env *runtime.Environment) (runtime.Value, error) {
	v, err := EvaluateStatement([]string{word}, env)
	if err != nil {
		return nil, err
	}
	if err := runtime.AssertType(elem, runtime.TypeOf(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// listIndex evaluates word to an index in [0, limit).
func listIndex(word string, limit int, env *runtime.Environment) (int, error) {
	v, err := EvaluateStatement([]string{word}, env)
	if err != nil {
		return 0, err
	}
	n, err := runtime.AsNumber(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || n < 0 || n >= float64(limit) {
		return 0, runtime.SyntaxError("list", "index %s out of range for length %d", runtime.FormatNumber(n), limit)
	}
	return int(n), nil
}
