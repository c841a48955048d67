package runtime

import (
	"strings"
	"unicode"
)

// Type describes the shape of a value: a scalar kind, or a list and its
// element type.
type Type struct {
	Kind Kind
	Elem *Type
}

var (
	NumberType = Type{Kind: KindNumber}
	BoolType   = Type{Kind: KindBool}
	CharType   = Type{Kind: KindChar}
)

// ListOf returns the type of a list holding elem.
func ListOf(elem Type) Type {
	e := elem.clone()
	return Type{Kind: KindList, Elem: &e}
}

func (t Type) clone() Type {
	if t.Elem == nil {
		return t
	}
	e := t.Elem.clone()
	return Type{Kind: t.Kind, Elem: &e}
}

// Equal compares types structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KindList {
		return true
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

func (t Type) String() string {
	if t.Kind == KindList {
		if t.Elem == nil {
			return "(list ?)"
		}
		return "(list " + t.Elem.String() + ")"
	}
	return t.Kind.String()
}

// ParseType reads a type annotation: num, bool, char or (list T).
func ParseType(text string) (Type, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "num":
		return NumberType, nil
	case "bool":
		return BoolType, nil
	case "char":
		return CharType, nil
	}
	if len(text) >= 2 && text[0] == '(' && text[len(text)-1] == ')' {
		inner := strings.TrimSpace(text[1 : len(text)-1])
		rest, ok := strings.CutPrefix(inner, "list")
		if ok && rest != "" && (unicode.IsSpace(rune(rest[0])) || rest[0] == '(') {
			elem, err := ParseType(rest)
			if err != nil {
				return Type{}, err
			}
			return ListOf(elem), nil
		}
	}
	return Type{}, SyntaxError("type", "unknown type %q", text)
}

// TypeOf derives the type of v.
func TypeOf(v Value) Type {
	switch val := v.(type) {
	case NumberValue:
		return NumberType
	case BoolValue:
		return BoolType
	case CharValue:
		return CharType
	case *ListValue:
		return ListOf(val.Elem)
	default:
		return Type{Kind: -1}
	}
}

// AssertType fails with a type error unless got matches want.
func AssertType(want, got Type) error {
	if want.Equal(got) {
		return nil
	}
	return TypeError("type", "expected %s, got %s", want, got)
}
