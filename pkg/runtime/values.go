package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindChar
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "num"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
	String() string
}

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

func (v NumberValue) String() string { return FormatNumber(v.Val) }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

func (v BoolValue) String() string { return strconv.FormatBool(v.Val) }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

func (v CharValue) String() string { return string(v.Val) }

// ListValue is a homogeneous sequence. Elem is fixed when the list is built,
// so an empty list still knows what it holds.
type ListValue struct {
	Elem     Type
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// String renders the list as `(ELEM, LEN)[ v1 v2 ]`.
func (v *ListValue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s, %d)[ ", v.Elem, len(v.Elements))
	for _, el := range v.Elements {
		b.WriteString(el.String())
		b.WriteByte(' ')
	}
	b.WriteByte(']')
	return b.String()
}

// Text concatenates the elements of a character list.
func (v *ListValue) Text() string {
	var b strings.Builder
	for _, el := range v.Elements {
		if c, ok := el.(CharValue); ok {
			b.WriteRune(c.Val)
		}
	}
	return b.String()
}

// Len reports the number of elements.
func (v *ListValue) Len() int { return len(v.Elements) }

// NewList builds a list of elem from already type-checked values.
func NewList(elem Type, elements ...Value) *ListValue {
	return &ListValue{Elem: elem, Elements: elements}
}

// NewString builds a (list char) holding the runes of s.
func NewString(s string) *ListValue {
	elements := make([]Value, 0, len(s))
	for _, r := range s {
		elements = append(elements, CharValue{Val: r})
	}
	return &ListValue{Elem: CharType, Elements: elements}
}

// Clone deep-copies v. Scalars are returned as-is.
func Clone(v Value) Value {
	list, ok := v.(*ListValue)
	if !ok || list == nil {
		return v
	}
	out := &ListValue{Elem: list.Elem.clone(), Elements: make([]Value, len(list.Elements))}
	for i, el := range list.Elements {
		out.Elements[i] = Clone(el)
	}
	return out
}

// Equal compares values structurally; numbers are equal within float64 epsilon.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && NumbersEqual(av.Val, bv.Val)
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case CharValue:
		bv, ok := b.(CharValue)
		return ok && av.Val == bv.Val
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || !av.Elem.Equal(bv.Elem) || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// NumbersEqual holds when a and b differ by less than machine epsilon.
func NumbersEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

const epsilon = 0x1p-52

// FormatNumber prints integral values without a fraction and everything else
// with the shortest representation that round-trips.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func AsNumber(v Value) (float64, error) {
	if n, ok := v.(NumberValue); ok {
		return n.Val, nil
	}
	return 0, TypeError("value", "expected num, got %s", describe(v))
}

func AsBool(v Value) (bool, error) {
	if b, ok := v.(BoolValue); ok {
		return b.Val, nil
	}
	return false, TypeError("value", "expected bool, got %s", describe(v))
}

func AsChar(v Value) (rune, error) {
	if c, ok := v.(CharValue); ok {
		return c.Val, nil
	}
	return 0, TypeError("value", "expected char, got %s", describe(v))
}

func AsList(v Value) (*ListValue, error) {
	if l, ok := v.(*ListValue); ok && l != nil {
		return l, nil
	}
	return nil, TypeError("value", "expected list, got %s", describe(v))
}

func describe(v Value) string {
	if v == nil {
		return "nothing"
	}
	return TypeOf(v).String()
}
