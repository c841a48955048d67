package interpreter

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// EvaluateChar handles character comparisons and conversions:
//
//	'a' < 'b'   comparison, yields bool
//	n 'a'       code point as num
//	dig 7       digit 0-9 as char
//	num 12.5    decimal text of a number as (list char)
//	c 65        number as char, truncating
func EvaluateChar(words []string, env *runtime.Environment) (runtime.Value, error) {
	switch {
	case len(words) == 2 && words[0] == "n":
		r, err := charLeaf(words[1], env)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: float64(r)}, nil

	case len(words) == 2 && words[0] == "dig":
		n, err := numberLeaf(words[1], env)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 9 {
			return nil, runtime.SyntaxError("character", "%s is not a single digit", runtime.FormatNumber(n))
		}
		return runtime.CharValue{Val: '0' + rune(n)}, nil

	case len(words) == 2 && words[0] == "num":
		n, err := numberLeaf(words[1], env)
		if err != nil {
			return nil, err
		}
		return runtime.NewString(runtime.FormatNumber(n)), nil

	case len(words) == 2 && words[0] == "c":
		n, err := numberLeaf(words[1], env)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(n) || n < 0 || n > unicode.MaxRune || !utf8.ValidRune(rune(n)) {
			return nil, runtime.SyntaxError("character", "%s is not a code point", runtime.FormatNumber(n))
		}
		return runtime.CharValue{Val: rune(n)}, nil

	case len(words) == 3 && oneOf(words[1], comparisonOps):
		l, err := charLeaf(words[0], env)
		if err != nil {
			return nil, err
		}
		r, err := charLeaf(words[2], env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: compareChars(words[1], l, r)}, nil

	case len(words) == 1:
		r, err := charLeaf(words[0], env)
		if err != nil {
			return nil, err
		}
		return runtime.CharValue{Val: r}, nil
	}
	return nil, runtime.ParseError("character", "unrecognised character expression")
}

func compareChars(op string, l, r rune) bool {
	switch op {
	case "==":
		return l == r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	case "<":
		return l < r
	default:
		return l > r
	}
}
