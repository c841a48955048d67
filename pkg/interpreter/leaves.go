package interpreter

import (
	"math"
	"unicode/utf8"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// resolveLeaf evaluates a single operand word: a parenthesized group goes
// back through EvaluateStatement, a bound name is copied out of env, and
// anything else is handed to literal.
func resolveLeaf(word string, env *runtime.Environment, literal func(string) (runtime.Value, error)) (runtime.Value, error) {
	if parser.HasParentheses(word) {
		inner, err := parser.Split(parser.Unwrap(word))
		if err != nil {
			return nil, err
		}
		return EvaluateStatement(inner, env)
	}
	if v, ok := env.Lookup(word); ok {
		return v, nil
	}
	return literal(word)
}

func numberLeaf(word string, env *runtime.Environment) (float64, error) {
	v, err := resolveLeaf(word, env, parseNumber)
	if err != nil {
		return 0, err
	}
	if n, ok := v.(runtime.NumberValue); ok {
		return n.Val, nil
	}
	return 0, runtime.TypeError("numeric", "%q is %s, not num", word, runtime.TypeOf(v))
}

func boolLeaf(word string, env *runtime.Environment) (bool, error) {
	v, err := resolveLeaf(word, env, parseBool)
	if err != nil {
		return false, err
	}
	if b, ok := v.(runtime.BoolValue); ok {
		return b.Val, nil
	}
	return false, runtime.TypeError("boolean", "%q is %s, not bool", word, runtime.TypeOf(v))
}

func charLeaf(word string, env *runtime.Environment) (rune, error) {
	v, err := resolveLeaf(word, env, parseChar)
	if err != nil {
		return 0, err
	}
	if c, ok := v.(runtime.CharValue); ok {
		return c.Val, nil
	}
	return 0, runtime.TypeError("character", "%q is %s, not char", word, runtime.TypeOf(v))
}

// parseNumber accepts decimal digits with at most one '.'. The digits are read
// as one integer and scaled down by the number of digits after the point, so
// a lone "." is 0.
func parseNumber(word string) (runtime.Value, error) {
	var (
		acc      float64
		dots     int
		fraction int
	)
	for _, r := range word {
		switch {
		case r >= '0' && r <= '9':
			acc = acc*10 + float64(r-'0')
			if dots > 0 {
				fraction++
			}
		case r == '.':
			dots++
		default:
			return nil, runtime.ParseError("numeric", "%q is not a number", word)
		}
	}
	if word == "" || dots > 1 {
		return nil, runtime.ParseError("numeric", "%q is not a number", word)
	}
	return runtime.NumberValue{Val: acc / math.Pow(10, float64(fraction))}, nil
}

func parseBool(word string) (runtime.Value, error) {
	switch word {
	case "true":
		return runtime.BoolValue{Val: true}, nil
	case "false":
		return runtime.BoolValue{Val: false}, nil
	}
	return nil, runtime.ParseError("boolean", "%q is not a boolean", word)
}

// parseChar accepts a single character between single quotes.
func parseChar(word string) (runtime.Value, error) {
	if len(word) >= 3 && word[0] == '\'' && word[len(word)-1] == '\'' {
		body := word[1 : len(word)-1]
		if r, size := utf8.DecodeRuneInString(body); size == len(body) && r != utf8.RuneError {
			return runtime.CharValue{Val: r}, nil
		}
	}
	return nil, runtime.ParseError("character", "%q is not a character", word)
}
