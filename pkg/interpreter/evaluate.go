package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

type evaluator struct {
	name string
	eval func([]string, *runtime.Environment) (runtime.Value, error)
}

// evaluators lists the typed evaluators in the order they are tried.
func evaluators() []evaluator {
	return []evaluator{
		{"numeric", EvaluateNumber},
		{"boolean", EvaluateBool},
		{"character", EvaluateChar},
		{"list", EvaluateList},
	}
}

// EvaluateStatement evaluates an expression of unknown type.
func EvaluateStatement(words []string, env *runtime.Environment) (runtime.Value, error) {
	if len(words) == 0 {
		return nil, runtime.ParseError("statement", "empty expression")
	}
	if len(words) == 1 {
		if v, ok := env.Lookup(words[0]); ok {
			return v, nil
		}
		if parser.HasParentheses(words[0]) {
			inner, err := parser.Split(parser.Unwrap(words[0]))
			if err != nil {
				return nil, err
			}
			return EvaluateStatement(inner, env)
		}
	}

	chain := evaluators()
	failures := make([]error, 0, len(chain))
	for _, ev := range chain {
		v, err := ev.eval(words, env)
		if err == nil {
			return v, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", ev.name, err))
	}
	return nil, &runtime.Error{
		Kind:   runtime.ErrParse,
		Origin: "statement",
		Msg:    fmt.Sprintf("cannot evaluate %q", strings.Join(words, " ")),
		Cause:  errors.Join(failures...),
	}
}

// evaluateAs evaluates words with the evaluator for typ and checks the result.
func evaluateAs(typ runtime.Type, words []string, env *runtime.Environment) (runtime.Value, error) {
	var (
		v   runtime.Value
		err error
	)
	switch typ.Kind {
	case runtime.KindNumber:
		v, err = EvaluateNumber(words, env)
	case runtime.KindBool:
		v, err = EvaluateBool(words, env)
	case runtime.KindChar:
		v, err = EvaluateChar(words, env)
	default:
		v, err = EvaluateList(words, env)
	}
	if err != nil {
		return nil, err
	}
	if err := runtime.AssertType(typ, runtime.TypeOf(v)); err != nil {
		return nil, err
	}
	return v, nil
}
