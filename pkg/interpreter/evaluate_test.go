package interpreter

import (
	"strings"
	"testing"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

func splitWords(t *testing.T, line string) []string {
	t.Helper()
	words, err := parser.Split(line)
	if err != nil {
		t.Fatalf("split %q: %v", line, err)
	}
	return words
}

func evalLine(t *testing.T, env *runtime.Environment, line string) runtime.Value {
	t.Helper()
	v, err := EvaluateStatement(splitWords(t, line), env)
	if err != nil {
		t.Fatalf("%q: unexpected error %v", line, err)
	}
	return v
}

func TestEvaluateStatementValues(t *testing.T) {
	env := runtime.NewEnvironment()
	env.Define("x", runtime.NumberValue{Val: 4})
	env.Define("flag", runtime.BoolValue{Val: true})
	env.Define("xs", runtime.NewList(runtime.NumberType, runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2}, runtime.NumberValue{Val: 3}))

	num := func(f float64) runtime.Value { return runtime.NumberValue{Val: f} }
	boolean := func(b bool) runtime.Value { return runtime.BoolValue{Val: b} }
	char := func(r rune) runtime.Value { return runtime.CharValue{Val: r} }
	nums := func(fs ...float64) runtime.Value {
		out := runtime.NewList(runtime.NumberType)
		for _, f := range fs {
			out.Elements = append(out.Elements, num(f))
		}
		return out
	}

	cases := []struct {
		line string
		want runtime.Value
	}{
		{"2 + 3 * 4", num(14)},
		{"( 2 + 3 ) * 4", num(20)},
		{"2 ^ 3 ^ 0", num(1)},
		{"10 - 4 - 3", num(3)},
		{"8 / 2 * 4", num(16)},
		{"7 % 4", num(3)},
		{"x * x + 1", num(17)},
		{"0.5 + .25", num(0.75)},
		{".", num(0)},
		{"12.", num(12)},
		{"1 < 2", boolean(true)},
		{"x == 4", boolean(true)},
		{"x >= (x + 1)", boolean(false)},
		{"floor 2.7", num(2)},
		{"ceil 2.1", num(3)},
		{"round 2.5", num(3)},
		{"sqrt x", num(2)},
		{"true & false | true", boolean(true)},
		{"! true", boolean(false)},
		{"! true & false", boolean(true)},
		{"true ^ true", boolean(false)},
		{"true == false", boolean(false)},
		{"flag & (x < 5)", boolean(true)},
		{"3 === 3", boolean(true)},
		{"'a' < 'b'", boolean(true)},
		{"n 'A'", num(65)},
		{"dig 7", char('7')},
		{"c 66", char('B')},
		{"'z'", char('z')},
		{"num 12.5", runtime.NewString("12.5")},
		{"[1 2 3] + 3 4", nums(1, 2, 3, 4)},
		{"[1 2 3] + 0 9", nums(9, 1, 2, 3)},
		{"[1 2 3] - 1", nums(1, 3)},
		{"[1 2] ++ [3]", nums(1, 2, 3)},
		{"[1 2 3] @ 1", num(2)},
		{"[1 2 3] len", num(3)},
		{"xs + x", nums(1, 2, 3, 4)},
		{"xs", nums(1, 2, 3)},
		{`"hi" len`, num(2)},
		{`"a b" ++ "!"`, runtime.NewString("a b!")},
		{"[(1 + 1) x]", nums(2, 4)},
	}
	for _, tc := range cases {
		got := evalLine(t, env, tc.line)
		if !runtime.Equal(got, tc.want) {
			t.Fatalf("%q: expected %s, got %s", tc.line, tc.want, got)
		}
	}
}

func TestIndexTakesFromCopy(t *testing.T) {
	env := runtime.NewEnvironment()
	list := evalLine(t, env, "[1 2 3] + 3 4")
	env.Define("xs", list)
	if got := evalLine(t, env, "xs @ 3"); !runtime.Equal(got, runtime.NumberValue{Val: 4}) {
		t.Fatalf("expected 4, got %s", got)
	}
	if got := evalLine(t, env, "xs len"); !runtime.Equal(got, runtime.NumberValue{Val: 4}) {
		t.Fatalf("indexing changed the bound list: len %s", got)
	}
}

func TestNestedListLiteral(t *testing.T) {
	env := runtime.NewEnvironment()
	got := evalLine(t, env, "[[1] [2 3]]")
	if typ := runtime.TypeOf(got); !typ.Equal(runtime.ListOf(runtime.ListOf(runtime.NumberType))) {
		t.Fatalf("unexpected type %s", typ)
	}
}

func TestEvaluatorErrorKinds(t *testing.T) {
	env := runtime.NewEnvironment()
	cases := []struct {
		name string
		eval func([]string, *runtime.Environment) (runtime.Value, error)
		line string
		kind runtime.ErrorKind
	}{
		{"missing operand", EvaluateNumber, "2 +", runtime.ErrParse},
		{"leading operator", EvaluateNumber, "* 2", runtime.ErrParse},
		{"two numbers", EvaluateNumber, "1 2", runtime.ErrParse},
		{"bad literal", EvaluateNumber, "1.2.3", runtime.ErrParse},
		{"bool operand", EvaluateNumber, "1 + (true)", runtime.ErrType},
		{"dangling not", EvaluateBool, "true !", runtime.ErrParse},
		{"identity of expressions", EvaluateBool, "true & true === 1", runtime.ErrType},
		{"digit out of range", EvaluateChar, "dig 12", runtime.ErrSyntax},
		{"code point above max rune", EvaluateChar, "c 2000000", runtime.ErrSyntax},
		{"surrogate code point", EvaluateChar, "c 55296", runtime.ErrSyntax},
		{"char literal too long", EvaluateChar, "'ab'", runtime.ErrParse},
		{"mismatched append", EvaluateList, "[1 2] + 'a'", runtime.ErrType},
		{"mixed literal", EvaluateList, "[1 'a']", runtime.ErrType},
		{"empty literal", EvaluateList, "[]", runtime.ErrParse},
		{"index out of range", EvaluateList, "[1 2] @ 2", runtime.ErrSyntax},
		{"insert past the end", EvaluateList, "[1 2] + 3 9", runtime.ErrSyntax},
		{"negative index", EvaluateList, "[1 2] - (0 - 1)", runtime.ErrSyntax},
		{"concat mismatch", EvaluateList, `[1] ++ "a"`, runtime.ErrType},
		{"unknown op", EvaluateList, "[1] * 2", runtime.ErrParse},
		{"nothing matches", EvaluateStatement, "1 2 3", runtime.ErrParse},
		{"empty", EvaluateStatement, "", runtime.ErrParse},
	}
	for _, tc := range cases {
		_, err := tc.eval(splitWords(t, tc.line), env)
		if err == nil {
			t.Fatalf("%s: expected error for %q", tc.name, tc.line)
		}
		if !runtime.IsKind(err, tc.kind) {
			t.Fatalf("%s: expected %s error, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestStatementFailureListsEveryEvaluator(t *testing.T) {
	_, err := EvaluateStatement([]string{"nope"}, runtime.NewEnvironment())
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, name := range []string{"numeric", "boolean", "character", "list"} {
		if !strings.Contains(msg, name+":") {
			t.Fatalf("expected %s failure in %q", name, msg)
		}
	}
}

func TestIdentifierValidity(t *testing.T) {
	valid := []string{"x", "count", "x1", "snake_case"}
	invalid := []string{"", "let", "jump_rel", "last", "len", "1x", "(x)", "[x]", `"x"`}
	for _, name := range valid {
		if !IsValidIdentifier(name) {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	for _, name := range invalid {
		if IsValidIdentifier(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
	if !IsKeyword("fn") || IsKeyword("last") {
		t.Fatalf("keyword table is wrong")
	}
}
