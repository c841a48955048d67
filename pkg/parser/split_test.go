package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

func TestSplitWords(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"let x = 2 + 3", []string{"let", "x", "=", "2", "+", "3"}},
		{"  spaced\tout  ", []string{"spaced", "out"}},
		{"( 2 + 3 ) * 4", []string{"( 2 + 3 )", "*", "4"}},
		{"f (a (b c))", []string{"f", "(a (b c))"}},
		{"[1 2 3] + 3 4", []string{"[1 2 3]", "+", "3", "4"}},
		{`puts "hello world"`, []string{"puts", `"hello world"`}},
		{`"a\"b c"`, []string{`"a\"b c"`}},
		{`"a(b"`, []string{`"a(b"`}},
		{"x(y)z", []string{"x", "(y)", "z"}},
		{`[("a b") "c"]`, []string{`[("a b") "c"]`}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		got, err := Split(tc.line)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.line, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: expected %#v, got %#v", tc.line, tc.want, got)
		}
	}
}

func TestSplitRejectsUnbalancedGroups(t *testing.T) {
	for _, line := range []string{"(1 + 2", "[1 2", `"open`, "1 + 2)", "]", `"\"`} {
		_, err := Split(line)
		if !runtime.IsKind(err, runtime.ErrParse) {
			t.Fatalf("%q: expected parse error, got %v", line, err)
		}
	}
}

func TestSplitReconstructsNormalizedLine(t *testing.T) {
	lines := []string{
		"let  x   =  ( 1 +  2 )",
		"print a b\tc",
		`puts   "two  spaces"`,
	}
	for _, line := range lines {
		words, err := Split(line)
		if err != nil {
			t.Fatalf("%q: %v", line, err)
		}
		joined := strings.Join(words, " ")
		again, err := Split(joined)
		if err != nil {
			t.Fatalf("%q: %v", joined, err)
		}
		if !reflect.DeepEqual(words, again) {
			t.Fatalf("re-splitting %q changed the words: %#v vs %#v", joined, words, again)
		}
	}
}

func TestWordHelpers(t *testing.T) {
	if !HasParentheses("(a b)") || HasParentheses("(") || HasParentheses("[a]") {
		t.Fatalf("HasParentheses misclassified a word")
	}
	if !IsList("[1]") || IsList("(1)") {
		t.Fatalf("IsList misclassified a word")
	}
	if !IsString(`""`) || IsString(`"`) {
		t.Fatalf("IsString misclassified a word")
	}
	if got := Unwrap("(a b)"); got != "a b" {
		t.Fatalf("unexpected Unwrap result %q", got)
	}
	if got := Unescape(`a\"b\\c`); got != `a"b\c` {
		t.Fatalf("unexpected Unescape result %q", got)
	}
}
