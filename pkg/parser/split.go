package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// Split breaks a statement into words. Parenthesized groups, bracketed lists
// and quoted strings are kept whole, delimiters included. Whitespace only
// separates words outside of every group.
func Split(line string) ([]string, error) {
	var (
		words   []string
		start   int
		parens  int
		squares int
		quoted  bool
		escaped bool
	)
	emit := func(end int) {
		if word := line[start:end]; strings.TrimSpace(word) != "" {
			words = append(words, word)
		}
		start = end
	}
	nested := func() bool { return parens > 0 || squares > 0 }

	for i, r := range line {
		if quoted {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				quoted = false
				if !nested() {
					emit(i + 1)
				}
			}
			continue
		}
		switch r {
		case '"':
			if !nested() {
				emit(i)
			}
			quoted = true
		case '(', '[':
			if !nested() {
				emit(i)
			}
			if r == '(' {
				parens++
			} else {
				squares++
			}
		case ')', ']':
			if r == ')' {
				parens--
			} else {
				squares--
			}
			if parens < 0 || squares < 0 {
				return nil, runtime.ParseError("split", "unexpected %q at offset %d", r, i)
			}
			if !nested() {
				emit(i + 1)
			}
		default:
			if !nested() && unicode.IsSpace(r) {
				emit(i)
				start = i + utf8.RuneLen(r)
			}
		}
	}

	switch {
	case quoted:
		return nil, runtime.ParseError("split", "unterminated string in %q", line)
	case parens != 0:
		return nil, runtime.ParseError("split", "unbalanced parentheses in %q", line)
	case squares != 0:
		return nil, runtime.ParseError("split", "unbalanced brackets in %q", line)
	}
	emit(len(line))
	return words, nil
}
