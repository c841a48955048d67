package parser

import "strings"

func wrapped(word string, open, close byte) bool {
	return len(word) >= 2 && word[0] == open && word[len(word)-1] == close
}

// HasParentheses reports whether word is a `( ... )` group.
func HasParentheses(word string) bool { return wrapped(word, '(', ')') }

// IsList reports whether word is a `[ ... ]` literal.
func IsList(word string) bool { return wrapped(word, '[', ']') }

// IsString reports whether word is a `"..."` literal.
func IsString(word string) bool { return wrapped(word, '"', '"') }

// Unwrap strips the first and last byte of a grouped word.
func Unwrap(word string) string {
	if len(word) < 2 {
		return ""
	}
	return word[1 : len(word)-1]
}

// Unescape drops the backslash in front of every escaped character.
func Unescape(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	escaped := false
	for _, r := range body {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
