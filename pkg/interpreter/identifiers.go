package interpreter

import (
	"unicode"
	"unicode/utf8"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
)

// Keywords lists every statement keyword.
var Keywords = []string{
	"exit", "let", "if", "endif", "print", "puts", "clear",
	"label", "jump", "jump_rel", "type", "end", "return", "fn",
}

var reserved = func() map[string]struct{} {
	out := map[string]struct{}{"last": {}, "len": {}}
	for _, kw := range Keywords {
		out[kw] = struct{}{}
	}
	return out
}()

// IsKeyword reports whether word starts a built-in statement.
func IsKeyword(word string) bool {
	return oneOf(word, Keywords)
}

// IsValidIdentifier reports whether name can be bound by let, fn or a parameter.
func IsValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := reserved[name]; ok {
		return false
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		return false
	}
	return !parser.IsList(name) && !parser.IsString(name) && !parser.HasParentheses(name)
}
