package runtime

import (
	"errors"
	"fmt"
)

// ErrorKind classifies interpreter failures.
type ErrorKind int

const (
	// ErrParse marks text that could not be parsed or resolved.
	ErrParse ErrorKind = iota
	// ErrSyntax marks well-formed text that breaks a statement's rules.
	ErrSyntax
	// ErrType marks a value of the wrong type.
	ErrType
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "parse"
	case ErrSyntax:
		return "syntax"
	case ErrType:
		return "type"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the failure value produced by the tokenizer, evaluators and engine.
// Origin names the component that raised it.
type Error struct {
	Kind   ErrorKind
	Origin string
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Kind)
	if e.Origin != "" {
		msg += " (" + e.Origin + ")"
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind ErrorKind, origin, format string, args ...any) *Error {
	return &Error{Kind: kind, Origin: origin, Msg: fmt.Sprintf(format, args...)}
}

func ParseError(origin, format string, args ...any) *Error {
	return newError(ErrParse, origin, format, args...)
}

func SyntaxError(origin, format string, args ...any) *Error {
	return newError(ErrSyntax, origin, format, args...)
}

func TypeError(origin, format string, args ...any) *Error {
	return newError(ErrType, origin, format, args...)
}

// KindOf reports the kind of the outermost *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}
