package runtime

import (
	"sort"
)

// LastName is the binding that holds the result of the previous statement.
const LastName = "last"

// Environment maps variable names to values. Reads hand out copies, so a
// caller can never mutate a stored list in place.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an environment whose only binding is `last = false`.
func NewEnvironment() *Environment {
	env := &Environment{values: make(map[string]Value)}
	env.values[LastName] = BoolValue{Val: false}
	return env
}

// Define inserts or replaces a binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Lookup returns a copy of the named value.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	if !ok {
		return nil, false
	}
	return Clone(v), true
}

// Get is Lookup that reports unknown names as a parse error.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return nil, ParseError("environment", "undefined variable %q", name)
}

// Has reports whether name is bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Last returns a copy of the previous statement's result.
func (e *Environment) Last() Value {
	if v, ok := e.Lookup(LastName); ok {
		return v
	}
	return BoolValue{Val: false}
}

func (e *Environment) SetLast(v Value) {
	e.values[LastName] = v
}

// Snapshot deep-copies every binding into a new environment.
func (e *Environment) Snapshot() *Environment {
	out := &Environment{values: make(map[string]Value, len(e.values))}
	for k, v := range e.values {
		out.values[k] = Clone(v)
	}
	return out
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Environment) Len() int { return len(e.values) }
