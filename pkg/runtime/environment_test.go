package runtime

import (
	"errors"
	"testing"
)

func TestNewEnvironmentBindsLast(t *testing.T) {
	env := NewEnvironment()
	if got := env.Last(); !Equal(got, BoolValue{Val: false}) {
		t.Fatalf("expected last=false, got %v", got)
	}
	if keys := env.Keys(); len(keys) != 1 || keys[0] != LastName {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	env := NewEnvironment()
	env.Define("xs", NewList(NumberType, NumberValue{Val: 1}))
	v, ok := env.Lookup("xs")
	if !ok {
		t.Fatalf("expected xs to be bound")
	}
	v.(*ListValue).Elements[0] = NumberValue{Val: 5}
	again, _ := env.Lookup("xs")
	if got := again.(*ListValue).Elements[0].(NumberValue).Val; got != 1 {
		t.Fatalf("stored list was mutated through a lookup (got %v)", got)
	}
}

func TestGetUnknownIsParseError(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get("missing")
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != ErrParse {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", NumberValue{Val: 1})
	snap := env.Snapshot()
	env.Define("x", NumberValue{Val: 2})
	env.Define("y", NumberValue{Val: 3})
	if v, _ := snap.Lookup("x"); !Equal(v, NumberValue{Val: 1}) {
		t.Fatalf("snapshot saw later write: %v", v)
	}
	if snap.Has("y") {
		t.Fatalf("snapshot saw later binding")
	}
}

func TestErrorMessageCarriesKindAndOrigin(t *testing.T) {
	err := TypeError("list", "expected %s", "num")
	if got := err.Error(); got != "type error (list): expected num" {
		t.Fatalf("unexpected message %q", got)
	}
	wrapped := &Error{Kind: ErrParse, Origin: "statement", Msg: "no evaluator", Cause: err}
	if !errors.Is(wrapped, err) {
		t.Fatalf("expected cause to be reachable")
	}
	if kind, _ := KindOf(wrapped); kind != ErrParse {
		t.Fatalf("expected outer kind parse, got %s", kind)
	}
}
