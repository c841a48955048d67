package interpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

const clearScreen = "\x1b[2J\x1b[H"

var yes = runtime.BoolValue{Val: true}

func (i *Interpreter) dispatch(index int, words []string) (runtime.Value, error) {
	args := words[1:]
	switch words[0] {
	case "let":
		return i.evaluateLet(args)
	case "if":
		return i.evaluateIf(args)
	case "endif":
		return yes, nil
	case "print":
		return i.evaluatePrint(args)
	case "puts":
		return i.evaluatePuts(args)
	case "clear":
		fmt.Fprint(i.out, clearScreen)
		return yes, nil
	case "label":
		return i.evaluateLabel(index, args)
	case "jump":
		return i.evaluateJump(args)
	case "jump_rel":
		return i.evaluateJumpRel(index, args)
	case "type":
		return i.evaluateType(args)
	case "fn":
		return i.defineFunction(index, args)
	case "end", "return":
		return i.returnFromFunction()
	}
	if fn, ok := i.functions[words[0]]; ok && len(args) == 1 && parser.HasParentheses(args[0]) {
		return i.callFunction(index, fn, args)
	}
	return EvaluateStatement(words, i.env)
}

// evaluateLet handles `let NAME`, `let NAME = EXPR` and `let NAME TYPE = EXPR`.
func (i *Interpreter) evaluateLet(args []string) (runtime.Value, error) {
	if len(args) == 0 || len(args) == 2 {
		return nil, runtime.ParseError("let", "expected `let NAME [TYPE] = EXPR`")
	}
	name := args[0]
	if name == runtime.LastName {
		return nil, runtime.ParseError("let", "cannot assign to %q", name)
	}
	if !IsValidIdentifier(name) {
		return nil, runtime.SyntaxError("let", "%q is not a valid name", name)
	}

	var (
		val runtime.Value
		err error
	)
	switch {
	case len(args) == 1:
		val = i.env.Last()
	case args[1] == "=":
		val, err = EvaluateStatement(args[2:], i.env)
	case args[2] == "=":
		var typ runtime.Type
		typ, err = runtime.ParseType(args[1])
		if err == nil {
			val, err = evaluateAs(typ, args[3:], i.env)
		}
	default:
		err = runtime.ParseError("let", "expected `=` after %q", strings.Join(args[:2], " "))
	}
	if err != nil {
		return nil, err
	}
	i.env.Define(name, runtime.Clone(val))
	return val, nil
}

func (i *Interpreter) evaluateIf(args []string) (runtime.Value, error) {
	val, err := EvaluateStatement(args, i.env)
	if err != nil {
		return nil, err
	}
	cond, ok := val.(runtime.BoolValue)
	if !ok {
		return nil, runtime.TypeError("if", "condition is %s, not bool", runtime.TypeOf(val))
	}
	if !cond.Val {
		i.skipDepth++
	}
	return cond, nil
}

// evaluatePrint writes `> v1 v2 ` for the named variables.
func (i *Interpreter) evaluatePrint(args []string) (runtime.Value, error) {
	var b strings.Builder
	b.WriteString("> ")
	for _, name := range args {
		v, err := i.env.Get(name)
		if err != nil {
			return nil, err
		}
		b.WriteString(v.String())
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	fmt.Fprint(i.out, b.String())
	return yes, nil
}

func (i *Interpreter) evaluatePuts(args []string) (runtime.Value, error) {
	val, err := EvaluateStatement(args, i.env)
	if err != nil {
		return nil, err
	}
	list, ok := val.(*runtime.ListValue)
	if !ok || !list.Elem.Equal(runtime.CharType) {
		return nil, runtime.TypeError("puts", "expected (list char), got %s", runtime.TypeOf(val))
	}
	fmt.Fprintln(i.out, list.Text())
	return yes, nil
}

func (i *Interpreter) evaluateType(args []string) (runtime.Value, error) {
	val, err := EvaluateStatement(args, i.env)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(i.out, "> %s\n", runtime.TypeOf(val))
	return val, nil
}

func (i *Interpreter) evaluateLabel(index int, args []string) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, runtime.ParseError("label", "missing label name")
	}
	i.labels[args[0]] = index
	i.logger.Debug("label registered", "label", args[0], "line", index)
	return yes, nil
}

func (i *Interpreter) evaluateJump(args []string) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, runtime.ParseError("jump", "missing label name")
	}
	target, ok := i.labels[args[0]]
	if !ok {
		return nil, runtime.SyntaxError("jump", "unknown label %q", args[0])
	}
	i.jump(target)
	return yes, nil
}

// evaluateJumpRel moves the cursor by a numeric offset from the current line.
func (i *Interpreter) evaluateJumpRel(index int, args []string) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, runtime.ParseError("jump_rel", "missing offset")
	}
	val, err := EvaluateNumber(args, i.env)
	if err != nil {
		return nil, err
	}
	offset, ok := val.(runtime.NumberValue)
	if !ok || math.IsNaN(offset.Val) || math.IsInf(offset.Val, 0) {
		return nil, runtime.SyntaxError("jump_rel", "offset must be a finite number, got %s", val)
	}
	target := index + int(offset.Val)
	if target < -1 {
		return nil, runtime.SyntaxError("jump_rel", "target line %d is before the start of the program", target)
	}
	i.jump(target)
	return offset, nil
}
