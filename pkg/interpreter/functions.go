package interpreter

import (
	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// defineFunction registers `fn NAME p1 T1 p2 T2 ...` and skips its body.
func (i *Interpreter) defineFunction(index int, args []string) (runtime.Value, error) {
	if len(args)%2 == 0 {
		return nil, runtime.SyntaxError("fn", "expected `fn NAME [PARAM TYPE]...`")
	}
	name := args[0]
	if !IsValidIdentifier(name) {
		return nil, runtime.SyntaxError("fn", "%q is not a valid function name", name)
	}
	fn := &Function{Name: name, Header: index}
	for j := 1; j+1 < len(args); j += 2 {
		if !IsValidIdentifier(args[j]) {
			return nil, runtime.SyntaxError("fn", "%q is not a valid parameter name", args[j])
		}
		typ, err := runtime.ParseType(args[j+1])
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, Param{Name: args[j], Type: typ})
	}
	i.functions[name] = fn
	i.defDepth++
	return yes, nil
}

// callFunction evaluates `NAME (ARG...)` in the caller's environment, saves a
// frame and moves the cursor into the body. args holds the single group.
func (i *Interpreter) callFunction(index int, fn *Function, args []string) (runtime.Value, error) {
	words, err := parser.Split(parser.Unwrap(args[0]))
	if err != nil {
		return nil, err
	}
	if len(words) != len(fn.Params) {
		return nil, runtime.ParseError("call", "expected %d arguments, got %d", len(fn.Params), len(words))
	}

	callee := runtime.NewEnvironment()
	for k, param := range fn.Params {
		val, err := evaluateArgument(words[k], i.env)
		if err != nil {
			return nil, err
		}
		if !runtime.TypeOf(val).Equal(param.Type) {
			return nil, runtime.TypeError("call", "%s: argument %q is %s, expected %s", fn.Name, param.Name, runtime.TypeOf(val), param.Type)
		}
		callee.Define(param.Name, val)
	}

	i.frames = append(i.frames, Frame{Env: i.env.Snapshot(), Return: index})
	i.logger.Debug("frame pushed", "function", fn.Name, "depth", len(i.frames), "return", index)
	i.env = callee
	i.jump(fn.Header)
	return runtime.BoolValue{Val: false}, nil
}

func evaluateArgument(word string, env *runtime.Environment) (runtime.Value, error) {
	if !parser.HasParentheses(word) {
		return EvaluateStatement([]string{word}, env)
	}
	inner, err := parser.Split(parser.Unwrap(word))
	if err != nil {
		return nil, err
	}
	return EvaluateStatement(inner, env)
}

// returnFromFunction pops the innermost frame and yields the callee's last.
func (i *Interpreter) returnFromFunction() (runtime.Value, error) {
	if len(i.frames) == 0 {
		return nil, runtime.SyntaxError("return", "not inside a function call")
	}
	result := i.env.Last()
	frame := i.frames[len(i.frames)-1]
	i.frames = i.frames[:len(i.frames)-1]
	i.env = frame.Env
	i.jump(frame.Return)
	i.logger.Debug("frame popped", "depth", len(i.frames), "return", frame.Return)
	return result, nil
}
