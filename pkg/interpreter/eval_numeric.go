package interpreter

import (
	"math"

	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

var (
	numberTiers      = [][]string{{"^"}, {"*", "/", "%"}, {"+", "-"}}
	comparisonOps    = []string{"==", "<=", ">=", "<", ">"}
	roundingPrefixes = map[string]func(float64) float64{
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
		"sqrt":  math.Sqrt,
	}
)

type numberNode struct {
	op       string
	lhs, rhs int
	val      float64
}

type numberArena struct {
	env   *runtime.Environment
	nodes []numberNode
}

func (a *numberArena) add(n numberNode) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

func (a *numberArena) operand(s slot) (int, error) {
	if !s.raw() {
		return s.node, nil
	}
	v, err := numberLeaf(s.word, a.env)
	if err != nil {
		return 0, err
	}
	return a.add(numberNode{val: v}), nil
}

func (a *numberArena) join(op string, lhs, rhs int) int {
	return a.add(numberNode{op: op, lhs: lhs, rhs: rhs})
}

func (a *numberArena) eval(idx int) float64 {
	n := a.nodes[idx]
	if n.op == "" {
		return n.val
	}
	l, r := a.eval(n.lhs), a.eval(n.rhs)
	switch n.op {
	case "^":
		return math.Pow(l, r)
	case "*":
		return l * r
	case "/":
		return l / r
	case "%":
		return math.Mod(l, r)
	case "+":
		return l + r
	default:
		return l - r
	}
}

// EvaluateNumber evaluates a numeric comparison, a rounding prefix, or an
// arithmetic expression.
func EvaluateNumber(words []string, env *runtime.Environment) (runtime.Value, error) {
	if v, err := numberComparison(words, env); err == nil {
		return v, nil
	}
	if v, err := numberRounding(words, env); err == nil {
		return v, nil
	}
	return numberExpression(words, env)
}

func numberComparison(words []string, env *runtime.Environment) (runtime.Value, error) {
	if len(words) != 3 || !oneOf(words[1], comparisonOps) {
		return nil, runtime.ParseError("numeric", "not a comparison")
	}
	lhs, err := statementNumber(words[0], env)
	if err != nil {
		return nil, err
	}
	rhs, err := statementNumber(words[2], env)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: compareNumbers(words[1], lhs, rhs)}, nil
}

func compareNumbers(op string, l, r float64) bool {
	switch op {
	case "==":
		return runtime.NumbersEqual(l, r)
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	case "<":
		return l < r
	default:
		return l > r
	}
}

func numberRounding(words []string, env *runtime.Environment) (runtime.Value, error) {
	if len(words) != 2 {
		return nil, runtime.ParseError("numeric", "not a rounding form")
	}
	fn, ok := roundingPrefixes[words[0]]
	if !ok {
		return nil, runtime.ParseError("numeric", "unknown prefix %q", words[0])
	}
	n, err := statementNumber(words[1], env)
	if err != nil {
		return nil, err
	}
	return runtime.NumberValue{Val: fn(n)}, nil
}

// statementNumber evaluates one word as a full statement and requires a number.
func statementNumber(word string, env *runtime.Environment) (float64, error) {
	v, err := EvaluateStatement([]string{word}, env)
	if err != nil {
		return 0, err
	}
	return runtime.AsNumber(v)
}

func numberExpression(words []string, env *runtime.Environment) (runtime.Value, error) {
	arena := &numberArena{env: env}
	slots := rawSlots(words)
	for _, tier := range numberTiers {
		var err error
		slots, err = reduceTier("numeric", slots, tier, arena.operand, arena.join)
		if err != nil {
			return nil, err
		}
	}
	if len(slots) != 1 {
		return nil, runtime.ParseError("numeric", "expected a single expression, found %d parts", len(slots))
	}
	root, err := arena.operand(slots[0])
	if err != nil {
		return nil, err
	}
	return runtime.NumberValue{Val: arena.eval(root)}, nil
}
