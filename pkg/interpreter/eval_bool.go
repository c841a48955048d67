package interpreter

import (
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

var boolTiers = [][]string{{"&"}, {"|"}, {"^"}, {"=="}}

type boolNode struct {
	op       string
	lhs, rhs int
	val      bool
}

type boolArena struct {
	env   *runtime.Environment
	nodes []boolNode
}

func (a *boolArena) add(n boolNode) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

func (a *boolArena) operand(s slot) (int, error) {
	if !s.raw() {
		return s.node, nil
	}
	v, err := boolLeaf(s.word, a.env)
	if err != nil {
		return 0, err
	}
	return a.add(boolNode{val: v}), nil
}

func (a *boolArena) join(op string, lhs, rhs int) int {
	return a.add(boolNode{op: op, lhs: lhs, rhs: rhs})
}

func (a *boolArena) eval(idx int) bool {
	n := a.nodes[idx]
	switch n.op {
	case "":
		return n.val
	case "!":
		return !a.eval(n.rhs)
	case "&":
		return a.eval(n.lhs) && a.eval(n.rhs)
	case "|":
		return a.eval(n.lhs) || a.eval(n.rhs)
	case "^":
		return a.eval(n.lhs) != a.eval(n.rhs)
	default:
		return a.eval(n.lhs) == a.eval(n.rhs)
	}
}

// EvaluateBool evaluates a boolean expression. Binary tiers bind in the
// order & | ^ ==, then === compares two numeric leaves, then prefix !.
func EvaluateBool(words []string, env *runtime.Environment) (runtime.Value, error) {
	arena := &boolArena{env: env}
	slots := rawSlots(words)
	for _, tier := range boolTiers {
		var err error
		slots, err = reduceTier("boolean", slots, tier, arena.operand, arena.join)
		if err != nil {
			return nil, err
		}
	}

	for {
		idx := findOperator(slots, []string{"==="})
		if idx < 0 {
			break
		}
		if idx == 0 || idx == len(slots)-1 {
			return nil, runtime.ParseError("boolean", "operator \"===\" is missing an operand")
		}
		lhs, rhs := slots[idx-1], slots[idx+1]
		if !lhs.raw() || !rhs.raw() {
			return nil, runtime.TypeError("boolean", "\"===\" compares numbers, not boolean expressions")
		}
		l, err := numberLeaf(lhs.word, env)
		if err != nil {
			return nil, err
		}
		r, err := numberLeaf(rhs.word, env)
		if err != nil {
			return nil, err
		}
		node := arena.add(boolNode{val: runtime.NumbersEqual(l, r)})
		slots = replace(slots, idx-1, idx+2, node)
	}

	for {
		idx := findOperator(slots, []string{"!"})
		if idx < 0 {
			break
		}
		if idx == len(slots)-1 {
			return nil, runtime.ParseError("boolean", "operator \"!\" is missing an operand")
		}
		rhs, err := arena.operand(slots[idx+1])
		if err != nil {
			return nil, err
		}
		node := arena.add(boolNode{op: "!", rhs: rhs})
		slots = replace(slots, idx, idx+2, node)
	}

	if len(slots) != 1 {
		return nil, runtime.ParseError("boolean", "expected a single expression, found %d parts", len(slots))
	}
	root, err := arena.operand(slots[0])
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: arena.eval(root)}, nil
}
