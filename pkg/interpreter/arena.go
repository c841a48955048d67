package interpreter

import (
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// rawSlot marks a slot that still holds an unevaluated word.
const rawSlot = -1

// slot is one position of a partially reduced expression: a raw word, or the
// index of a node already built in the evaluator's arena.
type slot struct {
	word string
	node int
}

func rawSlots(words []string) []slot {
	out := make([]slot, len(words))
	for i, w := range words {
		out[i] = slot{word: w, node: rawSlot}
	}
	return out
}

func (s slot) raw() bool { return s.node == rawSlot }

func (s slot) is(ops []string) bool {
	return s.raw() && oneOf(s.word, ops)
}

func oneOf(word string, ops []string) bool {
	for _, op := range ops {
		if word == op {
			return true
		}
	}
	return false
}

// findOperator returns the leftmost raw slot naming one of ops, or -1.
func findOperator(slots []slot, ops []string) int {
	for i, s := range slots {
		if s.is(ops) {
			return i
		}
	}
	return -1
}

// replace swaps slots[from:to] for a single node slot.
func replace(slots []slot, from, to, node int) []slot {
	out := make([]slot, 0, len(slots)-(to-from)+1)
	out = append(out, slots[:from]...)
	out = append(out, slot{node: node})
	return append(out, slots[to:]...)
}

// reduceTier folds every operator of one precedence tier, leftmost first.
// operand turns a neighbouring slot into a node, join combines two nodes.
func reduceTier(origin string, slots []slot, ops []string, operand func(slot) (int, error), join func(op string, lhs, rhs int) int) ([]slot, error) {
	for {
		idx := findOperator(slots, ops)
		if idx < 0 {
			return slots, nil
		}
		if idx == 0 || idx == len(slots)-1 {
			return nil, runtime.ParseError(origin, "operator %q is missing an operand", slots[idx].word)
		}
		lhs, err := operand(slots[idx-1])
		if err != nil {
			return nil, err
		}
		rhs, err := operand(slots[idx+1])
		if err != nil {
			return nil, err
		}
		node := join(slots[idx].word, lhs, rhs)
		slots = replace(slots, idx-1, idx+2, node)
	}
}
