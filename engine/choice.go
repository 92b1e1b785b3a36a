package engine

import (
	"math/rand"

	"github.com/nodai-oss/randgram/grammar"
)

// chooseVariant implements reservoir sampling over a Choice chain:
// given the root of a (possibly long) chain of nested Choice nodes, it
// picks exactly one leaf variant with uniform probability in a single
// pass, without ever materializing the full list of variants.
//
// A chain of Choice forms a left- or right-leaning binary tree whose
// leaves are the actual variants (grammar.Choice's doc comment). We
// walk that tree with an explicit local stack — never recursion, since
// the engine's only recursive call is the negation evaluator's child
// invocation — discovering leaves left to right and keeping a 1-item
// reservoir: the k-th leaf discovered (0-indexed) replaces the current
// pick with probability
// 1/(k+1), which is the standard proof that every leaf ends up with
// probability 1/n regardless of n or the shape of the tree.
func chooseVariant(rng *rand.Rand, root *grammar.Expression) *grammar.Expression {
	var selected *grammar.Expression
	seen := 0

	pending := []*grammar.Expression{root}
	for len(pending) > 0 {
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if e.IsChoice() {
			// Push right first so left is explored first, matching the
			// natural left-to-right reading of a|b|c.
			pending = append(pending, e.RHS(), e.LHS())
			continue
		}

		if seen == 0 || rng.Intn(seen+1) == 0 {
			selected = e
		}
		seen++
	}

	return selected
}
