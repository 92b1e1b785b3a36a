package engine

import (
	"math/rand"
	"testing"

	"github.com/nodai-oss/randgram/grammar"
)

func TestChooseVariant_SingleLeaf(t *testing.T) {
	leaf := grammar.Str("only")
	got := chooseVariant(rand.New(rand.NewSource(1)), leaf)
	if got != leaf {
		t.Fatalf("a non-Choice root should be returned as-is")
	}
}

func TestChooseVariant_EveryLeafReachable(t *testing.T) {
	a, b, c := grammar.Str("a"), grammar.Str("b"), grammar.Str("c")
	root := grammar.Choice(a, grammar.Choice(b, c))

	rng := rand.New(rand.NewSource(2))
	seen := map[*grammar.Expression]bool{}
	for i := 0; i < 200; i++ {
		seen[chooseVariant(rng, root)] = true
	}
	if !seen[a] || !seen[b] || !seen[c] {
		t.Fatalf("expected all three leaves to be reachable across 200 draws")
	}
}

func TestChooseVariant_LeftLeaningChainUniformity(t *testing.T) {
	leaves := []*grammar.Expression{grammar.Str("a"), grammar.Str("b"), grammar.Str("c"), grammar.Str("d")}
	root := grammar.Choice(grammar.Choice(grammar.Choice(leaves[0], leaves[1]), leaves[2]), leaves[3])

	rng := rand.New(rand.NewSource(3))
	counts := make(map[*grammar.Expression]int)
	const n = 10000
	for i := 0; i < n; i++ {
		counts[chooseVariant(rng, root)]++
	}
	for _, leaf := range leaves {
		frac := float64(counts[leaf]) / float64(n)
		if frac < 0.15 || frac > 0.35 {
			t.Fatalf("leaf selected %.4f of the time over a left-leaning chain, want close to 0.25", frac)
		}
	}
}
