// Package verify runs a round-trip check: generate a sample from a
// rule, then check the reparser collaborator accepts it back as a
// derivation of that same rule, over N samples, reporting pass/fail
// per sample.
package verify

import (
	"fmt"
	"math/rand"

	"github.com/nodai-oss/randgram/config"
	"github.com/nodai-oss/randgram/engine"
	"github.com/nodai-oss/randgram/grammar"
	"github.com/nodai-oss/randgram/reparser"
)

// Result is the outcome of one generate-then-reparse round trip.
type Result struct {
	Rule   string
	Sample string
	Error  error
}

func (r *Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("FAIL %s %q: %v", r.Rule, r.Sample, r.Error)
	}
	return fmt.Sprintf("PASS %s %q", r.Rule, r.Sample)
}

// Report collects every Result from one Run call.
type Report struct {
	Rule    string
	Results []*Result
}

// Passed returns the number of Results with no error.
func (rep *Report) Passed() int {
	n := 0
	for _, r := range rep.Results {
		if r.Error == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of Results with an error.
func (rep *Report) Failed() int {
	return len(rep.Results) - rep.Passed()
}

// OK reports whether every Result in the report passed.
func (rep *Report) OK() bool {
	return rep.Failed() == 0
}

// Run generates n samples from rule under cfg using rng, checking each
// one against reparser.Parse, and returns the resulting Report.
func Run(g *grammar.Grammar, rule string, n int, cfg config.GeneratorConfig, rng *rand.Rand) *Report {
	rep := &Report{Rule: rule}
	clean := g.Clean()
	for i := 0; i < n; i++ {
		sample, err := engine.Generate(g, rule, cfg, rng, reparser.Parse)
		if err != nil {
			rep.Results = append(rep.Results, &Result{Rule: rule, Error: err})
			continue
		}
		verr := reparser.Parse(clean, rule, sample)
		rep.Results = append(rep.Results, &Result{Rule: rule, Sample: sample, Error: verr})
	}
	return rep
}
