package engine

import (
	"github.com/nodai-oss/randgram/config"
	"github.com/nodai-oss/randgram/grammar"
)

// evaluateNegation handles a popped Seq(NegPred(a), b) node: generate
// candidates for b with a recursive child invocation (the only
// recursive call the engine makes) until the reparser collaborator
// confirms none of a's identifiers recognize the candidate, or
// max_attempts_negation is exhausted.
func (e *Engine) evaluateNegation(top frame, seq *grammar.Expression, cfg config.GeneratorConfig, nodesSoFar, identsSoFar uint64) (string, uint64, uint64, uint64, error) {
	a := seq.LHS().Sub()
	b := seq.RHS()
	names := identsIn(a)

	childStack := []frame{{
		ctx:          Context{Depth: top.ctx.Depth + 1, Breadth: 0},
		previousRule: top.previousRule,
		currentRule:  top.currentRule,
		expr:         b,
	}}

	var lastResult string
	var lastOut, lastNodes, lastIdents uint64

	// One initial attempt plus up to MaxAttemptsNegation retries.
	attempts := cfg.MaxAttemptsNegation + 1
	for attempts > 0 {
		childCfg := cfg.ForNegationAttempt(nodesSoFar, identsSoFar)

		e.recursionDepth++
		result, cOut, cNodes, cIdents, err := e.runStack(append([]frame(nil), childStack...), childCfg)
		e.recursionDepth--
		if err != nil {
			return "", 0, 0, 0, err
		}

		rejected := false
		for _, name := range names {
			if perr := e.reparse(e.clean, name, result); perr == nil {
				rejected = true
				break
			}
		}

		lastResult, lastOut, lastNodes, lastIdents = result, cOut, cNodes, cIdents
		if !rejected {
			return result, cOut, cNodes, cIdents, nil
		}
		attempts--
	}

	// Attempts exhausted: accept the last-generated candidate rather
	// than fail the whole derivation.
	return lastResult, lastOut, lastNodes, lastIdents, nil
}

// identsIn collects every Ident name reachable within e, depth-first
// and de-duplicated in first-seen order, for the Negation Evaluator's
// "check every identifier reachable in a's expression tree" step.
func identsIn(e *grammar.Expression) []string {
	var out []string
	seen := make(map[string]bool)

	var walk func(*grammar.Expression)
	walk = func(n *grammar.Expression) {
		if n == nil {
			return
		}
		switch {
		case n.IsIdent():
			name := n.Text()
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		case n.IsSeq(), n.IsChoice():
			walk(n.LHS())
			walk(n.RHS())
		case n.IsOpt(), n.IsRep(), n.IsRepOnce(), n.IsRepExact(),
			n.IsRepMin(), n.IsRepMax(), n.IsRepMinMax(),
			n.IsNegPred(), n.IsPosPred(), n.IsPush():
			walk(n.Sub())
		}
	}
	walk(e)
	return out
}
