// Package reparser is a small backtracking recognizer that answers
// "does this candidate string derive from this rule", used both as
// the Negation Evaluator's black-box predicate and to check that
// generated samples round-trip through the grammar. It is not a
// general PEG engine — just enough operator coverage, over the same
// grammar.Expression tree the derivation engine walks, to answer that
// one question.
package reparser

import (
	"fmt"
	"strings"

	"github.com/nodai-oss/randgram/grammar"
)

// Parse reports whether candidate is a valid derivation of the rule
// named rule in g, returning nil on success and a descriptive error
// otherwise. g should be a "clean" grammar (grammar.Grammar.Clean)
// so that no dynamic-blacklist directive text is visible to match
// against.
func Parse(g *grammar.Grammar, rule, candidate string) error {
	r, err := g.Lookup(rule)
	if err != nil {
		return err
	}

	m := &matcher{g: g, input: []rune(candidate)}
	end, ok := m.match(r.Expr, 0)
	if !ok || end != len(m.input) {
		return fmt.Errorf("reparser: %q does not parse as %s", candidate, rule)
	}
	return nil
}

// matcher holds the immutable grammar and input a single Parse call
// recognizes against. It is not safe for concurrent reuse across
// candidates; construct a fresh one per call.
type matcher struct {
	g     *grammar.Grammar
	input []rune
}

// match attempts to recognize e starting at pos, returning the
// position just past the match on success. Choice tries its left
// alternative first and only falls back to the right one on failure,
// ordered-choice PEG semantics; repetition operators are greedy with
// no backtracking over the repeat count, also standard PEG behavior.
func (m *matcher) match(e *grammar.Expression, pos int) (int, bool) {
	switch {
	case e.IsStr():
		return m.matchLiteral(e.Text(), pos, false)
	case e.IsInsens():
		return m.matchLiteral(e.Text(), pos, true)
	case e.IsRange():
		lo, hi := e.RangeBounds()
		if pos >= len(m.input) {
			return pos, false
		}
		if m.input[pos] < lo || m.input[pos] > hi {
			return pos, false
		}
		return pos + 1, true
	case e.IsIdent():
		r, err := m.g.Lookup(e.Text())
		if err != nil {
			return pos, false
		}
		return m.match(r.Expr, pos)
	case e.IsSeq():
		next, ok := m.match(e.LHS(), pos)
		if !ok {
			return pos, false
		}
		return m.match(e.RHS(), next)
	case e.IsChoice():
		if next, ok := m.match(e.LHS(), pos); ok {
			return next, true
		}
		return m.match(e.RHS(), pos)
	case e.IsOpt():
		if next, ok := m.match(e.Sub(), pos); ok {
			return next, true
		}
		return pos, true
	case e.IsRep():
		return m.matchGreedy(e.Sub(), pos, 0, -1), true
	case e.IsRepOnce():
		next, ok := m.match(e.Sub(), pos)
		if !ok {
			return pos, false
		}
		return m.matchGreedy(e.Sub(), next, 0, -1), true
	case e.IsRepExact():
		return m.matchExactly(e.Sub(), pos, e.Count())
	case e.IsRepMin():
		next, ok := m.matchExactly(e.Sub(), pos, e.Count())
		if !ok {
			return pos, false
		}
		return m.matchGreedy(e.Sub(), next, 0, -1), true
	case e.IsRepMax():
		return m.matchGreedy(e.Sub(), pos, 0, e.Count()), true
	case e.IsRepMinMax():
		next, ok := m.matchExactly(e.Sub(), pos, e.Count())
		if !ok {
			return pos, false
		}
		remaining := e.Bound() - e.Count()
		return m.matchGreedy(e.Sub(), next, 0, remaining), true
	case e.IsNegPred():
		if _, ok := m.match(e.Sub(), pos); ok {
			return pos, false
		}
		return pos, true
	case e.IsPosPred():
		if _, ok := m.match(e.Sub(), pos); ok {
			return pos, true
		}
		return pos, false
	case e.IsPeekSlice(), e.IsSkip(), e.IsPush():
		return pos, true
	default:
		return pos, false
	}
}

func (m *matcher) matchLiteral(text string, pos int, foldCase bool) (int, bool) {
	lit := []rune(text)
	if pos+len(lit) > len(m.input) {
		return pos, false
	}
	got := string(m.input[pos : pos+len(lit)])
	if foldCase {
		if !strings.EqualFold(got, text) {
			return pos, false
		}
	} else if got != text {
		return pos, false
	}
	return pos + len(lit), true
}

// matchExactly requires e to match n times in a row, failing the
// whole call if any repetition fails.
func (m *matcher) matchExactly(e *grammar.Expression, pos, n int) (int, bool) {
	for i := 0; i < n; i++ {
		next, ok := m.match(e, pos)
		if !ok {
			return pos, false
		}
		pos = next
	}
	return pos, true
}

// matchGreedy repeats e as many times as it keeps matching, stopping
// at max repetitions (max < 0 means unbounded) or the first failed or
// zero-length match, whichever comes first — the zero-length guard
// prevents an infinite loop on a repeated expression that can match
// the empty string.
func (m *matcher) matchGreedy(e *grammar.Expression, pos, count, max int) int {
	for max < 0 || count < max {
		next, ok := m.match(e, pos)
		if !ok || next == pos {
			break
		}
		pos = next
		count++
	}
	return pos
}
