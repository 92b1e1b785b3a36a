package grammar

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nodai-oss/randgram/errs"
)

// Rule is a single named production: name = expr.
type Rule struct {
	Name string
	Expr *Expression
}

// Grammar is an immutable mapping from rule name to its Rule. The
// engine never mutates a Grammar; Clean returns a derived copy.
type Grammar struct {
	rules map[string]*Rule
	order []string // insertion order, for deterministic iteration (e.g. Names)
}

// New builds a Grammar from a set of rules. Later rules with a
// duplicate name overwrite earlier ones, mirroring ordinary Go map
// semantics; well-formed input should not rely on this.
func New(rules ...*Rule) *Grammar {
	g := &Grammar{rules: make(map[string]*Rule, len(rules))}
	for _, r := range rules {
		if _, ok := g.rules[r.Name]; !ok {
			g.order = append(g.order, r.Name)
		}
		g.rules[r.Name] = r
	}
	return g
}

// Names returns the rule names in the order they were added.
func (g *Grammar) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Rule returns the rule named name, or nil if it is absent.
func (g *Grammar) Rule(name string) *Rule {
	return g.rules[name]
}

// Lookup resolves name, returning errs.UnknownIdent (with a best-effort
// "did you mean" suggestion) when the grammar has no such rule.
func (g *Grammar) Lookup(name string) (*Rule, error) {
	if r, ok := g.rules[name]; ok {
		return r, nil
	}
	return nil, &errs.UnknownIdent{Name: name, Suggestion: g.suggest(name)}
}

// suggest finds the closest known rule name to name using fuzzy
// substring ranking, for inclusion in an UnknownIdent error message.
// When no rule name contains name's characters in order, it falls back
// to the rule name with the smallest case-insensitive edit distance.
// It returns "" only when the grammar has no rules.
func (g *Grammar) suggest(name string) string {
	if len(g.order) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, g.order)
	if len(ranks) == 0 {
		best, bestDist := "", -1
		for _, target := range g.order {
			d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(target))
			if bestDist < 0 || d < bestDist {
				best, bestDist = target, d
			}
		}
		return best
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// BlacklistDirectiveInsert and BlacklistDirectiveRemove are the prefix
// markers a Str node's text carries to signal a dynamic-blacklist
// mutation instead of literal output. See engine's blacklist component.
const (
	BlacklistDirectiveInsert = "|BLACKLIST|I|"
	BlacklistDirectiveRemove = "|BLACKLIST|R|"
)

// Clean returns a copy of g in which every Str node carrying a
// blacklist directive payload is replaced by an empty literal. It is
// used to build the "clean grammar" the reparser collaborator runs
// against: a directive string never appears in real input, so the
// reparser must never see one.
//
// Leaf nodes other than directive Str nodes are shared by reference
// with the original grammar's AST; composite nodes (Seq, Choice and
// the single-child operators) are rebuilt around the cleaned children.
func (g *Grammar) Clean() *Grammar {
	memo := make(map[*Expression]*Expression)
	out := &Grammar{rules: make(map[string]*Rule, len(g.rules)), order: append([]string(nil), g.order...)}
	for name, r := range g.rules {
		out.rules[name] = &Rule{Name: r.Name, Expr: cleanExpr(r.Expr, memo)}
	}
	return out
}

func cleanExpr(e *Expression, memo map[*Expression]*Expression) *Expression {
	if e == nil {
		return nil
	}
	if v, ok := memo[e]; ok {
		return v
	}
	var out *Expression
	switch {
	case e.IsStr():
		if isBlacklistDirective(e.Text()) {
			out = Str("")
		} else {
			out = e
		}
	case e.IsSeq():
		out = Seq(cleanExpr(e.LHS(), memo), cleanExpr(e.RHS(), memo))
	case e.IsChoice():
		out = Choice(cleanExpr(e.LHS(), memo), cleanExpr(e.RHS(), memo))
	case e.IsOpt():
		out = Opt(cleanExpr(e.Sub(), memo))
	case e.IsRep():
		out = Rep(cleanExpr(e.Sub(), memo))
	case e.IsRepOnce():
		out = RepOnce(cleanExpr(e.Sub(), memo))
	case e.IsRepExact():
		out = RepExact(cleanExpr(e.Sub(), memo), e.Count())
	case e.IsRepMin():
		out = RepMin(cleanExpr(e.Sub(), memo), e.Count())
	case e.IsRepMax():
		out = RepMax(cleanExpr(e.Sub(), memo), e.Count())
	case e.IsRepMinMax():
		out = RepMinMax(cleanExpr(e.Sub(), memo), e.Count(), e.Bound())
	case e.IsNegPred():
		out = NegPred(cleanExpr(e.Sub(), memo))
	case e.IsPosPred():
		out = PosPred(cleanExpr(e.Sub(), memo))
	case e.IsPush():
		out = Push(cleanExpr(e.Sub(), memo))
	default:
		// Str (non-directive, handled above), Insens, Range, Ident,
		// PeekSlice, Skip carry no child expressions to rewrite.
		out = e
	}
	memo[e] = out
	return out
}

func isBlacklistDirective(s string) bool {
	return hasPrefix(s, BlacklistDirectiveInsert) || hasPrefix(s, BlacklistDirectiveRemove)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// OnlyIdentChoices reports whether the rule named name has a body that
// is exclusively a chain of Choice nodes whose leaves are all Ident
// nodes, returning the leaf identifier names in left-to-right order on
// success. This is the "all-ident-choices" predicate that drives
// blacklist-directive expansion and the loop-avoidance branch in
// Ident expansion.
func OnlyIdentChoices(g *Grammar, name string) ([]string, bool) {
	r := g.Rule(name)
	if r == nil {
		return nil, false
	}
	var idents []string
	var walk func(e *Expression) bool
	walk = func(e *Expression) bool {
		switch {
		case e.IsIdent():
			idents = append(idents, e.Text())
			return true
		case e.IsChoice():
			return walk(e.LHS()) && walk(e.RHS())
		default:
			return false
		}
	}
	if !walk(r.Expr) {
		return nil, false
	}
	return idents, true
}
