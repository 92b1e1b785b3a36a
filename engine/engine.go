// Package engine is the random derivation engine: an explicit
// work-stack walk of a compiled Grammar that produces one random
// string derived from a start rule, enforcing the soft/hard/depth
// convergence guards and the dynamic blacklist along the way.
//
// The only recursive Go call the package makes is the Negation
// Evaluator's child invocation; everything else is an explicit loop
// over a []frame work stack, modeled on a shift/reduce loop
// (push/pop/top over a slice-backed stack) adapted from shift/reduce
// actions to expression dispatch.
package engine

import (
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nodai-oss/randgram/config"
	"github.com/nodai-oss/randgram/errs"
	"github.com/nodai-oss/randgram/grammar"
)

// maxRecursionDepth substitutes for a native call-stack headroom
// check: Go gives no portable way to introspect remaining goroutine
// stack, so instead we count recursive Negation Evaluator calls (the
// only recursive call site) and refuse to recurse past this depth.
const maxRecursionDepth = 64

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Reparser is the re-parser collaborator: given a clean grammar, a
// rule name, and a candidate string, it reports
// whether candidate is accepted as a derivation of that rule. It is an
// external black box to the engine; the engine only depends on this
// function shape, never on a concrete parser implementation.
type Reparser func(g *grammar.Grammar, rule, candidate string) error

// Engine holds the state shared across one top-level Generate call and
// any Negation Evaluator children it spawns: the grammar, its cleaned
// derivative (for the reparser), the reparser itself, the random
// source, the dynamic blacklist, and the recursion-depth counter.
// Everything else (the work stack, per-call counters) is local to a
// single runStack invocation, so that a Negation Evaluator's counters
// can be folded into its parent explicitly rather than shared through
// Engine fields.
type Engine struct {
	g       *grammar.Grammar
	clean   *grammar.Grammar
	reparse Reparser
	rng     *rand.Rand
	bl      *blacklist

	recursionDepth int
}

// Generate produces one random string derived from start under cfg,
// using rng as the sole source of randomness and reparse as the
// negation predicate's black-box verifier.
func Generate(g *grammar.Grammar, start string, cfg config.GeneratorConfig, rng *rand.Rand, reparse Reparser) (string, error) {
	rule, err := g.Lookup(start)
	if err != nil {
		return "", err
	}

	e := &Engine{
		g:       g,
		clean:   g.Clean(),
		reparse: reparse,
		rng:     rng,
		bl:      &blacklist{},
	}

	initial := []frame{{
		ctx:         Context{},
		currentRule: rule,
		expr:        rule.Expr,
	}}

	result, _, _, _, err := e.runStack(initial, cfg)
	return result, err
}

// runStack is the main loop: while the stack is non-empty, check the
// convergence guards, pop the top entry, dispatch on its expression
// kind, and account for nodes processed, terminals emitted and
// identifiers expanded. It returns those three running counts
// alongside the generated text so a Negation Evaluator parent can fold
// a child invocation's counters into its own.
func (e *Engine) runStack(stack []frame, cfg config.GeneratorConfig) (result string, countOutput, nodesProcessed, identsExpanded uint64, err error) {
	var out strings.Builder
	hardLimitTripped := false

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.ctx.Depth > int(cfg.LimitDepthLevel) || cfg.HardLimit < 1 || e.recursionDepth > maxRecursionDepth {
			out.WriteString(cfg.TextExpandLimit)
			return out.String(), countOutput, nodesProcessed, identsExpanded, nil
		}

		stack = stack[:len(stack)-1]
		expr := top.expr

		switch {
		case expr.IsStr():
			text := expr.Text()
			if d, ok := parseBlacklistDirective(text); ok {
				e.applyDirective(d)
			} else {
				out.WriteString(text)
				countOutput++
			}

		case expr.IsInsens():
			out.WriteString(e.randomizeCase(expr.Text()))
			countOutput++

		case expr.IsRange():
			if !hardLimitTripped {
				lo, hi := expr.RangeBounds()
				r, rerr := randomRuneInRange(e.rng, lo, hi)
				if rerr != nil {
					return "", 0, 0, 0, rerr
				}
				out.WriteRune(r)
				countOutput++
			}

		case expr.IsIdent():
			name := expr.Text()
			switch {
			case cfg.HasRuleExpandLimit && identsExpanded >= cfg.RuleExpandLimit:
				out.WriteString(cfg.TextExpandLimit)
			case !e.bl.Contains(name):
				rule, rerr := e.g.Lookup(name)
				if rerr != nil {
					return "", 0, 0, 0, rerr
				}
				stack = append(stack, frame{
					ctx:          Context{Depth: top.ctx.Depth + 1},
					previousRule: top.currentRule,
					currentRule:  rule,
					expr:         rule.Expr,
				})
				identsExpanded++
			default:
				var rerr error
				stack, rerr = e.rePushAroundBlacklist(stack, top)
				if rerr != nil {
					return "", 0, 0, 0, rerr
				}
			}

		case expr.IsSeq():
			if expr.LHS().IsNegPred() {
				text, cOut, cNodes, cIdents, nerr := e.evaluateNegation(top, expr, cfg, nodesProcessed, identsExpanded)
				if nerr != nil {
					return "", 0, 0, 0, nerr
				}
				out.WriteString(text)
				countOutput += cOut
				nodesProcessed += cNodes
				identsExpanded += cIdents
			} else {
				stack = append(stack,
					frame{ctx: Context{Depth: top.ctx.Depth, Breadth: top.ctx.Breadth + 1}, previousRule: top.previousRule, currentRule: top.currentRule, expr: expr.RHS()},
					frame{ctx: top.ctx, previousRule: top.previousRule, currentRule: top.currentRule, expr: expr.LHS()},
				)
			}

		case expr.IsChoice():
			chosen := chooseVariant(e.rng, expr)
			stack = append(stack, frame{ctx: top.ctx, previousRule: top.previousRule, currentRule: top.currentRule, expr: chosen})

		case expr.IsOpt():
			if !hardLimitTripped && e.rng.Intn(2) == 0 {
				stack = append(stack, frame{ctx: top.ctx, previousRule: top.previousRule, currentRule: top.currentRule, expr: expr.Sub()})
			}

		case expr.IsRep(), expr.IsRepOnce(), expr.IsRepExact(), expr.IsRepMin(), expr.IsRepMax(), expr.IsRepMinMax():
			if !hardLimitTripped {
				stack = e.pushRepetitions(stack, top, expr, cfg, len(stack))
			}

		case expr.IsPosPred(), expr.IsPeekSlice(), expr.IsSkip(), expr.IsPush():
			// Zero-width lookaround/bookkeeping nodes: no output, no children.

		case expr.IsNegPred():
			// A bare NegPred outside Seq(NegPred, _) carries no meaning
			// on its own; treat it as zero-width rather than error, so
			// a malformed standalone `!e` degrades gracefully.
		}

		nodesProcessed++
		if nodesProcessed > cfg.HardLimit {
			hardLimitTripped = true
			break
		}
		if cfg.HasTerminalsLimit && countOutput >= cfg.TerminalsLimit {
			break
		}
	}

	return out.String(), countOutput, nodesProcessed, identsExpanded, nil
}

// randomizeCase applies whole-literal case randomization for an
// Insens node: a single coin flip decides whether the entire literal
// is upper- or lower-cased, rather than flipping per character.
func (e *Engine) randomizeCase(s string) string {
	if e.rng.Intn(2) == 0 {
		return upperCaser.String(s)
	}
	return lowerCaser.String(s)
}

// pushRepetitions handles the Rep/RepOnce/RepExact/RepMin/RepMax/
// RepMinMax repetition table: it draws a repetition count and pushes
// that many copies of the inner expression. Once the soft-limit
// watermark is passed, Rep and RepOnce are clamped to their minimum;
// the bounded forms are unaffected.
func (e *Engine) pushRepetitions(stack []frame, top frame, expr *grammar.Expression, cfg config.GeneratorConfig, watermark int) []frame {
	softTripped := uint64(watermark) > cfg.SoftLimit

	var count int
	switch {
	case expr.IsRep():
		if softTripped {
			count = 0
		} else {
			count = e.rng.Intn(int(cfg.UpperBoundZeroOrMoreRepetition) + 1)
		}
	case expr.IsRepOnce():
		if softTripped || cfg.UpperBoundOneOrMoreRepetition < 1 {
			count = 1
		} else {
			count = 1 + e.rng.Intn(int(cfg.UpperBoundOneOrMoreRepetition))
		}
	case expr.IsRepExact():
		count = expr.Count()
	case expr.IsRepMin():
		m := expr.Count()
		count = m + e.rng.Intn(int(cfg.UpperBoundAtLeastRepetition)+1)
	case expr.IsRepMax():
		max := expr.Count()
		if max == 0 {
			count = 0
		} else {
			count = e.rng.Intn(max + 1)
		}
	case expr.IsRepMinMax():
		m, max := expr.Count(), expr.Bound()
		switch {
		case max <= m:
			count = m
		default:
			count = m + e.rng.Intn(max-m+1)
		}
	}

	for i := 0; i < count; i++ {
		stack = append(stack, frame{
			ctx:          Context{Depth: top.ctx.Depth, Breadth: top.ctx.Breadth + i},
			previousRule: top.previousRule,
			currentRule:  top.currentRule,
			expr:         expr.Sub(),
		})
	}
	return stack
}

// applyDirective mutates the dynamic blacklist per a parsed directive:
// if the named identifier's rule is itself exclusively a chain of
// identifier choices (grammar.OnlyIdentChoices), the directive expands
// to that rule's leaf identifiers instead of the rule name itself.
func (e *Engine) applyDirective(d blacklistDirective) {
	for _, name := range d.names {
		leaves, ok := grammar.OnlyIdentChoices(e.g, name)
		if !ok {
			leaves = []string{name}
		}
		for _, leaf := range leaves {
			if d.insert {
				e.bl.Insert(leaf)
			} else {
				e.bl.Remove(leaf)
			}
		}
	}
}

// rePushAroundBlacklist handles the loop-avoidance branch of Ident
// expansion for a blacklisted identifier: re-push the enclosing rule
// if it offers a non-blacklisted alternative via
// OnlyIdentChoices, else fall back to the previous rule under the same
// condition, else report LoopDetected.
func (e *Engine) rePushAroundBlacklist(stack []frame, top frame) ([]frame, error) {
	if top.currentRule != nil {
		if idents, ok := grammar.OnlyIdentChoices(e.g, top.currentRule.Name); ok && atLeastOneNotBlacklisted(idents, e.bl) {
			return append(stack, frame{
				ctx:          Context{Depth: top.ctx.Depth + 1, Breadth: top.ctx.Breadth},
				previousRule: top.previousRule,
				currentRule:  top.currentRule,
				expr:         top.currentRule.Expr,
			}), nil
		}
	}
	if top.previousRule != nil {
		if idents, ok := grammar.OnlyIdentChoices(e.g, top.previousRule.Name); ok && atLeastOneNotBlacklisted(idents, e.bl) {
			return append(stack, frame{
				ctx:         Context{Depth: top.ctx.Depth + 1, Breadth: top.ctx.Breadth},
				currentRule: top.previousRule,
				expr:        top.previousRule.Expr,
			}), nil
		}
	}
	ruleName := ""
	if top.currentRule != nil {
		ruleName = top.currentRule.Name
	}
	return stack, &errs.LoopDetected{Rule: ruleName, Blacklist: e.bl.Snapshot()}
}

func atLeastOneNotBlacklisted(names []string, bl *blacklist) bool {
	for _, n := range names {
		if !bl.Contains(n) {
			return true
		}
	}
	return false
}
