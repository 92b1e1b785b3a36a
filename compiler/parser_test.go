package compiler

import (
	"testing"

	"github.com/nodai-oss/randgram/grammar"
)

func parseOne(t *testing.T, src string) *grammar.Expression {
	t.Helper()
	p := &parser{lex: newLexer(src)}
	rules, err := p.parseGrammar()
	if err != nil {
		t.Fatalf("parseGrammar error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected exactly one rule, got %d", len(rules))
	}
	return rules[0].Expr
}

func TestParser_Operators(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		check   func(t *testing.T, e *grammar.Expression)
	}{
		{
			caption: "string literal",
			src:     `r = { "abc" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsStr() || e.Text() != "abc" {
					t.Fatalf("got %s %q", e.Kind(), e.Text())
				}
			},
		},
		{
			caption: "insensitive string literal",
			src:     `r = { ^"abc" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsInsens() || e.Text() != "abc" {
					t.Fatalf("got %s %q", e.Kind(), e.Text())
				}
			},
		},
		{
			caption: "a character range",
			src:     `r = { 'a'..'z' }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRange() {
					t.Fatalf("expected a Range node, got %s", e.Kind())
				}
				lo, hi := e.RangeBounds()
				if lo != 'a' || hi != 'z' {
					t.Fatalf("RangeBounds() = (%q, %q)", lo, hi)
				}
			},
		},
		{
			caption: "left-associative concatenation",
			src:     `r = { "a" ~ "b" ~ "c" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsSeq() || !e.LHS().IsSeq() || e.RHS().Text() != "c" {
					t.Fatalf("expected ((a~b)~c) shape")
				}
			},
		},
		{
			caption: "left-associative alternation",
			src:     `r = { "a" | "b" | "c" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsChoice() || !e.LHS().IsChoice() || e.RHS().Text() != "c" {
					t.Fatalf("expected ((a|b)|c) shape")
				}
			},
		},
		{
			caption: "prefix negation binds tighter than concatenation",
			src:     `r = { !"a" ~ "b" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsSeq() || !e.LHS().IsNegPred() {
					t.Fatalf("expected Seq(NegPred(a), b)")
				}
			},
		},
		{
			caption: "optional postfix",
			src:     `r = { "a"? }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsOpt() {
					t.Fatalf("expected Opt, got %s", e.Kind())
				}
			},
		},
		{
			caption: "zero-or-more postfix",
			src:     `r = { "a"* }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRep() {
					t.Fatalf("expected Rep, got %s", e.Kind())
				}
			},
		},
		{
			caption: "one-or-more postfix",
			src:     `r = { "a"+ }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRepOnce() {
					t.Fatalf("expected RepOnce, got %s", e.Kind())
				}
			},
		},
		{
			caption: "exact repetition bound",
			src:     `r = { "a"{5} }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRepExact() || e.Count() != 5 {
					t.Fatalf("got %s count=%d", e.Kind(), e.Count())
				}
			},
		},
		{
			caption: "lower-bounded repetition",
			src:     `r = { "a"{2,} }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRepMin() || e.Count() != 2 {
					t.Fatalf("got %s count=%d", e.Kind(), e.Count())
				}
			},
		},
		{
			caption: "upper-bounded repetition",
			src:     `r = { "a"{,5} }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRepMax() || e.Count() != 5 {
					t.Fatalf("got %s count=%d", e.Kind(), e.Count())
				}
			},
		},
		{
			caption: "bounded-range repetition",
			src:     `r = { "a"{2,5} }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsRepMinMax() || e.Count() != 2 || e.Bound() != 5 {
					t.Fatalf("got %s count=%d bound=%d", e.Kind(), e.Count(), e.Bound())
				}
			},
		},
		{
			caption: "parenthesized grouping overrides precedence",
			src:     `r = { ("a" | "b") ~ "c" }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsSeq() || !e.LHS().IsChoice() {
					t.Fatalf("expected Seq(Choice(a,b), c)")
				}
			},
		},
		{
			caption: "an identifier reference",
			src:     `r = { other }`,
			check: func(t *testing.T, e *grammar.Expression) {
				if !e.IsIdent() || e.Text() != "other" {
					t.Fatalf("got %s %q", e.Kind(), e.Text())
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tt.check(t, parseOne(t, tt.src))
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{"an empty grammar is invalid", ``},
		{"a repetition with max less than min is invalid", `r = { "a"{5,2} }`},
		{"a missing closing brace is invalid", `r = { "a"`},
		{"an unrecognized primary is invalid", `r = { | }`},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p := &parser{lex: newLexer(tt.src)}
			if _, err := p.parseGrammar(); err == nil {
				t.Fatalf("expected a syntax error")
			}
		})
	}
}

func TestParser_MultipleRules(t *testing.T) {
	p := &parser{lex: newLexer(`a = { "x" } b = { a }`)}
	rules, err := p.parseGrammar()
	if err != nil {
		t.Fatalf("parseGrammar error: %v", err)
	}
	if len(rules) != 2 || rules[0].Name != "a" || rules[1].Name != "b" {
		t.Fatalf("got %d rules, want [a b]", len(rules))
	}
}
