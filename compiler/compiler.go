// Package compiler turns grammar-definition source text into a
// *grammar.Grammar the engine can walk. It is a hand-rolled
// lexer/parser pair rather than a general-purpose parsing library,
// since this grammar-definition language is small and specific enough
// that a hand-written recursive-descent parser is the natural fit.
package compiler

import (
	"github.com/nodai-oss/randgram/builtin"
	"github.com/nodai-oss/randgram/grammar"
)

// Compile parses src — a sequence of `name = { expr }` rule
// definitions — into a *grammar.Grammar. The built-in identifier
// substitution pass (builtin.Substitute) runs first.
func Compile(src string) (*grammar.Grammar, error) {
	substituted := builtin.Substitute(src)

	p := &parser{lex: newLexer(substituted)}
	rules, err := p.parseGrammar()
	if err != nil {
		return nil, err
	}
	return grammar.New(rules...), nil
}
