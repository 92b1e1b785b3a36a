package compiler

import (
	"fmt"

	"github.com/nodai-oss/randgram/grammar"
)

// parser is a recursive-descent parser over the token stream lexer
// produces, raising *SyntaxError via panic/recover. This
// grammar-definition language has no directives, labels or tree
// structure to track, only a PEG-style expression grammar.
type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() {
	t, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	p.tok = t
}

func (p *parser) expect(k tokenKind) token {
	if p.tok.kind != k {
		raiseSyntaxError(p.tok.pos, fmt.Sprintf("expected %s, found %s", k, p.tok.kind))
	}
	t := p.tok
	p.advance()
	return t
}

// parseGrammar parses the whole source as a sequence of rule
// definitions, recovering any *SyntaxError raised along the way into a
// returned error.
func (p *parser) parseGrammar() (rules []*grammar.Rule, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			retErr = se
		}
	}()

	p.advance()
	for p.tok.kind != tokEOF {
		rules = append(rules, p.parseRule())
	}
	if len(rules) == 0 {
		raiseSyntaxError(p.tok.pos, "a grammar must define at least one rule")
	}
	return rules, nil
}

// parseRule parses `name = { expr }`.
func (p *parser) parseRule() *grammar.Rule {
	nameTok := p.expect(tokIdent)
	p.expect(tokEquals)
	p.expect(tokLBrace)
	expr := p.parseChoice()
	p.expect(tokRBrace)
	return &grammar.Rule{Name: nameTok.text, Expr: expr}
}

// parseChoice parses left-associative `seq ('|' seq)*`.
func (p *parser) parseChoice() *grammar.Expression {
	lhs := p.parseSeq()
	for p.tok.kind == tokPipe {
		p.advance()
		rhs := p.parseSeq()
		lhs = grammar.Choice(lhs, rhs)
	}
	return lhs
}

// parseSeq parses left-associative `unary ('~' unary)*`.
func (p *parser) parseSeq() *grammar.Expression {
	lhs := p.parseUnary()
	for p.tok.kind == tokTilde {
		p.advance()
		rhs := p.parseUnary()
		lhs = grammar.Seq(lhs, rhs)
	}
	return lhs
}

// parseUnary parses an optional prefix negation over a postfix
// expression: `!e` or `e`.
func (p *parser) parseUnary() *grammar.Expression {
	if p.tok.kind == tokBang {
		p.advance()
		return grammar.NegPred(p.parsePostfix())
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any chain of repetition
// suffixes: `?`, `*`, `+`, or a `{...}` bound.
func (p *parser) parsePostfix() *grammar.Expression {
	e := p.parsePrimary()
	for {
		switch p.tok.kind {
		case tokQuestion:
			p.advance()
			e = grammar.Opt(e)
		case tokStar:
			p.advance()
			e = grammar.Rep(e)
		case tokPlus:
			p.advance()
			e = grammar.RepOnce(e)
		case tokLBrace:
			e = p.parseRepetitionBound(e)
		default:
			return e
		}
	}
}

// parseRepetitionBound parses the body of a `{...}` repetition suffix
// already positioned at the opening brace: `{n}`, `{m,}`, `{,M}` or
// `{m,M}`.
func (p *parser) parseRepetitionBound(e *grammar.Expression) *grammar.Expression {
	pos := p.tok.pos
	p.advance() // consume '{'

	if p.tok.kind == tokComma {
		p.advance()
		maxTok := p.expect(tokNumber)
		p.expect(tokRBrace)
		return grammar.RepMax(e, maxTok.num)
	}

	nTok := p.expect(tokNumber)
	if p.tok.kind == tokRBrace {
		p.advance()
		return grammar.RepExact(e, nTok.num)
	}
	p.expect(tokComma)
	if p.tok.kind == tokRBrace {
		p.advance()
		return grammar.RepMin(e, nTok.num)
	}
	maxTok := p.expect(tokNumber)
	p.expect(tokRBrace)
	if maxTok.num < nTok.num {
		raiseSyntaxError(pos, "repetition upper bound must not be less than its lower bound")
	}
	return grammar.RepMinMax(e, nTok.num, maxTok.num)
}

// parsePrimary parses a string, insensitive string, character or
// character range, identifier, or parenthesized sub-expression.
func (p *parser) parsePrimary() *grammar.Expression {
	switch p.tok.kind {
	case tokString:
		text := p.tok.text
		p.advance()
		return grammar.Str(text)
	case tokInsensString:
		text := p.tok.text
		p.advance()
		return grammar.Insens(text)
	case tokChar:
		lo := p.tok.ch
		p.advance()
		if p.tok.kind == tokDotDot {
			p.advance()
			hiTok := p.expect(tokChar)
			return grammar.Range(lo, hiTok.ch)
		}
		return grammar.Str(string(lo))
	case tokIdent:
		name := p.tok.text
		p.advance()
		return grammar.Ident(name)
	case tokLParen:
		p.advance()
		e := p.parseChoice()
		p.expect(tokRParen)
		return e
	default:
		raiseSyntaxError(p.tok.pos, fmt.Sprintf("unexpected %s", p.tok.kind))
		return nil
	}
}
