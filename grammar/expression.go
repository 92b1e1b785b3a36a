// Package grammar holds the in-memory grammar model the derivation
// engine walks: a mapping from rule name to an Expression tree.
package grammar

type exprKind int

const (
	exprStr exprKind = iota
	exprInsens
	exprRange
	exprIdent
	exprSeq
	exprChoice
	exprOpt
	exprRep
	exprRepOnce
	exprRepExact
	exprRepMin
	exprRepMax
	exprRepMinMax
	exprNegPred
	exprPosPred
	exprPeekSlice
	exprSkip
	exprPush
)

func (k exprKind) String() string {
	switch k {
	case exprStr:
		return "Str"
	case exprInsens:
		return "Insens"
	case exprRange:
		return "Range"
	case exprIdent:
		return "Ident"
	case exprSeq:
		return "Seq"
	case exprChoice:
		return "Choice"
	case exprOpt:
		return "Opt"
	case exprRep:
		return "Rep"
	case exprRepOnce:
		return "RepOnce"
	case exprRepExact:
		return "RepExact"
	case exprRepMin:
		return "RepMin"
	case exprRepMax:
		return "RepMax"
	case exprRepMinMax:
		return "RepMinMax"
	case exprNegPred:
		return "NegPred"
	case exprPosPred:
		return "PosPred"
	case exprPeekSlice:
		return "PeekSlice"
	case exprSkip:
		return "Skip"
	case exprPush:
		return "Push"
	default:
		return "?"
	}
}

// Expression is a node of the grammar AST. It is an immutable, tagged
// sum type; construct one with the package-level constructors below
// rather than the struct literal.
type Expression struct {
	kind exprKind

	str  string // Str, Insens, Ident text
	lo   rune   // Range lower bound
	hi   rune   // Range upper bound
	n    int    // RepExact count / RepMin,RepMax,RepMinMax bound
	m    int    // RepMinMax upper bound

	lhs *Expression // Seq, Choice left
	rhs *Expression // Seq, Choice right
	sub *Expression // Opt, Rep*, NegPred, PosPred inner expression
}

func (e *Expression) Kind() string { return e.kind.String() }

// Str returns a literal-string node. A Str node may also carry a
// dynamic-blacklist directive payload (see the builtin directive
// prefixes consumed by the engine's blacklist component) instead of
// literal output text; the engine, not this package, interprets that.
func Str(s string) *Expression { return &Expression{kind: exprStr, str: s} }

// Insens returns a literal string whose case is randomized as a whole
// at generation time.
func Insens(s string) *Expression { return &Expression{kind: exprInsens, str: s} }

// Range returns a single-character node drawing uniformly from [lo, hi].
func Range(lo, hi rune) *Expression { return &Expression{kind: exprRange, lo: lo, hi: hi} }

// Ident returns a reference to another rule by name.
func Ident(name string) *Expression { return &Expression{kind: exprIdent, str: name} }

// Seq returns the concatenation of lhs then rhs.
func Seq(lhs, rhs *Expression) *Expression { return &Expression{kind: exprSeq, lhs: lhs, rhs: rhs} }

// Choice returns an alternation between lhs and rhs. Chains of Choice
// form the left- or right-leaning binary tree the Choice Selector
// flattens via reservoir sampling.
func Choice(lhs, rhs *Expression) *Expression {
	return &Expression{kind: exprChoice, lhs: lhs, rhs: rhs}
}

// Opt returns e?: include e with probability 1/2.
func Opt(e *Expression) *Expression { return &Expression{kind: exprOpt, sub: e} }

// Rep returns e*: repeat e zero or more times, bounded above.
func Rep(e *Expression) *Expression { return &Expression{kind: exprRep, sub: e} }

// RepOnce returns e+: repeat e one or more times, bounded above.
func RepOnce(e *Expression) *Expression { return &Expression{kind: exprRepOnce, sub: e} }

// RepExact returns e{n}: repeat e exactly n times.
func RepExact(e *Expression, n int) *Expression {
	return &Expression{kind: exprRepExact, sub: e, n: n}
}

// RepMin returns e{m,}: repeat e between m and m+upper times.
func RepMin(e *Expression, m int) *Expression {
	return &Expression{kind: exprRepMin, sub: e, n: m}
}

// RepMax returns e{,M}: repeat e between 0 and M times, inclusive.
func RepMax(e *Expression, max int) *Expression {
	return &Expression{kind: exprRepMax, sub: e, n: max}
}

// RepMinMax returns e{m,M}: repeat e between m and M times, inclusive.
func RepMinMax(e *Expression, m, max int) *Expression {
	return &Expression{kind: exprRepMinMax, sub: e, n: m, m: max}
}

// NegPred returns !e. Only meaningful as the left side of
// Seq(NegPred(a), b): "generate b such that it does not parse as a".
func NegPred(e *Expression) *Expression { return &Expression{kind: exprNegPred, sub: e} }

// PosPred, PeekSlice, Skip and Push are recognized but produce no
// output; they exist so a compiled grammar can carry these PEG nodes
// without the engine rejecting them.
func PosPred(e *Expression) *Expression  { return &Expression{kind: exprPosPred, sub: e} }
func PeekSlice() *Expression             { return &Expression{kind: exprPeekSlice} }
func Skip() *Expression                  { return &Expression{kind: exprSkip} }
func Push(e *Expression) *Expression     { return &Expression{kind: exprPush, sub: e} }

// Accessors used by engine, compiler and reparser. These expose the
// tagged-union fields without requiring callers outside this package
// to know the struct layout.

func (e *Expression) Text() string       { return e.str }
func (e *Expression) RangeBounds() (rune, rune) { return e.lo, e.hi }
func (e *Expression) Count() int         { return e.n }
func (e *Expression) Bound() int         { return e.m }
func (e *Expression) LHS() *Expression   { return e.lhs }
func (e *Expression) RHS() *Expression   { return e.rhs }
func (e *Expression) Sub() *Expression   { return e.sub }

func (e *Expression) IsStr() bool      { return e.kind == exprStr }
func (e *Expression) IsInsens() bool   { return e.kind == exprInsens }
func (e *Expression) IsRange() bool    { return e.kind == exprRange }
func (e *Expression) IsIdent() bool    { return e.kind == exprIdent }
func (e *Expression) IsSeq() bool      { return e.kind == exprSeq }
func (e *Expression) IsChoice() bool   { return e.kind == exprChoice }
func (e *Expression) IsOpt() bool      { return e.kind == exprOpt }
func (e *Expression) IsRep() bool      { return e.kind == exprRep }
func (e *Expression) IsRepOnce() bool  { return e.kind == exprRepOnce }
func (e *Expression) IsRepExact() bool { return e.kind == exprRepExact }
func (e *Expression) IsRepMin() bool   { return e.kind == exprRepMin }
func (e *Expression) IsRepMax() bool   { return e.kind == exprRepMax }
func (e *Expression) IsRepMinMax() bool { return e.kind == exprRepMinMax }
func (e *Expression) IsNegPred() bool  { return e.kind == exprNegPred }
func (e *Expression) IsPosPred() bool  { return e.kind == exprPosPred }
func (e *Expression) IsPeekSlice() bool { return e.kind == exprPeekSlice }
func (e *Expression) IsSkip() bool     { return e.kind == exprSkip }
func (e *Expression) IsPush() bool     { return e.kind == exprPush }
