// Package builtin implements the built-in identifier substitution
// pass: before a grammar's source text reaches the lexer, occurrences
// of the eleven reserved identifiers below are rewritten in
// place to their expansions in the grammar-definition language itself
// (character ranges, or choices of ranges), so that the rest of the
// compiler never needs to know these names exist.
package builtin

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// replacement pairs a built-in identifier with the grammar-language
// text it expands to.
type replacement struct {
	name, text string
}

// builtins lists every substitution, indexed by pattern order: the
// automaton built over these patterns reports a match's Pattern index,
// which is used to look the replacement text back up here.
//
// ASCII_ALPHA is a literal prefix of ASCII_ALPHA_LOWER and
// ASCII_ALPHA_UPPER, so the automaton is built with leftmost-longest
// match semantics (below) rather than relying on insertion order: at a
// shared starting position, the longest pattern that actually matches
// wins, so "ASCII_ALPHA_LOWER" is never truncated to a premature
// "ASCII_ALPHA" match. The word-boundary check stays as a second guard
// against a built-in name appearing only as a substring of a longer
// user-defined identifier.
var builtins = []replacement{
	{"ASCII_NONZERO_DIGIT", "'1'..'9'"},
	{"ASCII_DIGIT", "'0'..'9'"},
	{"ASCII_BIN_DIGIT", "'0'..'1'"},
	{"ASCII_OCT_DIGIT", "'0'..'7'"},
	{"ASCII_HEX_DIGIT", "('0'..'9'|'a'..'f'|'A'..'F')"},
	{"ASCII_ALPHA_LOWER", "'a'..'z'"},
	{"ASCII_ALPHA_UPPER", "'A'..'Z'"},
	{"ASCII_ALPHANUMERIC", "('0'..'9'|'a'..'z'|'A'..'Z')"},
	{"NEWLINE", `"\n"`},
	{"ANY", `'\x00'..'\U0010FFFF'`},
	{"ASCII_ALPHA", "('a'..'z'|'A'..'Z')"},
}

// automaton is built once, over all eleven built-in names, so that
// Substitute locates every candidate in a single linear pass rather
// than one pass per identifier.
var automaton = buildAutomaton()

func buildAutomaton() *ahocorasick.Automaton {
	builder := ahocorasick.NewBuilder()
	builder.MatchKind(ahocorasick.LeftmostLongest)
	for _, r := range builtins {
		builder.AddPattern([]byte(r.name))
	}
	a, err := builder.Build()
	if err != nil {
		// These eleven fixed literal patterns are always buildable; a
		// nil automaton degrades Substitute to a no-op rather than panic.
		return nil
	}
	return a
}

// Substitute rewrites every whole-word occurrence of a built-in
// identifier in src to its expansion, streaming a single Aho-Corasick
// pass over src to locate all eleven candidates at once.
func Substitute(src string) string {
	if automaton == nil {
		return src
	}

	haystack := []byte(src)
	var out strings.Builder
	pos := 0
	for pos <= len(haystack) {
		m := automaton.Find(haystack, pos)
		if m == nil {
			out.Write(haystack[pos:])
			break
		}
		if isWordBoundary(haystack, m.Start, m.End) {
			out.Write(haystack[pos:m.Start])
			out.WriteString(builtins[m.Pattern].text)
			pos = m.End
		} else {
			out.Write(haystack[pos : m.Start+1])
			pos = m.Start + 1
		}
	}
	return out.String()
}

func isWordBoundary(haystack []byte, start, end int) bool {
	if start > 0 && isIdentByte(haystack[start-1]) {
		return false
	}
	if end < len(haystack) && isIdentByte(haystack[end]) {
		return false
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
