package engine

import (
	"strings"

	"github.com/nodai-oss/randgram/grammar"
)

// blacklist is an ordered multiset of suppressed identifier names.
// Insert and Remove are both
// O(n) in the current size, which is fine at the sizes a single
// generation run reaches (rarely more than a handful of outstanding
// suppressions at once).
type blacklist struct {
	names []string
}

// Contains reports whether name currently appears anywhere in the
// blacklist, regardless of how many times.
func (b *blacklist) Contains(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

// Insert adds name to the blacklist.
func (b *blacklist) Insert(name string) {
	b.names = append(b.names, name)
}

// Remove deletes the most recently inserted occurrence of name (LIFO).
// It is a no-op if name is not present.
func (b *blacklist) Remove(name string) {
	for i := len(b.names) - 1; i >= 0; i-- {
		if b.names[i] == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the current blacklist contents, for
// inclusion in an errs.LoopDetected error.
func (b *blacklist) Snapshot() []string {
	return append([]string(nil), b.names...)
}

// blacklistDirective is a parsed `|BLACKLIST|I|...|` or
// `|BLACKLIST|R|...|` payload: insert or remove, and the comma
// separated identifier list it carries.
type blacklistDirective struct {
	insert bool
	names  []string
}

// parseBlacklistDirective parses a Str node's text as a blacklist
// directive, returning ok=false if it is not one (i.e. it is ordinary
// literal output text).
func parseBlacklistDirective(s string) (blacklistDirective, bool) {
	var d blacklistDirective
	var rest string
	switch {
	case strings.HasPrefix(s, grammar.BlacklistDirectiveInsert):
		d.insert = true
		rest = strings.TrimPrefix(s, grammar.BlacklistDirectiveInsert)
	case strings.HasPrefix(s, grammar.BlacklistDirectiveRemove):
		d.insert = false
		rest = strings.TrimPrefix(s, grammar.BlacklistDirectiveRemove)
	default:
		return blacklistDirective{}, false
	}
	rest = strings.TrimSuffix(rest, "|")
	if rest == "" {
		return d, true
	}
	for _, name := range strings.Split(rest, ",") {
		if name != "" {
			d.names = append(d.names, name)
		}
	}
	return d, true
}
