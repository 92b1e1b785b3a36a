package engine

import (
	"testing"

	"github.com/nodai-oss/randgram/grammar"
)

func TestIdentsIn(t *testing.T) {
	e := grammar.Seq(
		grammar.Choice(grammar.Ident("a"), grammar.Ident("b")),
		grammar.Rep(grammar.Ident("a")),
	)
	got := identsIn(e)
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("identsIn() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("identsIn()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIdentsIn_NoIdents(t *testing.T) {
	e := grammar.Str("literal")
	if got := identsIn(e); got != nil {
		t.Fatalf("identsIn() = %v, want nil", got)
	}
}
