package grammar

import (
	"strings"
	"testing"
)

func TestGrammar_LookupAndNames(t *testing.T) {
	g := New(
		&Rule{Name: "a", Expr: Str("x")},
		&Rule{Name: "b", Expr: Ident("a")},
	)

	if got := g.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Names() = %v, want [a b] in insertion order", got)
	}

	r, err := g.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup(a) returned error: %v", err)
	}
	if r.Name != "a" {
		t.Fatalf("Lookup(a).Name = %q, want %q", r.Name, "a")
	}

	if _, err := g.Lookup("nope"); err == nil {
		t.Fatalf("Lookup(nope) should have failed")
	}
}

func TestGrammar_LookupSuggestion(t *testing.T) {
	g := New(&Rule{Name: "sentence", Expr: Str("x")})

	_, err := g.Lookup("sentense")
	if err == nil {
		t.Fatalf("expected an UnknownIdent error")
	}
	if !strings.Contains(err.Error(), "sentence") {
		t.Fatalf("error %q does not suggest the close match", err.Error())
	}
}

func TestGrammar_Clean(t *testing.T) {
	directive := Str(BlacklistDirectiveInsert + "foo|")
	plain := Str("literal")
	g := New(&Rule{Name: "r", Expr: Seq(directive, plain)})

	clean := g.Clean()
	r := clean.Rule("r")
	if r.Expr.LHS().Text() != "" {
		t.Fatalf("Clean() left directive text in place: %q", r.Expr.LHS().Text())
	}
	if r.Expr.RHS() != plain {
		t.Fatalf("Clean() should share non-directive nodes by reference")
	}
}

func TestOnlyIdentChoices(t *testing.T) {
	g := New(
		&Rule{Name: "vowel", Expr: Choice(Ident("a"), Choice(Ident("e"), Ident("i")))},
		&Rule{Name: "mixed", Expr: Choice(Ident("a"), Str("literal"))},
	)

	idents, ok := OnlyIdentChoices(g, "vowel")
	if !ok {
		t.Fatalf("expected vowel to be all-ident-choices")
	}
	want := []string{"a", "e", "i"}
	if len(idents) != len(want) {
		t.Fatalf("idents = %v, want %v", idents, want)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Fatalf("idents[%d] = %q, want %q", i, idents[i], want[i])
		}
	}

	if _, ok := OnlyIdentChoices(g, "mixed"); ok {
		t.Fatalf("mixed has a non-ident leaf and should not qualify")
	}

	if _, ok := OnlyIdentChoices(g, "absent"); ok {
		t.Fatalf("an absent rule should not qualify")
	}
}
