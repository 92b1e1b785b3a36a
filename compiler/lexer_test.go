package compiler

import "testing"

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("lexer error: %v", err)
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexer_Run(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		kinds   []tokenKind
	}{
		{
			caption: "the lexer recognizes every punctuation token",
			src:     `= ~ | ( ) ! ? * + { } , ..`,
			kinds: []tokenKind{
				tokEquals, tokTilde, tokPipe, tokLParen, tokRParen, tokBang,
				tokQuestion, tokStar, tokPlus, tokLBrace, tokRBrace, tokComma,
				tokDotDot, tokEOF,
			},
		},
		{
			caption: "the lexer recognizes an identifier and a number",
			src:     `sentence 42`,
			kinds:   []tokenKind{tokIdent, tokNumber, tokEOF},
		},
		{
			caption: "the lexer recognizes a string and an insensitive string",
			src:     `"abc" ^"xyz"`,
			kinds:   []tokenKind{tokString, tokInsensString, tokEOF},
		},
		{
			caption: "the lexer recognizes a character literal",
			src:     `'a'`,
			kinds:   []tokenKind{tokChar, tokEOF},
		},
		{
			caption: "the lexer skips line comments",
			src:     "a # a comment\nb",
			kinds:   []tokenKind{tokIdent, tokIdent, tokEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if len(toks) != len(tt.kinds) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(tt.kinds))
			}
			for i, k := range tt.kinds {
				if toks[i].kind != k {
					t.Fatalf("token %d kind = %s, want %s", i, toks[i].kind, k)
				}
			}
		})
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\n\t\\\"b"`)
	if toks[0].kind != tokString {
		t.Fatalf("expected a string token")
	}
	want := "a\n\t\\\"b"
	if toks[0].text != want {
		t.Fatalf("text = %q, want %q", toks[0].text, want)
	}
}

func TestLexer_HexEscapes(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    rune
	}{
		{"two-digit hex escape", `'\x41'`, 'A'},
		{"four-digit unicode escape", "'\\u0041'", 'A'},
		{"eight-digit unicode escape", `'\U0001F600'`, 0x1F600},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if toks[0].kind != tokChar {
				t.Fatalf("expected a char token")
			}
			if toks[0].ch != tt.want {
				t.Fatalf("ch = %q, want %q", toks[0].ch, tt.want)
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{"an unclosed string literal is an error", `"abc`},
		{"a lone dot is not a valid token", `.`},
		{"a caret not followed by a string is an error", `^x`},
		{"an invalid escape sequence is an error", `"\q"`},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l := newLexer(tt.src)
			for {
				tok, err := l.next()
				if err != nil {
					return
				}
				if tok.kind == tokEOF {
					t.Fatalf("expected a lexer error, got none")
				}
			}
		})
	}
}
