package pysrc

import "testing"

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeIndentation(t *testing.T) {
	src := "def f(x):\n    return x\n"
	want := []TokenType{
		TokenDef, TokenIdent, TokenLParen, TokenIdent, TokenRParen, TokenColon, TokenNewline,
		TokenIndent, TokenReturn, TokenIdent, TokenNewline,
		TokenDedent, TokenEOF,
	}
	got := tokenTypes(t, src)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeSyntheticTrailingNewline(t *testing.T) {
	got := tokenTypes(t, "x = 1")
	want := []TokenType{TokenIdent, TokenAssign, TokenInt, TokenNewline, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeImplicitLineJoining(t *testing.T) {
	src := "x = [1,\n     2]\n"
	got := tokenTypes(t, src)
	want := []TokenType{
		TokenIdent, TokenAssign, TokenLBracket, TokenInt, TokenComma, TokenInt,
		TokenRBracket, TokenNewline, TokenEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeSkipsCommentsAndBlankLines(t *testing.T) {
	src := "x = 1\n# comment\n\ny = 2\n"
	got := tokenTypes(t, src)
	want := []TokenType{
		TokenIdent, TokenAssign, TokenInt, TokenNewline,
		TokenIdent, TokenAssign, TokenInt, TokenNewline, TokenEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"inconsistent indentation", "if x:\n    y = 1\n  z = 2\n"},
		{"unterminated string", "s = 'abc\n"},
		{"unexpected character", "x = 1 ?\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLexer(tt.src).Tokenize(); err == nil {
				t.Errorf("Tokenize(%q) succeeded, want error", tt.src)
			}
		})
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := NewLexer(`s = 'a\nb'` + "\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var lit string
	for _, tok := range toks {
		if tok.Type == TokenString {
			lit = tok.Literal
		}
	}
	if lit != "a\nb" {
		t.Errorf("string literal = %q, want %q", lit, "a\nb")
	}
}
