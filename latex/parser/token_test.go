package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"", nil},
		{"x+1", []Token{"x", "+", "1"}},
		{`\frac{1}{2}`, []Token{`\frac`, "<{>", "1", "<}>", "<{>", "2", "<}>"}},
		{`\alpha  x`, []Token{`\alpha`, "x"}},
		{`\, x`, []Token{`\,`, "<space>", "x"}},
		{"a \t\n b", []Token{"a", "<space>", "b"}},
		{"x % comment\n  y", []Token{"x", "<space>", "y"}},
		{"x%\ny", []Token{"x", "y"}},
		{`50\%`, []Token{"5", "0", `\%`}},
		{"$x$", []Token{"<$>", "x", "<$>"}},
		{"$$x$$", []Token{"<$$>", "x", "<$$>"}},
		{`\\`, []Token{`\\`}},
		{`\`, []Token{`\`}},
		{"é", []Token{"é"}},
		{"👍🏽", []Token{"👍🏽"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokensToString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`\frac{1}{2}`, `\frac{1}{2}`},
		{`\alpha x`, `\alpha x`},
		{`\alpha+x`, `\alpha+x`},
		{"a   b", "a b"},
		{"$$x$$", "$$x$$"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TokensToString(Tokenize(tt.input)); got != tt.want {
				t.Errorf("TokensToString(Tokenize(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	for tok, want := range map[Token]bool{
		`\frac`: true,
		`\,`:    true,
		`\`:     false,
		"x":     false,
		"<{>":   false,
	} {
		if got := IsCommand(tok); got != want {
			t.Errorf("IsCommand(%q) = %v, want %v", tok, got, want)
		}
	}
}
