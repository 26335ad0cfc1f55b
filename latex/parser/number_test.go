package parser

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		opts     []Option
		want     string
		consumed int
	}{
		{input: "0", want: "0", consumed: 1},
		{input: "1234", want: "1234", consumed: 4},
		{input: "007", want: "7", consumed: 3},
		{input: `1\,234`, want: "1234", consumed: 5},
		{input: `1\,234\,567`, want: "1234567", consumed: 9},
		{input: `1\,23`, want: "1", consumed: 1},
		{input: `1\,2345`, want: "1", consumed: 1},
		{input: "3.14", want: "3.14", consumed: 4},
		{input: ".5", want: "0.5", consumed: 2},
		{input: "3.x", want: "3", consumed: 1},
		{input: "0.(3)", want: "0.(3)", consumed: 5},
		{input: "1.25(142857)", want: "1.25(142857)", consumed: 12},
		{input: `0.\overline{3}`, want: "0.(3)", consumed: 6},
		{input: `0.1\overline6`, want: "0.1(6)", consumed: 5},
		{input: "1.2e5", want: "1.2e5", consumed: 5},
		{input: "1.2e-3", want: "0.0012", consumed: 6},
		{input: "2e", want: "2", consumed: 1},
		{input: `1.5\times 10^{3}`, want: "1.5e3", consumed: 10},
		{input: `1.5 \cdot 10^3`, want: "1.5e3", consumed: 9},
		{input: `25\times10^{-2}`, want: "0.25", consumed: 10},
		{input: `3\times x`, want: "3", consumed: 1},
		{input: `50\%`, want: "0.5", consumed: 3},
		{input: `5\%`, want: "0.05", consumed: 2},
		{input: "12", opts: []Option{WithNumbers(NumbersNever)}, want: "1", consumed: 1},
		{input: "1,5", opts: []Option{WithDecimalMarker(",")}, want: "1.5", consumed: 3},
		{input: "1{,}234", opts: []Option{WithDigitGroupSeparator("{,}")}, want: "1234", consumed: 7},
		{input: "0.(3)", opts: []Option{WithExpandRepeatingDigits(), WithPrecision(5)}, want: "0.33333", consumed: 5},
		{input: "0.1(6)", opts: []Option{WithExpandRepeatingDigits(), WithPrecision(4)}, want: "0.1666", consumed: 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(Tokenize(tt.input), nil, tt.opts...)
			got := p.ParseNumber()
			if got == nil {
				t.Fatalf("ParseNumber(%q) = nil", tt.input)
			}
			if got.Value != tt.want {
				t.Errorf("ParseNumber(%q) = %s, want %s", tt.input, got.Value, tt.want)
			}
			if p.Index() != tt.consumed {
				t.Errorf("ParseNumber(%q) consumed %d tokens, want %d", tt.input, p.Index(), tt.consumed)
			}
		})
	}
}

func TestParseNumberNoMatch(t *testing.T) {
	for _, input := range []string{"x", ".", "-1", `\overline{x}`, ""} {
		p := New(Tokenize(input), nil)
		if got := p.ParseNumber(); got != nil {
			t.Errorf("ParseNumber(%q) = %s, want nil", input, got)
		}
		if p.Index() != 0 {
			t.Errorf("ParseNumber(%q) moved the cursor to %d", input, p.Index())
		}
	}
}
