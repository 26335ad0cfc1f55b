package parser

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		consumed int
	}{
		{"x", "x", 1},
		{"xy", "x", 1},
		{`\alpha`, "alpha", 1},
		{`\Omega`, "Omega", 1},
		{"x'", "x_prime", 2},
		{"f''", "f_dprime", 3},
		{"g'''", "g_tprime", 4},
		{"h''''", "h_prime_prime_prime_prime", 5},
		{`x^\prime`, "x_prime", 3},
		{`x^{\prime\prime}`, "x_dprime", 6},
		{`y\doubleprime`, "y_dprime", 2},
		{`\operatorname{speed}`, "speed", 8},
		{`\mathrm{max}`, "max", 6},
		{`\mathrm{x}`, "x_upright", 4},
		{`\mathit{x}`, "x", 4},
		{`\mathit{rate}`, "rate_italic", 7},
		{`\mathbf{v}`, "v_bold", 4},
		{`\mathbf v`, "v_bold", 2},
		{`\mathcal{L}`, "L_calligraphic", 4},
		{`\mathrm{x_{max}}`, "x_max", 10},
		{`\mathrm{v\_0}`, "v_0", 6},
		{`\mathbf{\alpha}`, "alpha_bold", 4},
		{`\hat{x}`, "x_hat", 4},
		{`\vec v`, "v_vec", 2},
		{`\hat{\mathbf{x}}`, "x_bold_hat", 7},
		{"é", "é", 1},
		{"👍🏽", "👍🏽", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(Tokenize(tt.input), nil)
			got, ok := p.ParseIdentifier()
			if !ok {
				t.Fatalf("ParseIdentifier(%q) failed", tt.input)
			}
			if got != tt.want {
				t.Errorf("ParseIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if p.Index() != tt.consumed {
				t.Errorf("ParseIdentifier(%q) consumed %d tokens, want %d", tt.input, p.Index(), tt.consumed)
			}
		})
	}
}

func TestParseIdentifierRejects(t *testing.T) {
	for _, input := range []string{"1", "+", `\frac`, `\mathrm{}`, `\mathrm{x+1}`, `\mathrm{1x}`, `\hat{}`, ""} {
		p := New(Tokenize(input), nil)
		if got, ok := p.ParseIdentifier(); ok {
			t.Errorf("ParseIdentifier(%q) = %q, want failure", input, got)
		}
		if p.Index() != 0 {
			t.Errorf("ParseIdentifier(%q) moved the cursor to %d", input, p.Index())
		}
	}
}

func TestValidIdentifier(t *testing.T) {
	for id, want := range map[string]bool{
		"x":     true,
		"x_1":   true,
		"speed": true,
		"é":     true,
		"👍🏽":    true,
		"👨‍👩‍👧": true,
		"1x":    false,
		"_x":    false,
		"x y":   false,
		"":      false,
	} {
		if got := ValidIdentifier(id); got != want {
			t.Errorf("ValidIdentifier(%q) = %v, want %v", id, got, want)
		}
	}
}
