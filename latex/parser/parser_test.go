package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/mathjson/mathjson"
)

// testEntries is a small arithmetic dictionary. Extra entries are
// registered first.
func testEntries(extra ...Entry) []Entry {
	return append(extra,
		&InfixEntry{Trigger: Trigger{Latex: "+"}, Name: "Add", Precedence: 275, Associativity: AssocBoth},
		&InfixEntry{Trigger: Trigger{Latex: "*"}, Name: "Multiply", Precedence: 390, Associativity: AssocBoth},
		&InfixEntry{Trigger: Trigger{Latex: "<"}, Name: "Less", Precedence: 245},
		&InfixEntry{Trigger: Trigger{Latex: "<="}, Name: "LessEqual", Precedence: 245},
		&InfixEntry{Trigger: Trigger{Latex: "="}, Name: "Equal", Precedence: 245},
		&PrefixEntry{Trigger: Trigger{Latex: "-"}, Name: "Negate", Precedence: 275},
		&PostfixEntry{Trigger: Trigger{Latex: "!"}, Name: "Factorial", Precedence: 810},
		&MatchfixEntry{Open: "(", Close: ")", Name: "Delimiter", Parse: parens},
	)
}

// parens keeps a single parenthesized expression as is.
func parens(p *Parser, body *mathjson.Expr) *mathjson.Expr {
	switch {
	case body == nil:
		return mathjson.Function("Delimiter")
	case body.Is("Sequence"):
		return mathjson.Function("Delimiter", body.Ops...)
	}
	return body
}

func parseWith(t *testing.T, src string, entries []Entry, opts ...Option) *mathjson.Expr {
	t.Helper()
	idx, err := NewIndex(entries)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	expr, err := Parse(src, idx, opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return expr
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2*3", `["Add",1,["Multiply",2,3]]`},
		{"a+b+c", `["Add","a","b","c"]`},
		{"a*b+c", `["Add",["Multiply","a","b"],"c"]`},
		{"a<=b", `["LessEqual","a","b"]`},
		{"a<b", `["Less","a","b"]`},
		{"-x", `["Negate","x"]`},
		{"3!", `["Factorial",3]`},
		{"(a+b)*c", `["Multiply",["Add","a","b"],"c"]`},
		{"2(a+b)", `["Multiply",2,["Add","a","b"]]`},
		{"()", `["Delimiter"]`},
		{"2x", `["Multiply",2,"x"]`},
		{"2 x", `["Multiply",2,"x"]`},
		{"f(x)", `["f","x"]`},
		{"f()", `["f"]`},
		{"f'(x)", `["Apply",["Derivative","f",1],"x"]`},
		{"x", `"x"`},
		{"$x$", `"x"`},
		{`\[x\]`, `"x"`},
		{"a+", `["Add","a",["Error","'missing'"]]`},
		{"a)", `["Sequence","a",["Error","'expected-open-delimiter'",["LatexString","')'"]]]`},
		{"a=", `["Equal","a",["Error","'missing'"]]`},
		{`\foo`, `["Error","'unexpected-command'",["LatexString","'\\foo'"]]`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseWith(t, tt.input, testEntries())
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "  ", "$$", `\,`} {
		got := parseWith(t, input, testEntries())
		if !got.Equal(mathjson.Nothing()) {
			t.Errorf("Parse(%q) = %s, want Nothing", input, got)
		}
	}
}

func TestSignificantWhitespace(t *testing.T) {
	got := parseWith(t, "2 x", testEntries(), WithSignificantWhitespace())
	want := `["Sequence",2,"x"]`
	if got.String() != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}
}

func TestFunctionClassification(t *testing.T) {
	got := parseWith(t, "g(x)", testEntries(), WithFunctions("q"))
	if want := `["Multiply","g","x"]`; got.String() != want {
		t.Errorf("Parse(g(x)) = %s, want %s", got, want)
	}
	got = parseWith(t, "q(x)", testEntries(), WithFunctions("q"))
	if want := `["q","x"]`; got.String() != want {
		t.Errorf("Parse(q(x)) = %s, want %s", got, want)
	}
}

func TestRegistrationOrder(t *testing.T) {
	entries := testEntries(
		&SymbolEntry{Trigger: Trigger{Latex: `\foo`}, Name: "First"},
		&SymbolEntry{Trigger: Trigger{Latex: `\foo`}, Name: "Second"},
	)
	if got := parseWith(t, `\foo`, entries); !got.IsSymbol("First") {
		t.Errorf("Parse = %s, want First", got)
	}
}

func TestDeclinedEntryFallsThrough(t *testing.T) {
	entries := testEntries(
		&SymbolEntry{Trigger: Trigger{Latex: `\foo`}, Name: "First", Parse: func(p *Parser) *mathjson.Expr {
			p.Next()
			return nil
		}},
		&SymbolEntry{Trigger: Trigger{Latex: `\foo`}, Name: "Second"},
	)
	if got := parseWith(t, `\foo+1`, entries); got.String() != `["Add","Second",1]` {
		t.Errorf("Parse = %s", got)
	}
}

func TestBacktrackingRestoresCursor(t *testing.T) {
	greedy := &InfixEntry{
		Trigger:    Trigger{Latex: "+"},
		Name:       "Greedy",
		Precedence: 275,
		Parse: func(p *Parser, lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
			p.Next()
			p.PushBoundary("]")
			p.Next()
			return nil
		},
	}
	got := parseWith(t, "a+b", testEntries(greedy))
	if want := `["Add","a","b"]`; got.String() != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}
}

func TestLongestTriggerFirst(t *testing.T) {
	idx := MustIndex(testEntries())
	p := New(Tokenize("<=b"), idx)
	cands := p.candidates(KindInfix)
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if name := cands[0].Entry.EntryName(); name != "LessEqual" || cands[0].Consumed != 2 {
		t.Errorf("first candidate = %s (%d tokens), want LessEqual (2 tokens)", name, cands[0].Consumed)
	}
	if name := cands[1].Entry.EntryName(); name != "Less" {
		t.Errorf("second candidate = %s, want Less", name)
	}
}

func TestIdentifierTrigger(t *testing.T) {
	entries := testEntries(&FunctionEntry{Trigger: Trigger{Identifier: "sinc"}, Name: "Sinc"})
	for _, input := range []string{`\operatorname{sinc}(x)`, `\mathrm{sinc}(x)`} {
		if got := parseWith(t, input, entries); got.String() != `["Sinc","x"]` {
			t.Errorf("Parse(%q) = %s", input, got)
		}
	}
}

func TestNewIndexErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"nil entry", nil},
		{"missing trigger", &SymbolEntry{Name: "X"}},
		{"both triggers", &SymbolEntry{Trigger: Trigger{Latex: "x", Identifier: "x"}, Name: "X"}},
		{"blank trigger", &InfixEntry{Trigger: Trigger{Latex: " "}, Name: "X", Precedence: 1}},
		{"matchfix without close", &MatchfixEntry{Open: "(", Name: "X"}},
		{"environment without name", &EnvironmentEntry{Name: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIndex([]Entry{tt.entry}); err == nil {
				t.Error("NewIndex succeeded, want an error")
			}
		})
	}
}

func TestBoundaries(t *testing.T) {
	p := New(Tokenize("a ) b"), nil)
	p.Next()
	cp := p.Checkpoint()

	p.PushBoundary(")")
	if p.BoundaryDepth() != 1 {
		t.Fatalf("BoundaryDepth = %d, want 1", p.BoundaryDepth())
	}
	if !p.AtBoundary() {
		t.Fatal("AtBoundary = false before ) with whitespace")
	}
	if p.Index() != 1 {
		t.Errorf("AtBoundary moved the cursor to %d", p.Index())
	}
	if !p.AtTerminator(Terminator{}) {
		t.Error("AtTerminator = false at a boundary")
	}
	if !p.MatchBoundary() {
		t.Fatal("MatchBoundary failed")
	}
	if p.BoundaryDepth() != 0 || p.Index() != 3 {
		t.Errorf("after MatchBoundary: depth %d index %d, want 0 and 3", p.BoundaryDepth(), p.Index())
	}

	p.Restore(cp)
	if p.Index() != 1 || p.BoundaryDepth() != 0 {
		t.Errorf("Restore: index %d depth %d", p.Index(), p.BoundaryDepth())
	}
	p.PushBoundary(")")
	p.PushBoundary("]")
	if p.AtBoundary() {
		t.Error("only the innermost boundary counts")
	}
	p.Restore(cp)
	if p.BoundaryDepth() != 0 {
		t.Errorf("Restore kept %d boundaries", p.BoundaryDepth())
	}
}

func TestTerminatorCondition(t *testing.T) {
	stopAtEqual := Terminator{Condition: func(p *Parser) bool {
		p.SkipSpace()
		return p.Match("=")
	}}
	p := New(Tokenize("a+b = c"), MustIndex(testEntries()))
	got := p.ParseExpression(stopAtEqual)
	if got.String() != `["Add","a","b"]` {
		t.Errorf("ParseExpression = %s", got)
	}
	if p.Index() != 3 {
		t.Errorf("cursor at %d, want 3", p.Index())
	}
}

func TestStalledParseFails(t *testing.T) {
	spin := &ExpressionEntry{
		Trigger: Trigger{Latex: `\spin`},
		Name:    "Spin",
		Parse: func(p *Parser, until Terminator) *mathjson.Expr {
			for p.Peek() != "never" {
			}
			return nil
		},
	}
	idx := MustIndex(testEntries(spin))
	_, err := Parse(`1+\spin`, idx)
	var stalled *StalledError
	if !errors.As(err, &stalled) {
		t.Fatalf("Parse error = %v, want *StalledError", err)
	}
	if stalled.Index != 3 {
		t.Errorf("stalled at %d, want 3", stalled.Index)
	}
}

func TestSourceSpans(t *testing.T) {
	got := parseWith(t, "1 + 2x", testEntries(), WithSourceSpans())
	if got.Latex != "1 + 2x" {
		t.Errorf("root Latex = %q", got.Latex)
	}
	if rhs := got.Op(1); rhs == nil || rhs.Latex != "2x" {
		t.Errorf("rhs = %v", rhs)
	}
}

func TestUnclosedEnclosure(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(x", `["Error","'expected-closing-delimiter'",["LatexString","'(x'"]]`},
		{"(a+b", `["Error","'expected-closing-delimiter'",["LatexString","'(a+b'"]]`},
		{"((x)", `["Error","'expected-closing-delimiter'",["LatexString","'((x)'"]]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseWith(t, tt.input, testEntries())
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFinishLeavesNoBoundaries(t *testing.T) {
	idx := MustIndex(testEntries())
	for _, src := range []string{"(x", "((x)", "x)", "(a+(b", "{1+", "(x)+(y", "{(}"} {
		p := New(Tokenize(src), idx)
		if _, err := p.Finish(); err != nil {
			t.Fatalf("Finish(%q): %v", src, err)
		}
		if p.BoundaryDepth() != 0 {
			t.Errorf("%q: %d boundaries left after Finish", src, p.BoundaryDepth())
		}
		if !p.AtEnd() {
			t.Errorf("%q: cursor at %d of %d", src, p.Index(), len(p.Tokens()))
		}
	}
}

func TestDeepNesting(t *testing.T) {
	inputs := []string{
		strings.Repeat("(", 300) + "x",
		strings.Repeat("(", 60) + "x)",
		strings.Repeat("{", 400) + "x",
		strings.Repeat("f(", 60) + "x",
		strings.Repeat("(", 30) + "x" + strings.Repeat(")", 29),
	}
	idx := MustIndex(testEntries())
	for _, src := range inputs {
		got, err := Parse(src, idx)
		if err != nil {
			t.Fatalf("Parse(%.20q...): %v", src, err)
		}
		if !got.HasErrors() {
			t.Errorf("Parse(%.20q...) = %s, want an error node", src, got)
		}
	}
}

func TestEnclosureOutcomeIsRemembered(t *testing.T) {
	p := New(Tokenize("((x)"), MustIndex(testEntries()))
	if got := p.parseEnclosure(); got != nil {
		t.Fatalf("parseEnclosure = %s, want nil", got)
	}
	if p.Index() != 0 {
		t.Fatalf("failed enclosure moved the cursor to %d", p.Index())
	}
	if _, ok := p.memo[memoKey{rule: memoEnclosure, index: 0}]; !ok {
		t.Error("failed enclosure was not remembered")
	}
	if _, ok := p.memo[memoKey{rule: memoEnclosure, index: 1, context: ")"}]; !ok {
		t.Error("inner enclosure was not remembered under its boundary")
	}

	p.index = 1
	p.PushBoundary(")")
	got := p.parseEnclosure()
	if got == nil || got.String() != `"x"` || p.Index() != 4 {
		t.Errorf("recalled enclosure = %v at %d, want x at 4", got, p.Index())
	}
}
