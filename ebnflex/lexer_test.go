package ebnflex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

const testGrammar = `
Identifier = start { part } .
start = letter | "_" .
part = letter | digit | "_" .
Hex = "0x" hexdigit { hexdigit } .
hexdigit = "0" … "9" | "a" … "f" .
`

func testClasses() map[string]Class {
	return map[string]Class{
		"letter": unicode.IsLetter,
		"digit":  unicode.IsDigit,
	}
}

func TestMatcherIdentifier(t *testing.T) {
	m := MustCompile("test.ebnf", testGrammar, "Identifier", testClasses())

	tests := []struct {
		input string
		want  bool
	}{
		{"x", true},
		{"x_1", true},
		{"_private", true},
		{"αβ", true},
		{"speed2", true},
		{"1x", false},
		{"x-y", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := m.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcherRanges(t *testing.T) {
	m := MustCompile("test.ebnf", testGrammar, "Hex", testClasses())
	if !m.Match("0xff") {
		t.Error("0xff should match")
	}
	if m.Match("0xfg") {
		t.Error("0xfg should not match")
	}
}

func TestCompileUndefinedName(t *testing.T) {
	_, err := Compile("bad.ebnf", strings.NewReader(`A = b .`), "A", nil)
	if err == nil {
		t.Fatal("expected error for undefined name")
	}
	if !strings.Contains(err.Error(), `undefined name "b"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompileMissingStart(t *testing.T) {
	_, err := Compile("bad.ebnf", strings.NewReader(`A = "a" .`), "B", nil)
	if err == nil {
		t.Fatal("expected error for missing start production")
	}
}

func TestLoadGrammar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ident.ebnf")
	if err := os.WriteFile(path, []byte(testGrammar), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadGrammar(path, "Identifier", testClasses())
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("x_max") {
		t.Error("x_max should match")
	}

	if _, err := LoadGrammar(filepath.Join(t.TempDir(), "missing.ebnf"), "Identifier", testClasses()); err == nil {
		t.Error("expected an error for a missing file")
	}
}
