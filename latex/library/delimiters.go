package library

import (
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func delimiters() []parser.Entry {
	var entries []parser.Entry
	for _, pair := range [][2]string{
		{"(", ")"},
		{`\lparen`, `\rparen`},
		{`\left(`, `\right)`},
		{`\bigl(`, `\bigr)`},
		{`\Bigl(`, `\Bigr)`},
	} {
		entries = append(entries, &parser.MatchfixEntry{Open: pair[0], Close: pair[1], Name: "Delimiter", Parse: parseParentheses})
	}
	for _, group := range []struct {
		name  string
		pairs [][2]string
	}{
		{"List", [][2]string{{"[", "]"}, {`\lbrack`, `\rbrack`}, {`\left[`, `\right]`}, {`\bigl[`, `\bigr]`}}},
		{"Set", [][2]string{{`\{`, `\}`}, {`\lbrace`, `\rbrace`}, {`\left\{`, `\right\}`}, {`\left\lbrace`, `\right\rbrace`}}},
		{"Abs", [][2]string{{"|", "|"}, {`\vert`, `\vert`}, {`\lvert`, `\rvert`}, {`\left|`, `\right|`}, {`\left\vert`, `\right\vert`}}},
		{"Norm", [][2]string{{`\|`, `\|`}, {`\Vert`, `\Vert`}, {`\lVert`, `\rVert`}, {`\left\|`, `\right\|`}}},
		{"AngleBracket", [][2]string{{`\langle`, `\rangle`}, {`\left\langle`, `\right\rangle`}}},
		{"Floor", [][2]string{{`\lfloor`, `\rfloor`}, {`\left\lfloor`, `\right\rfloor`}}},
		{"Ceil", [][2]string{{`\lceil`, `\rceil`}, {`\left\lceil`, `\right\rceil`}}},
	} {
		for _, pair := range group.pairs {
			entries = append(entries, matchfix(pair[0], pair[1], group.name))
		}
	}
	return entries
}

// parseParentheses makes (x) just x. Empty parentheses and comma lists
// keep a Delimiter so that (a, b) stays distinguishable from a, b.
func parseParentheses(_ *parser.Parser, body *mathjson.Expr) *mathjson.Expr {
	switch {
	case body == nil:
		return mathjson.Function("Delimiter")
	case body.Is("Sequence"):
		return mathjson.Function("Delimiter", body.Ops...)
	}
	return body
}
