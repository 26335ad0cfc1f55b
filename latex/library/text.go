package library

import (
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func text() []parser.Entry {
	var entries []parser.Entry
	for _, cmd := range []string{`\text`, `\textrm`, `\textnormal`, `\mbox`} {
		entries = append(entries, &parser.ExpressionEntry{Trigger: parser.Trigger{Latex: cmd}, Name: "String", Parse: parseText})
	}
	return entries
}

// parseText returns the verbatim content of \text{...} as a string.
// Escaped characters lose their backslash.
func parseText(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	s, ok := p.ParseStringGroup()
	if !ok {
		return nil
	}
	return mathjson.String(unescapeText(s))
}

func unescapeText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '{', '}', '%', '$', '&', '#', '_':
				i++
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
