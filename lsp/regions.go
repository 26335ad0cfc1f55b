package lsp

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Region is a span of math markup inside a document. Start and End are
// byte offsets of the math content, excluding its delimiters.
type Region struct {
	Start int
	End   int
	Latex string
}

var delimiterPairs = []struct{ open, close string }{
	{"$$", "$$"},
	{`\[`, `\]`},
	{`\(`, `\)`},
	{"$", "$"},
}

// FindRegions locates $...$, $$...$$, \(...\) and \[...\] spans. A
// document without any delimiters is treated as one formula per
// non-blank line. An unterminated span runs to the end of the text.
func FindRegions(text string) []Region {
	var regions []Region
	for i := 0; i < len(text); {
		if text[i] == '\\' && i+1 < len(text) && text[i+1] == '$' {
			i += 2
			continue
		}
		matched := false
		for _, d := range delimiterPairs {
			if !strings.HasPrefix(text[i:], d.open) {
				continue
			}
			start := i + len(d.open)
			end := findClose(text, start, d.close)
			next := end + len(d.close)
			if end < 0 {
				end, next = len(text), len(text)
			}
			regions = append(regions, Region{Start: start, End: end, Latex: text[start:end]})
			i = next
			matched = true
			break
		}
		if !matched {
			i++
		}
	}
	if len(regions) > 0 {
		return regions
	}
	return lineRegions(text)
}

func findClose(text string, from int, close string) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\\' && close == "$" && i+1 < len(text) && text[i+1] == '$' {
			i++
			continue
		}
		if strings.HasPrefix(text[i:], close) {
			return i
		}
	}
	return -1
}

func lineRegions(text string) []Region {
	var regions []Region
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			start := offset + strings.Index(line, trimmed)
			regions = append(regions, Region{Start: start, End: start + len(trimmed), Latex: trimmed})
		}
		offset += len(line)
	}
	return regions
}

// positionAt converts a byte offset into an LSP position, counting
// characters in UTF-16 code units.
func positionAt(text string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	var line, char protocol.UInteger
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			char = 0
			continue
		}
		if r >= 0x10000 {
			char += 2
		} else {
			char++
		}
	}
	return protocol.Position{Line: line, Character: char}
}

// offsetAt converts an LSP position into a byte offset.
func offsetAt(text string, pos protocol.Position) int {
	var line, char protocol.UInteger
	for i, r := range text {
		if line == pos.Line && char >= pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			char = 0
			continue
		}
		if line == pos.Line {
			if utf8.RuneLen(r) == 4 {
				char += 2
			} else {
				char++
			}
		}
	}
	return len(text)
}

// regionAt returns the region containing offset.
func regionAt(regions []Region, offset int) (Region, bool) {
	for _, r := range regions {
		if offset >= r.Start && offset <= r.End {
			return r, true
		}
	}
	return Region{}, false
}
