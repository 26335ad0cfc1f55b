package parser

import (
	"strings"

	"github.com/dhamidi/mathjson/mathjson"
)

// ParseGroup parses a brace group {...} and returns its body. An empty
// group is Nothing. A group without its closing brace yields an
// expected-closing-delimiter error covering what was read.
func (p *Parser) ParseGroup() *mathjson.Expr {
	key := p.memoKey(memoGroup)
	if e, ok := p.recall(key); ok {
		return e.expr
	}
	result := p.parseGroup()
	p.remember(key, memoEntry{expr: result})
	return result
}

func (p *Parser) parseGroup() *mathjson.Expr {
	cp := p.Checkpoint()
	p.SkipSpace()
	if p.Peek() != TokenGroupOpen {
		p.Restore(cp)
		return nil
	}
	from := p.index
	p.Next()
	p.PushBoundary(TokenGroupClose)
	body := p.ParseExpression(Terminator{})
	if p.MatchBoundary() {
		if body == nil {
			return mathjson.Nothing()
		}
		return body
	}
	p.PopBoundary()
	return p.Error(CodeExpectedClosingDelimiter, from)
}

// ParseArgument parses the argument of a command such as \frac: a brace
// group, or a single digit or symbol as in \frac12. A missing argument
// yields an expected-argument error.
func (p *Parser) ParseArgument() *mathjson.Expr {
	if g := p.ParseGroup(); g != nil {
		return g
	}
	cp := p.Checkpoint()
	p.SkipSpace()
	if p.AtEnd() || p.AtBoundary() {
		p.Restore(cp)
		return mathjson.Error(CodeExpectedArgument, "")
	}
	if tok := p.Peek(); isDigitToken(tok) {
		p.Next()
		return mathjson.Number(tok)
	}
	if s := p.ParseSymbol(); s != nil {
		return s
	}
	from := p.index
	p.Next()
	return p.Error(CodeExpectedArgument, from)
}

// ParseStringGroup returns the raw text of a brace group, or "" and
// false when no group follows.
func (p *Parser) ParseStringGroup() (string, bool) {
	cp := p.Checkpoint()
	p.SkipSpace()
	if !p.Match(TokenGroupOpen) {
		p.Restore(cp)
		return "", false
	}
	from := p.index
	depth := 0
	for !p.AtEnd() {
		switch p.Next() {
		case TokenGroupOpen:
			depth++
		case TokenGroupClose:
			if depth == 0 {
				return p.Latex(from, p.index-1), true
			}
			depth--
		}
	}
	p.Restore(cp)
	return "", false
}

// ParseOptionalGroup parses [...] if present.
func (p *Parser) ParseOptionalGroup() *mathjson.Expr {
	key := p.memoKey(memoOptionalGroup)
	if e, ok := p.recall(key); ok {
		return e.expr
	}
	result := p.parseOptionalGroup()
	p.remember(key, memoEntry{expr: result})
	return result
}

func (p *Parser) parseOptionalGroup() *mathjson.Expr {
	cp := p.Checkpoint()
	p.SkipSpace()
	if !p.Match("[") {
		p.Restore(cp)
		return nil
	}
	p.PushBoundary("]")
	body := p.ParseExpression(Terminator{})
	if !p.MatchBoundary() {
		p.Restore(cp)
		return nil
	}
	if body == nil {
		return mathjson.Nothing()
	}
	return body
}

// parseEnclosure parses a matchfix construct at the cursor.
func (p *Parser) parseEnclosure() *mathjson.Expr {
	key := p.memoKey(memoEnclosure)
	if e, ok := p.recall(key); ok {
		return e.expr
	}
	result := p.tryEnclosure()
	p.remember(key, memoEntry{expr: result})
	return result
}

// tryEnclosure tries each matchfix entry whose opening delimiter is at
// the cursor. When the body does not end at the expected delimiter, the
// body is parsed again without the boundary, which recovers nested
// ambiguous delimiters such as |1+|2|+3|. An opening delimiter whose
// closing delimiter appears nowhere after it yields an
// expected-closing-delimiter error.
func (p *Parser) tryEnclosure() *mathjson.Expr {
	start := p.Checkpoint()
	var unclosed *indexedMatchfix
	for _, m := range p.dict.matchfix {
		if !p.lookingAt(m.open) {
			continue
		}
		if !p.closeAhead(p.index+len(m.open), m.close) {
			if unclosed == nil {
				unclosed = m
			}
			continue
		}
		p.index += len(m.open)
		afterOpen := p.Checkpoint()

		p.PushBoundary(m.close...)
		body := p.ParseExpression(Terminator{})
		if p.MatchBoundary() {
			if result := p.finishEnclosure(m.entry, body); result != nil {
				return result
			}
			p.Restore(start)
			continue
		}

		p.Restore(afterOpen)
		body = p.ParseExpression(Terminator{})
		p.SkipSpace()
		if p.MatchAll(m.close...) {
			if result := p.finishEnclosure(m.entry, body); result != nil {
				return result
			}
		}
		p.Restore(start)
	}
	if unclosed != nil {
		return p.unclosedEnclosure(unclosed)
	}
	return nil
}

// closeAhead reports whether close occurs anywhere in tokens[from:].
func (p *Parser) closeAhead(from int, close []Token) bool {
	for i := from; i+len(close) <= len(p.tokens); i++ {
		if hasTokenPrefix(p.tokens[i:], close) {
			return true
		}
	}
	return false
}

// unclosedEnclosure reads the opening delimiter of m and its body, then
// reports the missing closing delimiter over both.
func (p *Parser) unclosedEnclosure(m *indexedMatchfix) *mathjson.Expr {
	from := p.index
	p.index += len(m.open)
	p.PushBoundary(m.close...)
	p.ParseExpression(Terminator{})
	if !p.MatchBoundary() {
		p.PopBoundary()
	}
	return p.Error(CodeExpectedClosingDelimiter, from)
}

// recoverEnclosure is used at the top level when nothing could be parsed
// at the cursor. If a matchfix opens there, its delimiter and body become
// one expected-closing-delimiter error.
func (p *Parser) recoverEnclosure() *mathjson.Expr {
	for _, m := range p.dict.matchfix {
		if p.lookingAt(m.open) {
			return p.unclosedEnclosure(m)
		}
	}
	return nil
}

func (p *Parser) finishEnclosure(entry *MatchfixEntry, body *mathjson.Expr) *mathjson.Expr {
	if entry.Parse != nil {
		return entry.Parse(p, body)
	}
	switch {
	case body == nil:
		return mathjson.Function(entry.Name)
	case body.Is("Sequence"):
		return mathjson.Function(entry.Name, body.Ops...)
	}
	return mathjson.Function(entry.Name, body)
}

// parseEnvironment parses \begin{name} ... \end{name}.
func (p *Parser) parseEnvironment(until Terminator) *mathjson.Expr {
	start := p.Checkpoint()
	p.SkipSpace()
	from := p.index
	if !p.Match(`\begin`) {
		p.Restore(start)
		return nil
	}
	name, ok := p.ParseStringGroup()
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return p.Error(CodeExpectedEnvironmentName, from)
	}

	closing := append([]Token{`\end`, TokenGroupOpen}, triggerTokens(name)...)
	closing = append(closing, TokenGroupClose)
	p.PushBoundary(closing...)

	entry, known := p.dict.Environment(name)
	var result *mathjson.Expr
	switch {
	case !known:
		p.ParseTabular()
	case entry.Parse != nil:
		result = entry.Parse(p, until)
	default:
		result = mathjson.Function(entry.Name, p.ParseTabular()...)
	}

	if !p.MatchBoundary() {
		p.PopBoundary()
		p.skipToEnd(name)
		return p.Error(CodeUnbalancedEnvironment, from)
	}
	if !known {
		return p.Error(CodeUnknownEnvironment, from)
	}
	if result == nil {
		return p.Error(CodeUnbalancedEnvironment, from)
	}
	return result
}

// skipToEnd advances past the matching \end{name}, or to the end of input.
func (p *Parser) skipToEnd(name string) {
	for !p.AtEnd() {
		if p.Peek() == `\end` {
			cp := p.Checkpoint()
			p.Next()
			if got, ok := p.ParseStringGroup(); ok && strings.TrimSpace(got) == name {
				return
			}
			p.Restore(cp)
		}
		p.Next()
	}
}

// ParseTabular parses rows separated by \\ and cells separated by &, up
// to the innermost boundary. Each row is a List of cells.
func (p *Parser) ParseTabular() []*mathjson.Expr {
	var rows []*mathjson.Expr
	var row []*mathjson.Expr
	atCellEnd := func(p *Parser) bool {
		switch p.Peek() {
		case "&", `\\`, `\cr`:
			return true
		}
		return false
	}
	for {
		cell := p.ParseExpression(Terminator{Condition: atCellEnd})
		p.SkipSpace()
		if cell == nil {
			cell = mathjson.Nothing()
		}
		switch p.Peek() {
		case "&":
			p.Next()
			row = append(row, cell)
			continue
		case `\\`, `\cr`:
			p.Next()
			row = append(row, cell)
			rows = append(rows, mathjson.Function("List", row...))
			row = nil
			continue
		}
		if p.AtEnd() || p.AtBoundary() {
			if !cell.IsSymbol("Nothing") || len(row) > 0 {
				row = append(row, cell)
			}
			if len(row) > 0 {
				rows = append(rows, mathjson.Function("List", row...))
			}
			return rows
		}
		// A token no cell can start with: keep it as an error and go on.
		if !cell.IsSymbol("Nothing") {
			row = append(row, cell)
		}
		row = append(row, p.unexpectedToken())
	}
}
