package parser

import (
	"strconv"
	"strings"

	"github.com/dhamidi/mathjson/mathjson"
)

func isDigitToken(tok Token) bool {
	return len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9'
}

// ParseNumber parses a numeric literal: digits with optional group
// separators, a fractional part, repeating digits and an exponent. Signs
// are left to prefix operators.
func (p *Parser) ParseNumber() *mathjson.Expr {
	if p.numbers == NumbersNever {
		if tok := p.Peek(); isDigitToken(tok) {
			p.Next()
			return mathjson.Number(tok)
		}
		return nil
	}

	cp := p.Checkpoint()
	whole := p.scanDigits()
	var frac, repeat string
	if p.atDecimalMarker() {
		p.index += len(p.markers.decimal)
		frac = p.scanDigits()
		repeat = p.scanRepeatingDigits()
	}
	if whole == "" && frac == "" && repeat == "" {
		p.Restore(cp)
		return nil
	}

	exp, hasExp := p.scanExponent()
	if p.Match(`\%`) {
		exp -= 2
		hasExp = true
	}
	return mathjson.Number(p.formatNumber(whole, frac, repeat, exp, hasExp))
}

// scanDigits reads digits, skipping group separators that are followed
// by exactly three digits.
func (p *Parser) scanDigits() string {
	var sb strings.Builder
	for {
		tok := p.Peek()
		if isDigitToken(tok) {
			sb.WriteString(tok)
			p.index++
			continue
		}
		if sb.Len() > 0 && p.atGroupSeparator() {
			p.index += len(p.markers.groupSeparator)
			continue
		}
		return sb.String()
	}
}

func (p *Parser) atGroupSeparator() bool {
	sep := p.markers.groupSeparator
	if !p.lookingAt(sep) {
		return false
	}
	i := p.index + len(sep)
	for k := 0; k < 3; k++ {
		if !isDigitToken(p.at(i + k)) {
			return false
		}
	}
	return !isDigitToken(p.at(i + 3))
}

// atDecimalMarker reports a decimal marker followed by a digit or a
// repeating-digits marker.
func (p *Parser) atDecimalMarker() bool {
	if !p.lookingAt(p.markers.decimal) {
		return false
	}
	cp := p.Checkpoint()
	defer p.Restore(cp)
	p.index += len(p.markers.decimal)
	if isDigitToken(p.at(p.index)) {
		return true
	}
	return p.scanRepeatingDigits() != ""
}

// scanRepeatingDigits reads (142857), \overline{3} or the configured
// markers around a run of digits.
func (p *Parser) scanRepeatingDigits() string {
	cp := p.Checkpoint()
	attempts := [][2][]Token{
		{{"("}, {")"}},
		{{`\overline`, TokenGroupOpen}, {TokenGroupClose}},
	}
	if len(p.markers.beginRepeating) > 0 {
		attempts = append([][2][]Token{{p.markers.beginRepeating, p.markers.endRepeating}}, attempts...)
	}
	for _, a := range attempts {
		if !p.MatchAll(a[0]...) {
			continue
		}
		digits := p.scanPlainDigits()
		if digits != "" && (len(a[1]) == 0 || p.MatchAll(a[1]...)) {
			return digits
		}
		p.Restore(cp)
	}
	if p.Match(`\overline`) {
		if tok := p.Peek(); isDigitToken(tok) {
			p.Next()
			return tok
		}
	}
	p.Restore(cp)
	return ""
}

func (p *Parser) scanPlainDigits() string {
	var sb strings.Builder
	for isDigitToken(p.Peek()) {
		sb.WriteString(p.Next())
	}
	return sb.String()
}

// scanExponent reads e-3, \times 10^{-3}, \cdot 10^3 or the configured
// exponent markers. On failure the cursor is unchanged.
func (p *Parser) scanExponent() (int, bool) {
	cp := p.Checkpoint()

	if tok := p.Peek(); tok == "e" || tok == "E" {
		p.Next()
		if exp, ok := p.scanSignedInteger(); ok {
			return exp, true
		}
		p.Restore(cp)
	}

	for _, prod := range p.markers.exponentProducts {
		p.SkipSpace()
		if p.MatchAll(prod...) {
			p.SkipSpace()
			if p.MatchAll("1", "0", "^") {
				if exp, ok := p.scanScriptInteger(); ok {
					return exp, true
				}
			}
		}
		p.Restore(cp)
	}

	if len(p.markers.beginExponent) > 0 && p.MatchAll(p.markers.beginExponent...) {
		exp, ok := p.scanSignedInteger()
		if ok && (len(p.markers.endExponent) == 0 || p.MatchAll(p.markers.endExponent...)) {
			return exp, true
		}
		p.Restore(cp)
	}
	return 0, false
}

func (p *Parser) scanSignedInteger() (int, bool) {
	sign := ""
	switch p.Peek() {
	case "-", "−":
		sign = "-"
		p.Next()
	case "+":
		p.Next()
	}
	digits := p.scanPlainDigits()
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(sign + digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// scanScriptInteger reads the argument of ^ as an integer: {-3}, 3 or
// -3.
func (p *Parser) scanScriptInteger() (int, bool) {
	if p.Match(TokenGroupOpen) {
		n, ok := p.scanSignedInteger()
		if !ok || !p.Match(TokenGroupClose) {
			return 0, false
		}
		return n, true
	}
	if tok := p.Peek(); tok == "-" {
		p.Next()
		if d := p.Peek(); isDigitToken(d) {
			p.Next()
			n, _ := strconv.Atoi("-" + d)
			return n, true
		}
		return 0, false
	}
	if tok := p.Peek(); isDigitToken(tok) {
		p.Next()
		n, _ := strconv.Atoi(tok)
		return n, true
	}
	return 0, false
}

// formatNumber builds the canonical literal. Leading zeros of the whole
// part are dropped; a percent shift moves the decimal point.
func (p *Parser) formatNumber(whole, frac, repeat string, exp int, hasExp bool) string {
	whole = strings.TrimLeft(whole, "0")

	if repeat != "" && p.numberFormat.ExpandRepeatingDigits {
		precision := max(p.numberFormat.Precision, len(frac)+len(repeat))
		for len(frac) < precision {
			frac += repeat
		}
		frac = frac[:precision]
		repeat = ""
	}

	if hasExp && repeat == "" && exp < 0 && exp >= -20 {
		// Shift the decimal point left instead of writing an exponent.
		shift := -exp
		for len(whole) < shift {
			whole = "0" + whole
		}
		frac = whole[len(whole)-shift:] + frac
		whole = strings.TrimLeft(whole[:len(whole)-shift], "0")
		frac = strings.TrimRight(frac, "0")
		hasExp = false
	}

	if whole == "" {
		whole = "0"
	}
	var sb strings.Builder
	sb.WriteString(whole)
	if frac != "" || repeat != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	if repeat != "" {
		sb.WriteString("(" + repeat + ")")
	}
	if hasExp && exp != 0 {
		sb.WriteString("e" + strconv.Itoa(exp))
	}
	return sb.String()
}
