package parser

import (
	"github.com/dhamidi/mathjson/mathjson"
)

// InvisiblePrecedence is the binding power of juxtaposition, as in 2x.
const InvisiblePrecedence = 390

// ParseExpression parses the longest expression allowed by until. It
// returns nil, with the cursor unchanged, when no expression starts here.
func (p *Parser) ParseExpression(until Terminator) *mathjson.Expr {
	return p.parseExpression(until, true)
}

func (p *Parser) parseExpression(until Terminator, allowPrefix bool) *mathjson.Expr {
	start := p.Checkpoint()
	p.SkipSpace()
	from := p.index
	if p.AtTerminator(until) {
		p.Restore(start)
		return nil
	}

	var lhs *mathjson.Expr
	if allowPrefix {
		if p.MatchAll(p.markers.negativeInfinity...) {
			lhs = mathjson.Symbol("NegativeInfinity")
		} else {
			lhs = p.parsePrefixOperator(until)
		}
	}
	if lhs == nil {
		lhs = p.ParsePrimary(until)
	}
	if lhs == nil {
		p.Restore(start)
		return nil
	}

	for {
		cp := p.Checkpoint()
		spaced := p.SkipSpace()
		if p.AtTerminator(until) {
			p.Restore(cp)
			break
		}
		if next := p.parseInfixOperator(lhs, until); next != nil {
			lhs = next
			continue
		}
		if !spaced || !p.significantWhitespace {
			if next := p.parseInvisibleOperator(lhs, until); next != nil {
				lhs = next
				continue
			}
		}
		p.Restore(cp)
		break
	}
	return p.decorate(lhs, from)
}

func (p *Parser) parsePrefixOperator(until Terminator) *mathjson.Expr {
	for _, c := range p.candidates(KindPrefix) {
		entry := c.Entry.(*PrefixEntry)
		cp := p.Checkpoint()
		p.index += c.Consumed
		var result *mathjson.Expr
		if entry.Parse != nil {
			result = entry.Parse(p, until)
		} else {
			result = p.defaultPrefix(entry, until)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	return nil
}

func (p *Parser) defaultPrefix(entry *PrefixEntry, until Terminator) *mathjson.Expr {
	operand := p.ParseExpression(Terminator{MinPrec: entry.Precedence + 1, Condition: until.Condition})
	if operand == nil {
		if !p.AtEnd() {
			return nil
		}
		operand = Missing()
	}
	return mathjson.Function(entry.Name, operand)
}

func (p *Parser) parseInfixOperator(lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
	for _, c := range p.candidates(KindInfix) {
		entry := c.Entry.(*InfixEntry)
		if entry.Precedence < until.MinPrec {
			continue
		}
		cp := p.Checkpoint()
		p.index += c.Consumed
		var result *mathjson.Expr
		if entry.Parse != nil {
			result = entry.Parse(p, lhs, until)
		} else {
			result = p.defaultInfix(entry, lhs, until)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	return nil
}

func (p *Parser) defaultInfix(entry *InfixEntry, lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
	minPrec := entry.Precedence + 1
	if entry.Associativity == AssocRight {
		minPrec = entry.Precedence
	}
	rhs := p.ParseExpression(Terminator{MinPrec: minPrec, Condition: until.Condition})
	if rhs == nil {
		if !p.AtEnd() {
			return nil
		}
		rhs = Missing()
	}
	if entry.Associativity == AssocBoth && lhs.Is(entry.Name) {
		return lhs.With(rhs)
	}
	return mathjson.Function(entry.Name, lhs, rhs)
}

// parsePostfixOperators applies postfix operators to lhs until none
// matches.
func (p *Parser) parsePostfixOperators(lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
	for {
		next := p.parsePostfixOperator(lhs, until)
		if next == nil {
			return lhs
		}
		lhs = next
	}
}

func (p *Parser) parsePostfixOperator(lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
	for _, c := range p.candidates(KindPostfix) {
		entry := c.Entry.(*PostfixEntry)
		if entry.Precedence < until.MinPrec {
			continue
		}
		cp := p.Checkpoint()
		p.index += c.Consumed
		result := mathjson.Function(entry.Name, lhs)
		if entry.Parse != nil {
			result = entry.Parse(p, lhs, until)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	return nil
}

type script struct {
	at  Checkpoint
	arg *mathjson.Expr
}

// parseSupsub collects a run of _ and ^ markers after base and applies
// every subscript before any superscript, so x_1^2 and x^2_1 agree.
func (p *Parser) parseSupsub(base *mathjson.Expr, until Terminator) *mathjson.Expr {
	var subs, sups []script
	for {
		cp := p.Checkpoint()
		p.SkipSpace()
		tok := p.Peek()
		if tok != "_" && tok != "^" {
			p.Restore(cp)
			break
		}
		at := p.Checkpoint()
		p.Next()
		arg := p.ParseSupsubArgument()
		if arg == nil {
			p.Restore(cp)
			break
		}
		if tok == "_" {
			subs = append(subs, script{at: at, arg: arg})
		} else {
			sups = append(sups, script{at: at, arg: arg})
		}
	}
	if len(subs) == 0 && len(sups) == 0 {
		return base
	}

	end := p.Checkpoint()
	result := base
	for _, s := range subs {
		result = p.applyScript(result, s, "Subscript", until)
	}
	for _, s := range sups {
		result = p.applyScript(result, s, "Superscript", until)
	}
	p.Restore(end)
	return result
}

// applyScript re-dispatches a script through the infix entries
// triggered at its marker. The first entry that accepts it wins.
func (p *Parser) applyScript(lhs *mathjson.Expr, s script, fallback string, until Terminator) *mathjson.Expr {
	p.Restore(s.at)
	for _, c := range p.candidates(KindInfix) {
		entry := c.Entry.(*InfixEntry)
		cp := p.Checkpoint()
		p.index += c.Consumed
		var result *mathjson.Expr
		if entry.Parse != nil {
			result = entry.Parse(p, lhs, until)
		} else if c.Consumed == 1 {
			result = mathjson.Function(entry.Name, lhs, s.arg)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	return mathjson.Function(fallback, lhs, s.arg)
}

// ParseSupsubArgument reads the argument of _ or ^: a group, a digit,
// a signed digit, or a single symbol.
func (p *Parser) ParseSupsubArgument() *mathjson.Expr {
	p.SkipSpace()
	if g := p.ParseGroup(); g != nil {
		return g
	}
	tok := p.Peek()
	switch {
	case tok == "":
		return Missing()
	case isDigitToken(tok):
		p.Next()
		return mathjson.Number(tok)
	case tok == "-" || tok == "+":
		if d := p.at(p.index + 1); isDigitToken(d) {
			p.index += 2
			if tok == "-" {
				return mathjson.Number("-" + d)
			}
			return mathjson.Number(d)
		}
		p.Next()
		return mathjson.Symbol(tok)
	case tok == TokenGroupClose || p.isClosingCommand(tok):
		return nil
	}

	cp := p.Checkpoint()
	for _, c := range p.candidates(KindSymbol) {
		if c.Consumed != 1 {
			continue
		}
		entry := c.Entry.(*SymbolEntry)
		p.index++
		result := mathjson.Symbol(entry.Name)
		if entry.Parse != nil {
			result = entry.Parse(p)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	if id, ok := p.parseSingleTokenIdentifier(); ok {
		return mathjson.Symbol(id)
	}
	p.Restore(cp)
	if IsCommand(tok) {
		p.Next()
		return mathjson.Symbol(tok[1:])
	}
	return nil
}

// parseInvisibleOperator handles juxtaposition: function application,
// mixed numbers, implicit products and sequences.
func (p *Parser) parseInvisibleOperator(lhs *mathjson.Expr, until Terminator) *mathjson.Expr {
	if until.MinPrec > InvisiblePrecedence {
		return nil
	}
	cp := p.Checkpoint()

	if lhs.Kind == mathjson.KindSymbol && p.Classify(lhs.Value) == IdentifierFunction {
		if args, ok := p.ParseArguments(); ok {
			return mathjson.Function(lhs.Value, args...)
		}
	}

	rhs := p.parseExpression(Terminator{MinPrec: InvisiblePrecedence + 1, Condition: until.Condition}, false)
	if rhs == nil {
		p.Restore(cp)
		return nil
	}

	if n, d, ok := simpleFraction(rhs); ok && lhs.IsInteger() && !isNegative(lhs) {
		return mathjson.Function("Add", lhs, mathjson.Function("Rational", n, d))
	}
	if isNumberLike(lhs) && isNumberLike(rhs) {
		return flatten("Multiply", lhs, rhs)
	}
	if isSequenceLike(lhs) || isSequenceLike(rhs) {
		return flatten("Sequence", lhs, rhs)
	}
	return mathjson.Function("InvisibleOperator", lhs, rhs)
}

// flatten combines lhs and rhs under head, splicing operands of either
// side that already has that head.
func flatten(head string, lhs, rhs *mathjson.Expr) *mathjson.Expr {
	var ops []*mathjson.Expr
	for _, e := range []*mathjson.Expr{lhs, rhs} {
		if e.Is(head) {
			ops = append(ops, e.Ops...)
		} else {
			ops = append(ops, e)
		}
	}
	return mathjson.Function(head, ops...)
}

func simpleFraction(e *mathjson.Expr) (*mathjson.Expr, *mathjson.Expr, bool) {
	if !(e.Is("Divide") || e.Is("Rational")) || e.NOps() != 2 {
		return nil, nil, false
	}
	n, d := e.Op(0), e.Op(1)
	if !n.IsInteger() || !d.IsInteger() || isNegative(n) || isNegative(d) {
		return nil, nil, false
	}
	return n, d, true
}

func isNegative(e *mathjson.Expr) bool {
	return e.IsNumber() && len(e.Value) > 0 && e.Value[0] == '-'
}

var nonNumericHeads = map[string]bool{
	"Sequence": true, "Delimiter": true, "String": true, "List": true,
	"Set": true, "Tuple": true, "Matrix": true, "Which": true,
	"InvisibleOperator": true,
}

func isNumberLike(e *mathjson.Expr) bool {
	if e.IsString() {
		return false
	}
	if e.Kind == mathjson.KindFunction {
		return !nonNumericHeads[e.Head()]
	}
	return true
}

func isSequenceLike(e *mathjson.Expr) bool {
	return e.IsString() || e.Is("Sequence") || e.Is("Delimiter") || e.Is("String")
}
