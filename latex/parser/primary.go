package parser

import (
	"slices"
	"strconv"

	"github.com/dhamidi/mathjson/mathjson"
)

// ParsePrimary parses an operand: a group, number, enclosure,
// environment, constant, function application or symbol, followed by
// any postfix operators and scripts.
func (p *Parser) ParsePrimary(until Terminator) *mathjson.Expr {
	start := p.Checkpoint()
	p.SkipSpace()
	from := p.index
	if p.AtTerminator(until) {
		p.Restore(start)
		return nil
	}

	result := p.parseOperand(until)
	if result == nil {
		p.Restore(start)
		return nil
	}
	result = p.parsePostfixOperators(result, until)
	result = p.parseSupsub(result, until)
	result = p.parsePostfixOperators(result, until)
	return p.decorate(result, from)
}

func (p *Parser) parseOperand(until Terminator) *mathjson.Expr {
	if g := p.ParseGroup(); g != nil {
		return g
	}
	if n := p.ParseNumber(); n != nil {
		return n
	}
	if e := p.parseEnclosure(); e != nil {
		return e
	}
	if e := p.parseEnvironment(until); e != nil {
		return e
	}
	if p.MatchAll(p.markers.positiveInfinity...) {
		return mathjson.Symbol("PositiveInfinity")
	}
	if p.MatchAll(p.markers.notANumber...) {
		return mathjson.Symbol("NaN")
	}
	if e := p.parseExpressionEntry(until); e != nil {
		return e
	}
	if e := p.parseFunction(until); e != nil {
		return e
	}
	if e := p.ParseSymbol(); e != nil {
		return e
	}
	return p.parseUnknownCommand()
}

func (p *Parser) parseExpressionEntry(until Terminator) *mathjson.Expr {
	for _, c := range p.candidates(KindExpression) {
		entry := c.Entry.(*ExpressionEntry)
		cp := p.Checkpoint()
		p.index += c.Consumed
		result := mathjson.Symbol(entry.Name)
		if entry.Parse != nil {
			result = entry.Parse(p, until)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	return nil
}

// parseFunction parses a dictionary function or an identifier classified
// as a function, with its arguments.
func (p *Parser) parseFunction(until Terminator) *mathjson.Expr {
	for _, c := range p.candidates(KindFunction) {
		entry := c.Entry.(*FunctionEntry)
		cp := p.Checkpoint()
		p.index += c.Consumed
		var result *mathjson.Expr
		if entry.Parse != nil {
			result = entry.Parse(p, until)
		} else {
			result = p.ParseFunctionArguments(entry.Name, until)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}

	cp := p.Checkpoint()
	id, ok := p.parseIdentifierBody()
	if !ok || p.Classify(id) != IdentifierFunction {
		p.Restore(cp)
		return nil
	}
	primes := p.parsePrimes()
	args, ok := p.ParseArguments()
	if !ok {
		return withPrimes(mathjson.Symbol(id), primes)
	}
	if primes > 0 {
		return apply(withPrimes(mathjson.Symbol(id), primes), args)
	}
	return mathjson.Function(id, args...)
}

// ParseFunctionArguments reads what follows a known function name:
// primes, a subscript, a power, and either a parenthesized argument
// list or an implicit argument as in \sin x.
func (p *Parser) ParseFunctionArguments(name string, until Terminator) *mathjson.Expr {
	primes := p.parsePrimes()
	var sub, sup *mathjson.Expr
	for {
		cp := p.Checkpoint()
		p.SkipSpace()
		switch {
		case sub == nil && p.Match("_"):
			sub = p.ParseSupsubArgument()
			continue
		case sup == nil && p.Match("^"):
			sup = p.ParseSupsubArgument()
			continue
		}
		p.Restore(cp)
		break
	}

	args, ok := p.ParseArguments()
	if !ok {
		arg := p.ParseExpression(Terminator{MinPrec: InvisiblePrecedence, Condition: until.Condition})
		if arg != nil {
			args = []*mathjson.Expr{arg}
		}
	}
	if sub != nil {
		args = append(args, sub)
	}

	var result *mathjson.Expr
	switch {
	case len(args) == 0:
		result = withPrimes(mathjson.Symbol(name), primes)
	case primes > 0:
		result = apply(withPrimes(mathjson.Symbol(name), primes), args)
	default:
		result = mathjson.Function(name, args...)
	}
	if sup != nil {
		result = mathjson.Function("Power", result, sup)
	}
	return result
}

func withPrimes(fn *mathjson.Expr, primes int) *mathjson.Expr {
	if primes == 0 {
		return fn
	}
	return mathjson.Function("Derivative", fn, mathjson.Number(strconv.Itoa(primes)))
}

func apply(fn *mathjson.Expr, args []*mathjson.Expr) *mathjson.Expr {
	return mathjson.Function("Apply", append([]*mathjson.Expr{fn}, args...)...)
}

var argumentDelimiters = [][2][]Token{
	{{"("}, {")"}},
	{{`\left`, "("}, {`\right`, ")"}},
	{{`\lparen`}, {`\rparen`}},
	{{`\bigl`, "("}, {`\bigr`, ")"}},
}

// ParseArguments reads a parenthesized, comma separated argument list.
// An empty list yields no arguments and ok true.
func (p *Parser) ParseArguments() ([]*mathjson.Expr, bool) {
	key := p.memoKey(memoArguments)
	if e, ok := p.recall(key); ok {
		return e.args, e.ok
	}
	args, ok := p.parseArguments()
	p.remember(key, memoEntry{args: args, ok: ok})
	return slices.Clip(args), ok
}

func (p *Parser) parseArguments() ([]*mathjson.Expr, bool) {
	cp := p.Checkpoint()
	p.SkipSpace()
	for _, delims := range argumentDelimiters {
		if !p.MatchAll(delims[0]...) {
			continue
		}
		p.PushBoundary(delims[1]...)
		body := p.ParseExpression(Terminator{})
		if !p.MatchBoundary() {
			p.Restore(cp)
			return nil, false
		}
		switch {
		case body == nil:
			return nil, true
		case body.Is("Sequence") || body.Is("Delimiter"):
			return body.Ops, true
		}
		return []*mathjson.Expr{body}, true
	}
	p.Restore(cp)
	return nil, false
}

// ParseSymbol parses a dictionary symbol or an identifier.
func (p *Parser) ParseSymbol() *mathjson.Expr {
	for _, c := range p.candidates(KindSymbol) {
		entry := c.Entry.(*SymbolEntry)
		cp := p.Checkpoint()
		p.index += c.Consumed
		result := mathjson.Symbol(entry.Name)
		if entry.Parse != nil {
			result = entry.Parse(p)
		}
		if result != nil {
			return result
		}
		p.Restore(cp)
	}
	if id, ok := p.ParseIdentifier(); ok {
		return mathjson.Symbol(id)
	}
	return nil
}

// parseUnknownCommand turns a command nothing else accepted into an
// error node. Commands that close an enclosing construct, or that start
// an infix or postfix operator, are left for the caller.
func (p *Parser) parseUnknownCommand() *mathjson.Expr {
	tok := p.Peek()
	if !IsCommand(tok) || p.isClosingCommand(tok) || p.dict.isOperatorTrigger(tok) {
		return nil
	}
	from := p.index
	p.Next()
	if _, ok := fontCommands[tok]; ok {
		p.skipArgument()
		return p.Error(CodeInvalidIdentifier, from)
	}
	return p.Error(CodeUnexpectedCommand, from)
}

// skipArgument consumes a group or a single token.
func (p *Parser) skipArgument() {
	p.SkipSpace()
	if p.Peek() != TokenGroupOpen {
		if !p.AtEnd() {
			p.Next()
		}
		return
	}
	depth := 0
	for !p.AtEnd() {
		switch p.Next() {
		case TokenGroupOpen:
			depth++
		case TokenGroupClose:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}
