package library

import (
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func calculus() []parser.Entry {
	var entries []parser.Entry
	for _, cmd := range []string{`\frac`, `\dfrac`, `\tfrac`, `\cfrac`} {
		entries = append(entries, &parser.ExpressionEntry{Trigger: parser.Trigger{Latex: cmd}, Name: "Divide", Parse: parseFraction})
	}
	for _, cmd := range []string{`\binom`, `\dbinom`, `\tbinom`} {
		entries = append(entries, &parser.ExpressionEntry{Trigger: parser.Trigger{Latex: cmd}, Name: "Binomial", Parse: parseBinomial})
	}
	entries = append(entries,
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\sqrt`}, Name: "Sqrt", Parse: parseRoot},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\sum`}, Name: "Sum", Parse: bigOperator("Sum")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\prod`}, Name: "Product", Parse: bigOperator("Product")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\bigcup`}, Name: "Union", Parse: bigOperator("Union")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\bigcap`}, Name: "Intersection", Parse: bigOperator("Intersection")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\int`}, Name: "Integrate", Parse: integral("Integrate")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\iint`}, Name: "Integrate", Parse: integral("Integrate")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\oint`}, Name: "ContourIntegrate", Parse: integral("ContourIntegrate")},
		&parser.ExpressionEntry{Trigger: parser.Trigger{Latex: `\lim`}, Name: "Limit", Parse: parseLimit},
	)
	return entries
}

func parseFraction(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	num := p.ParseArgument()
	den := p.ParseArgument()
	return mathjson.Function("Divide", num, den)
}

func parseBinomial(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	n := p.ParseArgument()
	k := p.ParseArgument()
	return mathjson.Function("Binomial", n, k)
}

// parseRoot reads \sqrt{x} and \sqrt[n]{x}.
func parseRoot(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	degree := p.ParseOptionalGroup()
	body := p.ParseArgument()
	if degree == nil {
		return mathjson.Function("Sqrt", body)
	}
	return mathjson.Function("Root", body, degree)
}

// limits holds the sub- and superscript of a big operator.
type limits struct {
	lower, upper *mathjson.Expr
}

func parseLimits(p *parser.Parser) limits {
	var l limits
	for {
		cp := p.Checkpoint()
		p.SkipSpace()
		switch {
		case l.lower == nil && p.Match("_"):
			l.lower = p.ParseSupsubArgument()
			continue
		case l.upper == nil && p.Match("^"):
			l.upper = p.ParseSupsubArgument()
			continue
		}
		p.Restore(cp)
		return l
	}
}

// tuple builds ["Tuple", index, lower, upper] from limits such as
// _{i=1}^{n}. Absent parts are Nothing.
func (l limits) tuple() *mathjson.Expr {
	if l.lower == nil && l.upper == nil {
		return nil
	}
	index, lower := mathjson.Nothing(), mathjson.Nothing()
	switch {
	case l.lower == nil:
	case l.lower.Is("Equal") && l.lower.NOps() == 2:
		index, lower = l.lower.Op(0), l.lower.Op(1)
	case l.lower.Is("Element") && l.lower.NOps() == 2:
		index, lower = l.lower.Op(0), l.lower.Op(1)
	default:
		index = l.lower
	}
	upper := l.upper
	if upper == nil {
		upper = mathjson.Nothing()
	}
	return mathjson.Function("Tuple", index, lower, upper)
}

func bigOperator(name string) parser.ExpressionParseFunc {
	return func(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
		l := parseLimits(p)
		body := p.ParseExpression(parser.Terminator{MinPrec: PrecAdd + 1, Condition: until.Condition})
		if body == nil {
			body = parser.Missing()
		}
		return mathjson.Function(name, body, l.tuple())
	}
}

// atDifferential reports d followed by a variable, as in dx or
// \mathrm{d}x, which ends the body of an integral.
func atDifferential(p *parser.Parser) bool {
	cp := p.Checkpoint()
	defer p.Restore(cp)
	if !p.MatchLatex(`\mathrm{d}`) && !p.Match("d") {
		return false
	}
	p.SkipSpace()
	_, ok := p.ParseIdentifier()
	return ok
}

func integral(name string) parser.ExpressionParseFunc {
	return func(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
		l := parseLimits(p)
		inner := parser.Terminator{
			MinPrec: PrecAdd,
			Condition: func(p *parser.Parser) bool {
				return atDifferential(p) || (until.Condition != nil && until.Condition(p))
			},
		}
		body := p.ParseExpression(inner)
		if body == nil {
			body = mathjson.Number("1")
		}

		var variable *mathjson.Expr
		cp := p.Checkpoint()
		p.SkipSpace()
		if atDifferential(p) {
			if !p.MatchLatex(`\mathrm{d}`) {
				p.Match("d")
			}
			p.SkipSpace()
			id, _ := p.ParseIdentifier()
			variable = mathjson.Symbol(id)
		} else {
			p.Restore(cp)
		}

		if t := l.tuple(); t != nil {
			if variable != nil {
				t = mathjson.Function("Tuple", variable, l.lowerOrNothing(), l.upperOrNothing())
			}
			return mathjson.Function(name, body, t)
		}
		return mathjson.Function(name, body, variable)
	}
}

func (l limits) lowerOrNothing() *mathjson.Expr {
	if l.lower == nil {
		return mathjson.Nothing()
	}
	return l.lower
}

func (l limits) upperOrNothing() *mathjson.Expr {
	if l.upper == nil {
		return mathjson.Nothing()
	}
	return l.upper
}

// parseLimit reads \lim_{x \to a} f as ["Limit", f, x, a].
func parseLimit(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
	var sub *mathjson.Expr
	cp := p.Checkpoint()
	p.SkipSpace()
	if p.Match("_") {
		sub = p.ParseSupsubArgument()
	} else {
		p.Restore(cp)
	}
	body := p.ParseExpression(parser.Terminator{MinPrec: PrecAdd + 1, Condition: until.Condition})
	if body == nil {
		body = parser.Missing()
	}
	if sub != nil && sub.Is("To") && sub.NOps() == 2 {
		return mathjson.Function("Limit", body, sub.Op(0), sub.Op(1))
	}
	return mathjson.Function("Limit", body, sub)
}
