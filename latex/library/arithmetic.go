package library

import (
	"strings"

	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func arithmetic() []parser.Entry {
	both, left, right := parser.AssocBoth, parser.AssocLeft, parser.AssocRight
	return []parser.Entry{
		infix(",", "Sequence", PrecSequence, both),
		infix("+", "Add", PrecAdd, both),
		infix("-", "Subtract", PrecAdd, left),
		infix(`\pm`, "PlusMinus", PrecAdd, left),
		infix(`\mp`, "MinusPlus", PrecAdd, left),
		infix("*", "Multiply", PrecMultiply, both),
		infix(`\times`, "Multiply", PrecMultiply, both),
		infix(`\cdot`, "Multiply", PrecMultiply, both),
		infix(`\ast`, "Multiply", PrecMultiply, both),
		infix("/", "Divide", PrecDivide, left),
		infix(`\div`, "Divide", PrecDivide, left),
		infix(`\bmod`, "Mod", PrecMod, left),
		infix(`\mod`, "Mod", PrecMod, left),

		// f^{(n)} is the n-th derivative; it must come before plain ^.
		&parser.InfixEntry{Trigger: parser.Trigger{Latex: "^"}, Name: "Derivative", Precedence: PrecScript, Associativity: right, Parse: parseLagrange},
		&parser.InfixEntry{Trigger: parser.Trigger{Latex: `^\prime`}, Name: "Derivative", Precedence: PrecScript, Associativity: right, Parse: parsePrimeScript},
		infix("^", "Power", PrecScript, right),
		infix("_", "Subscript", PrecScript, left),

		&parser.PrefixEntry{Trigger: parser.Trigger{Latex: "-"}, Name: "Negate", Precedence: PrecAdd, Parse: parseNegate},
		&parser.PrefixEntry{Trigger: parser.Trigger{Latex: "+"}, Name: "Plus", Precedence: PrecAdd, Parse: parsePlus},
		&parser.PrefixEntry{Trigger: parser.Trigger{Latex: `\pm`}, Name: "PlusMinus", Precedence: PrecAdd},

		&parser.PostfixEntry{Trigger: parser.Trigger{Latex: "!"}, Name: "Factorial", Precedence: PrecPostfix},
		&parser.PostfixEntry{Trigger: parser.Trigger{Latex: "!!"}, Name: "Factorial2", Precedence: PrecPostfix},
		&parser.PostfixEntry{Trigger: parser.Trigger{Latex: `\%`}, Name: "Percent", Precedence: PrecPostfix},
		&parser.PostfixEntry{Trigger: parser.Trigger{Latex: `\degree`}, Name: "Degrees", Precedence: PrecPostfix},
		&parser.PostfixEntry{Trigger: parser.Trigger{Latex: `^\circ`}, Name: "Degrees", Precedence: PrecPostfix},
	}
}

func relations() []parser.Entry {
	both := parser.AssocBoth
	var entries []parser.Entry
	for _, r := range []struct {
		name     string
		triggers []string
	}{
		{"Equal", []string{"="}},
		{"NotEqual", []string{`\ne`, `\neq`}},
		{"LessEqual", []string{`\le`, `\leq`, `\leqslant`, "<="}},
		{"GreaterEqual", []string{`\ge`, `\geq`, `\geqslant`, ">="}},
		{"Less", []string{"<", `\lt`}},
		{"Greater", []string{">", `\gt`}},
		{"Approx", []string{`\approx`}},
		{"Congruent", []string{`\equiv`}},
		{"Similar", []string{`\sim`}},
		{"Proportional", []string{`\propto`}},
	} {
		for _, t := range r.triggers {
			entries = append(entries, infix(t, r.name, PrecRelation, both))
		}
	}
	return append(entries,
		infix(":=", "Assign", PrecAssign, parser.AssocRight),
		infix(`\coloneq`, "Assign", PrecAssign, parser.AssocRight),
		infix(`\to`, "To", PrecTo, parser.AssocRight),
		infix(`\rightarrow`, "To", PrecTo, parser.AssocRight),
		infix(`\mapsto`, "Mapsto", PrecTo, parser.AssocRight),
	)
}

func logic() []parser.Entry {
	return []parser.Entry{
		infix(`\implies`, "Implies", PrecImplies, parser.AssocRight),
		infix(`\Rightarrow`, "Implies", PrecImplies, parser.AssocRight),
		infix(`\iff`, "Equivalent", PrecEquivalent, parser.AssocNon),
		infix(`\Leftrightarrow`, "Equivalent", PrecEquivalent, parser.AssocNon),
		infix(`\lor`, "Or", PrecOr, parser.AssocBoth),
		infix(`\vee`, "Or", PrecOr, parser.AssocBoth),
		infix(`\land`, "And", PrecAnd, parser.AssocBoth),
		infix(`\wedge`, "And", PrecAnd, parser.AssocBoth),
		&parser.PrefixEntry{Trigger: parser.Trigger{Latex: `\lnot`}, Name: "Not", Precedence: PrecNot},
		&parser.PrefixEntry{Trigger: parser.Trigger{Latex: `\neg`}, Name: "Not", Precedence: PrecNot},
		symbol(`\top`, "True"),
		symbol(`\bot`, "False"),
	}
}

func sets() []parser.Entry {
	return []parser.Entry{
		infix(`\in`, "Element", PrecElement, parser.AssocNon),
		infix(`\notin`, "NotElement", PrecElement, parser.AssocNon),
		infix(`\subset`, "Subset", PrecElement, parser.AssocNon),
		infix(`\subseteq`, "SubsetEqual", PrecElement, parser.AssocNon),
		infix(`\supset`, "Superset", PrecElement, parser.AssocNon),
		infix(`\supseteq`, "SupersetEqual", PrecElement, parser.AssocNon),
		infix(`\cup`, "Union", PrecUnion, parser.AssocBoth),
		infix(`\cap`, "Intersection", PrecUnion, parser.AssocBoth),
		infix(`\setminus`, "SetMinus", PrecMod, parser.AssocLeft),
	}
}

// parseNegate folds the sign into number literals, so -2 is the literal
// -2 and -2x is ["Multiply", -2, "x"].
func parseNegate(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
	operand := p.ParseExpression(parser.Terminator{MinPrec: PrecAdd + 1, Condition: until.Condition})
	if operand == nil {
		if !p.AtEnd() {
			return nil
		}
		return mathjson.Function("Negate", parser.Missing())
	}
	if operand.IsNumber() {
		return negateLiteral(operand)
	}
	if operand.Is("Multiply") && operand.Op(0).IsNumber() {
		ops := append([]*mathjson.Expr{negateLiteral(operand.Op(0))}, operand.Ops[1:]...)
		return mathjson.Function("Multiply", ops...)
	}
	return mathjson.Function("Negate", operand)
}

func negateLiteral(n *mathjson.Expr) *mathjson.Expr {
	if v, ok := strings.CutPrefix(n.Value, "-"); ok {
		return mathjson.Number(v)
	}
	return mathjson.Number("-" + n.Value)
}

func parsePlus(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
	operand := p.ParseExpression(parser.Terminator{MinPrec: PrecAdd + 1, Condition: until.Condition})
	if operand == nil && p.AtEnd() {
		return mathjson.Function("Plus", parser.Missing())
	}
	return operand
}

// parseLagrange reads f^{(n)}. Anything else declines so that ^ falls
// through to Power.
func parseLagrange(p *parser.Parser, lhs *mathjson.Expr, _ parser.Terminator) *mathjson.Expr {
	if lhs.Kind != mathjson.KindSymbol {
		return nil
	}
	if !p.MatchAll(parser.TokenGroupOpen, "(") {
		return nil
	}
	n := p.ParseNumber()
	if n == nil || !n.IsInteger() {
		return nil
	}
	if !p.MatchAll(")", parser.TokenGroupClose) {
		return nil
	}
	return mathjson.Function("Derivative", lhs, n)
}

func parsePrimeScript(_ *parser.Parser, lhs *mathjson.Expr, _ parser.Terminator) *mathjson.Expr {
	return mathjson.Function("Derivative", lhs, mathjson.Number("1"))
}
