package library

import (
	"strings"

	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func environments() []parser.Entry {
	var entries []parser.Entry
	for _, env := range []string{"matrix", "pmatrix", "bmatrix", "Bmatrix", "smallmatrix"} {
		entries = append(entries, &parser.EnvironmentEntry{Environment: env, Name: "Matrix", Parse: parseMatrix})
	}
	entries = append(entries, &parser.EnvironmentEntry{Environment: "array", Name: "Matrix", Parse: parseArray})
	for _, env := range []string{"vmatrix", "Vmatrix"} {
		entries = append(entries, &parser.EnvironmentEntry{Environment: env, Name: "Determinant", Parse: parseDeterminant})
	}
	for _, env := range []string{"cases", "dcases", "rcases"} {
		entries = append(entries, &parser.EnvironmentEntry{Environment: env, Name: "Which", Parse: parseCases})
	}
	return entries
}

// parseMatrix builds ["Matrix", ["List", row...]].
func parseMatrix(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	rows := p.ParseTabular()
	return mathjson.Function("Matrix", mathjson.Function("List", rows...))
}

// parseArray skips the column spec, as in {cc}, then reads a matrix.
func parseArray(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
	p.ParseStringGroup()
	return parseMatrix(p, until)
}

func parseDeterminant(p *parser.Parser, until parser.Terminator) *mathjson.Expr {
	return mathjson.Function("Determinant", parseMatrix(p, until))
}

// parseCases builds ["Which", cond1, value1, ...]. A row without a
// condition, or with "otherwise", gets the condition True.
func parseCases(p *parser.Parser, _ parser.Terminator) *mathjson.Expr {
	var ops []*mathjson.Expr
	for _, row := range p.ParseTabular() {
		value := row.Op(0)
		if value == nil {
			continue
		}
		cond := dropText(row.Op(1))
		if cond == nil {
			cond = mathjson.Symbol("True")
		}
		ops = append(ops, cond, value)
	}
	return mathjson.Function("Which", ops...)
}

// dropText strips words such as "if" or "otherwise" written with \text
// from the leftmost operands of a condition.
func dropText(e *mathjson.Expr) *mathjson.Expr {
	switch {
	case e == nil:
		return nil
	case e.IsString():
		return nil
	case e.IsSymbol("Nothing"):
		return nil
	case e.Is("Sequence"):
		var rest []*mathjson.Expr
		for _, op := range e.Ops {
			if !op.IsString() || strings.TrimSpace(op.Value) != "" && !isFiller(op.Value) {
				rest = append(rest, op)
			}
		}
		switch len(rest) {
		case 0:
			return nil
		case 1:
			return rest[0]
		}
		return mathjson.Function("Sequence", rest...)
	case e.Kind == mathjson.KindFunction && e.NOps() > 0:
		first := dropText(e.Op(0))
		if first == nil {
			return e
		}
		ops := append([]*mathjson.Expr{first}, e.Ops[1:]...)
		return mathjson.Function(e.Value, ops...)
	}
	return e
}

func isFiller(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "if", "when", "for", "otherwise", "else", "where":
		return true
	}
	return false
}
