package library

import (
	"github.com/dhamidi/mathjson/latex/parser"
)

var trigonometric = map[string]string{
	"sin": "Sin", "cos": "Cos", "tan": "Tan", "cot": "Cot", "sec": "Sec", "csc": "Csc",
	"sinh": "Sinh", "cosh": "Cosh", "tanh": "Tanh", "coth": "Coth",
	"arcsin": "Arcsin", "arccos": "Arccos", "arctan": "Arctan",
}

func functions() []parser.Entry {
	var entries []parser.Entry
	for _, name := range []string{
		"sin", "cos", "tan", "cot", "sec", "csc", "sinh", "cosh", "tanh",
		"coth", "arcsin", "arccos", "arctan",
	} {
		entries = append(entries, function(`\`+name, trigonometric[name]))
	}
	for _, f := range [][2]string{
		{`\ln`, "Ln"},
		{`\log`, "Log"},
		{`\lg`, "Lg"},
		{`\exp`, "Exp"},
		{`\max`, "Max"},
		{`\min`, "Min"},
		{`\sup`, "Supremum"},
		{`\inf`, "Infimum"},
		{`\gcd`, "GCD"},
		{`\det`, "Determinant"},
		{`\dim`, "Dimension"},
		{`\ker`, "Kernel"},
		{`\deg`, "Degree"},
		{`\arg`, "Arg"},
		{`\Pr`, "Probability"},
	} {
		entries = append(entries, function(f[0], f[1]))
	}
	for _, f := range [][2]string{
		{"lcm", "LCM"},
		{"gcd", "GCD"},
		{"mean", "Mean"},
		{"median", "Median"},
		{"sgn", "Sign"},
		{"sign", "Sign"},
		{"Re", "Real"},
		{"Im", "Imaginary"},
		{"arcsec", "Arcsec"},
		{"arccsc", "Arccsc"},
		{"arccot", "Arccot"},
		{"tr", "Trace"},
	} {
		entries = append(entries, namedFunction(f[0], f[1]))
	}
	return entries
}

func constants() []parser.Entry {
	return []parser.Entry{
		symbol(`\pi`, "Pi"),
		symbol(`\mathrm{e}`, "ExponentialE"),
		symbol(`\exponentialE`, "ExponentialE"),
		symbol(`\mathrm{i}`, "ImaginaryUnit"),
		symbol(`\imaginaryI`, "ImaginaryUnit"),
		symbol(`\emptyset`, "EmptySet"),
		symbol(`\varnothing`, "EmptySet"),
		symbol(`\mathbb{R}`, "RealNumbers"),
		symbol(`\R`, "RealNumbers"),
		symbol(`\mathbb{Q}`, "RationalNumbers"),
		symbol(`\Q`, "RationalNumbers"),
		symbol(`\mathbb{Z}`, "Integers"),
		symbol(`\Z`, "Integers"),
		symbol(`\mathbb{N}`, "NonNegativeIntegers"),
		symbol(`\N`, "NonNegativeIntegers"),
		symbol(`\mathbb{C}`, "ComplexNumbers"),
		symbol(`\C`, "ComplexNumbers"),
		symbol(`\ldots`, "Ellipsis"),
		symbol(`\cdots`, "Ellipsis"),
		symbol(`\dots`, "Ellipsis"),
	}
}
