// Package library is the built-in LaTeX dictionary: operators,
// delimiters, functions, constants, big operators and environments.
package library

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/mathjson/latex/parser"
)

var log = commonlog.GetLogger("mathjson.library")

// Operator precedences. Higher binds tighter.
const (
	PrecSequence   = 20
	PrecEquivalent = 219
	PrecImplies    = 220
	PrecOr         = 230
	PrecAnd        = 235
	PrecElement    = 240
	PrecRelation   = 245
	PrecAssign     = 260
	PrecTo         = 270
	PrecAdd        = 275
	PrecUnion      = 350
	PrecMultiply   = parser.InvisiblePrecedence
	PrecMod        = 650
	PrecDivide     = 660
	PrecScript     = 720
	PrecPostfix    = 810
	PrecNot        = 880
)

// Entries returns the built-in dictionary in registration order. Each
// call returns a fresh slice, so callers may append their own entries.
func Entries() []parser.Entry {
	var entries []parser.Entry
	for _, section := range [][]parser.Entry{
		arithmetic(),
		relations(),
		logic(),
		sets(),
		delimiters(),
		functions(),
		constants(),
		calculus(),
		text(),
		environments(),
	} {
		entries = append(entries, section...)
	}
	log.Debugf("built-in dictionary has %d entries", len(entries))
	return entries
}

func infix(latex, name string, prec int, assoc parser.Associativity) *parser.InfixEntry {
	return &parser.InfixEntry{
		Trigger:       parser.Trigger{Latex: latex},
		Name:          name,
		Precedence:    prec,
		Associativity: assoc,
	}
}

func symbol(latex, name string) *parser.SymbolEntry {
	return &parser.SymbolEntry{Trigger: parser.Trigger{Latex: latex}, Name: name}
}

func function(latex, name string) *parser.FunctionEntry {
	return &parser.FunctionEntry{Trigger: parser.Trigger{Latex: latex}, Name: name}
}

func namedFunction(identifier, name string) *parser.FunctionEntry {
	return &parser.FunctionEntry{Trigger: parser.Trigger{Identifier: identifier}, Name: name}
}

func matchfix(open, close, name string) *parser.MatchfixEntry {
	return &parser.MatchfixEntry{Open: open, Close: close, Name: name}
}
