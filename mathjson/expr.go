// Package mathjson models the MathJSON expression tree produced by the
// LaTeX parser: number literals, strings, symbols and function
// applications. Errors are ordinary function applications with the head
// "Error", so they can appear anywhere a valid subexpression could.
package mathjson

import (
	"slices"
	"strings"
)

type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindSymbol
	KindFunction
)

var kindNames = map[Kind]string{
	KindNumber:   "Number",
	KindString:   "String",
	KindSymbol:   "Symbol",
	KindFunction: "Function",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Expr is a node of the expression tree.
//
// For numbers Value holds the normalized literal (e.g. "-1.5e-3" or
// "0.(3)"), for strings the text without quotes, for symbols the name
// and for functions the head. Latex optionally holds the verbatim source
// the node was parsed from.
type Expr struct {
	Kind  Kind
	Value string
	Ops   []*Expr
	Latex string
}

func Number(literal string) *Expr {
	return &Expr{Kind: KindNumber, Value: literal}
}

func String(s string) *Expr {
	return &Expr{Kind: KindString, Value: s}
}

func Symbol(name string) *Expr {
	return &Expr{Kind: KindSymbol, Value: name}
}

// Function builds [head, ...ops]. Nil operands are dropped.
func Function(head string, ops ...*Expr) *Expr {
	e := &Expr{Kind: KindFunction, Value: head}
	for _, op := range ops {
		if op != nil {
			e.Ops = append(e.Ops, op)
		}
	}
	return e
}

// Error builds ["Error", "'code'", ["LatexString", "'latex'"]]. The
// context is omitted when latex is empty.
func Error(code, latex string) *Expr {
	if latex == "" {
		return Function("Error", String(code))
	}
	return Function("Error", String(code), Function("LatexString", String(latex)))
}

// Nothing is the symbol used for an empty parse.
func Nothing() *Expr {
	return Symbol("Nothing")
}

// Head returns the function head, or the kind name for atoms.
func (e *Expr) Head() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindFunction {
		return e.Value
	}
	return e.Kind.String()
}

// Is reports whether e is a function application with the given head.
func (e *Expr) Is(head string) bool {
	return e != nil && e.Kind == KindFunction && e.Value == head
}

func (e *Expr) IsSymbol(name string) bool {
	return e != nil && e.Kind == KindSymbol && e.Value == name
}

func (e *Expr) IsNumber() bool {
	return e != nil && e.Kind == KindNumber
}

func (e *Expr) IsString() bool {
	return e != nil && e.Kind == KindString
}

// IsInteger reports whether e is a number literal without fraction,
// exponent or repeating part.
func (e *Expr) IsInteger() bool {
	if !e.IsNumber() {
		return false
	}
	s := strings.TrimPrefix(e.Value, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (e *Expr) IsError() bool {
	return e.Is("Error")
}

// ErrorCode returns the code of an Error node, or "".
func (e *Expr) ErrorCode() string {
	if !e.IsError() || len(e.Ops) == 0 || !e.Ops[0].IsString() {
		return ""
	}
	return e.Ops[0].Value
}

// ErrorContext returns the LaTeX fragment captured by an Error node.
func (e *Expr) ErrorContext() string {
	if !e.IsError() || len(e.Ops) < 2 {
		return ""
	}
	ctx := e.Ops[1]
	if ctx.Is("LatexString") && len(ctx.Ops) == 1 {
		return ctx.Ops[0].Value
	}
	return ""
}

// Op returns the i-th operand (0-based) or nil.
func (e *Expr) Op(i int) *Expr {
	if e == nil || i < 0 || i >= len(e.Ops) {
		return nil
	}
	return e.Ops[i]
}

func (e *Expr) NOps() int {
	if e == nil {
		return 0
	}
	return len(e.Ops)
}

// With returns a copy of e with extra operands appended. e is not
// modified, which keeps speculative parses free of side effects.
func (e *Expr) With(ops ...*Expr) *Expr {
	c := &Expr{Kind: e.Kind, Value: e.Value, Ops: slices.Clone(e.Ops)}
	for _, op := range ops {
		if op != nil {
			c.Ops = append(c.Ops, op)
		}
	}
	return c
}

// Equal compares two trees structurally, ignoring Latex metadata.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Kind != o.Kind || e.Value != o.Value || len(e.Ops) != len(o.Ops) {
		return false
	}
	for i := range e.Ops {
		if !e.Ops[i].Equal(o.Ops[i]) {
			return false
		}
	}
	return true
}

// Walk visits e and its operands depth first. Returning false from fn
// skips the operands of the current node.
func (e *Expr) Walk(fn func(*Expr) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, op := range e.Ops {
		op.Walk(fn)
	}
}

// Errors returns every Error node in the tree, outermost first.
func (e *Expr) Errors() []*Expr {
	var errs []*Expr
	e.Walk(func(n *Expr) bool {
		if n.IsError() {
			errs = append(errs, n)
			return false
		}
		return true
	})
	return errs
}

func (e *Expr) HasErrors() bool {
	return len(e.Errors()) > 0
}
