package parser

import "github.com/dhamidi/mathjson/mathjson"

// EntryKind enumerates the dictionary entry variants.
type EntryKind int

const (
	KindSymbol EntryKind = iota
	KindFunction
	KindPrefix
	KindInfix
	KindPostfix
	KindMatchfix
	KindEnvironment
	KindExpression

	numKinds
)

var entryKindNames = map[EntryKind]string{
	KindSymbol:      "symbol",
	KindFunction:    "function",
	KindPrefix:      "prefix",
	KindInfix:       "infix",
	KindPostfix:     "postfix",
	KindMatchfix:    "matchfix",
	KindEnvironment: "environment",
	KindExpression:  "expression",
}

func (k EntryKind) String() string {
	if name, ok := entryKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEntryKind maps a kind name back to its EntryKind.
func ParseEntryKind(s string) (EntryKind, bool) {
	for k, name := range entryKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Associativity of an infix operator.
type Associativity int

const (
	// AssocLeft: a-b-c is (a-b)-c.
	AssocLeft Associativity = iota
	// AssocRight: a^b^c is a^(b^c).
	AssocRight
	// AssocNon: no flattening and no right recursion at equal precedence.
	AssocNon
	// AssocBoth: a+b+c becomes a single n-ary application.
	AssocBoth
)

var associativityNames = map[Associativity]string{
	AssocLeft:  "left",
	AssocRight: "right",
	AssocNon:   "non",
	AssocBoth:  "both",
}

func (a Associativity) String() string {
	if name, ok := associativityNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAssociativity reads the name used in dictionary files.
func ParseAssociativity(s string) (Associativity, bool) {
	for a, name := range associativityNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}

// Trigger makes an entry eligible. Latex is tokenized when the index is
// built; Identifier matches the normalized result of the identifier
// sub-parser, so `\operatorname{mean}` and `\mathrm{mean}` both match
// "mean". At least one of the two must be set.
type Trigger struct {
	Latex      string
	Identifier string
}

// Entry is a dictionary entry. The set of variants is closed: only the
// types in this package implement it.
type Entry interface {
	Kind() EntryKind
	// EntryName is the output name, or the environment name.
	EntryName() string
	isEntry()
}

// Parse routines return nil to signal "no match"; the engine then
// restores the cursor and tries the next candidate.
type (
	SymbolParseFunc      func(p *Parser) *mathjson.Expr
	FunctionParseFunc    func(p *Parser, until Terminator) *mathjson.Expr
	PrefixParseFunc      func(p *Parser, until Terminator) *mathjson.Expr
	InfixParseFunc       func(p *Parser, lhs *mathjson.Expr, until Terminator) *mathjson.Expr
	PostfixParseFunc     func(p *Parser, lhs *mathjson.Expr, until Terminator) *mathjson.Expr
	MatchfixParseFunc    func(p *Parser, body *mathjson.Expr) *mathjson.Expr
	EnvironmentParseFunc func(p *Parser, until Terminator) *mathjson.Expr
	ExpressionParseFunc  func(p *Parser, until Terminator) *mathjson.Expr
)

// SymbolEntry maps a trigger to a constant such as Pi.
type SymbolEntry struct {
	Trigger
	Name  string
	Parse SymbolParseFunc
}

// FunctionEntry maps a trigger to a function that takes arguments.
type FunctionEntry struct {
	Trigger
	Name  string
	Parse FunctionParseFunc
}

// PrefixEntry is an operator before its operand.
type PrefixEntry struct {
	Trigger
	Name       string
	Precedence int
	Parse      PrefixParseFunc
}

// InfixEntry is an operator between two operands.
type InfixEntry struct {
	Trigger
	Name          string
	Precedence    int
	Associativity Associativity
	Parse         InfixParseFunc
}

// PostfixEntry is an operator after its operand, such as !.
type PostfixEntry struct {
	Trigger
	Name       string
	Precedence int
	Parse      PostfixParseFunc
}

// MatchfixEntry describes a delimiter pair such as ( ) or \left| \right|.
type MatchfixEntry struct {
	Name  string
	Open  string
	Close string
	Parse MatchfixParseFunc
}

// EnvironmentEntry handles \begin{Environment} ... \end{Environment}.
type EnvironmentEntry struct {
	Environment string
	Name        string
	Parse       EnvironmentParseFunc
}

// ExpressionEntry covers constructs that need bespoke parsing, such as
// integrals or big operators.
type ExpressionEntry struct {
	Trigger
	Name  string
	Parse ExpressionParseFunc
}

func (*SymbolEntry) Kind() EntryKind      { return KindSymbol }
func (*FunctionEntry) Kind() EntryKind    { return KindFunction }
func (*PrefixEntry) Kind() EntryKind      { return KindPrefix }
func (*InfixEntry) Kind() EntryKind       { return KindInfix }
func (*PostfixEntry) Kind() EntryKind     { return KindPostfix }
func (*MatchfixEntry) Kind() EntryKind    { return KindMatchfix }
func (*EnvironmentEntry) Kind() EntryKind { return KindEnvironment }
func (*ExpressionEntry) Kind() EntryKind  { return KindExpression }

func (e *SymbolEntry) EntryName() string      { return e.Name }
func (e *FunctionEntry) EntryName() string    { return e.Name }
func (e *PrefixEntry) EntryName() string      { return e.Name }
func (e *InfixEntry) EntryName() string       { return e.Name }
func (e *PostfixEntry) EntryName() string     { return e.Name }
func (e *MatchfixEntry) EntryName() string    { return e.Name }
func (e *EnvironmentEntry) EntryName() string { return e.Environment }
func (e *ExpressionEntry) EntryName() string  { return e.Name }

func (*SymbolEntry) isEntry()      {}
func (*FunctionEntry) isEntry()    {}
func (*PrefixEntry) isEntry()      {}
func (*InfixEntry) isEntry()       {}
func (*PostfixEntry) isEntry()     {}
func (*MatchfixEntry) isEntry()    {}
func (*EnvironmentEntry) isEntry() {}
func (*ExpressionEntry) isEntry()  {}

// triggerOf returns the trigger of entries that have one.
func triggerOf(e Entry) (Trigger, bool) {
	switch x := e.(type) {
	case *SymbolEntry:
		return x.Trigger, true
	case *FunctionEntry:
		return x.Trigger, true
	case *PrefixEntry:
		return x.Trigger, true
	case *InfixEntry:
		return x.Trigger, true
	case *PostfixEntry:
		return x.Trigger, true
	case *ExpressionEntry:
		return x.Trigger, true
	}
	return Trigger{}, false
}

// Precedence returns the precedence of operator entries.
func Precedence(e Entry) (int, bool) {
	switch x := e.(type) {
	case *PrefixEntry:
		return x.Precedence, true
	case *InfixEntry:
		return x.Precedence, true
	case *PostfixEntry:
		return x.Precedence, true
	}
	return 0, false
}

// Describe returns a short human readable trigger for listings.
func Describe(e Entry) string {
	switch x := e.(type) {
	case *MatchfixEntry:
		return x.Open + " … " + x.Close
	case *EnvironmentEntry:
		return `\begin{` + x.Environment + `}`
	}
	t, _ := triggerOf(e)
	if t.Latex != "" {
		return t.Latex
	}
	return "identifier:" + t.Identifier
}
