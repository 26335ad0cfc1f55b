package parser

// NumberMode selects whether digit runs are read as number literals.
type NumberMode int

const (
	// NumbersAuto reads digit runs, decimals and exponents as one literal.
	NumbersAuto NumberMode = iota
	// NumbersNever returns every digit as its own literal.
	NumbersNever
)

// IdentifierType classifies identifiers that have no dictionary entry.
type IdentifierType int

const (
	// IdentifierSymbol names a value, so x(y) reads as a product.
	IdentifierSymbol IdentifierType = iota
	// IdentifierFunction applies to a following parenthesized list.
	IdentifierFunction
	IdentifierUnknown
)

func (t IdentifierType) String() string {
	switch t {
	case IdentifierSymbol:
		return "symbol"
	case IdentifierFunction:
		return "function"
	}
	return "unknown"
}

// NumberFormat describes how numeric literals are written. Markers are
// LaTeX fragments and are tokenized before use.
type NumberFormat struct {
	DecimalMarker        string
	DigitGroupSeparator  string
	ExponentProduct      []string
	BeginExponentMarker  string
	EndExponentMarker    string
	BeginRepeatingDigits string
	EndRepeatingDigits   string
	PositiveInfinity     string
	NegativeInfinity     string
	NotANumber           string
	// Precision is the number of fractional digits repeating decimals
	// are expanded to.
	Precision int
	// ExpandRepeatingDigits writes 0.(3) as 0.333… up to Precision.
	ExpandRepeatingDigits bool
}

// DefaultNumberFormat returns the conventional US formatting.
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{
		DecimalMarker:       ".",
		DigitGroupSeparator: `\,`,
		ExponentProduct:     []string{`\times`, `\cdot`},
		PositiveInfinity:    `\infty`,
		NegativeInfinity:    `-\infty`,
		NotANumber:          `\operatorname{NaN}`,
		Precision:           21,
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithNumberFormat replaces the whole number format.
func WithNumberFormat(f NumberFormat) Option {
	return func(p *Parser) {
		p.numberFormat = f
	}
}

// WithDecimalMarker sets the LaTeX of the decimal marker, such as {,}.
func WithDecimalMarker(marker string) Option {
	return func(p *Parser) {
		p.numberFormat.DecimalMarker = marker
	}
}

// WithDigitGroupSeparator sets the LaTeX that separates groups of three
// digits.
func WithDigitGroupSeparator(sep string) Option {
	return func(p *Parser) {
		p.numberFormat.DigitGroupSeparator = sep
	}
}

// WithExpandRepeatingDigits writes repeating decimals out to the
// configured precision instead of the compact 0.(3) form.
func WithExpandRepeatingDigits() Option {
	return func(p *Parser) {
		p.numberFormat.ExpandRepeatingDigits = true
	}
}

// WithPrecision sets how many fractional digits expanded repeating
// decimals get.
func WithPrecision(digits int) Option {
	return func(p *Parser) {
		p.numberFormat.Precision = digits
	}
}

// WithSignificantWhitespace stops invisible operators from bridging
// whitespace: "2 x" no longer reads as a product.
func WithSignificantWhitespace() Option {
	return func(p *Parser) {
		p.significantWhitespace = true
	}
}

// WithNumbers selects how digit runs are read.
func WithNumbers(mode NumberMode) Option {
	return func(p *Parser) {
		p.numbers = mode
	}
}

// WithIdentifierType installs the classifier for unbound identifiers.
// Identifiers classified as functions read a following parenthesized
// list as arguments.
func WithIdentifierType(fn func(id string) IdentifierType) Option {
	return func(p *Parser) {
		p.identifierType = fn
	}
}

// WithFunctions classifies the given identifiers as functions and
// everything else as symbols.
func WithFunctions(names ...string) Option {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return WithIdentifierType(func(id string) IdentifierType {
		if set[id] {
			return IdentifierFunction
		}
		return IdentifierSymbol
	})
}

// WithSourceSpans records the verbatim LaTeX of each node in Expr.Latex.
func WithSourceSpans() Option {
	return func(p *Parser) {
		p.sourceSpans = true
	}
}

func defaultIdentifierType(id string) IdentifierType {
	switch id {
	case "f", "g", "h":
		return IdentifierFunction
	}
	return IdentifierSymbol
}
