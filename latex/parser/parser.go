package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/mathjson/mathjson"
)

// maxPeekRepeat bounds how often the cursor may inspect the same token
// in a row. Exceeding it means a production made no progress. At the end
// of input the bound is scaled by the input length.
const maxPeekRepeat = 1024

// boundary is a frame of the boundary stack. Frames are immutable and
// linked to their parent, so a Checkpoint restores the stack exactly.
type boundary struct {
	index  int
	close  []Token
	parent *boundary
	depth  int
}

// Checkpoint captures the cursor and boundary stack.
type Checkpoint struct {
	index    int
	boundary *boundary
}

// Terminator tells a recursive parse when to stop: at the end of input,
// at the innermost boundary, before an operator whose precedence is
// below MinPrec, or when Condition holds.
type Terminator struct {
	MinPrec   int
	Condition func(p *Parser) bool
}

// StalledError reports that the parser inspected the same token too
// many times without advancing. It signals a defect in the engine or in
// a custom parse routine, never malformed input.
type StalledError struct {
	Index int
	Token Token
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("parser stalled at token %d (%q)", e.Index, e.Token)
}

type numberMarkers struct {
	decimal          []Token
	groupSeparator   []Token
	exponentProducts [][]Token
	beginExponent    []Token
	endExponent      []Token
	beginRepeating   []Token
	endRepeating     []Token
	positiveInfinity []Token
	negativeInfinity []Token
	notANumber       []Token
}

// Parser holds the state of one parse: the tokens, the cursor, the
// boundary stack and the options. Custom parse routines receive it and
// use its exported methods to read input.
type Parser struct {
	tokens   []Token
	index    int
	dict     *Index
	boundary *boundary

	numberFormat          NumberFormat
	markers               numberMarkers
	numbers               NumberMode
	significantWhitespace bool
	identifierType        func(string) IdentifierType
	sourceSpans           bool

	lastPeek  int
	peekCount int

	memo map[memoKey]memoEntry
}

// New creates a parser over tokens. A Parser is used for a single
// input; the Index may be shared.
func New(tokens []Token, dict *Index, opts ...Option) *Parser {
	p := &Parser{
		tokens:         tokens,
		dict:           dict,
		numberFormat:   DefaultNumberFormat(),
		identifierType: defaultIdentifierType,
		lastPeek:       -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dict == nil {
		p.dict = MustIndex(nil)
	}
	f := p.numberFormat
	p.markers = numberMarkers{
		decimal:          triggerTokens(f.DecimalMarker),
		groupSeparator:   triggerTokens(f.DigitGroupSeparator),
		beginExponent:    triggerTokens(f.BeginExponentMarker),
		endExponent:      triggerTokens(f.EndExponentMarker),
		beginRepeating:   triggerTokens(f.BeginRepeatingDigits),
		endRepeating:     triggerTokens(f.EndRepeatingDigits),
		positiveInfinity: triggerTokens(f.PositiveInfinity),
		negativeInfinity: triggerTokens(f.NegativeInfinity),
		notANumber:       triggerTokens(f.NotANumber),
	}
	for _, prod := range f.ExponentProduct {
		if toks := triggerTokens(prod); len(toks) > 0 {
			p.markers.exponentProducts = append(p.markers.exponentProducts, toks)
		}
	}
	return p
}

// Parse tokenizes src and parses it into a single expression. The only
// error is a *StalledError; malformed input yields Error nodes instead.
func Parse(src string, dict *Index, opts ...Option) (*mathjson.Expr, error) {
	return New(Tokenize(src), dict, opts...).Finish()
}

// Finish parses the whole token sequence.
func (p *Parser) Finish() (result *mathjson.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			stalled, ok := r.(*StalledError)
			if !ok {
				panic(r)
			}
			log.Errorf("%s", stalled)
			result, err = nil, stalled
		}
	}()
	return p.parseRoot(), nil
}

func (p *Parser) parseRoot() *mathjson.Expr {
	var results []*mathjson.Expr
	for {
		p.skipRootNoise()
		if p.AtEnd() {
			break
		}
		start := p.index
		if e := p.ParseExpression(Terminator{}); e != nil {
			results = append(results, e)
		}
		if p.index == start {
			if e := p.recoverEnclosure(); e != nil {
				results = append(results, e)
				continue
			}
			results = append(results, p.unexpectedToken())
		}
	}

	switch len(results) {
	case 0:
		return mathjson.Nothing()
	case 1:
		return results[0]
	}
	return mathjson.Function("Sequence", results...)
}

func (p *Parser) skipRootNoise() {
	for !p.AtEnd() {
		switch p.Peek() {
		case TokenMathShift, TokenDisplayShift, `\[`, `\]`, `\(`, `\)`:
			p.index++
		default:
			if !p.SkipSpace() {
				return
			}
		}
	}
}

var closingTokens = map[Token]bool{
	")": true, "]": true, TokenGroupClose: true,
	`\}`: true, `\rbrace`: true, `\rbrack`: true, `\rparen`: true,
	`\rangle`: true, `\rvert`: true, `\rVert`: true, `\rfloor`: true,
	`\rceil`: true, `\right`: true, `\bigr`: true, `\Bigr`: true,
}

const operatorChars = "+-*/=<>!,;:|&^_'.~?"

// unexpectedToken consumes the token at the cursor and wraps it in an
// error node so parsing can continue after it.
func (p *Parser) unexpectedToken() *mathjson.Expr {
	from := p.index
	tok := p.Next()
	code := CodeUnexpectedToken
	switch {
	case closingTokens[tok]:
		code = CodeExpectedOpenDelimiter
		if tok == `\right` || tok == `\bigr` || tok == `\Bigr` {
			p.Next()
		}
	case tok == `\end`:
		code = CodeUnbalancedEnvironment
		p.ParseStringGroup()
	case IsCommand(tok):
		code = CodeUnexpectedCommand
	case len(tok) == 1 && strings.Contains(operatorChars, tok):
		code = CodeUnexpectedOperator
	}
	return p.Error(code, from)
}

// Peek returns the token at the cursor, or "" at the end of input.
func (p *Parser) Peek() Token {
	if p.index == p.lastPeek {
		p.peekCount++
		if p.peekCount > p.peekLimit() {
			panic(&StalledError{Index: p.index, Token: p.at(p.index)})
		}
	} else {
		p.lastPeek = p.index
		p.peekCount = 0
	}
	return p.at(p.index)
}

// peekLimit is the repetition limit at the cursor. Every production
// unwinding from nested input inspects the end of input, so the limit
// there grows with the number of tokens.
func (p *Parser) peekLimit() int {
	if p.index >= len(p.tokens) {
		return maxPeekRepeat * (len(p.tokens) + 1)
	}
	return maxPeekRepeat
}

func (p *Parser) at(i int) Token {
	if i < 0 || i >= len(p.tokens) {
		return ""
	}
	return p.tokens[i]
}

// Next consumes and returns the token at the cursor.
func (p *Parser) Next() Token {
	tok := p.Peek()
	if p.index < len(p.tokens) {
		p.index++
	}
	return tok
}

// AtEnd reports whether every token has been consumed.
func (p *Parser) AtEnd() bool {
	return p.index >= len(p.tokens)
}

// Index returns the cursor position.
func (p *Parser) Index() int {
	return p.index
}

// Tokens returns the token sequence being parsed.
func (p *Parser) Tokens() []Token {
	return p.tokens
}

// Checkpoint captures the cursor and boundary stack for a later Restore.
func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{index: p.index, boundary: p.boundary}
}

// Restore returns the cursor and boundary stack to a checkpoint.
func (p *Parser) Restore(c Checkpoint) {
	p.index = c.index
	p.boundary = c.boundary
}

// Match consumes tok if it is at the cursor.
func (p *Parser) Match(tok Token) bool {
	if p.Peek() == tok {
		p.index++
		return true
	}
	return false
}

// MatchAll consumes the token sequence if all of it is at the cursor.
func (p *Parser) MatchAll(tokens ...Token) bool {
	if len(tokens) == 0 || !p.lookingAt(tokens) {
		return false
	}
	p.index += len(tokens)
	return true
}

// MatchLatex is MatchAll for a LaTeX fragment.
func (p *Parser) MatchLatex(latex string) bool {
	return p.MatchAll(triggerTokens(latex)...)
}

func (p *Parser) lookingAt(tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}
	return hasTokenPrefix(p.tokens[min(p.index, len(p.tokens)):], tokens)
}

var spacingCommands = map[Token]bool{
	`\,`: true, `\:`: true, `\;`: true, `\!`: true, `\ `: true, `\>`: true,
	`\quad`: true, `\qquad`: true, `\enspace`: true, `\thinspace`: true,
	`\medspace`: true, `\thickspace`: true, `\negthinspace`: true,
	`\displaystyle`: true, `\textstyle`: true, `\scriptstyle`: true,
	`\scriptscriptstyle`: true, "~": true,
}

// SkipSpace consumes whitespace and spacing commands and reports whether
// anything was skipped.
func (p *Parser) SkipSpace() bool {
	start := p.index
	for {
		tok := p.Peek()
		if tok != TokenSpace && !spacingCommands[tok] {
			break
		}
		p.index++
	}
	return p.index > start
}

// PushBoundary expects the given closing tokens to end the current
// construct.
func (p *Parser) PushBoundary(close ...Token) {
	depth := 1
	if p.boundary != nil {
		depth = p.boundary.depth + 1
	}
	p.boundary = &boundary{index: p.index, close: close, parent: p.boundary, depth: depth}
}

// PopBoundary discards the innermost boundary without matching it.
func (p *Parser) PopBoundary() {
	if p.boundary != nil {
		p.boundary = p.boundary.parent
	}
}

// BoundaryDepth returns the number of open boundaries.
func (p *Parser) BoundaryDepth() int {
	if p.boundary == nil {
		return 0
	}
	return p.boundary.depth
}

// AtBoundary reports whether the innermost boundary's closing tokens
// follow, possibly after whitespace. It does not move the cursor.
func (p *Parser) AtBoundary() bool {
	if p.boundary == nil {
		return false
	}
	i := p.index
	for i < len(p.tokens) && (p.tokens[i] == TokenSpace || spacingCommands[p.tokens[i]]) {
		i++
	}
	return hasTokenPrefix(p.tokens[i:], p.boundary.close)
}

// MatchBoundary consumes the innermost boundary's closing tokens and pops
// it. On failure nothing changes.
func (p *Parser) MatchBoundary() bool {
	if !p.AtBoundary() {
		return false
	}
	p.SkipSpace()
	p.index += len(p.boundary.close)
	p.PopBoundary()
	return true
}

// AtTerminator reports whether a parse governed by until must stop.
func (p *Parser) AtTerminator(until Terminator) bool {
	if p.AtEnd() || p.AtBoundary() {
		return true
	}
	if until.Condition == nil {
		return false
	}
	cp := p.Checkpoint()
	stop := until.Condition(p)
	p.Restore(cp)
	return stop
}

// Latex returns the markup of tokens[from:to] without surrounding
// whitespace.
func (p *Parser) Latex(from, to int) string {
	from = max(from, 0)
	to = min(to, len(p.tokens))
	if from >= to {
		return ""
	}
	toks := p.tokens[from:to]
	for len(toks) > 0 && toks[0] == TokenSpace {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1] == TokenSpace {
		toks = toks[:len(toks)-1]
	}
	return TokensToString(toks)
}

// Error builds an error node capturing the source from `from` to the
// cursor.
func (p *Parser) Error(code string, from int) *mathjson.Expr {
	return mathjson.Error(code, p.Latex(from, p.index))
}

// Missing is the placeholder for a required operand that is absent.
func Missing() *mathjson.Expr {
	return mathjson.Error(CodeMissing, "")
}

// Classify returns the identifier type of an unbound identifier.
func (p *Parser) Classify(id string) IdentifierType {
	if p.identifierType == nil {
		return IdentifierSymbol
	}
	return p.identifierType(id)
}

// NumberFormat returns the number format in effect.
func (p *Parser) NumberFormat() NumberFormat {
	return p.numberFormat
}

func (p *Parser) decorate(e *mathjson.Expr, from int) *mathjson.Expr {
	if e != nil && p.sourceSpans {
		e.Latex = p.Latex(from, p.index)
	}
	return e
}

// candidates returns every entry of kind whose trigger matches at the
// cursor, longest match first, then in registration order.
func (p *Parser) candidates(kind EntryKind) []Candidate {
	window := p.tokens[min(p.index, len(p.tokens)):]
	if len(window) > p.dict.lookahead {
		window = window[:p.dict.lookahead]
	}
	result := p.dict.tokenCandidates(kind, window)
	if p.dict.hasIdentifierTriggers(kind) {
		cp := p.Checkpoint()
		if id, ok := p.ParseIdentifier(); ok {
			result = append(result, p.dict.identifierCandidates(kind, id, p.index-cp.index)...)
		}
		p.Restore(cp)
	}
	if len(result) > 1 {
		sortCandidates(result)
	}
	return result
}

// isClosingCommand reports tokens that end an enclosing construct and
// must never be swallowed as an unknown command.
func (p *Parser) isClosingCommand(tok Token) bool {
	switch tok {
	case `\end`, `\\`, `\cr`, `\middle`, `\]`, `\)`:
		return true
	}
	if closingTokens[tok] {
		return true
	}
	return slices.ContainsFunc(p.dict.matchfix, func(m *indexedMatchfix) bool {
		return m.close[0] == tok
	})
}
