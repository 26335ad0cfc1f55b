// Package parser turns LaTeX math markup into MathJSON expressions.
//
// # Overview
//
// The parser is a precedence-climbing recursive descent parser driven by
// a dictionary of entries. It never fails on malformed input: problems
// are reported as ["Error", ...] nodes placed where the offending input
// was, and parsing continues after them.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   LaTeX     │────▶│  Tokenize   │────▶│   Parser    │────▶ MathJSON
//	│  (string)   │     │  (tokens)   │     │             │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │   Index     │
//	                                        │ (entries)   │
//	                                        └─────────────┘
//
// # Dictionary
//
// An Index is compiled once from a list of entries and can be shared.
// Entries come in eight kinds (symbol, function, prefix, infix, postfix,
// matchfix, environment, expression). Each has a trigger, either LaTeX
// tokens or an identifier, and optionally a parse routine. When several
// entries match at the cursor, longer triggers are tried first, then
// entries in registration order. A parse routine returns nil to decline;
// the cursor is then restored and the next candidate is tried.
//
// # Backtracking
//
// A Checkpoint captures the cursor and the boundary stack. Boundaries are
// the closing tokens an enclosing construct expects, such as `}` or
// `\right)`. The stack is persistent, so Restore is exact and cheap, and
// speculative parses can be abandoned without leaving state behind.
//
// # Juxtaposition
//
// Two adjacent operands are combined by the invisible operator: a
// function identifier applied to a parenthesized list, a mixed number
// such as 2\frac{3}{4}, an implicit product such as 2x, or a sequence.
//
// # Termination
//
// The parser refuses to inspect the same token more than 1024 times in a
// row, or 1024 times per input token at the end of input. A dictionary
// routine that returns a value without consuming input would otherwise
// loop forever; instead Parse returns a *StalledError.
//
// The outcome of an enclosure is remembered by its start and its
// innermost boundary, so nested unclosed delimiters are parsed once
// rather than once per enclosing retry.
package parser
