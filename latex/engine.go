// Package latex parses LaTeX math into MathJSON using the built-in
// dictionary, optionally extended with user entries.
package latex

import (
	"fmt"
	"sync"

	"github.com/dhamidi/mathjson/latex/library"
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

// Engine holds a compiled dictionary and default options. It is safe
// for concurrent use; every Parse call gets its own parser state.
type Engine struct {
	index *parser.Index
	opts  []parser.Option
}

// New compiles entries into an engine.
func New(entries []parser.Entry, opts ...parser.Option) (*Engine, error) {
	idx, err := parser.NewIndex(entries)
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}
	return &Engine{index: idx, opts: opts}, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the engine for the built-in dictionary. It is built on
// first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = &Engine{index: parser.MustIndex(library.Entries())}
	})
	return defaultEngine
}

// WithEntries returns an engine whose dictionary is the built-in one
// extended by extra. Extra entries are registered first, so they win
// over built-ins with the same trigger.
func WithEntries(extra []parser.Entry, opts ...parser.Option) (*Engine, error) {
	entries := append(append([]parser.Entry{}, extra...), library.Entries()...)
	return New(entries, opts...)
}

// Index returns the compiled dictionary.
func (e *Engine) Index() *parser.Index {
	return e.index
}

// Parse parses src. Options given here apply after the engine's own.
func (e *Engine) Parse(src string, opts ...parser.Option) (*mathjson.Expr, error) {
	all := append(append([]parser.Option{}, e.opts...), opts...)
	return parser.Parse(src, e.index, all...)
}

// Parse parses src with the default engine.
func Parse(src string, opts ...parser.Option) (*mathjson.Expr, error) {
	return Default().Parse(src, opts...)
}
