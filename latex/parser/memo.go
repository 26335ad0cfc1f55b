package parser

import (
	"slices"
	"strings"

	"github.com/dhamidi/mathjson/mathjson"
)

// Delimited constructs are parsed under their own boundary, so their
// outcome depends only on where they start. Enclosures also retry
// without their boundary, which makes the innermost boundary around
// them part of the key. Remembering outcomes for the rest of the parse
// keeps nested malformed input from being parsed again for every
// attempt around it.

type memoRule uint8

const (
	memoGroup memoRule = iota
	memoOptionalGroup
	memoArguments
	memoEnclosure
)

type memoKey struct {
	rule    memoRule
	index   int
	context string
}

type memoEntry struct {
	expr *mathjson.Expr
	args []*mathjson.Expr
	ok   bool
	end  int
}

func (p *Parser) memoKey(rule memoRule) memoKey {
	key := memoKey{rule: rule, index: p.index}
	if rule == memoEnclosure && p.boundary != nil {
		key.context = strings.Join(p.boundary.close, " ")
	}
	return key
}

// recall moves the cursor to where a remembered attempt ended.
func (p *Parser) recall(key memoKey) (memoEntry, bool) {
	e, ok := p.memo[key]
	if !ok {
		return memoEntry{}, false
	}
	p.index = e.end
	e.args = slices.Clip(e.args)
	return e, true
}

// remember records the outcome of an attempt that ends at the cursor.
func (p *Parser) remember(key memoKey, e memoEntry) {
	if p.memo == nil {
		p.memo = make(map[memoKey]memoEntry)
	}
	e.end = p.index
	e.args = slices.Clip(e.args)
	p.memo[key] = e
}
