package parser

import (
	"fmt"
	"slices"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mathjson.parser")

type indexedEntry struct {
	entry   Entry
	trigger []Token
	order   int
}

type indexedMatchfix struct {
	entry *MatchfixEntry
	open  []Token
	close []Token
	order int
}

// Index is a compiled, read-only dictionary. It is safe to share one
// Index between concurrent parses.
type Index struct {
	entries      []Entry
	byToken      [numKinds]map[Token][]*indexedEntry
	byIdentifier [numKinds]map[string][]*indexedEntry
	matchfix     []*indexedMatchfix
	environments map[string]*EnvironmentEntry
	lookahead    int
}

// Candidate is a dictionary entry whose trigger matches at the cursor,
// together with the number of tokens the trigger spans.
type Candidate struct {
	Entry    Entry
	Consumed int
	order    int
}

// NewIndex compiles entries in registration order. Earlier entries win
// when two triggers match the same tokens.
func NewIndex(entries []Entry) (*Index, error) {
	idx := &Index{
		environments: make(map[string]*EnvironmentEntry),
		lookahead:    1,
	}
	for k := range idx.byToken {
		idx.byToken[k] = make(map[Token][]*indexedEntry)
		idx.byIdentifier[k] = make(map[string][]*indexedEntry)
	}

	for order, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("entry %d: nil entry", order)
		}
		if err := idx.add(e, order); err != nil {
			return nil, fmt.Errorf("entry %d (%s %s): %w", order, e.Kind(), e.EntryName(), err)
		}
		idx.entries = append(idx.entries, e)
	}
	log.Debugf("indexed %d entries, lookahead %d", len(idx.entries), idx.lookahead)
	return idx, nil
}

// MustIndex is like NewIndex but panics on error.
func MustIndex(entries []Entry) *Index {
	idx, err := NewIndex(entries)
	if err != nil {
		panic(err)
	}
	return idx
}

func (idx *Index) add(e Entry, order int) error {
	switch x := e.(type) {
	case *MatchfixEntry:
		open := triggerTokens(x.Open)
		closing := triggerTokens(x.Close)
		if len(open) == 0 || len(closing) == 0 {
			return fmt.Errorf("matchfix needs both open and close delimiters")
		}
		idx.matchfix = append(idx.matchfix, &indexedMatchfix{entry: x, open: open, close: closing, order: order})
		idx.lookahead = max(idx.lookahead, len(open), len(closing))
		return nil
	case *EnvironmentEntry:
		if x.Environment == "" {
			return fmt.Errorf("environment entry needs an environment name")
		}
		if _, dup := idx.environments[x.Environment]; dup {
			log.Debugf("environment %s already registered, keeping the first", x.Environment)
			return nil
		}
		idx.environments[x.Environment] = x
		return nil
	}

	trigger, _ := triggerOf(e)
	if trigger.Latex == "" && trigger.Identifier == "" {
		return fmt.Errorf("missing trigger")
	}
	if trigger.Latex != "" && trigger.Identifier != "" {
		return fmt.Errorf("trigger has both latex and identifier")
	}
	if trigger.Identifier != "" {
		ie := &indexedEntry{entry: e, order: order}
		idx.byIdentifier[e.Kind()][trigger.Identifier] = append(idx.byIdentifier[e.Kind()][trigger.Identifier], ie)
		return nil
	}
	tokens := triggerTokens(trigger.Latex)
	if len(tokens) == 0 {
		return fmt.Errorf("trigger %q has no tokens", trigger.Latex)
	}
	ie := &indexedEntry{entry: e, trigger: tokens, order: order}
	idx.byToken[e.Kind()][tokens[0]] = append(idx.byToken[e.Kind()][tokens[0]], ie)
	idx.lookahead = max(idx.lookahead, len(tokens))
	return nil
}

// triggerTokens tokenizes a trigger, dropping whitespace.
func triggerTokens(latex string) []Token {
	var tokens []Token
	for _, tok := range Tokenize(latex) {
		if tok != TokenSpace {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Entries returns the entries in registration order.
func (idx *Index) Entries() []Entry {
	return slices.Clone(idx.entries)
}

// Lookahead is the longest trigger, in tokens.
func (idx *Index) Lookahead() int {
	return idx.lookahead
}

// Environment returns the entry registered for an environment name.
func (idx *Index) Environment(name string) (*EnvironmentEntry, bool) {
	e, ok := idx.environments[name]
	return e, ok
}

// isOperatorTrigger reports whether tok starts an infix or postfix
// trigger.
func (idx *Index) isOperatorTrigger(tok Token) bool {
	return len(idx.byToken[KindInfix][tok]) > 0 || len(idx.byToken[KindPostfix][tok]) > 0
}

func (idx *Index) hasIdentifierTriggers(kind EntryKind) bool {
	return len(idx.byIdentifier[kind]) > 0
}

// tokenCandidates returns entries of kind whose token trigger is a
// prefix of window.
func (idx *Index) tokenCandidates(kind EntryKind, window []Token) []Candidate {
	if len(window) == 0 {
		return nil
	}
	var result []Candidate
	for _, ie := range idx.byToken[kind][window[0]] {
		if hasTokenPrefix(window, ie.trigger) {
			result = append(result, Candidate{Entry: ie.entry, Consumed: len(ie.trigger), order: ie.order})
		}
	}
	return result
}

func (idx *Index) identifierCandidates(kind EntryKind, id string, consumed int) []Candidate {
	var result []Candidate
	for _, ie := range idx.byIdentifier[kind][id] {
		result = append(result, Candidate{Entry: ie.entry, Consumed: consumed, order: ie.order})
	}
	return result
}

// sortCandidates orders longer matches first and otherwise keeps
// registration order.
func sortCandidates(cands []Candidate) {
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		if a.Consumed != b.Consumed {
			return b.Consumed - a.Consumed
		}
		return a.order - b.order
	})
}

func hasTokenPrefix(window, prefix []Token) bool {
	if len(prefix) > len(window) {
		return false
	}
	for i, tok := range prefix {
		if window[i] != tok {
			return false
		}
	}
	return true
}
