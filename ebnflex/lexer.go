// Package ebnflex matches strings against EBNF grammars.
//
// Grammars are written in the notation of golang.org/x/exp/ebnf. Names
// that are not defined as productions may be bound to rune classes
// (e.g. "letter" to unicode.IsLetter), which lets a grammar describe
// Unicode character sets that EBNF ranges cannot express.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Class reports whether a rune belongs to a character class.
type Class func(rune) bool

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Matcher checks input against one start production of a grammar.
type Matcher struct {
	grammar ebnf.Grammar
	classes map[string]Class
	start   string
}

// Compile parses an EBNF grammar and verifies that every referenced name
// is either a production or a class.
func Compile(filename string, src io.Reader, start string, classes map[string]Class) (*Matcher, error) {
	grammar, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if _, ok := grammar[start]; !ok {
		return nil, fmt.Errorf("start production %q not defined", start)
	}
	m := &Matcher{grammar: grammar, classes: classes, start: start}
	for name, prod := range grammar {
		if err := m.checkNames(name, prod.Expr); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// grammars embedded in the program.
func MustCompile(filename, src, start string, classes map[string]Class) *Matcher {
	m, err := Compile(filename, strings.NewReader(src), start, classes)
	if err != nil {
		panic(err)
	}
	return m
}

// LoadGrammar loads a grammar file.
func LoadGrammar(filename, start string, classes map[string]Class) (*Matcher, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Compile(filename, f, start, classes)
}

func (m *Matcher) checkNames(prod string, expr ebnf.Expression) error {
	switch e := expr.(type) {
	case ebnf.Sequence:
		for _, item := range e {
			if err := m.checkNames(prod, item); err != nil {
				return err
			}
		}
	case ebnf.Alternative:
		for _, item := range e {
			if err := m.checkNames(prod, item); err != nil {
				return err
			}
		}
	case *ebnf.Repetition:
		return m.checkNames(prod, e.Body)
	case *ebnf.Option:
		return m.checkNames(prod, e.Body)
	case *ebnf.Group:
		return m.checkNames(prod, e.Body)
	case *ebnf.Name:
		if _, ok := m.grammar[e.String]; ok {
			return nil
		}
		if _, ok := m.classes[e.String]; ok {
			return nil
		}
		return fmt.Errorf("production %s: undefined name %q", prod, e.String)
	}
	return nil
}

// Match reports whether the whole of s matches the start production.
func (m *Matcher) Match(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	st := &state{
		m:        m,
		input:    []rune(s),
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	n := st.matchName(m.start, 0)
	return n == len(st.input) && n > 0
}

type state struct {
	m        *Matcher
	input    []rune
	memo     map[memoKey]int  // memoization cache: key -> match length (-1 = no match)
	visiting map[memoKey]bool // cycle detection
}

// match attempts to match an expression at the given offset. It
// returns the number of runes matched, or -1.
func (s *state) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return s.matchToken(e.String, offset)

	case *ebnf.Range:
		return s.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := s.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := s.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := s.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		if n := s.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return s.match(e.Body, offset)

	case *ebnf.Name:
		return s.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production or class with memoization and
// cycle detection.
func (s *state) matchName(name string, offset int) int {
	if class, ok := s.m.classes[name]; ok {
		if _, defined := s.m.grammar[name]; !defined {
			if offset < len(s.input) && class(s.input[offset]) {
				return 1
			}
			return -1
		}
	}

	key := memoKey{name: name, offset: offset}
	if result, ok := s.memo[key]; ok {
		return result
	}
	// Left recursion at the same offset cannot make progress.
	if s.visiting[key] {
		return -1
	}

	prod, ok := s.m.grammar[name]
	if !ok {
		s.memo[key] = -1
		return -1
	}

	s.visiting[key] = true
	result := s.match(prod.Expr, offset)
	delete(s.visiting, key)

	s.memo[key] = result
	return result
}

// matchToken matches a literal string token. The ebnf package has
// already unquoted it.
func (s *state) matchToken(token string, offset int) int {
	lit := []rune(token)
	if offset+len(lit) > len(s.input) {
		return -1
	}
	for i, r := range lit {
		if s.input[offset+i] != r {
			return -1
		}
	}
	return len(lit)
}

// matchRange matches a character range (e.g., "a" … "z").
func (s *state) matchRange(begin, end string, offset int) int {
	if offset >= len(s.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	if r := s.input[offset]; r >= lo && r <= hi {
		return 1
	}
	return -1
}
