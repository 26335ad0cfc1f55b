package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/mathjson/latex/parser"
)

// File is the on-disk format of a dictionary extension:
//
//	entries:
//	  - kind: infix
//	    latex: '\oplus'
//	    name: DirectSum
//	    precedence: 275
//	    associativity: both
//	  - kind: function
//	    identifier: erf
//	    name: Erf
type File struct {
	Entries []EntrySpec `yaml:"entries"`
}

// EntrySpec describes one entry. Entries loaded from YAML use the
// default parse behavior of their kind.
type EntrySpec struct {
	Kind          string `yaml:"kind"`
	Latex         string `yaml:"latex,omitempty"`
	Identifier    string `yaml:"identifier,omitempty"`
	Name          string `yaml:"name"`
	Precedence    int    `yaml:"precedence,omitempty"`
	Associativity string `yaml:"associativity,omitempty"`
	Open          string `yaml:"open,omitempty"`
	Close         string `yaml:"close,omitempty"`
	Environment   string `yaml:"environment,omitempty"`
}

// LoadEntries decodes a dictionary extension.
func LoadEntries(r io.Reader) ([]parser.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid dictionary: %w", err)
	}

	entries := make([]parser.Entry, 0, len(f.Entries))
	for i, spec := range f.Entries {
		e, err := spec.Entry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	log.Infof("loaded %d dictionary entries", len(entries))
	return entries, nil
}

// LoadFile reads a dictionary extension from path.
func LoadFile(path string) ([]parser.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := LoadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Entry converts the spec into a dictionary entry.
func (s EntrySpec) Entry() (parser.Entry, error) {
	kind, ok := parser.ParseEntryKind(s.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
	if s.Name == "" && kind != parser.KindEnvironment {
		return nil, fmt.Errorf("%s entry needs a name", s.Kind)
	}
	trigger := parser.Trigger{Latex: s.Latex, Identifier: s.Identifier}

	switch kind {
	case parser.KindSymbol:
		return &parser.SymbolEntry{Trigger: trigger, Name: s.Name}, nil
	case parser.KindFunction:
		return &parser.FunctionEntry{Trigger: trigger, Name: s.Name}, nil
	case parser.KindExpression:
		return &parser.ExpressionEntry{Trigger: trigger, Name: s.Name}, nil
	case parser.KindMatchfix:
		return &parser.MatchfixEntry{Open: s.Open, Close: s.Close, Name: s.Name}, nil
	case parser.KindEnvironment:
		name := s.Name
		if name == "" {
			name = s.Environment
		}
		return &parser.EnvironmentEntry{Environment: s.Environment, Name: name}, nil
	}

	if s.Precedence <= 0 {
		return nil, fmt.Errorf("%s entry %s needs a positive precedence", s.Kind, s.Name)
	}
	switch kind {
	case parser.KindPrefix:
		return &parser.PrefixEntry{Trigger: trigger, Name: s.Name, Precedence: s.Precedence}, nil
	case parser.KindPostfix:
		return &parser.PostfixEntry{Trigger: trigger, Name: s.Name, Precedence: s.Precedence}, nil
	}

	assoc := parser.AssocLeft
	if s.Associativity != "" {
		if assoc, ok = parser.ParseAssociativity(s.Associativity); !ok {
			return nil, fmt.Errorf("unknown associativity %q", s.Associativity)
		}
	}
	return &parser.InfixEntry{Trigger: trigger, Name: s.Name, Precedence: s.Precedence, Associativity: assoc}, nil
}

// Spec converts an entry back into its YAML description. Parse routines
// are not represented.
func Spec(e parser.Entry) EntrySpec {
	s := EntrySpec{Kind: e.Kind().String(), Name: e.EntryName()}
	switch x := e.(type) {
	case *parser.SymbolEntry:
		s.Latex, s.Identifier = x.Latex, x.Identifier
	case *parser.FunctionEntry:
		s.Latex, s.Identifier = x.Latex, x.Identifier
	case *parser.ExpressionEntry:
		s.Latex, s.Identifier = x.Latex, x.Identifier
	case *parser.PrefixEntry:
		s.Latex, s.Identifier, s.Precedence = x.Latex, x.Identifier, x.Precedence
	case *parser.PostfixEntry:
		s.Latex, s.Identifier, s.Precedence = x.Latex, x.Identifier, x.Precedence
	case *parser.InfixEntry:
		s.Latex, s.Identifier, s.Precedence = x.Latex, x.Identifier, x.Precedence
		s.Associativity = x.Associativity.String()
	case *parser.MatchfixEntry:
		s.Open, s.Close = x.Open, x.Close
	case *parser.EnvironmentEntry:
		s.Environment, s.Name = x.Environment, x.Name
	}
	return s
}

// Marshal writes entries in the extension format.
func Marshal(entries []parser.Entry) ([]byte, error) {
	f := File{Entries: make([]EntrySpec, 0, len(entries))}
	for _, e := range entries {
		f.Entries = append(f.Entries, Spec(e))
	}
	return yaml.Marshal(f)
}
