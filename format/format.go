// Package format renders MathJSON expressions for the command line.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/mathjson/mathjson"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(expr *mathjson.Expr) error
}

// New returns the encoder for a format name: "json", "tree" or "dump".
func New(name string, w io.Writer, indent bool) (Encoder, error) {
	switch name {
	case "json", "":
		enc := NewJSONEncoder(w)
		enc.Indent = indent
		return enc, nil
	case "tree":
		return NewTreeEncoder(w), nil
	case "dump":
		return NewDumpEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
