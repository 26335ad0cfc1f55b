package format

import (
	"io"

	"github.com/sanity-io/litter"

	"github.com/dhamidi/mathjson/mathjson"
)

// DumpEncoder prints the expression as a Go literal, which is handy
// when writing tests against the parser.
type DumpEncoder struct {
	w    io.Writer
	expr *mathjson.Expr
}

func NewDumpEncoder(w io.Writer) *DumpEncoder {
	return &DumpEncoder{w: w}
}

func (e *DumpEncoder) Encode(expr *mathjson.Expr) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *DumpEncoder) MarshalText() ([]byte, error) {
	opts := litter.Options{StripPackageNames: true, HidePrivateFields: true}
	return []byte(opts.Sdump(e.expr)), nil
}
