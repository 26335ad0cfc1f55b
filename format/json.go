package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/dhamidi/mathjson/mathjson"
)

type JSONEncoder struct {
	w    io.Writer
	expr *mathjson.Expr
	// Indent pretty-prints with two spaces.
	Indent bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(expr *mathjson.Expr) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	// Called directly: json.Marshal would escape < and > again.
	data, err := e.expr.MarshalJSON()
	if err != nil || !e.Indent {
		return data, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
