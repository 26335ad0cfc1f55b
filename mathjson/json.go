package mathjson

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// plainNumber matches literals that can be written as bare JSON numbers
// without losing precision in common decoders.
var plainNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]{0,14})(\.[0-9]{1,15})?$`)

func (e *Expr) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.toJSON()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// String returns the compact JSON form, e.g. ["Add",1,"x"].
func (e *Expr) String() string {
	if e == nil {
		return "null"
	}
	data, err := e.MarshalJSON()
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return string(data)
}

func (e *Expr) toJSON() any {
	if e == nil {
		return nil
	}
	var v any
	switch e.Kind {
	case KindNumber:
		if plainNumber.MatchString(e.Value) && e.Latex == "" {
			return json.Number(e.Value)
		}
		return e.withMeta(map[string]any{"num": e.Value})
	case KindString:
		v = "'" + e.Value + "'"
		if e.Latex != "" {
			return e.withMeta(map[string]any{"str": e.Value})
		}
	case KindSymbol:
		v = e.Value
		if e.Latex != "" {
			return e.withMeta(map[string]any{"sym": e.Value})
		}
	case KindFunction:
		fn := make([]any, 0, len(e.Ops)+1)
		fn = append(fn, e.Value)
		for _, op := range e.Ops {
			fn = append(fn, op.toJSON())
		}
		if e.Latex != "" {
			return e.withMeta(map[string]any{"fn": fn})
		}
		v = fn
	}
	return v
}

func (e *Expr) withMeta(obj map[string]any) map[string]any {
	if e.Latex != "" {
		obj["latex"] = e.Latex
	}
	return obj
}

// UnmarshalJSON accepts the array shorthand and the object forms
// ({"num"}, {"sym"}, {"str"}, {"fn"}) with optional "latex" metadata.
func (e *Expr) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromJSON(raw)
	if err != nil {
		return err
	}
	*e = *parsed
	return nil
}

// Parse decodes a MathJSON document.
func Parse(data []byte) (*Expr, error) {
	e := &Expr{}
	if err := e.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return e, nil
}

type decodeError struct {
	msg string
}

func (d *decodeError) Error() string {
	return "mathjson: " + d.msg
}

func fromJSON(v any) (*Expr, error) {
	switch x := v.(type) {
	case json.Number:
		return Number(x.String()), nil
	case string:
		if len(x) >= 2 && strings.HasPrefix(x, "'") && strings.HasSuffix(x, "'") {
			return String(x[1 : len(x)-1]), nil
		}
		return Symbol(x), nil
	case []any:
		if len(x) == 0 {
			return nil, &decodeError{"empty function array"}
		}
		head, ok := x[0].(string)
		if !ok {
			return nil, &decodeError{"function head must be a string"}
		}
		fn := Function(head)
		for _, op := range x[1:] {
			child, err := fromJSON(op)
			if err != nil {
				return nil, err
			}
			fn.Ops = append(fn.Ops, child)
		}
		return fn, nil
	case map[string]any:
		var e *Expr
		var err error
		switch {
		case x["num"] != nil:
			s, _ := x["num"].(string)
			e = Number(s)
		case x["sym"] != nil:
			s, _ := x["sym"].(string)
			e = Symbol(s)
		case x["str"] != nil:
			s, _ := x["str"].(string)
			e = String(s)
		case x["fn"] != nil:
			e, err = fromJSON(x["fn"])
		default:
			return nil, &decodeError{"object has no num, sym, str or fn key"}
		}
		if err != nil {
			return nil, err
		}
		if latex, ok := x["latex"].(string); ok {
			e.Latex = latex
		}
		return e, nil
	}
	return nil, &decodeError{"unsupported JSON value"}
}
