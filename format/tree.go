package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/mathjson/mathjson"
)

// TreeEncoder prints one node per line, indented by depth:
//
//	Add
//	  1
//	  Multiply
//	    2
//	    x
type TreeEncoder struct {
	w    io.Writer
	expr *mathjson.Expr
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(expr *mathjson.Expr) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeNode(&sb, e.expr, 0)
	return []byte(sb.String()), nil
}

func writeNode(sb *strings.Builder, n *mathjson.Expr, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case mathjson.KindString:
		fmt.Fprintf(sb, "%s%q\n", indent, n.Value)
	case mathjson.KindFunction:
		if n.IsError() {
			fmt.Fprintf(sb, "%sError %s", indent, n.ErrorCode())
			if ctx := n.ErrorContext(); ctx != "" {
				fmt.Fprintf(sb, " at %q", ctx)
			}
			sb.WriteByte('\n')
			return
		}
		fmt.Fprintf(sb, "%s%s\n", indent, n.Value)
		for _, op := range n.Ops {
			writeNode(sb, op, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Value)
	}
}
