package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/mathjson/latex"
	"github.com/dhamidi/mathjson/mathjson"
)

// Diagnostics parses every math region of text and reports one
// diagnostic per Error node. An error whose source can be found inside
// its region is ranged over that source, otherwise over the region.
func Diagnostics(engine *latex.Engine, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, region := range FindRegions(text) {
		expr, err := engine.Parse(region.Latex)
		if err != nil {
			diagnostics = append(diagnostics, newDiagnostic(text, region.Start, region.End, err.Error()))
			continue
		}
		searchFrom := 0
		for _, e := range expr.Errors() {
			start, end := region.Start, region.End
			context := e.ErrorContext()
			if context != "" {
				if i := strings.Index(region.Latex[searchFrom:], context); i >= 0 {
					start = region.Start + searchFrom + i
					end = start + len(context)
					searchFrom += i + len(context)
				}
			}
			diagnostics = append(diagnostics, newDiagnostic(text, start, end, errorMessage(e)))
		}
	}
	return diagnostics
}

func errorMessage(e *mathjson.Expr) string {
	if context := e.ErrorContext(); context != "" {
		return fmt.Sprintf("%s: %s", e.ErrorCode(), context)
	}
	return e.ErrorCode()
}

func newDiagnostic(text string, start, end int, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: positionAt(text, start),
			End:   positionAt(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// hoverText renders the MathJSON of a region as markdown.
func hoverText(engine *latex.Engine, region Region) (string, error) {
	expr, err := engine.Parse(region.Latex)
	if err != nil {
		return "", err
	}
	data, err := expr.MarshalJSON()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return "```json\n" + buf.String() + "\n```", nil
}
