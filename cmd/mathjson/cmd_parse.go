package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/mathjson/format"
	"github.com/dhamidi/mathjson/latex"
	"github.com/dhamidi/mathjson/latex/library"
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var indent bool
	var spans bool
	var digitsOnly bool
	var functions []string
	var dictionaries []string
	var significantWhitespace bool
	var decimalMarker string
	var groupSeparator string
	var expandRepeating bool
	var failOnError bool
	var lines bool

	cmd := &cobra.Command{
		Use:   "parse [latex]",
		Short: "Parse LaTeX math and print its MathJSON",
		Long: `Parse LaTeX math and print its MathJSON.

The LaTeX is read from the argument, or from standard input when no
argument is given. Syntax errors are reported as Error nodes in the
output; use --fail-on-error to also exit with a non-zero status.

With --lines every non-blank input line is parsed as its own formula
and the results are printed in input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			engine, err := loadEngine(dictionaries)
			if err != nil {
				return err
			}

			var opts []parser.Option
			if spans {
				opts = append(opts, parser.WithSourceSpans())
			}
			if digitsOnly {
				opts = append(opts, parser.WithNumbers(parser.NumbersNever))
			}
			if len(functions) > 0 {
				opts = append(opts, parser.WithFunctions(functions...))
			}
			if significantWhitespace {
				opts = append(opts, parser.WithSignificantWhitespace())
			}
			if cmd.Flags().Changed("decimal-marker") {
				opts = append(opts, parser.WithDecimalMarker(decimalMarker))
			}
			if cmd.Flags().Changed("group-separator") {
				opts = append(opts, parser.WithDigitGroupSeparator(groupSeparator))
			}
			if expandRepeating {
				opts = append(opts, parser.WithExpandRepeatingDigits())
			}

			sources := []string{strings.TrimSpace(src)}
			if lines {
				sources = splitLines(src)
			}
			exprs, err := parseAll(engine, sources, opts)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), indent)
			if err != nil {
				return err
			}
			syntaxErrors := 0
			for _, expr := range exprs {
				if err := encoder.Encode(expr); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				syntaxErrors += len(expr.Errors())
			}
			if failOnError && syntaxErrors > 0 {
				return fmt.Errorf("%d syntax errors", syntaxErrors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, tree, dump)")
	cmd.Flags().BoolVar(&indent, "indent", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&spans, "spans", false, "Record the source LaTeX of each node")
	cmd.Flags().BoolVar(&digitsOnly, "no-numbers", false, "Read every digit as its own number")
	cmd.Flags().StringSliceVar(&functions, "functions", nil, "Identifiers to treat as functions (replaces f, g, h)")
	cmd.Flags().StringArrayVarP(&dictionaries, "dictionary", "d", nil, "YAML file with extra dictionary entries (repeatable)")
	cmd.Flags().BoolVar(&significantWhitespace, "significant-whitespace", false, "Do not multiply across spaces")
	cmd.Flags().StringVar(&decimalMarker, "decimal-marker", ".", "LaTeX of the decimal marker")
	cmd.Flags().StringVar(&groupSeparator, "group-separator", `\,`, "LaTeX of the digit group separator")
	cmd.Flags().BoolVar(&expandRepeating, "expand-repeating", false, "Expand repeating decimals")
	cmd.Flags().BoolVar(&lines, "lines", false, "Parse each input line as a separate formula")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit with an error when the output contains Error nodes")

	return cmd
}

// parseAll parses every source concurrently. The results keep the
// order of sources.
func parseAll(engine *latex.Engine, sources []string, opts []parser.Option) ([]*mathjson.Expr, error) {
	exprs := make([]*mathjson.Expr, len(sources))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			expr, err := engine.Parse(src, opts...)
			if err != nil {
				return fmt.Errorf("parse line %d: %w", i+1, err)
			}
			exprs[i] = expr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return exprs, nil
}

func splitLines(src string) []string {
	var out []string
	for _, line := range strings.Split(src, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// readSource returns the first argument, or standard input.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// loadEngine returns the default engine, or one extended with the
// entries of each dictionary file.
func loadEngine(paths []string) (*latex.Engine, error) {
	if len(paths) == 0 {
		return latex.Default(), nil
	}
	var extra []parser.Entry
	for _, path := range paths {
		entries, err := library.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		extra = append(extra, entries...)
	}
	return latex.WithEntries(extra)
}
