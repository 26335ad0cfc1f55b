package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/mathjson/latex/parser"
)

func newTokenizeCmd() *cobra.Command {
	var oneLine bool

	cmd := &cobra.Command{
		Use:   "tokenize [latex]",
		Short: "Print the tokens of a LaTeX string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			tokens := parser.Tokenize(src)
			out := cmd.OutOrStdout()
			if oneLine {
				fmt.Fprintln(out, parser.TokensToString(tokens))
				return nil
			}
			for i, tok := range tokens {
				fmt.Fprintf(out, "%4d  %s\n", i, strings.ReplaceAll(tok, "\n", `\n`))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&oneLine, "join", false, "Print the tokens joined back into LaTeX")
	return cmd
}
