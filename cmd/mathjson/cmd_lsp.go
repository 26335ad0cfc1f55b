package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/mathjson/lsp"
)

func newLSPCmd() *cobra.Command {
	var dictionaries []string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(dictionaries)
			if err != nil {
				return err
			}
			server := lsp.NewServer(engine, version)
			return server.RunStdio()
		},
	}
	cmd.Flags().StringArrayVarP(&dictionaries, "dictionary", "d", nil, "YAML file with extra dictionary entries (repeatable)")
	return cmd
}
