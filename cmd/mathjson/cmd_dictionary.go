package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/mathjson/latex/library"
	"github.com/dhamidi/mathjson/latex/parser"
)

func newDictionaryCmd() *cobra.Command {
	var dictionaries []string
	var kind string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "List the dictionary entries the parser knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(dictionaries)
			if err != nil {
				return err
			}

			var entries []parser.Entry
			for _, e := range engine.Index().Entries() {
				if kind != "" && e.Kind().String() != kind {
					continue
				}
				entries = append(entries, e)
			}

			if asYAML {
				data, err := library.Marshal(entries)
				if err != nil {
					return fmt.Errorf("encode dictionary: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			var data [][]string
			for _, e := range entries {
				s := library.Spec(e)
				trigger := s.Latex
				switch {
				case s.Identifier != "":
					trigger = s.Identifier
				case s.Open != "":
					trigger = s.Open + " " + s.Close
				case s.Environment != "":
					trigger = s.Environment
				}
				precedence := ""
				if s.Precedence > 0 {
					precedence = strconv.Itoa(s.Precedence)
				}
				data = append(data, []string{s.Kind, trigger, s.Name, precedence, s.Associativity})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"KIND", "TRIGGER", "NAME", "PRECEDENCE", "ASSOC"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&dictionaries, "dictionary", "d", nil, "YAML file with extra dictionary entries (repeatable)")
	cmd.Flags().StringVar(&kind, "kind", "", "Only list entries of this kind")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the entries as a YAML dictionary")
	return cmd
}
