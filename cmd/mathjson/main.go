package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:          "mathjson",
		Short:        "Turn LaTeX math into MathJSON",
		SilenceUsage: true,
		Version:      version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Log more (repeat for debug output)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newDictionaryCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
