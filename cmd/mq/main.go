package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mq",
		Short: "A parsing and semantic-inspection toolchain for M (Power Query)",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newAstCmd())
	rootCmd.AddCommand(newAncestryCmd())
	rootCmd.AddCommand(newAutocompleteCmd())
	rootCmd.AddCommand(newInferTypeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
