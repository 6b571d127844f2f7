package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/mq/workspace"
	"github.com/spf13/cobra"
)

func newAncestryCmd() *cobra.Command {
	var line, column int

	cmd := &cobra.Command{
		Use:   "ancestry <file>",
		Short: "Print the Active Node's ancestry at a caret position, leaf first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			ws := workspace.New()
			ws.Update(args[0], string(data))

			pos, ok := ws.PositionAt(args[0], line, column)
			if !ok {
				return fmt.Errorf("ancestry: no parse state for %s", args[0])
			}

			ancestry, ok := ws.AncestryAt(args[0], pos)
			if !ok {
				fmt.Println("no active node at that position")
				return nil
			}

			for i, n := range ancestry {
				status := "ast"
				if n.IsContext() {
					status = "open"
				}
				fmt.Printf("%d: %s (%s) id=%d\n", i, n.Kind(), status, n.ID())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "1-based line number of the caret")
	cmd.Flags().IntVar(&column, "column", 0, "0-based code-unit column of the caret")
	return cmd
}
