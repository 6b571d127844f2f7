package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/mq/workspace"
	"github.com/spf13/cobra"
)

func newInferTypeCmd() *cobra.Command {
	var line, column int

	cmd := &cobra.Command{
		Use:   "infer-type <file>",
		Short: "Infer the type of the binary-op expression enclosing a caret position",
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
				return fmt.Errorf("infer-type: no parse state for %s", args[0])
			}

			ttype, ok := ws.TypeAt(args[0], pos)
			if !ok {
				fmt.Println("no enclosing binary-op expression")
				return nil
			}
			fmt.Printf("%+v\n", ttype)
			return nil
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "1-based line number of the caret")
	cmd.Flags().IntVar(&column, "column", 0, "0-based code-unit column of the caret")
	return cmd
}
