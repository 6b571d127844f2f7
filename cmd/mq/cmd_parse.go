package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an M source file and dump its node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			result := parser.Parse(data)
			ns := result.Nodes()
			if ns == nil {
				return fmt.Errorf("parse: no node state produced")
			}

			dumpTree(os.Stdout, ns.Collection, ns.Root, 0)

			if result.Err != nil {
				fmt.Fprintf(os.Stdout, "\nparse error: %v\n", result.Err)
				return nil
			}
			fmt.Fprintf(os.Stdout, "\nok: root=%d\n", result.Ok.Root)
			return nil
		},
	}
	return cmd
}

func dumpTree(w *os.File, coll *nodemap.Collection, id int, depth int) {
	indent := strings.Repeat("  ", depth)
	if node, ok := coll.GetAst(id); ok {
		if node.Token != nil {
			fmt.Fprintf(w, "%s%s %q\n", indent, node.Kind, node.Token.Literal)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, node.Kind)
		}
	} else if ctx, ok := coll.GetContext(id); ok {
		fmt.Fprintf(w, "%s%s (open)\n", indent, ctx.Kind)
	} else {
		fmt.Fprintf(w, "%s<missing %d>\n", indent, id)
		return
	}
	for _, child := range coll.GetChildIds(id) {
		dumpTree(w, coll, child, depth+1)
	}
}
