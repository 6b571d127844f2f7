package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/parser"
	"github.com/spf13/cobra"
)

func newAstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print only the finished AST subtree of an M source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			result := parser.Parse(data)
			ns := result.Nodes()
			if ns == nil {
				return fmt.Errorf("ast: no node state produced")
			}

			dumpAstTree(os.Stdout, ns.Collection, ns.Root, 0)
			return nil
		},
	}
	return cmd
}

// dumpAstTree prints only ast.Node payloads, matching dumpTree's
// indentation but stopping at any node still open as a ContextNode
// instead of printing its "(open)" marker — "ast" is the finished-tree
// view, "parse" is the full dual-mode debug view.
func dumpAstTree(w *os.File, coll *nodemap.Collection, id int, depth int) {
	indent := strings.Repeat("  ", depth)
	node, ok := coll.GetAst(id)
	if !ok {
		fmt.Fprintf(w, "%s<unparsed>\n", indent)
		return
	}
	if node.Token != nil {
		fmt.Fprintf(w, "%s%s %q\n", indent, node.Kind, node.Token.Literal)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, node.Kind)
	}
	for _, child := range coll.GetChildIds(id) {
		dumpAstTree(w, coll, child, depth+1)
	}
}
