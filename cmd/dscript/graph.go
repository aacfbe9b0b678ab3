package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/dscript"
	"github.com/vovakirdan/dscript/internal/export"
	"github.com/vovakirdan/dscript/internal/library"
)

var flagJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph <file|name>",
	Short: "Print a compiled dialogue graph",
	Long: `Compile a script and print its dialogue graph as an indented tree.

Nodes reached through more than one path are printed once; later
references show "see #id". Unpopulated choice branches are shown as ending
the dialogue.

The script is resolved as a built-in name, then a library name, then a
file path.

Examples:
  dscript graph mad
  dscript graph ./intro.ds --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit the JSON export instead of a tree")
}

func runGraph(cmd *cobra.Command, args []string) error {
	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	script, err := library.Load(args[0], store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		data, err := export.JSON(script.Root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	printTree(out, script.Root)
	return nil
}

// printTree writes the graph depth first, one node per line.
func printTree(out io.Writer, root *dscript.Node) {
	_, ids := dscript.Index(root)
	printed := make(map[*dscript.Node]bool)

	var visit func(n *dscript.Node, depth int, prefix string)
	visit = func(n *dscript.Node, depth int, prefix string) {
		indent := strings.Repeat("  ", depth)
		if printed[n] {
			fmt.Fprintf(out, "%s%ssee #%d\n", indent, prefix, ids[n])
			return
		}
		printed[n] = true
		fmt.Fprintf(out, "%s%s#%d %s\n", indent, prefix, ids[n], describe(n))

		if n.IsChoice {
			for i, c := range n.Choices {
				branch := fmt.Sprintf("[%s] -> ", c.Text)
				next, ok := n.Branch(i)
				if !ok {
					fmt.Fprintf(out, "%s  %s(end)\n", indent, branch)
					continue
				}
				visit(next, depth+1, branch)
			}
			return
		}
		for _, next := range n.Next() {
			visit(next, depth, "")
		}
	}
	visit(root, 0, "")
}

// describe renders one node's header and message.
func describe(n *dscript.Node) string {
	kind := dscript.KindMessage
	if n.IsChoice {
		kind = dscript.KindChoice
	}
	label := ""
	if n.Label != dscript.RootLabel {
		label = " " + n.Label
	}
	return fmt.Sprintf("%s (%s) %s%s: %s", n.Speaker, n.Emotion, kind, label, n.Message)
}
