package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/platform/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and library scripts",
	Long:  `Shows every playable script with how often it was played and finished.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	items, err := tui.MenuItems(store)
	if err != nil {
		logger.Warn("could not list library scripts", "error", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No scripts available.")
		return nil
	}

	// Calculate column widths
	nameLen := len("Name")
	for _, item := range items {
		if len(item.Name) > nameLen {
			nameLen = len(item.Name)
		}
	}

	rows := tui.StatsRows(store, items)

	fmt.Fprintf(out, "  %-*s  %-8s  %5s  %5s  %s\n", nameLen, "Name", "Origin", "Plays", "Done", "Title")
	fmt.Fprintf(out, "  %-*s  %-8s  %5s  %5s  %s\n", nameLen, "----", "------", "-----", "----", "-----")
	for i, item := range items {
		fmt.Fprintf(out, "  %-*s  %-8s  %5s  %5s  %s\n",
			nameLen, item.Name, item.Origin, rows[i][2], rows[i][3], item.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'dscript play <name>' to play a script.")
	return nil
}
