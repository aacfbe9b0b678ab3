package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/storage"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a library script",
	Long: `Remove a script and its play statistics from the library.
Built-in scripts cannot be removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteScript(name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no library script named %q", name)
		}
		return err
	}

	logger.Info("script removed", "name", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", name)
	return nil
}
