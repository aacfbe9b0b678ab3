package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/dscript"
	"github.com/vovakirdan/dscript/internal/registry"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <file>",
	Short: "Store a script in the library",
	Long: `Compile a script file and store it in the library under a name.
Scripts that fail to compile are refused. Adding an existing name replaces
its source.

Examples:
  dscript add intro ./intro.ds
  dscript play intro`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	if registry.Exists(name) {
		return fmt.Errorf("%q is a built-in script; choose another name", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	source := string(data)

	root, err := dscript.Compile(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveScript(name, source); err != nil {
		return err
	}

	logger.Info("script stored", "name", name, "nodes", dscript.Count(root))
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%d nodes)\n", name, dscript.Count(root))
	return nil
}
