package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/dscript"
)

var errCheckFailed = errors.New("some scripts failed to compile")

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Compile scripts and report errors",
	Long: `Compile each script file and report its node count and endings,
or the first error with its line number.

Exits with status 1 if any file fails.

Examples:
  dscript check intro.ds
  dscript check scripts/*.ds`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if !checkFile(out, path) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w (%d of %d)", errCheckFailed, failed, len(args))
	}
	return nil
}

// checkFile compiles one file and prints the result.
func checkFile(out io.Writer, path string) bool {
	root, err := dscript.CompileFile(path)
	if err != nil {
		fmt.Fprintf(out, "FAIL  %s\n      %v\n", path, err)
		logger.Debug("check failed", "file", path, "error", err)
		return false
	}

	endings := dscript.Endings(root)
	fmt.Fprintf(out, "ok    %s  (%d nodes, %d endings)\n", path, dscript.Count(root), len(endings))
	for _, n := range endings {
		fmt.Fprintf(out, "      end: %s: %s\n", n.Speaker, n.Message)
	}
	return true
}
