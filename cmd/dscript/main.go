// dscript compiles, inspects and plays DScript dialogue scripts.
//
// Usage:
//
//	dscript check <file>...        - Compile scripts and report errors
//	dscript graph <file|name>      - Print the compiled dialogue graph
//	dscript play [file|name]       - Play a script (menu when no name is given)
//	dscript add <name> <file>      - Store a script in the library
//	dscript rm <name>              - Remove a library script
//	dscript list                   - List built-in and library scripts
//	dscript serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.dscript, ./configs)
//	--db <path>         - Library database (default from config)
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write rotated logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/config"
	"github.com/vovakirdan/dscript/internal/logging"
	"github.com/vovakirdan/dscript/internal/storage"

	// Import built-in scripts to register them
	_ "github.com/vovakirdan/dscript/internal/scripts"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Set by the root command before any subcommand runs.
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dscript",
	Short: "DScript - branching dialogue scripts for the terminal",
	Long: `DScript compiles a small line-oriented dialogue language into a
branching, converging dialogue graph and plays it back in the terminal.

Available commands:
  check    - Compile scripts and report errors
  graph    - Print a compiled dialogue graph
  play     - Play a script
  add      - Store a script in the library
  rm       - Remove a library script
  list     - Show built-in and library scripts
  serve    - Start SSH server for remote play

Examples:
  dscript check intro.ds
  dscript graph mad
  dscript play ./intro.ds
  dscript add intro ./intro.ds
  dscript serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to library database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (rotated); empty logs to stderr")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config and builds the logger, applying flag overrides.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	appConfig = cfg
	logger = logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Prefix: "dscript",
	})
	return nil
}

// openStore opens the library database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("library opened", "path", appConfig.Storage.DBPath)
	return store, nil
}

// openStoreOptional opens the library, or returns nil with a warning when
// it is unavailable. Built-in scripts and files still work without it.
func openStoreOptional() *storage.Store {
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open script library", "error", err)
		return nil
	}
	return store
}
