package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dscript/internal/core"
	"github.com/vovakirdan/dscript/internal/library"
	"github.com/vovakirdan/dscript/internal/platform/tui"
	"github.com/vovakirdan/dscript/internal/storage"
)

var flagTicksPerLetter int

var playCmd = &cobra.Command{
	Use:   "play [file|name]",
	Short: "Play a script",
	Long: `Play a script in the terminal. Without an argument, a menu lists the
built-in and library scripts.

The script is resolved as a built-in name, then a library name, then a
file path.

Controls:
  Enter/Space  - Show the whole line, then continue
  Up/Down      - Pick a choice
  Tab          - Skip the typewriter
  R            - Restart from the first line
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  dscript play
  dscript play mad
  dscript play ./intro.ds --speed 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagTicksPerLetter, "speed", 0, "Frames per revealed character (overrides config)")
}

func runPlay(_ *cobra.Command, args []string) error {
	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	if len(args) == 1 {
		return playScript(args[0], store, cfg)
	}
	return runMenuLoop(store, cfg)
}

// runtimeConfig builds playback settings from config, flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = appConfig.Playback.TickRate
	cfg.TicksPerLetter = appConfig.Playback.TicksPerLetter
	if flagTicksPerLetter > 0 {
		cfg.TicksPerLetter = flagTicksPerLetter
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// playScript resolves and plays one script.
func playScript(name string, store *storage.Store, cfg core.RuntimeConfig) error {
	script, err := library.Load(name, store)
	if err != nil {
		return err
	}
	logger.Debug("playing script", "script", script.Name, "origin", script.Origin)

	return tui.Run(script, cfg, tui.Options{
		Store:     store,
		Logger:    logger,
		Portraits: appConfig.Portraits,
	})
}

// runMenuLoop shows the menu until the user quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsStats:
			goBack, err := tui.RunStats(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if err := playScript(result.Name, store, cfg); err != nil {
				logger.Error("cannot play script", "script", result.Name, "error", err)
			}
		}
	}
}
