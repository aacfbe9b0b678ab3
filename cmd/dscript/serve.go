package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dscript/internal/logging"
	"github.com/vovakirdan/dscript/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dscript SSH server",
	Long: `Start an SSH server that lets users connect and play scripts.

Each SSH connection gets its own session with a script picker menu.
Play statistics are shared by everyone on the server.

Host key handling:
  - If --host-key (or ssh.host_key in config) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.dscript/host_key

Examples:
  dscript serve                           # Listen on the configured address
  dscript serve --ssh :2222               # Listen on port 2222
  dscript serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}

	sshLogger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Prefix: "dscript-ssh",
	})

	store, err := openStore()
	if err != nil {
		// Continue without storage: built-in scripts still play.
		sshLogger.Warn("could not open script library", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, sshLogger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting dscript SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
