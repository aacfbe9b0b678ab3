package config

import (
	_ "embed"
)

//go:embed defaults/dscript.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Playback: PlaybackConfig{
			TickRate:       60,
			TicksPerLetter: 2,
		},
		Storage: StorageConfig{
			DBPath: "~/.dscript/library.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Portraits: Portraits{},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
