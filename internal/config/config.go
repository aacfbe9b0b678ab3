// Package config provides YAML-based configuration loading for the DScript
// tools: playback speed, storage, logging, the SSH server and the portraits
// shown next to each speaker.
package config

import (
	"strings"
	"time"
)

// Config contains all configuration for the dscript tools.
type Config struct {
	Playback  PlaybackConfig `yaml:"playback"`
	Storage   StorageConfig  `yaml:"storage"`
	Log       LogConfig      `yaml:"log"`
	SSH       SSHConfig      `yaml:"ssh"`
	Portraits Portraits      `yaml:"portraits"`
}

// PlaybackConfig defines typewriter timing.
type PlaybackConfig struct {
	TickRate       int `yaml:"tick_rate"`        // Frames per second
	TicksPerLetter int `yaml:"ticks_per_letter"` // Frames per revealed character
}

// StorageConfig defines where the script library lives.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Rotated log file, empty for stderr
}

// SSHConfig defines the SSH player server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// Portrait is the glyph and color drawn next to a speaker.
type Portrait struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"` // ANSI 256-color code
}

// Portraits maps speaker -> emotion -> portrait. The emotion "default"
// applies when a speaker has no portrait for the requested emotion.
type Portraits map[string]map[string]Portrait

// DefaultEmotion is the fallback emotion key in Portraits.
const DefaultEmotion = "default"

// Portrait looks up the portrait for a speaker and emotion.
// Speaker names match case-insensitively.
func (p Portraits) Portrait(speaker, emotion string) (Portrait, bool) {
	emotions, ok := p[speaker]
	if !ok {
		for name, e := range p {
			if strings.EqualFold(name, speaker) {
				emotions, ok = e, true
				break
			}
		}
	}
	if !ok {
		return Portrait{}, false
	}
	if portrait, ok := emotions[emotion]; ok {
		return portrait, true
	}
	portrait, ok := emotions[DefaultEmotion]
	return portrait, ok
}
