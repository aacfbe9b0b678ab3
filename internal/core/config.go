package core

// RuntimeConfig contains configuration passed to a dialogue box at start.
type RuntimeConfig struct {
	ScreenW        int // Screen width in characters
	ScreenH        int // Screen height in characters
	TickRate       int // Frames per second (default 60)
	TicksPerLetter int // Frames per revealed character
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       60,
		TicksPerLetter: 2,
	}
}

// BoxState is the dialogue box status reported to the platform after a step.
type BoxState struct {
	Ended  bool // Playback ran off the graph
	Steps  int  // Nodes advanced through since the last reset
	Cursor int  // Highlighted choice, meaningful on choice nodes
}
