package core

import "github.com/vovakirdan/dscript/internal/dscript"

// BoxView is a snapshot of what the dialogue box shows this frame.
type BoxView struct {
	Speaker  string
	Emotion  string
	Text     string   // Revealed part of the message
	Choices  []string // Declared choices, empty on message nodes
	Cursor   int      // Highlighted choice
	Revealed bool     // Whole message is shown
	Ended    bool
}

// Box drives a dialogue from per-frame input.
// It contains pure logic with no terminal dependencies; the platform maps
// keys to actions and calls Step once per tick.
type Box struct {
	dialogue *dscript.Dialogue
	cursor   int
}

// NewBox creates a dialogue box over a compiled graph.
func NewBox(root *dscript.Node, cfg RuntimeConfig) *Box {
	return &Box{dialogue: dscript.NewDialogue(root, cfg.TicksPerLetter)}
}

// Reset restarts playback from the root.
func (b *Box) Reset() {
	b.dialogue.Reset()
	b.cursor = 0
}

// Step applies one frame of input and advances the typewriter.
func (b *Box) Step(in InputFrame) BoxState {
	d := b.dialogue

	if in.Has(ActionRestart) {
		b.Reset()
		return b.State()
	}

	if in.Has(ActionSkip) {
		d.RevealAll()
	}

	if choices, ok := d.ChoiceContent(); ok {
		if in.Has(ActionUp) && b.cursor > 0 {
			b.cursor--
		}
		if in.Has(ActionDown) && b.cursor < len(choices)-1 {
			b.cursor++
		}
	}

	if in.Has(ActionConfirm) && !d.Ended() {
		if !d.Revealed() {
			// First press finishes the typewriter.
			d.RevealAll()
		} else {
			index := 0
			if d.Current().IsChoice {
				index = b.cursor
			}
			d.Advance(index)
			b.cursor = 0
		}
	}

	d.Tick()
	return b.State()
}

// State returns the current box state.
func (b *Box) State() BoxState {
	return BoxState{
		Ended:  b.dialogue.Ended(),
		Steps:  b.dialogue.Steps(),
		Cursor: b.cursor,
	}
}

// View returns what the box shows right now.
func (b *Box) View() BoxView {
	d := b.dialogue
	if d.Ended() {
		return BoxView{Ended: true}
	}

	speaker, emotion, _ := d.HeaderContent()
	text, _ := d.MessageContent()
	choices, _ := d.ChoiceContent()
	return BoxView{
		Speaker:  speaker,
		Emotion:  emotion,
		Text:     text,
		Choices:  choices,
		Cursor:   b.cursor,
		Revealed: d.Revealed(),
	}
}

// Dialogue returns the underlying cursor.
func (b *Box) Dialogue() *dscript.Dialogue {
	return b.dialogue
}
