package dscript

// Dialogue is a playback cursor over a compiled graph.
// It is Active while it points at a node and Ended once it runs off the graph.
// The graph is never modified, so several Dialogues may share one graph.
type Dialogue struct {
	root           *Node
	current        *Node
	ticksPerLetter int

	message  []rune // Current message, decoded once per node
	revealed int    // Runes of message shown so far
	ticks    int    // Ticks since the last revealed rune
	steps    int    // Advances since the last reset
}

// NewDialogue creates a cursor at root. ticksPerLetter sets how many Tick
// calls reveal one character; values below 1 are treated as 1.
func NewDialogue(root *Node, ticksPerLetter int) *Dialogue {
	if ticksPerLetter < 1 {
		ticksPerLetter = 1
	}
	d := &Dialogue{root: root, ticksPerLetter: ticksPerLetter}
	d.Reset()
	return d
}

// Reset returns to the root and clears the revealed text.
func (d *Dialogue) Reset() {
	d.steps = 0
	d.enter(d.root)
}

// enter moves the cursor and restarts the typewriter.
func (d *Dialogue) enter(n *Node) {
	d.current = n
	d.revealed = 0
	d.ticks = 0
	d.message = nil
	if n != nil {
		d.message = []rune(n.Message)
	}
}

// Ended reports whether playback ran off the graph.
func (d *Dialogue) Ended() bool {
	return d.current == nil
}

// Current returns the current node, or nil when ended.
func (d *Dialogue) Current() *Node {
	return d.current
}

// Steps returns the number of advances since the last reset.
func (d *Dialogue) Steps() int {
	return d.steps
}

// TicksPerLetter returns the typewriter speed.
func (d *Dialogue) TicksPerLetter() int {
	return d.ticksPerLetter
}

// HeaderContent returns the current speaker and emotion.
func (d *Dialogue) HeaderContent() (speaker, emotion string, ok bool) {
	if d.current == nil {
		return "", "", false
	}
	return d.current.Speaker, d.current.Emotion, true
}

// MessageContent returns the part of the message revealed so far.
func (d *Dialogue) MessageContent() (string, bool) {
	if d.current == nil {
		return "", false
	}
	return string(d.message[:d.revealed]), true
}

// ChoiceContent returns the choice texts of the current choice node in
// declaration order.
func (d *Dialogue) ChoiceContent() ([]string, bool) {
	if d.current == nil || !d.current.IsChoice {
		return nil, false
	}
	texts := make([]string, len(d.current.Choices))
	for i, c := range d.current.Choices {
		texts[i] = c.Text
	}
	return texts, true
}

// Revealed reports whether the whole message is shown.
func (d *Dialogue) Revealed() bool {
	return d.current != nil && d.revealed == len(d.message)
}

// UpdateText reveals one more character of the message.
func (d *Dialogue) UpdateText() {
	if d.current == nil || d.revealed >= len(d.message) {
		return
	}
	d.revealed++
}

// Tick is the per-frame hook; it reveals a character every ticksPerLetter
// calls.
func (d *Dialogue) Tick() {
	if d.current == nil || d.revealed >= len(d.message) {
		return
	}
	d.ticks++
	if d.ticks >= d.ticksPerLetter {
		d.ticks = 0
		d.UpdateText()
	}
}

// RevealAll shows the whole message at once.
func (d *Dialogue) RevealAll() {
	if d.current == nil {
		return
	}
	d.revealed = len(d.message)
	d.ticks = 0
}

// Advance moves to the i-th successor. On a choice node i selects the i-th
// declared choice. A missing successor ends the dialogue.
func (d *Dialogue) Advance(i int) {
	if d.current == nil {
		return
	}

	var next *Node
	if d.current.IsChoice {
		next, _ = d.current.Branch(i)
	} else {
		next, _ = d.current.To(i)
	}

	if next != nil {
		d.steps++
	}
	d.enter(next)
}
