// Package dscript compiles DScript dialogue files into a node graph and plays
// the graph back one node at a time.
//
// A script is a sequence of message and choice nodes grouped into labels.
// Choice nodes fork the current label into named branches; a CONVERGE
// directive marks a branch as finished so that the next node on the parent
// label becomes a shared continuation for every converged branch.
//
//	Bob angry C
//	Are you mad?
//	No -> FIGHT
//	Yes -> FRIENDSHIP
//	END
//	Bob pissed M FIGHT
//	Fine then!
//	CONVERGE FIGHT
//	Bob calm M
//	Anyway.
package dscript

// Node kind markers used in headers.
const (
	KindMessage = "M"
	KindChoice  = "C"
)

// Choice is one declared branch of a choice node.
type Choice struct {
	Text  string // Text shown to the player
	Label string // Branch label the choice leads to
}

// Node is a single dialogue line in the compiled graph.
// Content is fixed at construction; only the successor list grows.
type Node struct {
	Speaker       string
	Emotion       string
	Message       string
	IsChoice      bool
	Label         string   // Label this node belongs to
	ChoiceMessage string   // Text of the choice edge leading here, empty otherwise
	Choices       []Choice // Declared branches, choice nodes only

	next []*Node
}

// NewNode creates a message node.
func NewNode(speaker, emotion, message, label string) *Node {
	return &Node{
		Speaker: speaker,
		Emotion: emotion,
		Message: message,
		Label:   label,
	}
}

// NewChoiceNode creates a choice node with the given declared branches.
func NewChoiceNode(speaker, emotion, message, label string, choices []Choice) *Node {
	n := NewNode(speaker, emotion, message, label)
	n.IsChoice = true
	n.Choices = append([]Choice(nil), choices...)
	return n
}

// AddNeighbor appends a successor.
func (n *Node) AddNeighbor(next *Node) {
	n.next = append(n.next, next)
}

// To returns the i-th successor, or false if i is out of range.
func (n *Node) To(i int) (*Node, bool) {
	if i < 0 || i >= len(n.next) {
		return nil, false
	}
	return n.next[i], true
}

// Next returns a copy of the successor list.
func (n *Node) Next() []*Node {
	return append([]*Node(nil), n.next...)
}

// Len returns the number of successors.
func (n *Node) Len() int {
	return len(n.next)
}

// Branch returns the successor that starts the i-th declared branch of a
// choice node. Branches that were never populated return false.
func (n *Node) Branch(i int) (*Node, bool) {
	if !n.IsChoice || i < 0 || i >= len(n.Choices) {
		return nil, false
	}
	label := n.Choices[i].Label
	for _, next := range n.next {
		if next.Label == label {
			return next, true
		}
	}
	return nil, false
}
