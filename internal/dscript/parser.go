package dscript

// activeLabel is an open branch in the parser's label table.
type activeLabel struct {
	name               string
	head               *Node // nil until the branch gets its first node
	pendingChoiceText  string
	converging         bool
	parent             *activeLabel // nil for root and orphaned labels
	spawn              *Node        // Choice node that declared the label
	convergingChildren []*activeLabel
}

// Parser builds a node graph from chunks. Parsing links the chunk nodes in
// place, so a Parser and its chunks are single use.
type Parser struct {
	chunks   []Chunk
	pos      int
	sentinel *Node
	labels   map[string]*activeLabel
}

// NewParser creates a parser over the given chunks.
func NewParser(chunks []Chunk) *Parser {
	sentinel := &Node{}
	return &Parser{
		chunks:   chunks,
		sentinel: sentinel,
		labels: map[string]*activeLabel{
			RootLabel: {name: RootLabel, head: sentinel},
		},
	}
}

// Parse consumes the chunks and returns the root of the graph. The first
// semantic error aborts the parse and no graph is returned.
func (p *Parser) Parse() (*Node, error) {
	for p.pos < len(p.chunks) {
		chunk := p.chunks[p.pos]
		p.pos++

		var err error
		switch {
		case chunk.Kind == ChunkConverge:
			err = p.convergeNodes(chunk.ConvergingLabel, chunk.Line)
		case chunk.Node != nil && chunk.Node.IsChoice:
			err = p.addChoiceNode(chunk.Node, chunk.Choices, chunk.Line)
		case chunk.Node != nil:
			err = p.addNode(chunk.Node, chunk.Line)
		default:
			err = &Error{Kind: ErrUnknown, Line: chunk.Line}
		}
		if err != nil {
			return nil, err
		}
	}

	root, ok := p.sentinel.To(0)
	if !ok {
		return nil, &Error{Kind: ErrEmptyGraph}
	}
	return root, nil
}

// Parse builds a graph from chunks with a fresh Parser.
func Parse(chunks []Chunk) (*Node, error) {
	return NewParser(chunks).Parse()
}

// Compile reads and parses a script.
func Compile(script string) (*Node, error) {
	chunks, err := Read(script)
	if err != nil {
		return nil, err
	}
	return Parse(chunks)
}

// CompileFile reads and parses a script file.
func CompileFile(path string) (*Node, error) {
	chunks, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(chunks)
}

// convergeNodes marks a branch as finished so that the next node on its
// parent label merges it.
func (p *Parser) convergeNodes(name string, lineNum int) error {
	label, ok := p.labels[name]
	switch {
	case !ok:
		return labelError(ErrUndefinedLabel, lineNum, name)
	case name == RootLabel:
		return labelError(ErrRootConvergence, lineNum, name)
	case label.converging:
		return labelError(ErrAlreadyConverging, lineNum, name)
	case label.head == nil:
		return labelError(ErrEmptyBranch, lineNum, name)
	case label.head.IsChoice:
		return labelError(ErrConvergingChoiceTip, lineNum, name)
	case label.parent == nil:
		return labelError(ErrOrphanedLabel, lineNum, name)
	}

	label.converging = true
	label.parent.convergingChildren = append(label.parent.convergingChildren, label)
	return nil
}

// addChoiceNode adds a choice node and opens one label per declared branch.
func (p *Parser) addChoiceNode(node *Node, choices []Choice, lineNum int) error {
	if len(choices) == 0 {
		choices = node.Choices
	}
	if len(node.Choices) == 0 {
		node.Choices = append([]Choice(nil), choices...)
	}
	if err := p.addNode(node, lineNum); err != nil {
		return err
	}

	parent := p.labels[node.Label]
	for _, c := range choices {
		if _, exists := p.labels[c.Label]; exists {
			return labelError(ErrLabelRedeclared, lineNum, c.Label)
		}
		p.labels[c.Label] = &activeLabel{
			name:              c.Label,
			pendingChoiceText: c.Text,
			parent:            parent,
			spawn:             node,
		}
	}
	return nil
}

// addNode appends a node to the tip of its label.
func (p *Parser) addNode(node *Node, lineNum int) error {
	label, ok := p.labels[node.Label]
	if !ok {
		return labelError(ErrUndefinedLabel, lineNum, node.Label)
	}
	if label.converging {
		return labelError(ErrAlreadyConverging, lineNum, node.Label)
	}

	switch {
	case label.head == nil:
		node.ChoiceMessage = label.pendingChoiceText
		label.spawn.AddNeighbor(node)

	case label.head.IsChoice:
		if len(label.convergingChildren) == 0 {
			return labelError(ErrNothingToMerge, lineNum, node.Label)
		}
		for _, child := range label.convergingChildren {
			child.head.AddNeighbor(node)
			delete(p.labels, child.name)
		}
		// Branches that did not converge become permanent splits.
		for _, other := range p.labels {
			if other.parent == label {
				other.parent = nil
			}
		}
		label.convergingChildren = nil

	default:
		label.head.AddNeighbor(node)
	}

	label.head = node
	return nil
}
