// Package export serialises compiled dialogue graphs for other engines.
// Nodes are flattened into an array and edges refer to array indices, so
// converged nodes appear once no matter how many predecessors they have.
package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/vovakirdan/dscript/internal/dscript"
)

//go:embed graph.schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// Document is the exported graph.
type Document struct {
	Root  int    `json:"root"`
	Nodes []Node `json:"nodes"`
}

// Node is one exported dialogue node.
type Node struct {
	ID            int      `json:"id"`
	Speaker       string   `json:"speaker"`
	Emotion       string   `json:"emotion"`
	Message       string   `json:"message"`
	Choice        bool     `json:"choice"`
	Label         string   `json:"label"`
	ChoiceMessage string   `json:"choiceMessage,omitempty"`
	Choices       []Choice `json:"choices,omitempty"`
	Next          []int    `json:"next"`
}

// Choice is one declared branch of an exported choice node.
type Choice struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// ErrInvalid is returned when a document does not match the schema.
var ErrInvalid = errors.New("export: document does not match schema")

// Build flattens the graph reachable from root.
func Build(root *dscript.Node) Document {
	nodes, ids := dscript.Index(root)
	doc := Document{Nodes: make([]Node, len(nodes))}

	for i, n := range nodes {
		out := Node{
			ID:            i,
			Speaker:       n.Speaker,
			Emotion:       n.Emotion,
			Message:       n.Message,
			Choice:        n.IsChoice,
			Label:         n.Label,
			ChoiceMessage: n.ChoiceMessage,
			Next:          make([]int, 0, n.Len()),
		}
		for _, c := range n.Choices {
			out.Choices = append(out.Choices, Choice{Text: c.Text, Label: c.Label})
		}
		for _, next := range n.Next() {
			out.Next = append(out.Next, ids[next])
		}
		doc.Nodes[i] = out
	}
	return doc
}

// JSON exports the graph as indented JSON validated against the schema.
func JSON(root *dscript.Node) ([]byte, error) {
	if root == nil {
		return nil, errors.New("export: nil graph")
	}
	data, err := json.MarshalIndent(Build(root), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: cannot marshal graph: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks a document against the graph schema and that every edge
// points at an existing node.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("export: cannot validate document: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("export: cannot decode document: %w", err)
	}
	if doc.Root >= len(doc.Nodes) {
		return fmt.Errorf("%w: root %d out of range", ErrInvalid, doc.Root)
	}
	for _, n := range doc.Nodes {
		for _, id := range n.Next {
			if id >= len(doc.Nodes) {
				return fmt.Errorf("%w: node %d points at missing node %d", ErrInvalid, n.ID, id)
			}
		}
	}
	return nil
}

// Restore rebuilds a graph from an exported document.
func Restore(data []byte) (*dscript.Node, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: cannot decode document: %w", err)
	}

	nodes := make([]*dscript.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.Choice {
			choices := make([]dscript.Choice, len(n.Choices))
			for j, c := range n.Choices {
				choices[j] = dscript.Choice{Text: c.Text, Label: c.Label}
			}
			nodes[i] = dscript.NewChoiceNode(n.Speaker, n.Emotion, n.Message, n.Label, choices)
		} else {
			nodes[i] = dscript.NewNode(n.Speaker, n.Emotion, n.Message, n.Label)
		}
		nodes[i].ChoiceMessage = n.ChoiceMessage
	}
	for i, n := range doc.Nodes {
		for _, id := range n.Next {
			nodes[i].AddNeighbor(nodes[id])
		}
	}
	return nodes[doc.Root], nil
}
