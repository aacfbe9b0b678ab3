package dscript

import (
	"fmt"
	"os"
	"strings"
)

// Script keywords and separators.
const (
	KeywordConverge = "CONVERGE"
	KeywordEnd      = "END"
	CommentPrefix   = "#"
	ChoiceSeparator = " -> "
	RootLabel       = ""
)

// ChunkKind tells node chunks from converge directives.
type ChunkKind int

const (
	ChunkNode ChunkKind = iota
	ChunkConverge
)

// Chunk is one authoring unit produced by the Reader.
type Chunk struct {
	Kind ChunkKind
	Line int // Header line in the source

	// ChunkNode
	Node    *Node
	Choices []Choice // Declaration order, choice nodes only

	// ChunkConverge
	ConvergingLabel string
}

// line is a significant source line with its original position.
type line struct {
	num  int
	text string
}

// reader walks the significant lines with an index cursor.
type reader struct {
	lines []line
	pos   int
}

// Read tokenizes a script into chunks. It validates only line-level syntax;
// label semantics are checked by the Parser. Any failure discards all chunks.
func Read(script string) ([]Chunk, error) {
	r := &reader{lines: significantLines(script)}

	var chunks []Chunk
	for !r.done() {
		chunk, err := r.readChunk()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) == 0 {
		return nil, syntaxError(ErrEmptyScript, 0, "")
	}
	return chunks, nil
}

// ReadFile reads and tokenizes a script file.
func ReadFile(path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dscript: cannot read %s: %w", path, err)
	}
	return Read(string(data))
}

// significantLines drops blank and comment lines and trims the rest.
func significantLines(script string) []line {
	raw := strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n")
	lines := make([]line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, CommentPrefix) {
			continue
		}
		lines = append(lines, line{num: i + 1, text: text})
	}
	return lines
}

func (r *reader) done() bool {
	return r.pos >= len(r.lines)
}

// next consumes one line. ok is false at end of input.
func (r *reader) next() (line, bool) {
	if r.done() {
		return line{}, false
	}
	l := r.lines[r.pos]
	r.pos++
	return l, true
}

// readChunk consumes a header and its body.
func (r *reader) readChunk() (Chunk, error) {
	header, _ := r.next()
	fields := strings.Fields(header.text)

	switch len(fields) {
	case 2:
		if fields[0] != KeywordConverge {
			return Chunk{}, syntaxError(ErrMissingConverge, header.num, header.text)
		}
		return Chunk{
			Kind:            ChunkConverge,
			Line:            header.num,
			ConvergingLabel: fields[1],
		}, nil
	case 3, 4:
		return r.readNode(header, fields)
	default:
		return Chunk{}, syntaxError(ErrHeaderArity, header.num, header.text)
	}
}

// readNode consumes the message and, for choice nodes, the choice body.
func (r *reader) readNode(header line, fields []string) (Chunk, error) {
	speaker, emotion, kind := fields[0], fields[1], fields[2]
	label := RootLabel
	if len(fields) == 4 {
		label = fields[3]
	}

	if kind != KindMessage && kind != KindChoice {
		return Chunk{}, syntaxError(ErrUnknownKind, header.num, kind)
	}

	msg, ok := r.next()
	if !ok {
		return Chunk{}, syntaxError(ErrMissingMessage, header.num, header.text)
	}

	if kind == KindMessage {
		return Chunk{
			Kind: ChunkNode,
			Line: header.num,
			Node: NewNode(speaker, emotion, msg.text, label),
		}, nil
	}

	choices, err := r.readChoices(header)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{
		Kind:    ChunkNode,
		Line:    header.num,
		Node:    NewChoiceNode(speaker, emotion, msg.text, label, choices),
		Choices: choices,
	}, nil
}

// readChoices consumes "text -> label" lines up to END.
func (r *reader) readChoices(header line) ([]Choice, error) {
	var choices []Choice
	for {
		l, ok := r.next()
		if !ok {
			return nil, syntaxError(ErrUnterminatedChoices, header.num, header.text)
		}
		if l.text == KeywordEnd {
			break
		}

		parts := strings.Split(l.text, ChoiceSeparator)
		if len(parts) != 2 {
			return nil, syntaxError(ErrMalformedChoice, l.num, l.text)
		}
		choices = append(choices, Choice{Text: parts[0], Label: parts[1]})
	}

	if len(choices) == 0 {
		return nil, syntaxError(ErrNoChoices, header.num, header.text)
	}
	return choices, nil
}
