package dscript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadSingleMessage(t *testing.T) {
	chunks, err := Read("Bob neutral M\nHello")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	c := chunks[0]
	if c.Kind != ChunkNode {
		t.Errorf("expected node chunk, got %v", c.Kind)
	}
	if c.Choices != nil {
		t.Errorf("message chunk should have no choices, got %v", c.Choices)
	}
	n := c.Node
	if n.Speaker != "Bob" || n.Emotion != "neutral" || n.Message != "Hello" {
		t.Errorf("unexpected node content: %+v", n)
	}
	if n.IsChoice || n.Label != RootLabel {
		t.Errorf("expected root message node, got IsChoice=%v Label=%q", n.IsChoice, n.Label)
	}
}

func TestReadChoiceBody(t *testing.T) {
	script := `
# greeting
Bob angry C
Are you mad?
No -> FIGHT
Yes -> FRIENDSHIP
END

Bob pissed M FIGHT
Fine then!
CONVERGE FIGHT
`
	chunks, err := Read(script)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	choice := chunks[0]
	if !choice.Node.IsChoice {
		t.Fatal("first chunk should be a choice node")
	}
	if choice.Line != 3 {
		t.Errorf("expected header on line 3, got %d", choice.Line)
	}
	want := []Choice{{Text: "No", Label: "FIGHT"}, {Text: "Yes", Label: "FRIENDSHIP"}}
	if len(choice.Choices) != len(want) {
		t.Fatalf("expected %d choices, got %d", len(want), len(choice.Choices))
	}
	for i := range want {
		if choice.Choices[i] != want[i] {
			t.Errorf("choice %d = %+v, expected %+v", i, choice.Choices[i], want[i])
		}
	}

	if chunks[1].Node.Label != "FIGHT" {
		t.Errorf("expected label FIGHT, got %q", chunks[1].Node.Label)
	}

	conv := chunks[2]
	if conv.Kind != ChunkConverge || conv.ConvergingLabel != "FIGHT" {
		t.Errorf("expected CONVERGE FIGHT, got %+v", conv)
	}
}

func TestReadHeaderExtraSpaces(t *testing.T) {
	chunks, err := Read("  Bob   happy   M   INTRO  \n   Hi there   ")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	n := chunks[0].Node
	if n.Label != "INTRO" || n.Message != "Hi there" {
		t.Errorf("unexpected node: %+v", n)
	}
}

func TestReadIdempotent(t *testing.T) {
	script := "Bob a C\nQ?\nNo -> X\nYes -> Y\nEND\nBob b M X\nok\nCONVERGE X"

	first, err := Read(script)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	second, err := Read(script)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Kind != b.Kind || a.Line != b.Line || a.ConvergingLabel != b.ConvergingLabel {
			t.Errorf("chunk %d differs: %+v vs %+v", i, a, b)
		}
		if (a.Node == nil) != (b.Node == nil) {
			t.Errorf("chunk %d node presence differs", i)
			continue
		}
		if a.Node != nil && !Equal(a.Node, b.Node) {
			t.Errorf("chunk %d nodes differ", i)
		}
		if a.Node != nil && a.Node == b.Node {
			t.Errorf("chunk %d shares a node between reads", i)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		kind   ErrorKind
		line   int
	}{
		{"empty", "", ErrEmptyScript, 0},
		{"only comments", "# nothing\n\n   # here\n", ErrEmptyScript, 0},
		{"one field header", "Bob\nHello", ErrHeaderArity, 1},
		{"five field header", "Bob a M L extra\nHello", ErrHeaderArity, 1},
		{"two fields without converge", "GOTO FIGHT", ErrMissingConverge, 1},
		{"unknown kind", "Bob neutral X\nHello", ErrUnknownKind, 1},
		{"missing message", "Bob neutral M", ErrMissingMessage, 1},
		{"missing message after comment", "Bob neutral M\n# comment", ErrMissingMessage, 1},
		{"unterminated choices", "Bob a C\nQ?\nNo -> X", ErrUnterminatedChoices, 1},
		{"choice without separator", "Bob a C\nQ?\nNo X\nEND", ErrMalformedChoice, 3},
		{"choice with two separators", "Bob a C\nQ?\na -> b -> c\nEND", ErrMalformedChoice, 3},
		{"choice separator without spaces", "Bob a C\nQ?\nNo->X\nEND", ErrMalformedChoice, 3},
		{"no choices", "Bob a C\nQ?\nEND", ErrNoChoices, 1},
		{"error after valid chunk", "Bob a M\nHi\n\nBob b Z\nHi", ErrUnknownKind, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := Read(tc.script)
			if err == nil {
				t.Fatalf("Read() succeeded with %d chunks, expected %v", len(chunks), tc.kind)
			}
			if chunks != nil {
				t.Errorf("Read() returned partial chunks: %v", chunks)
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("Read() error = %v, expected kind %v", err, tc.kind)
			}
			var dsErr *Error
			if !errors.As(err, &dsErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if dsErr.Line != tc.line {
				t.Errorf("error line = %d, expected %d", dsErr.Line, tc.line)
			}
			if !dsErr.Kind.Syntax() {
				t.Errorf("kind %v should be a syntax error", dsErr.Kind)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.ds")
	if err := os.WriteFile(path, []byte("Bob neutral M\r\nHello\r\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	chunks, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if chunks[0].Node.Message != "Hello" {
		t.Errorf("expected message Hello, got %q", chunks[0].Node.Message)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.ds")); err == nil {
		t.Error("ReadFile() on missing file should fail")
	}
}
