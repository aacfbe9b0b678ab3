package dscript

import (
	"errors"
	"testing"
)

// mustCompile compiles a script or fails the test.
func mustCompile(t *testing.T, script string) *Node {
	t.Helper()
	root, err := Compile(script)
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	return root
}

func TestParseSingleMessage(t *testing.T) {
	root := mustCompile(t, "Bob neutral M\nHello")

	want := NewNode("Bob", "neutral", "Hello", "")
	if !Equal(root, want) {
		t.Errorf("unexpected root: %+v", root)
	}
	if root.Len() != 0 {
		t.Errorf("expected no successors, got %d", root.Len())
	}
}

func TestParseLinearChain(t *testing.T) {
	root := mustCompile(t, "A x M\none\nB y M\ntwo\nC z M\nthree")

	want := NewNode("A", "x", "one", "")
	two := NewNode("B", "y", "two", "")
	three := NewNode("C", "z", "three", "")
	want.AddNeighbor(two)
	two.AddNeighbor(three)

	if !Equal(root, want) {
		t.Error("linear chain does not match reference graph")
	}
	if Count(root) != 3 {
		t.Errorf("expected 3 nodes, got %d", Count(root))
	}
}

func TestParseUnpopulatedBranch(t *testing.T) {
	script := `Bob angry C
Are you mad?
No -> FIGHT
Yes -> FRIENDSHIP
END
Bob pissed M FIGHT
Fine then!`
	root := mustCompile(t, script)

	if !root.IsChoice {
		t.Fatal("root should be the choice node")
	}
	if root.Len() != 1 {
		t.Fatalf("expected 1 populated branch, got %d", root.Len())
	}

	fight, _ := root.To(0)
	if fight.Message != "Fine then!" || fight.ChoiceMessage != "No" || fight.Label != "FIGHT" {
		t.Errorf("unexpected branch node: %+v", fight)
	}

	if _, ok := root.Branch(1); ok {
		t.Error("FRIENDSHIP branch should be unpopulated")
	}
}

func TestParseConvergeSharesNode(t *testing.T) {
	script := `Bob neutral C
Pick one
Left -> LEFT
Right -> RIGHT
END
Bob happy M LEFT
left one
Bob happy M LEFT
left two
CONVERGE LEFT
Bob sad M RIGHT
right one
CONVERGE RIGHT
Bob calm M
merged`
	root := mustCompile(t, script)

	left, _ := root.To(0)
	right, _ := root.To(1)
	if left.ChoiceMessage != "Left" || right.ChoiceMessage != "Right" {
		t.Fatalf("unexpected branch order: %q, %q", left.ChoiceMessage, right.ChoiceMessage)
	}

	leftTip, _ := left.To(0)
	fromLeft, ok := leftTip.To(0)
	if !ok {
		t.Fatal("left tip has no successor")
	}
	fromRight, ok := right.To(0)
	if !ok {
		t.Fatal("right tip has no successor")
	}

	if fromLeft != fromRight {
		t.Error("converged branches should share the same merge node")
	}
	if fromLeft.Message != "merged" || fromLeft.Label != RootLabel {
		t.Errorf("unexpected merge node: %+v", fromLeft)
	}

	// Reference graph with the same sharing shape.
	want := NewChoiceNode("Bob", "neutral", "Pick one", "", []Choice{{"Left", "LEFT"}, {"Right", "RIGHT"}})
	l1 := NewNode("Bob", "happy", "left one", "LEFT")
	l1.ChoiceMessage = "Left"
	l2 := NewNode("Bob", "happy", "left two", "LEFT")
	r1 := NewNode("Bob", "sad", "right one", "RIGHT")
	r1.ChoiceMessage = "Right"
	merged := NewNode("Bob", "calm", "merged", "")
	want.AddNeighbor(l1)
	want.AddNeighbor(r1)
	l1.AddNeighbor(l2)
	l2.AddNeighbor(merged)
	r1.AddNeighbor(merged)

	if !Equal(root, want) {
		t.Error("converged graph does not match reference graph")
	}
	if Count(root) != 5 {
		t.Errorf("expected 5 distinct nodes, got %d", Count(root))
	}
}

func TestParsePartialMergeLeavesPermanentSplit(t *testing.T) {
	script := `Bob neutral C
Pick one
Left -> LEFT
Right -> RIGHT
END
Bob happy M LEFT
left
CONVERGE LEFT
Bob calm M
merged
Bob sad M RIGHT
still reachable
Bob sad M RIGHT
and growing`
	root := mustCompile(t, script)

	right, ok := root.Branch(1)
	if !ok {
		t.Fatal("RIGHT branch should be populated after the merge")
	}
	if right.Message != "still reachable" || right.ChoiceMessage != "Right" {
		t.Errorf("unexpected RIGHT node: %+v", right)
	}
	tail, _ := right.To(0)
	if tail.Message != "and growing" || tail.Len() != 0 {
		t.Errorf("unexpected RIGHT tail: %+v", tail)
	}

	left, _ := root.Branch(0)
	merged, _ := left.To(0)
	if merged.Message != "merged" {
		t.Errorf("LEFT should continue into the merge node, got %q", merged.Message)
	}
}

func TestParseNestedConvergence(t *testing.T) {
	script := `A x C
outer?
In -> IN
Out -> OUT
END
A x C IN
inner?
One -> ONE
Two -> TWO
END
A x M ONE
one
CONVERGE ONE
A x M TWO
two
CONVERGE TWO
A x M IN
inner done
CONVERGE IN
A x M OUT
out
CONVERGE OUT
A x M
all done`
	root := mustCompile(t, script)

	endings := Endings(root)
	if len(endings) != 1 || endings[0].Message != "all done" {
		t.Fatalf("expected single ending 'all done', got %d endings", len(endings))
	}

	in, _ := root.Branch(0)
	one, _ := in.Branch(0)
	two, _ := in.Branch(1)
	innerDone, _ := one.To(0)
	if other, _ := two.To(0); other != innerDone {
		t.Error("inner branches should share 'inner done'")
	}
	out, _ := root.Branch(1)
	done, _ := out.To(0)
	if last, _ := innerDone.To(0); last != done {
		t.Error("outer branches should share 'all done'")
	}
}

func TestParseBranchOrderFollowsPopulation(t *testing.T) {
	script := `Bob a C
Q?
First -> A
Second -> B
END
Bob b M B
second populated first
Bob c M A
first populated second`
	root := mustCompile(t, script)

	n, _ := root.To(0)
	if n.Label != "B" {
		t.Errorf("successor order should follow population, got %q first", n.Label)
	}
	a, _ := root.Branch(0)
	if a.Label != "A" {
		t.Errorf("Branch(0) should resolve the first declared choice, got %q", a.Label)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		kind   ErrorKind
	}{
		{
			name:   "converge unknown label",
			script: "Bob a M\nHi\nCONVERGE UNKNOWN",
			kind:   ErrUndefinedLabel,
		},
		{
			name:   "node in unknown label",
			script: "Bob a M NOPE\nHi",
			kind:   ErrUndefinedLabel,
		},
		{
			name:   "quoted root label is not the root",
			script: "Bob a M\nHi\nCONVERGE ''",
			kind:   ErrUndefinedLabel,
		},
		{
			name:   "double convergence",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b M X\nok\nCONVERGE X\nCONVERGE X",
			kind:   ErrAlreadyConverging,
		},
		{
			name:   "node after convergence",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b M X\nok\nCONVERGE X\nBob b M X\nagain",
			kind:   ErrAlreadyConverging,
		},
		{
			name:   "converge empty branch",
			script: "Bob a C\nQ?\nNo -> X\nEND\nCONVERGE X",
			kind:   ErrEmptyBranch,
		},
		{
			name:   "converge from choice tip",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b C X\nQ2?\nDeep -> Y\nEND\nCONVERGE X",
			kind:   ErrConvergingChoiceTip,
		},
		{
			name:   "merge without converging branch",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b M X\nok\nBob c M\nback on root",
			kind:   ErrNothingToMerge,
		},
		{
			name:   "duplicate label in one choice",
			script: "Bob a C\nQ?\nNo -> X\nYes -> X\nEND",
			kind:   ErrLabelRedeclared,
		},
		{
			name:   "label redeclared by later choice",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b C X\nQ2?\nAgain -> X\nEND",
			kind:   ErrLabelRedeclared,
		},
		{
			name: "converge orphaned branch",
			script: "Bob a C\nQ?\nL -> LEFT\nR -> RIGHT\nEND\n" +
				"Bob b M LEFT\nl\nCONVERGE LEFT\nBob c M\nmerged\n" +
				"Bob d M RIGHT\nr\nCONVERGE RIGHT",
			kind: ErrOrphanedLabel,
		},
		{
			name:   "merged label is gone",
			script: "Bob a C\nQ?\nNo -> X\nEND\nBob b M X\nok\nCONVERGE X\nBob c M\nroot\nBob d M X\nlate",
			kind:   ErrUndefinedLabel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := Read(tc.script)
			if err != nil {
				t.Fatalf("Read() failed: %v", err)
			}
			root, err := Parse(chunks)
			if err == nil {
				t.Fatalf("Parse() succeeded, expected %v", tc.kind)
			}
			if root != nil {
				t.Error("Parse() returned a partial graph")
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("Parse() error = %v, expected kind %v", err, tc.kind)
			}
			var dsErr *Error
			if errors.As(err, &dsErr) && dsErr.Kind.Syntax() {
				t.Errorf("kind %v should not be a syntax error", dsErr.Kind)
			}
		})
	}
}

func TestParseRootConvergence(t *testing.T) {
	chunks := []Chunk{
		{Kind: ChunkNode, Line: 1, Node: NewNode("Bob", "a", "Hi", RootLabel)},
		{Kind: ChunkConverge, Line: 3, ConvergingLabel: RootLabel},
	}
	_, err := Parse(chunks)
	if !errors.Is(err, ErrRootConvergence) {
		t.Errorf("Parse() error = %v, expected %v", err, ErrRootConvergence)
	}
}

func TestParseEmptyChunks(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Parse(nil) error = %v, expected %v", err, ErrEmptyGraph)
	}
}

func TestParseHandBuiltChoiceChunk(t *testing.T) {
	choice := NewNode("Bob", "a", "Q?", RootLabel)
	choice.IsChoice = true
	chunks := []Chunk{
		{Kind: ChunkNode, Node: choice, Choices: []Choice{{Text: "Go", Label: "GO"}}},
		{Kind: ChunkNode, Node: NewNode("Bob", "b", "went", "GO")},
	}

	root, err := Parse(chunks)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(root.Choices) != 1 || root.Choices[0].Label != "GO" {
		t.Errorf("choice node should adopt chunk choices, got %+v", root.Choices)
	}
	if next, ok := root.Branch(0); !ok || next.Message != "went" {
		t.Error("Branch(0) should resolve to the GO node")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrUndefinedLabel, Line: 7, Label: "FIGHT"}
	want := `dscript: line 7: undefined label "FIGHT"`
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}

	err = &Error{Kind: ErrEmptyScript}
	if err.Error() != "dscript: empty script" {
		t.Errorf("Error() = %q", err.Error())
	}
}
