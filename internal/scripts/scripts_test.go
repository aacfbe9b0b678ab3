package scripts

import (
	"testing"

	"github.com/vovakirdan/dscript/internal/dscript"
	"github.com/vovakirdan/dscript/internal/registry"
)

func TestBuiltinScriptsCompile(t *testing.T) {
	for name := range titles {
		t.Run(name, func(t *testing.T) {
			src, err := registry.Source(name)
			if err != nil {
				t.Fatalf("Source() failed: %v", err)
			}
			root, err := dscript.Compile(src)
			if err != nil {
				t.Fatalf("Compile() failed: %v", err)
			}
			if len(dscript.Endings(root)) == 0 {
				t.Error("built-in script should have an ending")
			}
		})
	}
}

func TestMadScriptSplitsFight(t *testing.T) {
	src, _ := registry.Source("mad")
	root, err := dscript.Compile(src)
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}

	// FIGHT never converges and ends on its own; FRIENDSHIP reaches lunch.
	endings := dscript.Endings(root)
	if len(endings) != 2 {
		t.Fatalf("expected 2 endings, got %d", len(endings))
	}
}
