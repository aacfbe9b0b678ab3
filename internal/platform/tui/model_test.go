package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dscript/internal/config"
	"github.com/vovakirdan/dscript/internal/core"
	"github.com/vovakirdan/dscript/internal/dscript"
	"github.com/vovakirdan/dscript/internal/library"
	"github.com/vovakirdan/dscript/internal/storage"

	_ "github.com/vovakirdan/dscript/internal/scripts"
)

const gateScript = `Guard stern C
Who goes there?
Friend -> FRIEND
Foe -> FOE
END
Guard calm M FRIEND
Pass, friend.`

func testScript(t *testing.T) *library.Script {
	t.Helper()
	root, err := dscript.Compile(gateScript)
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	return &library.Script{Name: "gate-test", Origin: library.OriginFile, Source: gateScript, Root: root}
}

// press sends a key followed by a tick so the box applies it.
func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	next, _ = next.(Model).Update(TickMsg{})
	return next.(Model)
}

func TestModelPlaysToEnd(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "plays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.DefaultConfig()
	m := NewModel(testScript(t), cfg, Options{Store: store})

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}) // reveal the question
	if !m.box.View().Revealed {
		t.Fatal("first confirm should reveal the message")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}) // choose Friend
	if m.State().Ended {
		t.Fatal("choosing Friend should continue")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})   // skip typewriter
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}) // run off the end
	if !m.State().Ended {
		t.Fatal("dialogue should have ended")
	}

	// Extra ticks must not record the play twice.
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}

	stats, err := store.PlayStats("gate-test")
	if err != nil {
		t.Fatalf("PlayStats() failed: %v", err)
	}
	if stats.Plays != 1 || stats.Completed != 1 || stats.MaxSteps != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if !strings.Contains(m.View(), "The End") {
		t.Error("ended view should show the ending")
	}
}

func TestModelChoiceCursor(t *testing.T) {
	m := NewModel(testScript(t), core.DefaultConfig(), Options{})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.box.View().Cursor != 1 {
		t.Fatalf("cursor = %d, expected 1", m.box.View().Cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.State().Ended {
		t.Error("choosing the unpopulated Foe branch should end the dialogue")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(testScript(t), core.DefaultConfig(), Options{})
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	m = NewModel(testScript(t), core.DefaultConfig(), Options{Embedded: true})
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || next.(Model).IsQuitting() {
		t.Error("esc in an embedded model should go back to the menu")
	}
}

func TestModelViewShowsPortrait(t *testing.T) {
	portraits := config.Portraits{
		"guard": {config.DefaultEmotion: {Glyph: "G", Color: "1"}},
	}
	m := NewModel(testScript(t), core.DefaultConfig(), Options{Portraits: portraits})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})

	view := m.View()
	for _, want := range []string{"Guard", "stern", "G", "Who goes there?", "Friend", "Foe"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuItemsIncludesLibrary(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "menu.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if err := store.SaveScript("custom", gateScript); err != nil {
		t.Fatalf("SaveScript() failed: %v", err)
	}

	items, err := MenuItems(store)
	if err != nil {
		t.Fatalf("MenuItems() failed: %v", err)
	}

	origins := make(map[string]library.Origin)
	for _, item := range items {
		origins[item.Name] = item.Origin
	}
	if origins["mad"] != library.OriginBuiltin {
		t.Error("built-in script 'mad' should be listed")
	}
	if origins["custom"] != library.OriginLibrary {
		t.Error("library script 'custom' should be listed")
	}

	rows := StatsRows(store, items)
	if len(rows) != len(items) {
		t.Errorf("expected %d stats rows, got %d", len(items), len(rows))
	}
}

func TestSessionMenuToPlay(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewSessionModel(nil, cfg, nil, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := next.(SessionModel)
	if s.screen != screenPlay {
		t.Fatalf("selecting a script should start playback, screen = %v", s.screen)
	}
	if cmd == nil {
		t.Error("playback should start ticking")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Error("esc during playback should return to the menu")
	}
}
