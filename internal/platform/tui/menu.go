package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dscript/internal/core"
	"github.com/vovakirdan/dscript/internal/library"
	"github.com/vovakirdan/dscript/internal/registry"
	"github.com/vovakirdan/dscript/internal/storage"
)

// MenuItem represents a selectable script in the menu.
type MenuItem struct {
	Name   string
	Title  string
	Origin library.Origin
}

// MenuItems lists built-in scripts followed by the library. store may be nil.
func MenuItems(store *storage.Store) ([]MenuItem, error) {
	builtins := registry.List()
	items := make([]MenuItem, 0, len(builtins))
	for _, s := range builtins {
		items = append(items, MenuItem{Name: s.Name, Title: s.Title, Origin: library.OriginBuiltin})
	}

	if store == nil {
		return items, nil
	}
	entries, err := store.ListScripts()
	if err != nil {
		return items, err
	}
	for _, e := range entries {
		if registry.Exists(e.Name) {
			// Built-ins shadow library entries of the same name.
			continue
		}
		items = append(items, MenuItem{Name: e.Name, Title: e.Name, Origin: library.OriginLibrary})
	}
	return items, nil
}

// MenuModel is the Bubble Tea model for the script picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	err       error
	quitting  bool
	selected  *MenuItem // Set when user selects a script
	openStats bool      // True if user pressed Tab for statistics
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items, err := MenuItems(store)
	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		err:       err,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D S C R I P T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a script", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No scripts available", m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		cursor := noCursorMarker
		if i == m.cursor {
			cursor = cursorMarker
		}
		line := fmt.Sprintf("%s%s", cursor, item.Title)
		if item.Origin == library.OriginLibrary {
			line += " (library)"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(centerText(hintStyle.Render("library unavailable: "+m.err.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  Q: Quit"
	b.WriteString(centerText(hintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested the statistics table.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Name       string
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsStats():
		result.WantsStats = true
	case m.Selected() != nil:
		result.Name = m.Selected().Name
	default:
		result.Quit = true
	}
	return result, nil
}
