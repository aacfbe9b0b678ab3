package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dscript/internal/config"
	"github.com/vovakirdan/dscript/internal/core"
	"github.com/vovakirdan/dscript/internal/library"
	"github.com/vovakirdan/dscript/internal/storage"
)

// Model is the Bubble Tea model for playing one script.
type Model struct {
	script     *library.Script
	box        *core.Box
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	portraits  config.Portraits
	inputFrame core.InputFrame
	state      core.BoxState
	keyMapper  *KeyMapper
	help       help.Model
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	playSaved  bool // Whether the play has been recorded for the current run
}

// Options configures a playback model.
type Options struct {
	Store     *storage.Store // nil disables play statistics
	Logger    *log.Logger    // nil discards logs
	Portraits config.Portraits
	Embedded  bool
}

// NewModel creates a new Bubble Tea model for the given script.
func NewModel(script *library.Script, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		script:     script,
		box:        core.NewBox(script.Root, cfg),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		portraits:  opts.Portraits,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		embedded:   opts.Embedded,
	}
}

// Init starts the typewriter loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsBack(msg) {
		m.recordPlay()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordPlay()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies buffered input to the box.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		// An abandoned run still counts as a play.
		m.recordPlay()
		m.playSaved = false
	}

	m.state = m.box.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.state.Ended {
		m.recordPlay()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordPlay stores the current run once.
func (m *Model) recordPlay() {
	if m.playSaved {
		return
	}
	m.playSaved = true

	state := m.box.State()
	if m.store == nil {
		return
	}
	if _, err := m.store.SavePlay(m.script.Name, state.Steps, state.Ended); err != nil {
		m.logger.Warn("could not record play", "script", m.script.Name, "error", err)
		return
	}
	m.logger.Debug("play recorded", "script", m.script.Name, "steps", state.Steps, "completed", state.Ended)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.script.Name))
	b.WriteString("  ")
	b.WriteString(counter(m.box.State().Steps))
	b.WriteString("\n\n")
	b.WriteString(RenderBox(m.box.View(), m.portraits, m.config.ScreenW))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keyMapper.Keys()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// State returns the box state after the last tick.
func (m Model) State() core.BoxState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a script.
func Run(script *library.Script, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(script, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
