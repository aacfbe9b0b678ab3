package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dscript/internal/config"
	"github.com/vovakirdan/dscript/internal/core"
)

// Layout constants for the dialogue box.
const (
	minBoxWidth    = 30
	maxBoxWidth    = 76
	portraitWidth  = 7
	defaultGlyph   = "?"
	defaultColor   = "245"
	cursorMarker   = "> "
	noCursorMarker = "  "
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	speakerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	emotionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// boxWidth clamps the dialogue box to the terminal width.
func boxWidth(screenW int) int {
	w := screenW - 4
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < minBoxWidth {
		w = minBoxWidth
	}
	return w
}

// renderPortrait draws the speaker glyph in a colored frame.
func renderPortrait(p config.Portrait) string {
	glyph := p.Glyph
	if glyph == "" {
		glyph = defaultGlyph
	}
	color := p.Color
	if color == "" {
		color = defaultColor
	}
	return lipgloss.NewStyle().
		Width(portraitWidth).
		Align(lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(color)).
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render(glyph)
}

// RenderBox renders one frame of the dialogue box.
func RenderBox(v core.BoxView, portraits config.Portraits, screenW int) string {
	width := boxWidth(screenW)

	if v.Ended {
		return boxStyle.Width(width).Render(
			titleStyle.Render("The End") + "\n" +
				hintStyle.Render("r: play again  q: quit"),
		)
	}

	portrait, _ := portraits.Portrait(v.Speaker, v.Emotion)
	textWidth := width - portraitWidth - 6

	var body strings.Builder
	body.WriteString(speakerStyle.Render(v.Speaker))
	body.WriteString(" ")
	body.WriteString(emotionStyle.Render("(" + v.Emotion + ")"))
	body.WriteString("\n")
	body.WriteString(lipgloss.NewStyle().Width(textWidth).Render(v.Text))

	if v.Revealed && len(v.Choices) > 0 {
		body.WriteString("\n")
		for i, choice := range v.Choices {
			body.WriteString("\n")
			if i == v.Cursor {
				body.WriteString(activeStyle.Render(cursorMarker + choice))
			} else {
				body.WriteString(choiceStyle.Render(noCursorMarker + choice))
			}
		}
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, renderPortrait(portrait), " ", body.String())
	return boxStyle.Width(width).Render(content)
}

// counter formats a step count for the status line.
func counter(steps int) string {
	return hintStyle.Render(fmt.Sprintf("step %d", steps))
}
