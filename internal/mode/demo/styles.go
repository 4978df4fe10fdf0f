// ABOUTME: lipgloss styles for demo narration, plus markdown rendering of consensus text
// ABOUTME: Unstyled mode keeps output plain for pipes and tests

package demo

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// consensusWordWrap is the rendering width for consensus markdown.
const consensusWordWrap = 80

type styles struct {
	styled  bool
	title   lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	bullet  lipgloss.Style
	errmark lipgloss.Style
	done    lipgloss.Style
}

func newStyles(styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{title: plain, header: plain, name: plain, bullet: plain, errmark: plain, done: plain}
	}
	return styles{
		styled:  true,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")).MarginTop(1),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		bullet:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errmark: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		done:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).MarginTop(1),
	}
}

// renderMarkdown renders consensus text for the terminal. Falls back to the
// raw text when unstyled or when glamour fails.
func (s styles) renderMarkdown(md string) string {
	if !s.styled || md == "" {
		return indent(md)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(consensusWordWrap),
	)
	if err != nil {
		return indent(md)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return indent(md)
	}
	return strings.TrimRight(rendered, "\n ")
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
