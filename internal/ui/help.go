package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// HelpSection groups shortcuts under a title
type HelpSection struct {
	Title     string
	Shortcuts []KeyBinding
}

// HelpSections lists every key binding and slash command
func HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Keys",
			Shortcuts: []KeyBinding{
				{Key: "enter", Desc: "send message"},
				{Key: "shift/opt+enter", Desc: "insert newline"},
				{Key: "ctrl+n", Desc: "start a new session"},
				{Key: "ctrl+g", Desc: "check backend health"},
				{Key: "ctrl+y", Desc: "copy extracted intel"},
				{Key: "ctrl+e", Desc: "export session to JSON"},
				{Key: "ctrl+l", Desc: "clear transcript and intel"},
				{Key: "pgup/pgdn", Desc: "scroll transcript"},
				{Key: "ctrl+c", Desc: "quit"},
			},
		},
		{
			Title: "Commands",
			Shortcuts: []KeyBinding{
				{Key: "/start", Desc: "start a new session"},
				{Key: "/health", Desc: "check backend health"},
				{Key: "/copy", Desc: "copy extracted intel"},
				{Key: "/export", Desc: "export session to JSON"},
				{Key: "/clear", Desc: "clear transcript and intel"},
				{Key: "/help", Desc: "show this help"},
			},
		},
	}
}

// RenderHelp draws the help panel in a width x height box
func RenderHelp(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(18)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	titleStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Help"))
	sb.WriteString("\n")
	for _, section := range HelpSections() {
		sb.WriteString("\n" + titleStyle.Render(section.Title) + "\n")
		for _, s := range section.Shortcuts {
			sb.WriteString("  " + keyStyle.Render(s.Key) + descStyle.Render(s.Desc) + "\n")
		}
	}
	sb.WriteString("\n" + IntelMutedStyle.Italic(true).Render("esc to close"))

	return PanelFocusedStyle.Width(width).Height(height).Render(sb.String())
}
