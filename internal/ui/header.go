package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " decoy"

// Header represents the top header bar
type Header struct {
	width     int
	persona   string
	sessionID string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSession sets the persona summary and session ID shown on the right
func (h *Header) SetSession(persona, sessionID string) {
	h.persona = persona
	h.sessionID = sessionID
}

// sessionText is the right-hand side of the header.
func (h *Header) sessionText() string {
	var parts []string
	if h.persona != "" {
		parts = append(parts, h.persona)
	}
	if h.sessionID != "" {
		parts = append(parts, "Session: "+h.sessionID)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ") + " "
}

// View renders the header
func (h *Header) View() string {
	rightText := h.sessionText()
	titleWidth := runewidth.StringWidth(headerTitle)

	// The persona summary gives way to the title on narrow terminals
	if avail := h.width - titleWidth - 1; avail > 0 && runewidth.StringWidth(rightText) > avail {
		rightText = ansi.Truncate(rightText, avail-1, "…") + " "
	}

	paddingLen := max(h.width-titleWidth-runewidth.StringWidth(rightText), 0)
	fullContent := headerTitle + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, titleWidth)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content over a background fading from the
// theme's primary color to its background color. The first boldWidth
// cells are rendered bold.
func (h *Header) renderGradient(content string, boldWidth int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < boldWidth)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
