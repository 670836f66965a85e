package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, regenerated by SetTheme
var (
	ColorPrimary     color.Color = lipgloss.Color("#7C3AED")
	ColorSecondary   color.Color = lipgloss.Color("#06B6D4")
	ColorBorder      color.Color = lipgloss.Color("#374151")
	ColorBorderFocus color.Color = lipgloss.Color("#7C3AED")
	ColorBg          color.Color = lipgloss.Color("#1F2937")
	ColorText        color.Color = lipgloss.Color("#F9FAFB")
	ColorTextMuted   color.Color = lipgloss.Color("#9CA3AF")
	ColorTextInverse color.Color = lipgloss.Color("#1F2937")
	ColorScammer     color.Color = lipgloss.Color("#F87171")
	ColorAssistant   color.Color = lipgloss.Color("#22D3EE")
	ColorSystem      color.Color = lipgloss.Color("#A78BFA")
	ColorWarning     color.Color = lipgloss.Color("#F59E0B")
	ColorInfo        color.Color = lipgloss.Color("#06B6D4")
	ColorError       color.Color = lipgloss.Color("#EF4444")
	ColorSuccess     color.Color = lipgloss.Color("#10B981")
)

// Footer styles
var (
	FooterStyle       lipgloss.Style
	FooterKeyStyle    lipgloss.Style
	FooterDescStyle   lipgloss.Style
	FooterStatusStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Chat styles
var (
	ChatScammerStyle      lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatSystemStyle       lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	SpinnerStyle          lipgloss.Style
	SpinnerVerbStyle      lipgloss.Style
)

// Intel panel styles
var (
	IntelLabelStyle    lipgloss.Style
	IntelValueStyle    lipgloss.Style
	IntelDetectedStyle lipgloss.Style
	IntelClearStyle    lipgloss.Style
	IntelPulseStyle    lipgloss.Style
	IntelMutedStyle    lipgloss.Style
)

// Flash message styles
var (
	FlashErrorStyle   lipgloss.Style
	FlashWarningStyle lipgloss.Style
	FlashInfoStyle    lipgloss.Style
	FlashSuccessStyle lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterStatusStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	ChatScammerStyle = lipgloss.NewStyle().
		Foreground(ColorScammer).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatSystemStyle = lipgloss.NewStyle().
		Foreground(ColorSystem).
		Italic(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorScammer).
		Bold(true)

	SpinnerVerbStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)

	IntelLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	IntelValueStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	IntelDetectedStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	IntelClearStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	IntelPulseStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorWarning).
		Bold(true)

	IntelMutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FlashErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	FlashWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	FlashInfoStyle = lipgloss.NewStyle().
		Foreground(ColorInfo)

	FlashSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
}
