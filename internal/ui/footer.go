package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType is the severity of a footer flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash stays up unless told otherwise
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient footer message
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg asks the model to drop an expired flash
type FlashTickMsg time.Time

// FlashTick returns a command that fires once a second while a flash is up
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom bar: status text, then keybindings or a flash
type Footer struct {
	width         int
	status        string
	hasSession    bool
	typing        bool
	kittyKeyboard bool
	flashMessage  *FlashMessage
	bindings      []KeyBinding
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "ctrl+n", Desc: "start session"},
			{Key: "ctrl+g", Desc: "health"},
			{Key: "/help", Desc: "commands"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasSession, typing, kittyKeyboard bool) {
	f.hasSession = hasSession
	f.typing = typing
	f.kittyKeyboard = kittyKeyboard
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetStatus sets the status text shown as "Status: <text>"
func (f *Footer) SetStatus(status string) {
	f.status = status
}

// StatusLine returns the rendered status prefix without styling
func (f *Footer) StatusLine() string {
	return "Status: " + f.status
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) activeBindings() []KeyBinding {
	if !f.hasSession {
		return f.bindings
	}
	newline := "opt+enter"
	if f.kittyKeyboard {
		newline = "shift+enter"
	}
	return []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: newline, Desc: "newline"},
		{Key: "ctrl+y", Desc: "copy intel"},
		{Key: "ctrl+e", Desc: "export"},
		{Key: "ctrl+l", Desc: "clear"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

func renderFlash(msg *FlashMessage) string {
	switch msg.Type {
	case FlashError:
		return FlashErrorStyle.Render("✕ " + msg.Text)
	case FlashWarning:
		return FlashWarningStyle.Render("⚠ " + msg.Text)
	case FlashSuccess:
		return FlashSuccessStyle.Render("✓ " + msg.Text)
	default:
		return FlashInfoStyle.Render("ℹ " + msg.Text)
	}
}

// View renders the footer
func (f *Footer) View() string {
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	status := FooterStatusStyle.Render(f.StatusLine())

	var content string
	if f.flashMessage != nil {
		content = status + sep + renderFlash(f.flashMessage)
	} else {
		parts := []string{status}
		for _, b := range f.activeBindings() {
			parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
		}
		content = strings.Join(parts, sep)
	}

	// Keep the footer on one line; padding takes one cell on each side
	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}
