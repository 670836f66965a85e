package ui

import (
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/decoy/internal/keys"
	"github.com/zhubert/decoy/internal/session"
)

// TypingTickMsg advances the typing indicator
type TypingTickMsg time.Time

// TypingTick returns a command that sends a TypingTickMsg after a delay
func TypingTick() tea.Cmd {
	return tea.Tick(TypingTickInterval, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// typingVerbs cycle under the transcript while the agent is composing a reply
var typingVerbs = []string{
	"Analyzing",
	"Profiling",
	"Tracing",
	"Inspecting",
	"Cross-checking",
	"Extracting",
	"Scoring",
	"Stalling",
	"Drafting a reply",
	"Playing along",
}

func randomTypingVerb() string {
	return typingVerbs[rand.Intn(len(typingVerbs))]
}

var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// renderSpinner renders one spinner frame followed by the verb
func renderSpinner(verb string, frameIdx int) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]
	return SpinnerStyle.Render(frame) + " " + SpinnerVerbStyle.Render(verb+"...")
}

// roleLabel is the prefix rendered before a message
func roleLabel(role session.Role) string {
	switch role {
	case session.RoleScammer:
		return ChatScammerStyle.Render("Scammer:")
	case session.RoleAssistant:
		return ChatAssistantStyle.Render("Agent:")
	default:
		return ChatSystemStyle.Render("System:")
	}
}

// Chat is the right panel: transcript viewport over the message input
type Chat struct {
	viewport   viewport.Model
	input      textarea.Model
	width      int
	height     int
	focused    bool
	messages   []session.Message
	typing     bool
	typingVerb string
	frame      int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type the scammer's message..."
	ti.CharLimit = 0
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.SetHeight(TextareaHeight)
	// enter sends; newlines are inserted by the app on shift/alt+enter
	ti.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	viewportHeight := max(ctx.InnerHeight(height-InputTotalHeight), 1)
	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused reports whether the input has focus
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the transcript and scrolls to the newest line
func (c *Chat) SetMessages(messages []session.Message) {
	c.messages = messages
	c.updateContent()
}

// MessageCount returns how many messages are rendered
func (c *Chat) MessageCount() int {
	return len(c.messages)
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput empties the input
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertNewline adds a line break at the cursor
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// SetTyping shows or hides the typing indicator. It returns the tick
// command that drives the animation when the indicator appears.
func (c *Chat) SetTyping(typing bool) tea.Cmd {
	if typing == c.typing {
		return nil
	}
	c.typing = typing
	c.frame = 0
	if typing {
		c.typingVerb = randomTypingVerb()
	}
	c.updateContent()
	if typing {
		return TypingTick()
	}
	return nil
}

// IsTyping reports whether the typing indicator is showing
func (c *Chat) IsTyping() bool {
	return c.typing
}

func (c *Chat) renderEmpty() string {
	style := lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
	return style.Render("No messages yet. Press ctrl+n to start a session, then type what the scammer says.")
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	if len(c.messages) == 0 && !c.typing {
		sb.WriteString(ansi.Wrap(c.renderEmpty(), wrapWidth, ""))
	}
	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(roleLabel(msg.Role))
		sb.WriteString(" ")
		sb.WriteString(IntelMutedStyle.Render(msg.At.Format("15:04:05")))
		sb.WriteString("\n")
		body := ChatMessageStyle.Render(msg.Text)
		if msg.Role == session.RoleSystem {
			body = ChatSystemStyle.Render(msg.Text)
		}
		sb.WriteString(ansi.Wrap(body, wrapWidth, ""))
	}
	if c.typing {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderSpinner(c.typingVerb, c.frame))
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(TypingTickMsg); ok {
		if !c.typing {
			return c, nil
		}
		c.frame++
		c.updateContent()
		return c, TypingTick()
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		switch keyMsg.String() {
		case keys.PgUp:
			c.viewport.PageUp()
			return c, nil
		case keys.PgDown:
			c.viewport.PageDown()
			return c, nil
		case keys.Home:
			c.viewport.GotoTop()
			return c, nil
		case keys.End:
			c.viewport.GotoBottom()
			return c, nil
		}
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if _, isPaste := msg.(tea.PasteMsg); isPaste && c.focused {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
		inputStyle = ChatInputFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
