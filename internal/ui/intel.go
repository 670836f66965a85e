package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/decoy/internal/session"
)

// PulseTickMsg advances the score highlight. Gen identifies the pulse that
// scheduled it; ticks from an earlier pulse are ignored.
type PulseTickMsg struct {
	Gen int
	At  time.Time
}

// PulseTick returns a command that sends a PulseTickMsg for gen after a delay
func PulseTick(gen int) tea.Cmd {
	return tea.Tick(PulseTickInterval, func(t time.Time) tea.Msg {
		return PulseTickMsg{Gen: gen, At: t}
	})
}

// IntelData is what the intel panel shows
type IntelData struct {
	Detected        string
	Score           string
	Confidence      int
	Extracted       string
	AgentReply      string
	MessageCount    int
	LinkCount       int
	IdentifierCount int
}

// IntelFrom reads the panel data off a controller
func IntelFrom(c *session.Controller) IntelData {
	return IntelData{
		Detected:        c.Detected(),
		Score:           c.Score(),
		Confidence:      c.Confidence(),
		Extracted:       c.Extracted(),
		AgentReply:      c.AgentReply(),
		MessageCount:    c.MessageCount(),
		LinkCount:       c.LinkCount(),
		IdentifierCount: c.IdentifierCount(),
	}
}

// Intel is the left panel with the analysis of the latest turn
type Intel struct {
	width  int
	height int
	data   IntelData
	bar    progress.Model
	pulse  int
	gen    int
}

// NewIntel creates an empty intel panel
func NewIntel() *Intel {
	return &Intel{
		data: IntelData{
			Detected:   "-",
			Score:      "-",
			Extracted:  session.EmptyExtracted,
			AgentReply: "-",
		},
		bar: progress.New(
			progress.WithoutPercentage(),
			progress.WithColorFunc(riskColor),
		),
	}
}

// riskColor fills the confidence bar green, amber, then red as it grows
func riskColor(total, _ float64) color.Color {
	switch {
	case total >= 0.7:
		return ColorError
	case total >= 0.4:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// SetSize sets the panel dimensions
func (p *Intel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.bar.SetWidth(max(GetViewContext().InnerWidth(width)-2, 1))
}

// SetData replaces what the panel shows
func (p *Intel) SetData(d IntelData) {
	p.data = d
}

// Data returns what the panel shows
func (p *Intel) Data() IntelData {
	return p.data
}

// StartPulse highlights the score for PulseFrames ticks. A pulse already
// running is restarted rather than doubled up.
func (p *Intel) StartPulse() tea.Cmd {
	p.gen++
	p.pulse = PulseFrames
	return PulseTick(p.gen)
}

// StopPulse ends the highlight and drops any ticks still in flight
func (p *Intel) StopPulse() {
	p.gen++
	p.pulse = 0
}

// IsPulsing reports whether the score is highlighted
func (p *Intel) IsPulsing() bool {
	return p.pulse > 0
}

// Update handles pulse ticks
func (p *Intel) Update(msg tea.Msg) (*Intel, tea.Cmd) {
	if tick, ok := msg.(PulseTickMsg); ok && tick.Gen == p.gen && p.pulse > 0 {
		p.pulse--
		if p.pulse > 0 {
			return p, PulseTick(p.gen)
		}
	}
	return p, nil
}

// highlightJSON applies syntax highlighting using the theme's chroma style
func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (p *Intel) detectedView() string {
	switch p.data.Detected {
	case "Yes":
		return IntelDetectedStyle.Render("Yes")
	case "No":
		return IntelClearStyle.Render("No")
	default:
		return IntelMutedStyle.Render(p.data.Detected)
	}
}

func (p *Intel) scoreView() string {
	if p.pulse > 0 && p.pulse%2 == 0 {
		return IntelPulseStyle.Render(" " + p.data.Score + " ")
	}
	return IntelValueStyle.Render(p.data.Score)
}

// View renders the intel panel
func (p *Intel) View() string {
	inner := max(GetViewContext().InnerWidth(p.width), 1)
	label := func(s string) string { return IntelLabelStyle.Render(s) }

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Intel"))
	sb.WriteString("\n\n")
	sb.WriteString(label("Scam detected: ") + p.detectedView() + "\n")
	sb.WriteString(label("Risk score: ") + p.scoreView() + "\n")
	sb.WriteString(p.bar.ViewAs(float64(p.data.Confidence)/100) + "\n")
	sb.WriteString(IntelValueStyle.Render(session.ConfidenceLabel(p.data.Confidence)) + "\n\n")

	sb.WriteString(label("Extracted") + "\n")
	sb.WriteString(ansi.Wrap(highlightJSON(p.data.Extracted), inner, ""))
	sb.WriteString("\n\n")

	sb.WriteString(label("Agent reply") + "\n")
	sb.WriteString(ansi.Wrap(IntelValueStyle.Render(p.data.AgentReply), inner, ""))
	sb.WriteString("\n\n")

	sb.WriteString(IntelMutedStyle.Render(fmt.Sprintf("Messages: %d  Links: %d  Identifiers: %d",
		p.data.MessageCount, p.data.LinkCount, p.data.IdentifierCount)))

	return PanelStyle.Width(p.width).Height(p.height).
		Render(lipgloss.NewStyle().MaxHeight(GetViewContext().InnerHeight(p.height)).Render(sb.String()))
}
