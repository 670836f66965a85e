package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/decoy/internal/api"
	"github.com/zhubert/decoy/internal/clipboard"
	"github.com/zhubert/decoy/internal/config"
	"github.com/zhubert/decoy/internal/logger"
	"github.com/zhubert/decoy/internal/notification"
	"github.com/zhubert/decoy/internal/session"
	"github.com/zhubert/decoy/internal/ui"
)

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	version   string
	backend   api.Backend
	clipboard clipboard.Writer
	notify    func(score string, links, identifiers int) error

	ctrl *session.Controller

	header *ui.Header
	footer *ui.Footer
	chat   *ui.Chat
	intel  *ui.Intel

	width         int
	height        int
	showHelp      bool
	kittyKeyboard bool

	// alerted is set once a scam notification went out for the current session
	alerted bool
}

// Option customizes a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard
func WithClipboard(w clipboard.Writer) Option {
	return func(m *Model) { m.clipboard = w }
}

// WithNotifier replaces the desktop notification sender
func WithNotifier(fn func(score string, links, identifiers int) error) Option {
	return func(m *Model) { m.notify = fn }
}

// WithController replaces the session controller
func WithController(c *session.Controller) Option {
	return func(m *Model) { m.ctrl = c }
}

// HealthResultMsg carries the outcome of GET /health
type HealthResultMsg struct {
	Resp api.HealthResponse
	Err  error
}

// StartResultMsg carries the outcome of POST /start
type StartResultMsg struct {
	Resp api.StartResponse
	Err  error
}

// IngestResultMsg carries the outcome of POST /ingest for one turn
type IngestResultMsg struct {
	Turn session.Turn
	Resp api.IngestResponse
	Err  error
}

// CopyResultMsg carries the outcome of writing to the clipboard
type CopyResultMsg struct {
	Err error
}

// NotifyResultMsg carries the outcome of a desktop notification
type NotifyResultMsg struct {
	Err error
}

// New creates a new app model
func New(cfg *config.Config, backend api.Backend, version string, opts ...Option) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	} else {
		ui.SetTheme(ui.DefaultTheme)
	}

	m := &Model{
		config:    cfg,
		version:   version,
		backend:   backend,
		clipboard: clipboard.System{},
		notify:    notification.ScamDetected,
		ctrl:      session.New(),
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		chat:      ui.NewChat(),
		intel:     ui.NewIntel(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.chat.SetFocused(true)
	m.syncPanels()

	logger.WithComponent("app").Info("app initialized", "version", version, "theme", ui.CurrentThemeName())
	return m
}

// Init focuses the message input
func (m *Model) Init() tea.Cmd {
	return m.chat.SetFocused(true)
}

// Controller exposes the session controller
func (m *Model) Controller() *session.Controller {
	return m.ctrl
}

// syncPanels copies controller state into the header, chat, intel panel and footer
func (m *Model) syncPanels() {
	m.header.SetSession(m.ctrl.PersonaSummary(), m.ctrl.SessionID())
	m.chat.SetMessages(m.ctrl.Messages())
	m.intel.SetData(ui.IntelFrom(m.ctrl))
	m.footer.SetStatus(m.ctrl.Status())
	m.footer.SetContext(m.ctrl.HasSession(), m.ctrl.Typing(), m.kittyKeyboard)
}
