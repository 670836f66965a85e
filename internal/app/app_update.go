package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/decoy/internal/keys"
	"github.com/zhubert/decoy/internal/logger"
	"github.com/zhubert/decoy/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyboardEnhancementsMsg:
		m.kittyKeyboard = msg.SupportsKeyDisambiguation()
		m.syncPanels()
		logger.WithComponent("app").Debug("keyboard enhancements", "disambiguation", m.kittyKeyboard)
		return m, nil

	case tea.KeyPressMsg:
		if cmd, handled := m.handleKeyPress(msg); handled {
			return m, cmd
		}

	case HealthResultMsg:
		return m, m.handleHealthResult(msg)

	case StartResultMsg:
		return m, m.handleStartResult(msg)

	case IngestResultMsg:
		return m, m.handleIngestResult(msg)

	case CopyResultMsg:
		return m, m.handleCopyResult(msg)

	case NotifyResultMsg:
		if msg.Err != nil {
			logger.WithComponent("notification").Warn("notification failed", "error", msg.Err)
		}
		return m, nil
	}

	if cmd, ok := m.handleTickMessages(msg); ok {
		return m, cmd
	}

	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return m, cmd
}

// handleKeyPress handles global shortcuts. It reports false for keys that
// belong to the message input.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == keys.CtrlC {
		return tea.Quit, true
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return nil, true
	}

	switch key {
	case keys.Enter:
		return m.handleEnterKey(), true
	case keys.ShiftEnter, keys.AltEnter:
		m.chat.InsertNewline()
		return nil, true
	case keys.CtrlN:
		return m.startSession(), true
	case keys.CtrlG:
		return m.checkHealth(), true
	case keys.CtrlY:
		return m.copyIntel(), true
	case keys.CtrlE:
		return m.exportSession(), true
	case keys.CtrlL:
		return m.clearSession(), true
	case keys.Escape:
		if m.footer.HasFlash() {
			m.footer.ClearFlash()
			return nil, true
		}
	}
	return nil, false
}

// handleEnterKey runs a slash command or sends the input as a scammer message
func (m *Model) handleEnterKey() tea.Cmd {
	input := m.chat.GetInput()
	if cmd, handled := m.handleSlashCommand(input); handled {
		m.chat.ClearInput()
		return cmd
	}
	return m.sendMessage(input)
}

// handleTickMessages routes animation and flash ticks to their components
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ui.TypingTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true
	case ui.PulseTickMsg:
		intel, cmd := m.intel.Update(msg)
		m.intel = intel
		return cmd, true
	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return nil, true
		}
		if m.footer.HasFlash() {
			return ui.FlashTick(), true
		}
		return nil, true
	}
	return nil, false
}
