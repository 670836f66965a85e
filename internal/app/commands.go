package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
	"github.com/zhubert/decoy/internal/session"
	"github.com/zhubert/decoy/internal/ui"
)

// requestContext bounds a backend call by the configured timeout
func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.config.RequestTimeout())
}

// checkHealth runs GET /health in the background
func (m *Model) checkHealth() tea.Cmd {
	m.ctrl.BeginHealth()
	m.syncPanels()

	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		resp, err := backend.Health(ctx)
		return HealthResultMsg{Resp: resp, Err: err}
	}
}

// startSession runs POST /start in the background
func (m *Model) startSession() tea.Cmd {
	m.ctrl.BeginStart()
	m.syncPanels()

	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		resp, err := backend.Start(ctx)
		return StartResultMsg{Resp: resp, Err: err}
	}
}

// sendMessage records text as a scammer message and posts it to /ingest.
// Blank text does nothing. Without a session a notice is added instead.
func (m *Model) sendMessage(text string) tea.Cmd {
	turn, ok := m.ctrl.BeginSend(text)
	if !ok {
		m.syncPanels()
		return nil
	}
	m.chat.ClearInput()
	m.syncPanels()

	backend := m.backend
	ingest := func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		resp, err := backend.Ingest(ctx, turn.Request())
		return IngestResultMsg{Turn: turn, Resp: resp, Err: err}
	}
	return tea.Batch(m.chat.SetTyping(true), ingest)
}

// copyIntel writes the displayed extracted record to the clipboard
func (m *Model) copyIntel() tea.Cmd {
	text := m.ctrl.CopyText()
	w := m.clipboard
	return func() tea.Msg {
		err := w.WriteText(text)
		if err != nil && !perrors.Is(err, perrors.KindClipboard) {
			err = perrors.ClipboardFailed(err)
		}
		return CopyResultMsg{Err: err}
	}
}

// exportSession writes the last turn to the export directory
func (m *Model) exportSession() tea.Cmd {
	path, err := m.ctrl.Export(m.config.GetExportDir())
	m.syncPanels()

	switch {
	case perrors.Is(err, perrors.KindNotFound):
		return m.ShowFlashWarning(session.StatusNothingToExport)
	case err != nil:
		logger.WithComponent("export").Error("export failed", "error", err)
		return m.ShowFlashError("Export failed: " + perrors.Describe(err))
	}
	return m.ShowFlashSuccess("Exported to " + path)
}

// clearSession resets the transcript and analysis but keeps the session
func (m *Model) clearSession() tea.Cmd {
	m.ctrl.Clear()
	m.alerted = false
	m.chat.SetTyping(false)
	m.intel.StopPulse()
	m.syncPanels()
	return nil
}

func (m *Model) handleHealthResult(msg HealthResultMsg) tea.Cmd {
	defer m.syncPanels()
	if msg.Err != nil {
		m.ctrl.FailHealth(msg.Err)
		return m.ShowFlashError("Health check failed: " + perrors.Describe(msg.Err))
	}
	m.ctrl.ApplyHealth(msg.Resp)
	if !msg.Resp.Healthy() {
		return m.ShowFlashWarning("Backend reported status " + quoteStatus(msg.Resp.Status))
	}
	return nil
}

func quoteStatus(s string) string {
	if s == "" {
		return "(empty)"
	}
	return `"` + s + `"`
}

func (m *Model) handleStartResult(msg StartResultMsg) tea.Cmd {
	defer m.syncPanels()
	if msg.Err != nil {
		m.ctrl.FailStart(msg.Err)
		return m.ShowFlashError("Start failed: " + perrors.Describe(msg.Err))
	}
	m.ctrl.ApplyStart(msg.Resp)
	m.alerted = false
	return nil
}

func (m *Model) handleIngestResult(msg IngestResultMsg) tea.Cmd {
	var cmds []tea.Cmd

	if msg.Err != nil {
		m.ctrl.FailTurn(msg.Turn, msg.Err)
		cmds = append(cmds, m.ShowFlashError("Send failed: "+perrors.Describe(msg.Err)))
	} else if m.ctrl.ApplyTurn(msg.Turn, msg.Resp) {
		cmds = append(cmds, m.intel.StartPulse())
		if cmd := m.maybeNotify(msg.Resp.Detected()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.chat.SetTyping(m.ctrl.Typing())
	m.syncPanels()
	return tea.Batch(cmds...)
}

// maybeNotify sends one desktop notification per session once a scam is detected
func (m *Model) maybeNotify(detected bool) tea.Cmd {
	if !detected || m.alerted || !m.config.GetNotificationsEnabled() || m.notify == nil {
		return nil
	}
	m.alerted = true

	notify := m.notify
	score, links, ids := m.ctrl.Score(), m.ctrl.LinkCount(), m.ctrl.IdentifierCount()
	return func() tea.Msg {
		return NotifyResultMsg{Err: notify(score, links, ids)}
	}
}

func (m *Model) handleCopyResult(msg CopyResultMsg) tea.Cmd {
	m.ctrl.ApplyCopy(msg.Err)
	m.syncPanels()
	if msg.Err != nil {
		return m.ShowFlashError("Failed to copy to clipboard")
	}
	return m.ShowFlash("Intel copied to clipboard", ui.FlashSuccess)
}
