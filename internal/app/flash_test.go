package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/decoy/internal/keys"
	"github.com/zhubert/decoy/internal/ui"
)

func TestShowFlash(t *testing.T) {
	tests := []struct {
		name string
		show func(m *Model) tea.Cmd
		icon string
	}{
		{"error", func(m *Model) tea.Cmd { return m.ShowFlashError("boom") }, "✕"},
		{"warning", func(m *Model) tea.Cmd { return m.ShowFlashWarning("careful") }, "⚠"},
		{"success", func(m *Model) tea.Cmd { return m.ShowFlashSuccess("done") }, "✓"},
		{"info", func(m *Model) tea.Cmd { return m.ShowFlash("fyi", ui.FlashInfo) }, "ℹ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if cmd := tt.show(env.m); cmd == nil {
				t.Error("ShowFlash should return a tick command")
			}
			if !env.m.footer.HasFlash() {
				t.Fatal("flash should be visible")
			}
			if !strings.Contains(env.screen(), tt.icon) {
				t.Errorf("footer should show %q", tt.icon)
			}
		})
	}
}

func TestFlash_EscapeDismisses(t *testing.T) {
	env := newTestEnv(t)
	env.m.ShowFlashError("boom")

	env.press(keys.Escape)
	if env.m.footer.HasFlash() {
		t.Error("esc should dismiss the flash")
	}
}

func TestFlash_FooterKeepsStatus(t *testing.T) {
	env := newTestEnv(t)
	env.m.ShowFlashWarning("careful")

	screen := env.screen()
	if !strings.Contains(screen, "Status: Idle") || !strings.Contains(screen, "careful") {
		t.Error("footer should show both status and flash")
	}
}
