package cmd

import (
	"path/filepath"
	"testing"

	"github.com/zhubert/decoy/internal/config"
	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/ui"
)

func TestValuesFrom(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
	cfg.SetNotificationsEnabled(true)

	v := valuesFrom(cfg)
	if v.ServerURL != config.DefaultServerURL {
		t.Errorf("ServerURL = %q", v.ServerURL)
	}
	if v.Timeout != "30" {
		t.Errorf("Timeout = %q", v.Timeout)
	}
	if v.Theme != string(ui.DefaultTheme) {
		t.Errorf("Theme = %q, want default", v.Theme)
	}
	if len(v.Options) != 1 || v.Options[0] != optionNotifications {
		t.Errorf("Options = %v", v.Options)
	}
}

func TestApplyValues(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
	v := &configureValues{
		ServerURL: " https://honeypot.example/ ",
		ExportDir: "  ",
		Timeout:   "45",
		Theme:     string(ui.ThemeNord),
		Options:   []string{optionNotifications},
	}

	if err := applyValues(cfg, v); err != nil {
		t.Fatalf("applyValues() error = %v", err)
	}
	if cfg.GetServerURL() != "https://honeypot.example" {
		t.Errorf("server = %q", cfg.GetServerURL())
	}
	if cfg.GetExportDir() != config.DefaultExportDir {
		t.Errorf("export dir = %q, blank should fall back to default", cfg.GetExportDir())
	}
	if cfg.RequestTimeout().Seconds() != 45 {
		t.Errorf("timeout = %v", cfg.RequestTimeout())
	}
	if cfg.GetTheme() != "nord" || !cfg.GetNotificationsEnabled() {
		t.Errorf("theme = %q notifications = %v", cfg.GetTheme(), cfg.GetNotificationsEnabled())
	}
}

func TestApplyValues_Invalid(t *testing.T) {
	valid := func() *configureValues {
		return &configureValues{ServerURL: "http://localhost:8000", ExportDir: ".", Timeout: "30", Theme: "nord"}
	}

	tests := []struct {
		name   string
		mutate func(v *configureValues)
	}{
		{"bad url", func(v *configureValues) { v.ServerURL = "localhost" }},
		{"timeout not a number", func(v *configureValues) { v.Timeout = "soon" }},
		{"timeout too large", func(v *configureValues) { v.Timeout = "999" }},
		{"unknown theme", func(v *configureValues) { v.Theme = "neon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
			v := valid()
			tt.mutate(v)
			if err := applyValues(cfg, v); !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("applyValues() error = %v, want invalid config", err)
			}
			if cfg.GetServerURL() != config.DefaultServerURL {
				t.Error("config should be untouched on error")
			}
		})
	}
}

func TestNewConfigureForm(t *testing.T) {
	v := &configureValues{Theme: string(ui.DefaultTheme)}
	if newConfigureForm(v) == nil {
		t.Fatal("newConfigureForm() returned nil")
	}
}
