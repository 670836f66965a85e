package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
)

// Snapshot is the exported record of a session's last turn. Backend
// values are passed through untouched.
type Snapshot struct {
	ExportedAt   string          `json:"exported_at"`
	SessionID    *string         `json:"session_id"`
	DetectedScam json.RawMessage `json:"detected_scam"`
	RiskScore    json.RawMessage `json:"risk_score"`
	Persona      json.RawMessage `json:"persona"`
	Extracted    json.RawMessage `json:"extracted"`
	Conversation json.RawMessage `json:"conversation"`
}

// FormatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ExportFileName returns session_<id>.json, or session_export.json when id
// is empty. Characters outside [A-Za-z0-9._-] become underscores.
func ExportFileName(id string) string {
	if id == "" {
		id = "export"
	}
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return "session_" + b.String() + ".json"
}

// FileName is where this snapshot is written inside the export directory.
func (s Snapshot) FileName() string {
	if s.SessionID == nil {
		return ExportFileName("")
	}
	return ExportFileName(*s.SessionID)
}

// Marshal encodes the snapshot as two-space indented JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteExport saves snap under dir and returns the file path.
func WriteExport(dir string, snap Snapshot) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, snap.FileName())

	data, err := snap.Marshal()
	if err != nil {
		return "", perrors.ExportFailed(path, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", perrors.ExportFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", perrors.ExportFailed(path, err)
	}

	logger.WithComponent("export").Info("session exported", "path", path, "bytes", len(data))
	return path, nil
}

// Export writes the last applied turn to dir and updates the status.
// Without a prior turn it only sets the "nothing to export" status.
func (c *Controller) Export(dir string) (string, error) {
	snap, ok := c.Snapshot()
	if !ok {
		c.status = StatusNothingToExport
		return "", perrors.NothingToExport()
	}
	path, err := WriteExport(dir, snap)
	if err != nil {
		c.status = StatusExportFailed
		return "", err
	}
	c.status = StatusSessionExported
	return path, nil
}

// ApplyCopy records the outcome of copying the extracted record.
func (c *Controller) ApplyCopy(err error) {
	if err != nil {
		logger.WithComponent("clipboard").Warn("copy failed", "error", err)
		c.status = StatusCopyFailed
		return
	}
	c.status = StatusIntelCopied
}
