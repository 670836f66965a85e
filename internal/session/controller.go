package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/zhubert/decoy/internal/api"
	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
)

// Status texts shown as "Status: <text>".
const (
	StatusIdle            = "Idle"
	StatusCheckingHealth  = "Checking health"
	StatusHealthy         = "Healthy"
	StatusUnhealthy       = "Unhealthy"
	StatusHealthFailed    = "Health check failed"
	StatusStarting        = "Starting session"
	StatusReady           = "Session ready"
	StatusStartFailed     = "Start failed"
	StatusAnalyzing       = "Analyzing message"
	StatusWaiting         = "Waiting"
	StatusSendFailed      = "Send failed"
	StatusIntelCopied     = "Intel copied"
	StatusCopyFailed      = "Copy failed"
	StatusNothingToExport = "No session data to export"
	StatusSessionExported = "Session exported"
	StatusExportFailed    = "Export failed"
	NoSessionNotice       = "Start a session first."
	EmptyExtracted        = "{}"
	placeholder           = "-"
)

// Role identifies who a chat message came from.
type Role string

const (
	RoleScammer   Role = "scammer"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one line of the chat transcript.
type Message struct {
	Role Role
	Text string
	At   time.Time
}

// Turn identifies an in-flight /ingest call.
type Turn struct {
	Seq       uint64
	SessionID string
	Message   string
}

// Request returns the body to send to /ingest for this turn.
func (t Turn) Request() api.IngestRequest {
	return api.IngestRequest{SessionID: t.SessionID, Message: t.Message}
}

// Controller is the state behind the session screen.
type Controller struct {
	sessionID string
	persona   api.Persona
	started   bool

	messages []Message
	links    int
	ids      int

	last       *api.IngestResponse
	detected   string
	score      string
	confidence int
	extracted  string
	agentReply string

	status string

	nextSeq    uint64
	appliedSeq uint64
	inFlight   int
	// Turns at or below clearedAt stopped counting toward inFlight when
	// Clear ran; their responses are still applied if they arrive.
	clearedAt uint64

	now func() time.Time
}

// New returns a controller with no session.
func New() *Controller {
	c := &Controller{now: time.Now}
	c.resetDisplay()
	c.status = StatusIdle
	return c
}

// SetClock replaces time.Now, for tests.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Controller) resetDisplay() {
	c.detected = placeholder
	c.score = placeholder
	c.confidence = 0
	c.extracted = EmptyExtracted
	c.agentReply = placeholder
}

// SessionID returns the active session ID, or "" before the first start.
func (c *Controller) SessionID() string { return c.sessionID }

// HasSession reports whether a session has been started.
func (c *Controller) HasSession() bool { return c.sessionID != "" }

// Persona returns the persona of the active session.
func (c *Controller) Persona() (api.Persona, bool) { return c.persona, c.started }

// PersonaSummary renders the persona line, or "" before the first start.
func (c *Controller) PersonaSummary() string {
	if !c.started {
		return ""
	}
	return c.persona.Summary()
}

// Messages returns the chat transcript.
func (c *Controller) Messages() []Message { return c.messages }

// MessageCount counts every message appended to the chat.
func (c *Controller) MessageCount() int { return len(c.messages) }

// LinkCount is the running number of extracted URLs.
func (c *Controller) LinkCount() int { return c.links }

// IdentifierCount is the running number of extracted payment identifiers.
func (c *Controller) IdentifierCount() int { return c.ids }

// Status returns the current status text without the "Status: " prefix.
func (c *Controller) Status() string { return c.status }

// SetStatus replaces the status text.
func (c *Controller) SetStatus(s string) { c.status = s }

// Detected returns "Yes", "No", or "-" before the first applied turn.
func (c *Controller) Detected() string { return c.detected }

// Score returns the raw risk score text, or "-".
func (c *Controller) Score() string { return c.score }

// Confidence returns the clamped 0-100 confidence percentage.
func (c *Controller) Confidence() int { return c.confidence }

// Extracted returns the pretty-printed extracted record.
func (c *Controller) Extracted() string { return c.extracted }

// AgentReply returns the last applied agent reply, or "-".
func (c *Controller) AgentReply() string { return c.agentReply }

// Typing reports whether any /ingest call is in flight.
func (c *Controller) Typing() bool { return c.inFlight > 0 }

// InFlight returns the number of /ingest calls awaiting a response.
func (c *Controller) InFlight() int { return c.inFlight }

// LastResponse returns the most recently applied turn.
func (c *Controller) LastResponse() (api.IngestResponse, bool) {
	if c.last == nil {
		return api.IngestResponse{}, false
	}
	return *c.last, true
}

func (c *Controller) addMessage(role Role, text string) {
	c.messages = append(c.messages, Message{Role: role, Text: text, At: c.now()})
}

// BeginHealth marks a health check as started.
func (c *Controller) BeginHealth() {
	c.status = StatusCheckingHealth
}

// ApplyHealth records the outcome of GET /health.
func (c *Controller) ApplyHealth(resp api.HealthResponse) {
	if resp.Healthy() {
		c.status = StatusHealthy
	} else {
		c.status = StatusUnhealthy
	}
}

// FailHealth records a health check that never got an answer.
func (c *Controller) FailHealth(err error) {
	logger.WithComponent("session").Warn("health check failed", "error", err)
	c.status = StatusHealthFailed
}

// BeginStart marks a session start as started.
func (c *Controller) BeginStart() {
	c.status = StatusStarting
}

// ApplyStart adopts the new session. The transcript and counters of any
// previous session are kept.
func (c *Controller) ApplyStart(resp api.StartResponse) {
	if c.sessionID != "" && c.sessionID != resp.SessionID {
		logger.WithSession(resp.SessionID).Info("replacing session", "previous", c.sessionID)
	}
	c.sessionID = resp.SessionID
	c.persona = resp.Persona
	c.started = true
	c.addMessage(RoleAssistant, resp.Message)
	c.status = StatusReady
	logger.WithSession(c.sessionID).Info("session started", "persona", c.persona.Name)
}

// FailStart records a session start that failed.
func (c *Controller) FailStart(err error) {
	logger.WithComponent("session").Warn("session start failed", "error", err)
	c.status = StatusStartFailed
}

// BeginSend validates and records an outgoing scammer message. It returns
// false when nothing should be sent: for blank text (no-op) or when no
// session exists (a system notice is appended instead).
func (c *Controller) BeginSend(text string) (Turn, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, false
	}
	if !c.HasSession() {
		logger.WithComponent("session").Warn("send rejected", "error", perrors.NoActiveSession())
		c.addMessage(RoleSystem, NoSessionNotice)
		return Turn{}, false
	}

	c.addMessage(RoleScammer, text)
	c.status = StatusAnalyzing
	c.inFlight++
	c.nextSeq++
	return Turn{Seq: c.nextSeq, SessionID: c.sessionID, Message: text}, true
}

// ApplyTurn renders the response to turn. It returns false when the
// response was dropped because a newer turn had already been applied.
func (c *Controller) ApplyTurn(turn Turn, resp api.IngestResponse) bool {
	c.finishTurn(turn)

	log := logger.WithSession(turn.SessionID)
	if turn.Seq < c.appliedSeq {
		log.Warn("dropping stale turn", "seq", turn.Seq, "applied", c.appliedSeq)
		return false
	}
	c.appliedSeq = turn.Seq

	stored := resp
	c.last = &stored

	if resp.Detected() {
		c.detected = "Yes"
	} else {
		c.detected = "No"
	}
	c.score = ScoreText(resp.RiskScore)
	c.confidence = Confidence(resp.RiskScore)
	c.extracted = FormatExtracted(resp.Extracted)
	c.agentReply = resp.AgentReply
	c.addMessage(RoleAssistant, resp.AgentReply)
	c.status = StatusWaiting

	ents := api.NormalizeEntities(resp.Extracted)
	c.links += ents.Links()
	c.ids += ents.Identifiers()

	log.Debug("turn applied", "seq", turn.Seq, "detected", c.detected, "score", c.score,
		"links", ents.Links(), "identifiers", ents.Identifiers())
	return true
}

// FailTurn records a send that failed.
func (c *Controller) FailTurn(turn Turn, err error) {
	c.finishTurn(turn)
	logger.WithSession(turn.SessionID).Warn("send failed", "seq", turn.Seq, "error", err)
	c.status = StatusSendFailed
}

func (c *Controller) finishTurn(turn Turn) {
	if turn.Seq > c.clearedAt && c.inFlight > 0 {
		c.inFlight--
	}
}

// CopyText is what CopyIntel puts on the clipboard.
func (c *Controller) CopyText() string {
	if c.extracted == "" {
		return EmptyExtracted
	}
	return c.extracted
}

// Clear resets the transcript, analysis, counters and last response.
// The session ID and persona are kept.
func (c *Controller) Clear() {
	c.messages = nil
	c.links = 0
	c.ids = 0
	c.last = nil
	c.resetDisplay()
	c.inFlight = 0
	c.clearedAt = c.nextSeq
	c.status = StatusIdle
}

// Snapshot builds the export document for the last applied turn.
func (c *Controller) Snapshot() (Snapshot, bool) {
	if c.last == nil {
		return Snapshot{}, false
	}
	snap := Snapshot{
		ExportedAt:   FormatTimestamp(c.now()),
		DetectedScam: c.last.DetectedScam,
		RiskScore:    c.last.RiskScore,
		Persona:      c.last.Persona,
		Extracted:    c.last.Extracted,
		Conversation: c.last.Conversation,
	}
	if len(snap.Persona) == 0 && c.started && !c.persona.IsZero() {
		if raw, err := json.Marshal(c.persona); err == nil {
			snap.Persona = raw
		}
	}
	id := c.last.SessionID
	if id == "" {
		id = c.sessionID
	}
	if id != "" {
		snap.SessionID = &id
	}
	return snap, true
}
