package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/decoy/internal/api"
	"github.com/zhubert/decoy/internal/logger"
)

func startedController(t *testing.T) *Controller {
	t.Helper()
	c := New()
	c.ApplyStart(api.StartResponse{
		SessionID: "sess-1",
		Persona:   api.Persona{Name: "Asha", Age: "67", Location: "Pune", Occupation: "Retired clerk", Tone: "trusting"},
		Message:   "Hello?",
	})
	return c
}

func ingest(extracted, score string) api.IngestResponse {
	return api.IngestResponse{
		SessionID:    "sess-1",
		DetectedScam: json.RawMessage(`true`),
		RiskScore:    json.RawMessage(score),
		Extracted:    json.RawMessage(extracted),
		AgentReply:   "Which bank?",
		Conversation: json.RawMessage(`[]`),
	}
}

func TestNew_InitialState(t *testing.T) {
	c := New()

	if c.HasSession() {
		t.Error("new controller should have no session")
	}
	if c.Status() != StatusIdle {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusIdle)
	}
	if c.Detected() != "-" || c.Score() != "-" || c.AgentReply() != "-" {
		t.Errorf("placeholders = %q %q %q, want -", c.Detected(), c.Score(), c.AgentReply())
	}
	if c.Extracted() != "{}" {
		t.Errorf("Extracted() = %q, want {}", c.Extracted())
	}
	if c.Confidence() != 0 {
		t.Errorf("Confidence() = %d, want 0", c.Confidence())
	}
	if c.PersonaSummary() != "" {
		t.Errorf("PersonaSummary() = %q, want empty", c.PersonaSummary())
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"ok", StatusHealthy},
		{"down", StatusUnhealthy},
		{"", StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			c := New()
			c.BeginHealth()
			if c.Status() != StatusCheckingHealth {
				t.Errorf("Status() = %q, want %q", c.Status(), StatusCheckingHealth)
			}
			c.ApplyHealth(api.HealthResponse{Status: tt.status})
			if c.Status() != tt.want {
				t.Errorf("Status() = %q, want %q", c.Status(), tt.want)
			}
		})
	}

	c := New()
	c.FailHealth(errors.New("connection refused"))
	if c.Status() != StatusHealthFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusHealthFailed)
	}
}

func TestApplyStart(t *testing.T) {
	c := New()
	c.BeginStart()
	if c.Status() != StatusStarting {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusStarting)
	}

	c = startedController(t)

	if c.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q", c.SessionID())
	}
	if c.Status() != StatusReady {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusReady)
	}
	if got, want := c.PersonaSummary(), "Asha, 67 | Pune | Retired clerk | trusting"; got != want {
		t.Errorf("PersonaSummary() = %q, want %q", got, want)
	}
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleAssistant || msgs[0].Text != "Hello?" {
		t.Errorf("Messages() = %+v, want one assistant greeting", msgs)
	}
	if c.MessageCount() != 1 {
		t.Errorf("MessageCount() = %d, want 1", c.MessageCount())
	}
}

func TestFailStart(t *testing.T) {
	c := New()
	c.BeginStart()
	c.FailStart(errors.New("boom"))
	if c.Status() != StatusStartFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusStartFailed)
	}
	if c.HasSession() {
		t.Error("failed start should not create a session")
	}
}

func TestStartTwice_KeepsTranscriptAndCounters(t *testing.T) {
	c := startedController(t)
	turn, _ := c.BeginSend("send OTP to pay@okbank")
	c.ApplyTurn(turn, ingest(`{"urls": ["http://a"], "upi_ids": ["pay@okbank"]}`, `50`))

	before := c.MessageCount()
	c.ApplyStart(api.StartResponse{SessionID: "sess-2", Persona: api.Persona{Name: "Ravi"}, Message: "Hi"})

	if c.SessionID() != "sess-2" {
		t.Errorf("SessionID() = %q, want sess-2", c.SessionID())
	}
	if c.MessageCount() != before+1 {
		t.Errorf("MessageCount() = %d, want %d", c.MessageCount(), before+1)
	}
	if c.LinkCount() != 1 || c.IdentifierCount() != 1 {
		t.Errorf("counters = %d/%d, want 1/1", c.LinkCount(), c.IdentifierCount())
	}
	if _, ok := c.LastResponse(); !ok {
		t.Error("LastResponse should survive a second start")
	}
}

func TestBeginSend_WithoutSession(t *testing.T) {
	logger.Reset()
	logPath := filepath.Join(t.TempDir(), "decoy.log")
	if err := logger.Init(logPath); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(logger.Reset)
	c := New()

	turn, ok := c.BeginSend("hello")
	if ok {
		t.Fatalf("BeginSend() = %+v, true; want false", turn)
	}
	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one system message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[0].Text != "Start a session first." {
		t.Errorf("message = %+v", msgs[0])
	}
	if c.Typing() {
		t.Error("typing indicator should stay hidden")
	}

	logger.Close()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "no active session") {
		t.Errorf("rejected send should be logged, got:\n%s", data)
	}
}

func TestBeginSend_Blank(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		c := startedController(t)
		before := c.MessageCount()
		if _, ok := c.BeginSend(text); ok {
			t.Errorf("BeginSend(%q) should be a no-op", text)
		}
		if c.MessageCount() != before {
			t.Errorf("BeginSend(%q) appended a message", text)
		}
		if c.Status() != StatusReady {
			t.Errorf("BeginSend(%q) changed status to %q", text, c.Status())
		}
	}

	c := New()
	c.BeginSend("  ")
	if c.MessageCount() != 0 {
		t.Error("blank text without a session should not append the notice")
	}
}

func TestSendAndApply(t *testing.T) {
	c := startedController(t)

	turn, ok := c.BeginSend("  Your KYC is expiring  ")
	if !ok {
		t.Fatal("BeginSend() should succeed with a session")
	}
	if turn.Message != "Your KYC is expiring" || turn.SessionID != "sess-1" {
		t.Errorf("turn = %+v", turn)
	}
	if req := turn.Request(); req.SessionID != "sess-1" || req.Message != turn.Message {
		t.Errorf("Request() = %+v", req)
	}
	if c.Status() != StatusAnalyzing {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusAnalyzing)
	}
	if !c.Typing() {
		t.Error("typing indicator should be shown while the turn is in flight")
	}
	last := c.Messages()[len(c.Messages())-1]
	if last.Role != RoleScammer || last.Text != "Your KYC is expiring" {
		t.Errorf("last message = %+v", last)
	}

	applied := c.ApplyTurn(turn, ingest(`{"urls":["http://kyc.example"],"upi_ids":["a@b"],"bank_accounts":["1234"],"ifsc_codes":["SBIN0000001"]}`, `82`))
	if !applied {
		t.Fatal("ApplyTurn() = false, want true")
	}
	if c.Typing() {
		t.Error("typing indicator should be hidden after the response")
	}
	if c.Status() != StatusWaiting {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusWaiting)
	}
	if c.Detected() != "Yes" {
		t.Errorf("Detected() = %q, want Yes", c.Detected())
	}
	if c.Score() != "82" || c.Confidence() != 82 {
		t.Errorf("score = %q / %d", c.Score(), c.Confidence())
	}
	if c.AgentReply() != "Which bank?" {
		t.Errorf("AgentReply() = %q", c.AgentReply())
	}
	wantExtracted := "{\n  \"urls\": [\n    \"http://kyc.example\"\n  ],\n  \"upi_ids\": [\n    \"a@b\"\n  ],\n  \"bank_accounts\": [\n    \"1234\"\n  ],\n  \"ifsc_codes\": [\n    \"SBIN0000001\"\n  ]\n}"
	if c.Extracted() != wantExtracted {
		t.Errorf("Extracted() = %q", c.Extracted())
	}
	if c.LinkCount() != 1 || c.IdentifierCount() != 3 {
		t.Errorf("counters = %d links / %d ids, want 1/3", c.LinkCount(), c.IdentifierCount())
	}
	// greeting + scammer + reply
	if c.MessageCount() != 3 {
		t.Errorf("MessageCount() = %d, want 3", c.MessageCount())
	}
	if c.Messages()[2].Role != RoleAssistant {
		t.Errorf("reply role = %q, want assistant", c.Messages()[2].Role)
	}
}

func TestApplyTurn_NotDetected(t *testing.T) {
	c := startedController(t)
	turn, _ := c.BeginSend("hi")
	resp := ingest(`{}`, `3`)
	resp.DetectedScam = json.RawMessage(`false`)
	c.ApplyTurn(turn, resp)
	if c.Detected() != "No" {
		t.Errorf("Detected() = %q, want No", c.Detected())
	}
}

func TestApplyTurn_MalformedExtracted(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", ``},
		{"null", `null`},
		{"string", `"none"`},
		{"non-array fields", `{"urls": "x", "upi_ids": 1, "bank_accounts": {}, "ifsc_codes": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := startedController(t)
			turn, _ := c.BeginSend("pay now")
			if !c.ApplyTurn(turn, ingest(tt.raw, `10`)) {
				t.Fatal("turn should be applied")
			}
			if c.LinkCount() != 0 || c.IdentifierCount() != 0 {
				t.Errorf("counters = %d/%d, want 0/0", c.LinkCount(), c.IdentifierCount())
			}
		})
	}
}

func TestApplyTurn_CountersAccumulate(t *testing.T) {
	c := startedController(t)
	for i := 0; i < 3; i++ {
		turn, _ := c.BeginSend("msg")
		c.ApplyTurn(turn, ingest(`{"urls":["a","b"],"ifsc_codes":["X"]}`, `1`))
	}
	if c.LinkCount() != 6 || c.IdentifierCount() != 3 {
		t.Errorf("counters = %d/%d, want 6/3", c.LinkCount(), c.IdentifierCount())
	}
}

func TestApplyTurn_ScoreAbove100(t *testing.T) {
	c := startedController(t)
	turn, _ := c.BeginSend("urgent")
	c.ApplyTurn(turn, ingest(`{}`, `137`))

	if c.Score() != "137" {
		t.Errorf("Score() = %q, want raw 137", c.Score())
	}
	if c.Confidence() != 100 {
		t.Errorf("Confidence() = %d, want 100", c.Confidence())
	}
	if got := ConfidenceLabel(c.Confidence()); got != "Confidence: 100 percent" {
		t.Errorf("label = %q", got)
	}
}

func TestApplyTurn_DropsStale(t *testing.T) {
	c := startedController(t)
	first, _ := c.BeginSend("first")
	second, _ := c.BeginSend("second")

	if c.InFlight() != 2 {
		t.Fatalf("InFlight() = %d, want 2", c.InFlight())
	}

	secondResp := ingest(`{"urls":["new"]}`, `90`)
	secondResp.AgentReply = "reply to second"
	if !c.ApplyTurn(second, secondResp) {
		t.Fatal("newest turn should be applied")
	}
	if !c.Typing() {
		t.Error("typing indicator should stay while the first turn is in flight")
	}

	firstResp := ingest(`{"urls":["old"]}`, `10`)
	firstResp.AgentReply = "reply to first"
	if c.ApplyTurn(first, firstResp) {
		t.Error("older turn should be dropped once a newer one is applied")
	}

	if c.Typing() {
		t.Error("typing indicator should hide once nothing is in flight")
	}
	if c.Score() != "90" || c.AgentReply() != "reply to second" {
		t.Errorf("display regressed: score %q reply %q", c.Score(), c.AgentReply())
	}
	if c.LinkCount() != 1 {
		t.Errorf("LinkCount() = %d, stale turn should not be counted", c.LinkCount())
	}
	for _, m := range c.Messages() {
		if m.Text == "reply to first" {
			t.Error("stale reply should not be rendered")
		}
	}
}

func TestApplyTurn_InOrder(t *testing.T) {
	c := startedController(t)
	first, _ := c.BeginSend("first")
	second, _ := c.BeginSend("second")

	if !c.ApplyTurn(first, ingest(`{"urls":["a"]}`, `10`)) {
		t.Error("first turn should be applied")
	}
	if !c.ApplyTurn(second, ingest(`{"urls":["b"]}`, `20`)) {
		t.Error("second turn should be applied")
	}
	if c.LinkCount() != 2 {
		t.Errorf("LinkCount() = %d, want 2", c.LinkCount())
	}
	if c.Score() != "20" {
		t.Errorf("Score() = %q, want 20", c.Score())
	}
}

func TestFailTurn(t *testing.T) {
	c := startedController(t)
	turn, _ := c.BeginSend("hello")
	c.FailTurn(turn, errors.New("timeout"))

	if c.Status() != StatusSendFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusSendFailed)
	}
	if c.Typing() {
		t.Error("typing indicator should hide after a failed send")
	}
	if _, ok := c.LastResponse(); ok {
		t.Error("failed send should not set LastResponse")
	}
}

func TestClear_KeepsSessionID(t *testing.T) {
	c := startedController(t)
	turn, _ := c.BeginSend("pay")
	c.ApplyTurn(turn, ingest(`{"urls":["a"],"upi_ids":["b"]}`, `75`))
	pending, _ := c.BeginSend("still waiting")

	c.Clear()

	if c.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q, Clear should keep it", c.SessionID())
	}
	if c.MessageCount() != 0 || c.LinkCount() != 0 || c.IdentifierCount() != 0 {
		t.Errorf("counters = %d/%d/%d, want zeros", c.MessageCount(), c.LinkCount(), c.IdentifierCount())
	}
	if _, ok := c.LastResponse(); ok {
		t.Error("LastResponse should be absent after Clear")
	}
	if c.Detected() != "-" || c.Score() != "-" || c.AgentReply() != "-" || c.Extracted() != "{}" || c.Confidence() != 0 {
		t.Error("display should be reset after Clear")
	}
	if c.Typing() {
		t.Error("Clear should hide the typing indicator")
	}
	if c.Status() != StatusIdle {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusIdle)
	}

	// A cleared screen still accepts messages under the old session.
	next, ok := c.BeginSend("again")
	if !ok || next.SessionID != "sess-1" {
		t.Errorf("BeginSend after Clear = %+v, %v", next, ok)
	}

	// The pre-clear turn does not decrement the new turn's indicator.
	c.ApplyTurn(pending, ingest(`{}`, `5`))
	if !c.Typing() {
		t.Error("typing indicator should stay for the post-clear turn")
	}
}

func TestCopyText(t *testing.T) {
	c := New()
	if c.CopyText() != "{}" {
		t.Errorf("CopyText() = %q, want {}", c.CopyText())
	}

	c = startedController(t)
	turn, _ := c.BeginSend("x")
	c.ApplyTurn(turn, ingest(`{"urls":[]}`, `1`))
	if c.CopyText() != "{\n  \"urls\": []\n}" {
		t.Errorf("CopyText() = %q", c.CopyText())
	}
}

func TestApplyCopy(t *testing.T) {
	c := New()
	c.ApplyCopy(nil)
	if c.Status() != StatusIntelCopied {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusIntelCopied)
	}
	c.ApplyCopy(errors.New("no clipboard"))
	if c.Status() != StatusCopyFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusCopyFailed)
	}
}
