package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthy reports whether the backend answered with the "ok" sentinel.
func (h HealthResponse) Healthy() bool {
	return h.Status == "ok"
}

// Persona is the simulated victim identity generated for a session.
// Fields are decoded leniently: numbers and booleans are kept as their
// JSON text so an integer age renders the same as a string one.
type Persona struct {
	Name       string
	Age        string
	Location   string
	Occupation string
	Tone       string

	// Raw is the persona object exactly as the backend sent it.
	Raw json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Persona) UnmarshalJSON(data []byte) error {
	var fields struct {
		Name       looseString `json:"name"`
		Age        looseString `json:"age"`
		Location   looseString `json:"location"`
		Occupation looseString `json:"occupation"`
		Tone       looseString `json:"tone"`
	}
	if isNull(data) {
		*p = Persona{}
		return nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = Persona{
		Name:       string(fields.Name),
		Age:        string(fields.Age),
		Location:   string(fields.Location),
		Occupation: string(fields.Occupation),
		Tone:       string(fields.Tone),
		Raw:        append(json.RawMessage(nil), data...),
	}
	return nil
}

// MarshalJSON implements json.Marshaler, preferring the original bytes.
func (p Persona) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(map[string]string{
		"name":       p.Name,
		"age":        p.Age,
		"location":   p.Location,
		"occupation": p.Occupation,
		"tone":       p.Tone,
	})
}

// IsZero reports whether the backend sent no persona at all.
func (p Persona) IsZero() bool {
	return len(p.Raw) == 0 && p.Name == "" && p.Age == "" && p.Location == "" &&
		p.Occupation == "" && p.Tone == ""
}

// Summary renders "<name>, <age> | <location> | <occupation> | <tone>",
// or "" when there is no persona.
func (p Persona) Summary() string {
	if p.IsZero() {
		return ""
	}
	return p.Name + ", " + p.Age + " | " + p.Location + " | " + p.Occupation + " | " + p.Tone
}

// StartResponse is the body of POST /start.
type StartResponse struct {
	SessionID string  `json:"session_id"`
	Persona   Persona `json:"persona"`
	Message   string  `json:"message"`
}

// IngestRequest is the body sent to POST /ingest.
type IngestRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// IngestResponse is the body of POST /ingest. Everything the export needs
// verbatim is kept as raw JSON so malformed or unexpected values survive
// the round trip.
type IngestResponse struct {
	SessionID    string          `json:"session_id,omitempty"`
	DetectedScam json.RawMessage `json:"detected_scam,omitempty"`
	RiskScore    json.RawMessage `json:"risk_score,omitempty"`
	Extracted    json.RawMessage `json:"extracted,omitempty"`
	AgentReply   string          `json:"agent_reply"`
	Conversation json.RawMessage `json:"conversation,omitempty"`
	Persona      json.RawMessage `json:"persona,omitempty"`
}

// Detected applies JavaScript truthiness to detected_scam, which is what
// the backend's own web page does.
func (r IngestResponse) Detected() bool {
	return truthy(r.DetectedScam)
}

// Entities are the intelligence artifacts extracted from a turn.
type Entities struct {
	URLs         []string
	UPIIDs       []string
	BankAccounts []string
	IFSCCodes    []string
}

// Links is the number of URLs.
func (e Entities) Links() int {
	return len(e.URLs)
}

// Identifiers is the number of payment identifiers (UPI, bank, IFSC).
func (e Entities) Identifiers() int {
	return len(e.UPIIDs) + len(e.BankAccounts) + len(e.IFSCCodes)
}

// NormalizeEntities decodes an extracted record. An absent or non-object
// record, and any sub-field that is absent or not an array, becomes empty.
// Non-string array elements are kept as their JSON text.
func NormalizeEntities(raw json.RawMessage) Entities {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entities{}
	}
	return Entities{
		URLs:         stringList(fields["urls"]),
		UPIIDs:       stringList(fields["upi_ids"]),
		BankAccounts: stringList(fields["bank_accounts"]),
		IFSCCodes:    stringList(fields["ifsc_codes"]),
	}
}

func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(bytes.TrimSpace(item)))
	}
	return out
}

// looseString accepts any JSON scalar.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	*s = looseString(bytes.TrimSpace(data))
	return nil
}

func isNull(data []byte) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || string(t) == "null"
}

func truthy(raw json.RawMessage) bool {
	t := strings.TrimSpace(string(raw))
	switch {
	case t == "", t == "null", t == "false", t == `""`:
		return false
	case t == "true":
		return true
	case strings.HasPrefix(t, `"`), strings.HasPrefix(t, "{"), strings.HasPrefix(t, "["):
		return true
	}
	f, err := strconv.ParseFloat(t, 64)
	return err == nil && f != 0
}
