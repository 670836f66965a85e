package session

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Confidence maps a raw risk score onto the 0-100 confidence bar.
// Numbers are used as-is, numeric strings are parsed, booleans count as
// 1 or 0, and anything else (including NaN and infinities) counts as 0.
// The result is rounded and clamped to [0, 100].
func Confidence(raw json.RawMessage) int {
	v := coerceNumber(raw)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// ConfidenceLabel renders the text shown under the confidence bar.
func ConfidenceLabel(percent int) string {
	return "Confidence: " + strconv.Itoa(percent) + " percent"
}

func coerceNumber(raw json.RawMessage) float64 {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return 0
	}
	switch t[0] {
	case 't':
		if string(t) == "true" {
			return 1
		}
		return 0
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// Out-of-range literals come back as +/-Inf, which Confidence zeroes.
		f, _ := strconv.ParseFloat(string(t), 64)
		return f
	}
	return 0
}

// ScoreText renders the risk score the way it arrived: strings without
// quotes, numbers in their shortest form, "-" when absent.
func ScoreText(raw json.RawMessage) string {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return "-"
	}
	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err == nil {
			return s
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, t); err == nil {
		return compact.String()
	}
	return string(t)
}

// FormatExtracted pretty-prints the extracted record with two-space
// indentation. Absent or null records render as "{}".
func FormatExtracted(raw json.RawMessage) string {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || string(t) == "null" {
		return EmptyExtracted
	}
	var out bytes.Buffer
	if err := json.Indent(&out, t, "", "  "); err != nil {
		return string(t)
	}
	return out.String()
}
