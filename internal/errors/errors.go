// Package errors provides structured error types for decoy.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindStatus
	KindDecode
	KindConfig
	KindClipboard
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindStatus:
		return "unexpected status"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	case KindClipboard:
		return "clipboard error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for decoy.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Backend request errors
func RequestFailed(op Op, path string, err error) error {
	return E(op, KindNetwork, fmt.Sprintf("request to %s failed", path), err)
}

func RequestTimeout(op Op, path string, err error) error {
	return E(op, KindTimeout, fmt.Sprintf("request to %s timed out", path), err)
}

func BadStatus(op Op, path string, code int, body string) error {
	return E(op, KindStatus, fmt.Sprintf("%s returned an error", path), &StatusError{Code: code, Body: body})
}

func DecodeFailed(op Op, path string, err error) error {
	return E(op, KindDecode, fmt.Sprintf("failed to decode response from %s", path), err)
}

// Session errors
func NoActiveSession() error {
	return E(Op("session.Send"), KindInvalid, "no active session")
}

func NothingToExport() error {
	return E(Op("session.Export"), KindNotFound, "no session data to export")
}

func ExportFailed(path string, err error) error {
	return E(Op("session.Export"), KindIO, fmt.Sprintf("failed to write %s", path), err)
}

func ClipboardFailed(err error) error {
	return E(Op("clipboard.Write"), KindClipboard, err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Describe returns a short message for err suitable for a one-line flash.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	switch GetKind(err) {
	case KindNetwork:
		return "backend unreachable"
	case KindTimeout:
		return "request timed out"
	case KindStatus:
		return fmt.Sprintf("backend returned status %d", StatusCode(err))
	case KindDecode:
		return "unexpected response from backend"
	case KindIO:
		var e *Error
		if errors.As(err, &e) && e.Context != "" {
			return e.Context
		}
	}
	return err.Error()
}
