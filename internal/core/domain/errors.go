package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks at the boundaries.
var (
	ErrConfig          = errors.New("config: missing or placeholder value")
	ErrChannelNotFound = errors.New("catalog: channel not found")
	ErrAuth            = errors.New("catalog: authorization rejected")
	ErrAPIUnavailable  = errors.New("catalog: unavailable or malformed response")
	ErrToolMissing     = errors.New("tool: executable not found")
	ErrToolFailed      = errors.New("tool: non-zero exit")
	ErrToolNoOutput    = errors.New("tool: produced no output file")
)

// APIError wraps a catalog sentinel with the request context.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // nested lower-level error (e.g. net.Error)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("twitch: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}

// ToolError wraps a tool sentinel with the external process diagnostics.
type ToolError struct {
	Sentinel error
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Tool, e.Sentinel)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Sentinel
}
