// Package errors provides domain-specific error types for wsfan.
//
// These types carry structured context (session index, operation,
// close codes) that helps callers decide whether a session ended
// cleanly and provides better diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"net"

	"github.com/gorilla/websocket"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrInputClosed   = errors.New("input stream ended")
	ErrUnknownFrame  = errors.New("unknown message type")
)

// ── Structured error types ───────────────────────────────────────────

// SessionError represents a failure on one WebSocket session.  Each
// session fails independently; a SessionError never implicates its
// siblings.
type SessionError struct {
	Index int    // session index 0..N-1
	Op    string // operation: "dial", "read", "write", "ping", "close"
	Err   error  // underlying error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %d: %s: %v", e.Index, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// WrapSession creates a SessionError for the given session and op.
func WrapSession(index int, op string, err error) *SessionError {
	return &SessionError{Index: index, Op: op, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsNormalClose reports whether err is the expected end of a session:
// a clean WebSocket close handshake or a connection torn down during
// our own shutdown.
func IsNormalClose(err error) bool {
	if err == nil {
		return true
	}
	var se *SessionError
	if errors.As(err, &se) {
		return IsNormalClose(se.Err)
	}
	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived) {
		return true
	}
	// ErrCloseSent is a write that raced our own close handshake.
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, ErrSessionClosed)
}

// CloseCode extracts the WebSocket close code from err, or -1 when err
// is not a close error.
func CloseCode(err error) int {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return -1
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use wsfan/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
