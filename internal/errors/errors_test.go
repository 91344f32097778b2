package errors

import (
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestSessionError_Format(t *testing.T) {
	err := WrapSession(3, "write", New("broken pipe"))

	want := "session 3: write: broken pipe"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSessionError_Unwrap(t *testing.T) {
	inner := New("inner")
	err := WrapSession(0, "read", inner)

	if !Is(err, inner) {
		t.Error("errors.Is should see through SessionError")
	}

	var se *SessionError
	if !As(fmt.Errorf("wrapped: %w", err), &se) {
		t.Fatal("errors.As should find SessionError through wrapping")
	}
	if se.Index != 0 || se.Op != "read" {
		t.Errorf("got index=%d op=%q", se.Index, se.Op)
	}
}

func TestConfigError_Hint(t *testing.T) {
	err := &ConfigError{
		Field:   "sessions",
		Value:   0,
		Message: "at least one session is required",
		Hint:    "use -n 2",
	}

	msg := err.Error()
	if !strings.Contains(msg, "--sessions=0") {
		t.Errorf("message should name the flag and value: %q", msg)
	}
	if !strings.Contains(msg, "hint: use -n 2") {
		t.Errorf("message should carry the hint: %q", msg)
	}
}

func TestIsNormalClose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"normal closure", &websocket.CloseError{Code: websocket.CloseNormalClosure}, true},
		{"going away", &websocket.CloseError{Code: websocket.CloseGoingAway}, true},
		{"no status", &websocket.CloseError{Code: websocket.CloseNoStatusReceived}, true},
		{"abnormal closure", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, false},
		{"policy violation", &websocket.CloseError{Code: websocket.ClosePolicyViolation}, false},
		{"net closed", net.ErrClosed, true},
		{"close already sent", websocket.ErrCloseSent, true},
		{"plain error", New("boom"), false},
		{
			"wrapped in session error",
			WrapSession(1, "read", &websocket.CloseError{Code: websocket.CloseNormalClosure}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNormalClose(tt.err); got != tt.want {
				t.Errorf("IsNormalClose(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCloseCode(t *testing.T) {
	err := WrapSession(0, "read", &websocket.CloseError{Code: 1008, Text: "policy"})
	if got := CloseCode(err); got != 1008 {
		t.Errorf("CloseCode = %d, want 1008", got)
	}
	if got := CloseCode(New("nope")); got != -1 {
		t.Errorf("CloseCode = %d, want -1", got)
	}
}
