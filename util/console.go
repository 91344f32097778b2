package util

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console prints session event lines to stdout.  A single mutex keeps
// lines from different sessions whole; within one session the caller
// already serialises, so per-session ordering is preserved.
//
// Line shapes:
//
//	>>>0 Text: 'hello'     inbound event on session 0
//	<<<0 Text: 'hello'     outbound text on session 0
//
// The format is for human eyes; nothing parses it.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to stdout.
func NewConsole() *Console {
	return &Console{w: os.Stdout}
}

// SetOutput overrides the output writer (default: os.Stdout).
func (c *Console) SetOutput(w io.Writer) {
	c.mu.Lock()
	c.w = w
	c.mu.Unlock()
}

// Inbound prints a received event: kind is the message kind name
// ("Text", "Binary", "Pong", ...), payload its printable content.
func (c *Console) Inbound(index int, kind, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, ">>>%d %s: '%s'\n", index, kind, payload)
}

// Outbound prints a line just before it is sent as a text frame.
func (c *Console) Outbound(index int, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "<<<%d Text: '%s'\n", index, payload)
}

// Printf prints a free-form status line (banner, summary).
func (c *Console) Printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}
