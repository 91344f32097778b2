// Package config defines the runtime configuration for wsfan and
// provides URL normalisation and validation helpers.
package config

import (
	"fmt"
	"net/url"
	"time"

	"wsfan/internal/errors"
)

// Config holds every tuneable for a single wsfan run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	URL         string        // WebSocket endpoint (ws:// or wss://)
	Sessions    int           // number of concurrent sessions
	DialTimeout time.Duration // per-session handshake timeout

	// ── Fan-out ──────────────────────────────────────────────────────
	QueueSize int // per-session outbound queue capacity

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	DryRun  bool // validate and exit without connecting
}

// NormalizeURL rewrites http(s) schemes to ws(s) and validates the
// result.  The original aiohttp-era default passed an http:// URL, so
// both spellings are accepted.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q (want ws, wss, http, or https)", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}
	return u.String(), nil
}

// Validate checks that the configuration is internally consistent.
// URL is expected to be normalised already.
func (c *Config) Validate() error {
	if c.URL == "" {
		return &errors.ConfigError{
			Field:   "url",
			Message: "server URL is required",
			Hint:    "example: --url ws://127.0.0.1:3000/ws",
		}
	}
	if _, err := NormalizeURL(c.URL); err != nil {
		return &errors.ConfigError{
			Field:   "url",
			Value:   c.URL,
			Message: err.Error(),
		}
	}
	if c.Sessions < 1 {
		return &errors.ConfigError{
			Field:   "sessions",
			Value:   c.Sessions,
			Message: "at least one session is required",
			Hint:    "use -n 2 for the default pair of sessions",
		}
	}
	if c.QueueSize < 1 {
		return &errors.ConfigError{
			Field:   "queue-size",
			Value:   c.QueueSize,
			Message: "queue capacity must be positive",
		}
	}
	if c.DialTimeout < 0 {
		return &errors.ConfigError{
			Field:   "timeout",
			Value:   c.DialTimeout,
			Message: "timeout cannot be negative",
		}
	}
	return nil
}
