package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultURL is the endpoint of the local test server this tool
	// was written to poke at.
	DefaultURL = "ws://127.0.0.1:3000/ws"

	// DefaultSessions is the number of concurrent sessions opened
	// when -n is not given.
	DefaultSessions = 2

	// DefaultQueueSize bounds each session's outbound queue.  A full
	// queue applies backpressure to the distributor rather than
	// dropping lines.
	DefaultQueueSize = 16

	// DefaultDialTimeout is the WebSocket handshake timeout.
	DefaultDialTimeout = 30 * time.Second

	// CloseGrace is how long a session waits for the server's close
	// reply before tearing the connection down anyway.
	CloseGrace = 5 * time.Second

	// WriteTimeout bounds a single frame write so a stalled peer
	// cannot wedge the send loop forever.
	WriteTimeout = 10 * time.Second
)
