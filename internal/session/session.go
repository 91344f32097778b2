// Package session implements the worker that owns one WebSocket
// connection: a receive loop reacting to everything the server sends
// and a send loop draining the session's outbound queue.  The two
// loops run concurrently against the same connection; whichever
// reaches a terminal state first cancels the other.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"wsfan/config"
	"wsfan/internal/errors"
	"wsfan/internal/metrics"
	"wsfan/util"
)

// State is a session's lifecycle position.
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// initialPingPayload matches what the tool has always sent on connect;
// servers echo it back in the pong.
const initialPingPayload = "Hello!"

// Session owns one WebSocket connection and its inbound queue of
// outbound lines.  The queue has exactly one producer (the
// distributor) and one consumer (this session); a closed queue is the
// stop signal meaning no further input will arrive.
type Session struct {
	index   int
	queue   <-chan string
	cfg     *config.Config
	log     *util.Logger
	console *util.Console
	mc      *metrics.Collector

	conn  *websocket.Conn
	state atomic.Int32

	// recvErr is written by the receive loop before recvDone closes.
	recvDone chan struct{}
	recvErr  error
}

// New creates a session worker.  mc may be nil.
func New(index int, queue <-chan string, cfg *config.Config,
	log *util.Logger, console *util.Console, mc *metrics.Collector) *Session {
	return &Session{
		index:    index,
		queue:    queue,
		cfg:      cfg,
		log:      log,
		console:  console,
		mc:       mc,
		recvDone: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	s.log.Debug("session %d: %s", s.index, st)
}

// Run dials the server and runs the receive and send activities until
// one of them terminates the session.  It returns nil on a clean close
// (server-initiated or after end of input) and the terminal error
// otherwise.  Cancellation of ctx is a clean shutdown, not an error.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.setState(StateConnecting)
	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		s.mc.RecordError(err.Error())
		s.drainQueue()
		return errors.WrapSession(s.index, "dial", err)
	}
	s.conn = conn
	defer conn.Close()
	s.setState(StateActive)
	s.mc.SessionOpened()
	defer s.mc.SessionClosed()
	s.log.Verbose("session %d connected to %s", s.index, s.cfg.URL)

	s.installHandlers()

	if err := s.writeControl(websocket.PingMessage, []byte(initialPingPayload)); err != nil {
		s.mc.RecordError(err.Error())
		s.drainQueue()
		return errors.WrapSession(s.index, "ping", err)
	}
	s.log.Debug("session %d: sent initial ping", s.index)

	go func() {
		defer close(s.recvDone)
		s.recvErr = s.receiveLoop()
	}()

	sendErr := s.sendLoop(ctx)

	// Stop the receive activity if it is still blocked on the wire.
	// Closing the connection is safe even when the peer already did.
	select {
	case <-s.recvDone:
	default:
		conn.Close()
	}
	<-s.recvDone
	s.setState(StateClosed)
	s.log.Verbose("session %d exiting", s.index)

	switch {
	case sendErr != nil && !errors.IsNormalClose(sendErr):
		return sendErr
	case errors.IsNormalClose(s.recvErr):
		return nil
	default:
		return s.recvErr
	}
}

// installHandlers wires the control-frame reactions.  gorilla invokes
// these from inside ReadMessage, so they run on the receive activity
// and may use WriteControl, which is safe alongside the send loop.
func (s *Session) installHandlers() {
	s.conn.SetPingHandler(func(appData string) error {
		s.console.Inbound(s.index, "Ping", appData)
		s.mc.PingReceived()
		return s.writeControl(websocket.PongMessage, []byte(appData))
	})
	s.conn.SetPongHandler(func(appData string) error {
		s.console.Inbound(s.index, "Pong", appData)
		s.mc.PongReceived()
		return nil
	})
	s.conn.SetCloseHandler(func(code int, text string) error {
		payload := fmt.Sprintf("%d", code)
		if text != "" {
			payload += " " + text
		}
		s.console.Inbound(s.index, "Close", payload)
		// Acknowledge only when the peer initiated; if we are already
		// closing this frame is the reply to our own close.
		if s.state.CompareAndSwap(int32(StateActive), int32(StateClosing)) {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			s.writeControl(websocket.CloseMessage, msg) //nolint:errcheck
		}
		return nil
	})
}

// receiveLoop processes inbound messages until the connection yields a
// terminal condition.  Control frames are handled by the installed
// handlers before ReadMessage returns.
func (s *Session) receiveLoop() error {
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if errors.IsNormalClose(err) {
				// Close frames were already logged by the handler;
				// our own teardown needs no console line at all.
				s.log.Debug("session %d: connection closed", s.index)
				return err
			}
			s.console.Inbound(s.index, "Error", err.Error())
			s.mc.RecordError(err.Error())
			return errors.WrapSession(s.index, "read", err)
		}

		switch msgType {
		case websocket.TextMessage:
			s.console.Inbound(s.index, "Text", strings.TrimSpace(string(data)))
			s.mc.MessageReceived()
		case websocket.BinaryMessage:
			s.console.Inbound(s.index, "Binary", fmt.Sprintf("%x", data))
			s.mc.MessageReceived()
		default:
			// ReadMessage only yields data frames today; anything else
			// is a library change we refuse to guess about.
			s.console.Inbound(s.index, "Unknown", fmt.Sprintf("type %d", msgType))
			return errors.WrapSession(s.index, "read", errors.ErrUnknownFrame)
		}
	}
}

// sendLoop forwards queued lines as text frames until the queue is
// closed (stop signal), the receive activity terminates, or ctx is
// cancelled.  Only a failed write is an error.
func (s *Session) sendLoop(ctx context.Context) error {
	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				s.initiateClose()
				return nil
			}
			s.console.Outbound(s.index, line)
			s.conn.SetWriteDeadline(time.Now().Add(config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				if !errors.IsNormalClose(err) {
					s.mc.RecordError(err.Error())
				}
				s.drainQueue()
				return errors.WrapSession(s.index, "write", err)
			}
			s.mc.MessageSent()
		case <-s.recvDone:
			// Receive activity hit a terminal state.  Keep the queue
			// moving so a full queue on this dead session never blocks
			// the distributor's broadcast to the survivors.
			s.drainQueue()
			return nil
		case <-ctx.Done():
			s.drainQueue()
			return nil
		}
	}
}

// initiateClose starts the close handshake after end of input and
// waits briefly for the server's close reply to land.
func (s *Session) initiateClose() {
	if s.state.CompareAndSwap(int32(StateActive), int32(StateClosing)) {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := s.writeControl(websocket.CloseMessage, msg); err != nil {
			s.log.Debug("session %d: close write failed: %v", s.index, err)
		}
	}
	select {
	case <-s.recvDone:
	case <-time.After(config.CloseGrace):
		s.log.Warn("session %d: no close reply within %s", s.index, config.CloseGrace)
		s.conn.Close()
	}
}

// drainQueue discards remaining queued lines so the single-producer
// distributor can keep delivering to other sessions.  The goroutine
// ends when the distributor closes the queue; during an external
// cancellation it lives only until process teardown.
func (s *Session) drainQueue() {
	q := s.queue
	go func() {
		for range q {
		}
	}()
}

func (s *Session) writeControl(messageType int, data []byte) error {
	return s.conn.WriteControl(messageType, data, time.Now().Add(config.WriteTimeout))
}
