// Package core is the orchestration layer.  It composes the session
// workers and the input distributor into one supervised run.
package core

import (
	"context"
	"io"
	"sync"

	"wsfan/config"
	"wsfan/internal/distributor"
	"wsfan/internal/errors"
	"wsfan/internal/metrics"
	"wsfan/internal/session"
	"wsfan/util"
)

// Supervisor owns one complete run: N session workers, their queues,
// and exactly one distributor reading the input source.
type Supervisor struct {
	cfg     *config.Config
	log     *util.Logger
	console *util.Console
	mc      *metrics.Collector
	input   io.Reader
}

// NewSupervisor builds a Supervisor reading lines from input.
// mc may be nil.
func NewSupervisor(cfg *config.Config, log *util.Logger, console *util.Console,
	mc *metrics.Collector, input io.Reader) *Supervisor {
	return &Supervisor{cfg: cfg, log: log, console: console, mc: mc, input: input}
}

// Run starts every worker and the distributor, then blocks until all
// workers have reported completion.  A failed session never aborts its
// siblings.  Once the last worker is done the distributor is cancelled
// (it may be blocked on further input) and joined before Run returns.
//
// The returned error joins the abnormal session failures; clean closes
// and cancellation contribute nothing.
func (s *Supervisor) Run(ctx context.Context) error {
	n := s.cfg.Sessions

	queues := make([]chan string, n)
	results := make([]error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		queues[i] = make(chan string, s.cfg.QueueSize)
		w := session.New(i, queues[i], s.cfg, s.log, s.console, s.mc)
		wg.Add(1)
		go func(i int, w *session.Session) {
			defer wg.Done()
			results[i] = w.Run(ctx)
		}(i, w)
	}

	// The distributor gets its own cancel so it can be stopped after
	// the workers finish without touching the parent context.
	distCtx, distCancel := context.WithCancel(ctx)
	defer distCancel()

	sendQueues := make([]chan<- string, n)
	for i, q := range queues {
		sendQueues[i] = q
	}

	distDone := make(chan struct{})
	go func() {
		defer close(distDone)
		distributor.New(s.log).Run(distCtx, util.Lines(distCtx, s.input), sendQueues)
	}()

	wg.Wait()
	s.log.Verbose("all %d sessions finished", n)

	distCancel()
	<-distDone

	var failed []error
	for i, err := range results {
		if err == nil || errors.IsNormalClose(err) {
			continue
		}
		s.log.Error("session %d failed: %v", i, err)
		failed = append(failed, err)
	}
	return errors.Join(failed...)
}
