// Package distributor fans one stream of input lines out to every
// session's outbound queue.
package distributor

import (
	"context"

	"wsfan/util"
)

// Distributor broadcasts each input line to all queues in order.  It
// is the sole producer of every queue it is given: closing a queue is
// how it signals that no further input will arrive, and it does so
// exactly once per queue, on end of input.
type Distributor struct {
	log *util.Logger
}

// New creates a Distributor.
func New(log *util.Logger) *Distributor {
	return &Distributor{log: log}
}

// Run consumes src until it is closed (end of input) or ctx is
// cancelled.
//
// Each line is delivered to every queue in queue order, blocking when
// a queue is full: a slow session delays the broadcast but never loses
// a line.  On end of input every queue is closed.  On cancellation Run
// returns without closing the queues; the caller is tearing everything
// down and consumers observe the same cancellation themselves.
func (d *Distributor) Run(ctx context.Context, src <-chan string, queues []chan<- string) {
	for {
		select {
		case line, ok := <-src:
			if !ok {
				d.log.Verbose("input done, stopping %d queues", len(queues))
				for _, q := range queues {
					close(q)
				}
				return
			}
			for i, q := range queues {
				select {
				case q <- line:
				case <-ctx.Done():
					d.log.Debug("distributor cancelled mid-broadcast at queue %d", i)
					return
				}
			}
		case <-ctx.Done():
			d.log.Debug("distributor cancelled")
			return
		}
	}
}
