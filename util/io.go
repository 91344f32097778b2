package util

import (
	"bufio"
	"context"
	"io"
)

// MaxLineSize caps a single input line (1 MiB).  Longer lines end the
// stream with a scanner error rather than silently truncating.
const MaxLineSize = 1024 * 1024

// Lines exposes a blocking reader as a cancellable sequence of lines.
// The returned channel yields each line without its trailing newline
// and is closed at end of stream, on a read error, or once ctx is
// cancelled.  Channel close is the only end-of-stream signal; an empty
// line is a valid value, not a terminator.
//
// The underlying Read itself cannot be interrupted (stdin has no
// deadline), but the hand-off of every completed line honours ctx, so
// a cancelled consumer never blocks the producer goroutine forever on
// a full channel.
func Lines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), MaxLineSize)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		// sc.Err() is nil on clean EOF; either way the stream is done
		// and the closed channel tells the consumer.
	}()
	return out
}
