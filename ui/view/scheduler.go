package view

import (
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FrameScheduler queues callbacks on the Tk event loop at a fixed interval,
// standing in for a display-refresh callback.
type FrameScheduler struct {
	Interval time.Duration
}

// NewFrameScheduler returns a scheduler firing every interval (16ms if <= 0).
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &FrameScheduler{Interval: interval}
}

// Schedule runs fn once after the interval. The returned func cancels it.
func (s *FrameScheduler) Schedule(fn func()) func() {
	id := TclAfter(s.Interval, fn)
	return func() { TclAfterCancel(id) }
}
