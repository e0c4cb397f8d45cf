package selection

// FrameLoop repeatedly schedules step on a Scheduler until stopped. Before
// every reschedule it checks both its own stop flag and the alive predicate,
// so a closed session never queues another frame.
type FrameLoop struct {
	sched  Scheduler
	step   func()
	alive  func() bool
	cancel func()
	frames uint64
	done   bool
}

// NewFrameLoop returns a loop that has not started yet.
func NewFrameLoop(sched Scheduler, step func(), alive func() bool) *FrameLoop {
	return &FrameLoop{sched: sched, step: step, alive: alive}
}

// Start queues the first frame.
func (l *FrameLoop) Start() {
	if l == nil || l.done || l.cancel != nil {
		return
	}
	l.next()
}

func (l *FrameLoop) running() bool {
	return !l.done && (l.alive == nil || l.alive())
}

func (l *FrameLoop) next() {
	if l.sched == nil || !l.running() {
		return
	}
	l.cancel = l.sched.Schedule(l.run)
}

func (l *FrameLoop) run() {
	l.cancel = nil
	if !l.running() {
		return
	}
	if l.step != nil {
		l.step()
	}
	l.frames++
	l.next()
}

// Stop prevents further frames and drops the pending one. Idempotent.
func (l *FrameLoop) Stop() {
	if l == nil || l.done {
		return
	}
	l.done = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Frames reports how many frames have run.
func (l *FrameLoop) Frames() uint64 {
	if l == nil {
		return 0
	}
	return l.frames
}

// Running reports whether another frame may still be scheduled.
func (l *FrameLoop) Running() bool { return l != nil && l.running() }
