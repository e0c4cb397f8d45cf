package selection

import "testing"

func TestFrameLoop_RunsUntilStopped(t *testing.T) {
	sched := &manualScheduler{}
	steps := 0
	l := NewFrameLoop(sched, func() { steps++ }, nil)
	l.Start()
	l.Start()
	if sched.Pending() != 1 {
		t.Fatalf("start should queue exactly one frame, got %d", sched.Pending())
	}
	for i := 0; i < 3; i++ {
		sched.Step()
	}
	if steps != 3 || l.Frames() != 3 {
		t.Fatalf("steps=%d frames=%d", steps, l.Frames())
	}
	l.Stop()
	l.Stop()
	sched.Step()
	if steps != 3 || l.Running() || sched.Pending() != 0 {
		t.Fatalf("loop kept running after stop")
	}
}

func TestFrameLoop_AlivePredicate(t *testing.T) {
	sched := &manualScheduler{}
	alive := true
	steps := 0
	l := NewFrameLoop(sched, func() {
		steps++
		alive = false
	}, func() bool { return alive })
	l.Start()
	sched.Step()
	sched.Step()
	if steps != 1 || sched.Pending() != 0 {
		t.Fatalf("loop should not reschedule once dead: steps=%d pending=%d", steps, sched.Pending())
	}
}

func TestFrameLoop_NilSafe(t *testing.T) {
	var l *FrameLoop
	l.Start()
	l.Stop()
	if l.Running() || l.Frames() != 0 {
		t.Fatalf("nil loop should be inert")
	}
	NewFrameLoop(nil, nil, nil).Start()
}
