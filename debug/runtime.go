package debug

// Runtime metrics logger. Started only when config.Debug is true.
// Emits goroutine count, stack and heap usage plus process RSS where the
// platform exposes it, so a leaking overlay session shows up as growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// Sample is one reading of the runtime counters.
type Sample struct {
	Goroutines uint64
	StackInuse uint64
	HeapAlloc  uint64
	HeapInuse  uint64
	NumGC      uint32
	RSS        uint64 // zero when unavailable
}

// Read takes a Sample now.
func Read() Sample {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Sample{
		StackInuse: ms.StackInuse,
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		NumGC:      ms.NumGC,
	}
	if samples[0].Value.Kind() == metrics.KindUint64 {
		s.Goroutines = samples[0].Value.Uint64()
	} else {
		s.Goroutines = uint64(runtime.NumGoroutine())
	}
	if rss, err := processRSS(); err == nil {
		s.RSS = rss
	}
	return s
}

// StartRuntimeLogger launches a ticker that logs a Sample every interval
// until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			s := Read()
			logger.Info("runtime-stats",
				slog.Uint64("goroutines", s.Goroutines),
				slog.Uint64("stack_inuse", s.StackInuse),
				slog.Uint64("heap_alloc", s.HeapAlloc),
				slog.Uint64("heap_inuse", s.HeapInuse),
				slog.Uint64("num_gc", uint64(s.NumGC)),
				slog.Uint64("rss", s.RSS),
			)
		}
	}()
}
