package source

import (
	"context"
	"image"
)

// Result is the outcome of an image load: either Image is set (loaded) or Err
// is set (failed).
type Result struct {
	Image image.Image
	Err   error
}

// Loaded reports whether the result carries a decoded image.
func (r Result) Loaded() bool { return r.Err == nil && r.Image != nil }

// Size returns the natural dimensions of the loaded image.
func (r Result) Size() (w, h int) {
	if r.Image == nil {
		return 0, 0
	}
	b := r.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Future delivers a single Result. It has exactly one consumer: either the UI
// loop polling with Poll or a blocking caller using Wait.
type Future struct {
	ch   chan Result
	res  Result
	done bool
}

func newFuture() *Future { return &Future{ch: make(chan Result, 1)} }

// resolve publishes the result. Only the first call has an effect.
func (f *Future) resolve(r Result) {
	select {
	case f.ch <- r:
	default:
	}
}

// Resolved returns a future already completed with img.
func Resolved(img image.Image) *Future {
	f := newFuture()
	f.resolve(Result{Image: img})
	return f
}

// Failed returns a future already completed with err.
func Failed(err error) *Future {
	f := newFuture()
	f.resolve(Result{Err: err})
	return f
}

// Pending returns an unresolved future together with its completion func.
// Useful for callers driving the load themselves (tests, custom loaders).
func Pending() (*Future, func(Result)) {
	f := newFuture()
	return f, f.resolve
}

// Poll returns the result without blocking. ok is false while pending.
func (f *Future) Poll() (Result, bool) {
	if f == nil {
		return Result{}, false
	}
	if f.done {
		return f.res, true
	}
	select {
	case r := <-f.ch:
		f.res, f.done = r, true
		return r, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the result is available or ctx is done.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	if f.done {
		return f.res, nil
	}
	select {
	case r := <-f.ch:
		f.res, f.done = r, true
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
