// Package platform probes the desktop the overlay runs on: screen size for
// the viewport fit, screen grabs as an image source and DPI awareness.
package platform

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/rect-select-go/domain/source"
)

// Fallback screen size used when the display cannot be queried.
const (
	FallbackScreenW = 1920
	FallbackScreenH = 1080
)

var ErrNoScreen = errors.New("screen unavailable")

// ScreenSize returns the size of the active monitor, or the fallback size and
// an error when it cannot be determined.
func ScreenSize() (w, h int, err error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return FallbackScreenW, FallbackScreenH, fmt.Errorf("%w: %v", ErrNoScreen, err)
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return FallbackScreenW, FallbackScreenH, ErrNoScreen
	}
	return r.Dx(), r.Dy(), nil
}

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoScreen, err)
	}
	return img, nil
}

// ScreenLoader serves a fresh screen capture for any URL, letting the overlay
// select a region of the desktop instead of an upstream image.
type ScreenLoader struct {
	grab func() (*image.RGBA, error)
}

// NewScreenLoader returns a loader backed by Grab.
func NewScreenLoader() *ScreenLoader { return &ScreenLoader{grab: Grab} }

// Load captures the screen on a goroutine and resolves the future with it.
func (l *ScreenLoader) Load(ctx context.Context, _ string) *source.Future {
	f, resolve := source.Pending()
	go func() {
		img, err := l.grab()
		if err != nil {
			resolve(source.Result{Err: fmt.Errorf("%w: %v", source.ErrImageLoad, err)})
			return
		}
		if ctx.Err() != nil {
			resolve(source.Result{Err: ctx.Err()})
			return
		}
		resolve(source.Result{Image: img})
	}()
	return f
}
