package selection

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/soocke/rect-select-go/domain/source"
)

// State enumerates the lifecycle of a selection session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateDragging
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDragging:
		return "dragging"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	ErrNoImageSource  = errors.New("no upstream image connected")
	ErrImageLoad      = errors.New("could not load upstream image")
	ErrEmptySelection = errors.New("no region selected")
	ErrNotReady       = errors.New("session not ready")
	ErrClosed         = errors.New("session closed")
)

// User-facing notices.
const (
	NoticeNoImage    = "Rect / Select: connect an image to the 'image' input."
	NoticeLoadFailed = "Rect / Select: could not load upstream image."
	NoticeEmpty      = "Draw a rectangle first."
	PromptDraw       = "Drag to draw a rectangle."
)

// HostNode is the slice of the editor node the session reads and writes.
type HostNode interface {
	Property(name string) (float64, bool)
	SetWidget(name string, value any)
	SetDirtyCanvas()
}

// UpstreamResolver finds the image name feeding the node, if any.
type UpstreamResolver func(node HostNode) (string, bool)

// ImageLoader starts an asynchronous load of a resolved URL.
type ImageLoader interface {
	Load(ctx context.Context, rawURL string) *source.Future
}

// Scheduler runs fn once on the UI loop at the next display refresh. The
// returned cancel func drops fn if it has not run yet.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// Notifier surfaces transient user-facing notices.
type Notifier interface {
	Notify(text string)
}

// Canvas is the minimal 2D drawing capability the session paints through.
type Canvas interface {
	Resize(w, h int)
	FillRect(r image.Rectangle, c color.Color)
	DrawImage(img image.Image, w, h int)
	// StrokeDashedRect outlines r with dash-long segments separated by
	// dash-long gaps; phase shifts the pattern along the path.
	StrokeDashedRect(r image.Rectangle, dash, phase, lineWidth int, c color.Color)
}

// View is the non-canvas surface of the overlay.
type View interface {
	SetReadout(text string)
	SetApplyEnabled(enabled bool)
	// Present flushes the painted canvas to the screen.
	Present()
	Close()
}

// Surface bundles the drawing target and the chrome around it.
type Surface struct {
	Canvas Canvas
	View   View
}

// SurfaceFactory builds the overlay for a session that has passed its
// precondition check. It is never called when no upstream image resolves.
type SurfaceFactory func(s *Session) Surface

// Viewport is the available display area for the canvas.
type Viewport struct {
	MaxW, MaxH float64
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// Rendering constants.
const (
	AntsPeriod    = 16
	AntsDash      = 8
	AntsLineWidth = 2
)

var (
	ColorBackground = color.RGBA{0x33, 0x33, 0x33, 0xff}
	ColorAntsLight  = color.White
	ColorAntsDark   = color.Black
)
