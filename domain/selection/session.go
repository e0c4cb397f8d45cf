package selection

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/domain/source"
)

// Deps are the collaborators injected into a session.
type Deps struct {
	Resolve   UpstreamResolver
	Loader    ImageLoader
	Scheduler Scheduler
	Notifier  Notifier
	Surface   SurfaceFactory
	BaseURL   string
	Logger    *slog.Logger
}

// Session is one interactive rectangle selection over one upstream image.
// All methods must be called from the UI goroutine.
type Session struct {
	id     string
	node   HostNode
	deps   Deps
	logger *slog.Logger
	state  State

	ctx    context.Context
	cancel context.CancelFunc

	url     string
	pending *source.Future
	img     image.Image
	imgW    int
	imgH    int

	viewport Viewport
	fit      rect.Fit

	// drag endpoints in display space; the selection is their normalization
	start   image.Point
	current image.Point

	ants      int
	canvas    Canvas
	view      View
	loop      *FrameLoop
	listeners []StateListener
	committed *rect.Rect
}

// Open resolves the node's upstream image and starts loading it. When no
// upstream image resolves the user is notified and no session is created.
func Open(ctx context.Context, node HostNode, vp Viewport, deps Deps) (*Session, error) {
	var name string
	ok := false
	if deps.Resolve != nil {
		name, ok = deps.Resolve(node)
	}
	if !ok {
		notify(deps.Notifier, NoticeNoImage)
		if deps.Logger != nil {
			deps.Logger.Info("selection not opened", "reason", ErrNoImageSource)
		}
		return nil, ErrNoImageSource
	}
	u, err := source.ViewURL(deps.BaseURL, name)
	if err != nil {
		notify(deps.Notifier, NoticeLoadFailed)
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	s := &Session{id: uuid.NewString(), node: node, deps: deps, url: u, viewport: vp, state: StateIdle}
	if deps.Logger != nil {
		s.logger = deps.Logger.With("session_id", s.id)
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	if deps.Surface != nil {
		surf := deps.Surface(s)
		s.canvas, s.view = surf.Canvas, surf.View
	}

	s.transition(StateLoading)
	if s.view != nil {
		s.view.SetApplyEnabled(false)
	}
	if deps.Loader != nil {
		s.pending = deps.Loader.Load(s.ctx, u)
	} else {
		s.pending = source.Failed(ErrImageLoad)
	}
	if s.logger != nil {
		s.logger.Info("selection opened", "image", name, "url", u)
	}
	s.paint()
	s.loop = NewFrameLoop(deps.Scheduler, s.Frame, s.Active)
	s.loop.Start()
	return s, nil
}

func notify(n Notifier, text string) {
	if n != nil {
		n.Notify(text)
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Active reports whether the session has not been closed.
func (s *Session) Active() bool { return s.state != StateClosed }

// URL returns the resolved image URL.
func (s *Session) URL() string { return s.url }

// Fit returns the current viewport fit (zero while loading).
func (s *Session) Fit() rect.Fit { return s.fit }

// ImageSize returns the natural size of the loaded image.
func (s *Session) ImageSize() (w, h int) { return s.imgW, s.imgH }

// AntsOffset returns the current marching-ants phase counter.
func (s *Session) AntsOffset() int { return s.ants }

// Frames returns how many frames the render loop has run.
func (s *Session) Frames() uint64 { return s.loop.Frames() }

// AddListener registers l for state transitions.
func (s *Session) AddListener(l StateListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Selection returns the current rectangle in display space. It is Empty
// before the image has loaded or while no area is selected.
func (s *Session) Selection() rect.Rect {
	if !s.loaded() {
		return rect.Rect{}
	}
	return rect.Normalize(s.start, s.current)
}

// ImageSelection maps the current selection into image space (clamped).
func (s *Session) ImageSelection() rect.Rect {
	sel := s.Selection()
	if sel.Empty() {
		return rect.Rect{}
	}
	return rect.ToImage(sel, s.imgW, s.imgH, s.fit.CanvasW, s.fit.CanvasH)
}

// Committed returns the image-space rectangle written to the host, if any.
func (s *Session) Committed() (rect.Rect, bool) {
	if s.committed == nil {
		return rect.Rect{}, false
	}
	return *s.committed, true
}

func (s *Session) loaded() bool { return s.state == StateReady || s.state == StateDragging }

// Frame advances one display refresh: it completes a pending load, moves the
// marching ants and repaints.
func (s *Session) Frame() {
	if !s.Active() {
		return
	}
	s.pollLoad()
	if !s.Active() {
		return
	}
	s.ants = (s.ants + 1) % AntsPeriod
	s.paint()
}

func (s *Session) pollLoad() {
	if s.state != StateLoading || s.pending == nil {
		return
	}
	res, ok := s.pending.Poll()
	if !ok {
		return
	}
	s.pending = nil
	if !res.Loaded() {
		if s.logger != nil {
			s.logger.Error("image load failed", "url", s.url, "error", res.Err)
		}
		notify(s.deps.Notifier, NoticeLoadFailed)
		s.close()
		return
	}
	s.img = res.Image
	s.imgW, s.imgH = res.Size()
	s.fit = rect.FitTo(s.imgW, s.imgH, s.viewport.MaxW, s.viewport.MaxH)
	s.transition(StateReady)
	if s.view != nil {
		s.view.SetApplyEnabled(true)
	}
	s.selectFromNode()
	if s.logger != nil {
		s.logger.Debug("image ready", "width", s.imgW, "height", s.imgH,
			"canvas_w", s.fit.CanvasW, "canvas_h", s.fit.CanvasH, "scale", s.fit.Scale)
	}
}

// selectFromNode derives the initial display rectangle from the host's stored
// rectangle, defaulting to the top-left half of the image.
func (s *Session) selectFromNode() {
	r := rect.Rect{X: 0, Y: 0, W: s.imgW / 2, H: s.imgH / 2}
	dst := [4]*int{&r.X, &r.Y, &r.W, &r.H}
	for i, name := range [4]string{"x", "y", "w", "h"} {
		if v, ok := s.node.Property(name); ok && !math.IsNaN(v) {
			*dst[i] = rect.Round(v)
		}
	}
	r = rect.Clamp(r, s.imgW, s.imgH)
	d := rect.Clamp(rect.ToDisplay(r, s.imgW, s.imgH, s.fit.CanvasW, s.fit.CanvasH), s.fit.CanvasW, s.fit.CanvasH)
	s.start = image.Pt(d.X, d.Y)
	s.current = image.Pt(d.X+d.W, d.Y+d.H)
}

// Press starts a drag gesture at (x, y) in display space. Ignored unless the
// session is Ready and the point lies on the canvas.
func (s *Session) Press(x, y int) {
	if s.state != StateReady {
		return
	}
	if x < 0 || y < 0 || x >= s.fit.CanvasW || y >= s.fit.CanvasH {
		return
	}
	s.start = image.Pt(x, y)
	s.current = s.start
	s.transition(StateDragging)
	s.paint()
}

// Move updates the active gesture. Moves outside a gesture are no-ops.
func (s *Session) Move(x, y int) {
	if s.state != StateDragging {
		return
	}
	s.current = image.Pt(clamp(x, 0, s.fit.CanvasW), clamp(y, 0, s.fit.CanvasH))
	s.paint()
}

// Release ends the active gesture, freezing the rectangle.
func (s *Session) Release() {
	if s.state != StateDragging {
		return
	}
	s.transition(StateReady)
	s.paint()
}

// Resize refits the canvas to vp and re-derives the display rectangle through
// image space so the selected region survives the change.
func (s *Session) Resize(vp Viewport) {
	if !s.Active() {
		return
	}
	s.viewport = vp
	if !s.loaded() {
		return
	}
	prev := s.fit
	next := rect.FitTo(s.imgW, s.imgH, vp.MaxW, vp.MaxH)
	if next == prev {
		return
	}
	sel := rect.Normalize(s.start, s.current)
	s.fit = next
	if sel.Empty() {
		s.start = remap(s.start, prev, next)
		s.current = remap(s.current, prev, next)
	} else {
		img := rect.ToImage(sel, s.imgW, s.imgH, prev.CanvasW, prev.CanvasH)
		d := rect.Clamp(rect.ToDisplay(img, s.imgW, s.imgH, next.CanvasW, next.CanvasH), next.CanvasW, next.CanvasH)
		s.start, s.current = orient(d, s.start, s.current)
	}
	if s.logger != nil {
		s.logger.Debug("viewport refit", "canvas_w", next.CanvasW, "canvas_h", next.CanvasH)
	}
	s.paint()
}

// orient assigns d's corners to the endpoints so a gesture in progress keeps
// its anchor on the same side.
func orient(d rect.Rect, start, current image.Point) (image.Point, image.Point) {
	x0, x1 := d.X, d.X+d.W
	y0, y1 := d.Y, d.Y+d.H
	if start.X > current.X {
		x0, x1 = x1, x0
	}
	if start.Y > current.Y {
		y0, y1 = y1, y0
	}
	return image.Pt(x0, y0), image.Pt(x1, y1)
}

func remap(p image.Point, from, to rect.Fit) image.Point {
	if from.CanvasW == 0 || from.CanvasH == 0 {
		return p
	}
	return image.Pt(
		int(math.Round(float64(p.X)*float64(to.CanvasW)/float64(from.CanvasW))),
		int(math.Round(float64(p.Y)*float64(to.CanvasH)/float64(from.CanvasH))),
	)
}

// Commit writes the selection, mapped to image space, onto the host node and
// closes the session. An empty selection is rejected and leaves the session
// Ready and the host untouched.
func (s *Session) Commit() (rect.Rect, error) {
	switch s.state {
	case StateClosed:
		return rect.Rect{}, ErrClosed
	case StateReady:
	default:
		return rect.Rect{}, ErrNotReady
	}
	sel := s.Selection()
	if sel.Empty() {
		notify(s.deps.Notifier, NoticeEmpty)
		return rect.Rect{}, ErrEmptySelection
	}
	r := rect.ToImage(sel, s.imgW, s.imgH, s.fit.CanvasW, s.fit.CanvasH)
	vals := [4]int{r.X, r.Y, r.W, r.H}
	for i, name := range [4]string{"x", "y", "w", "h"} {
		s.node.SetWidget(name, vals[i])
	}
	s.node.SetDirtyCanvas()
	s.committed = &r
	if s.logger != nil {
		s.logger.Info("selection committed", "x", r.X, "y", r.Y, "w", r.W, "h", r.H)
	}
	s.close()
	return r, nil
}

// Close tears the session down without writing anything. Idempotent.
func (s *Session) Close() { s.close() }

func (s *Session) close() {
	if s.state == StateClosed {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.loop.Stop()
	s.pending = nil
	s.img = nil
	s.start, s.current = image.Point{}, image.Point{}
	s.transition(StateClosed)
	if s.view != nil {
		s.view.Close()
	}
	if s.logger != nil {
		s.logger.Debug("selection closed", "frames", s.loop.Frames())
	}
}

func (s *Session) transition(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	if s.logger != nil {
		s.logger.Debug("selection state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}

func (s *Session) paint() {
	text := ""
	sel := s.Selection()
	if s.loaded() {
		text = PromptDraw
		if !sel.Empty() {
			text = sel.String()
		}
	}
	if s.canvas != nil && !s.fit.Zero() {
		paintFrame(s.canvas, s.img, s.fit, sel, s.ants)
	}
	if s.view != nil {
		s.view.SetReadout(text)
		s.view.Present()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
