package selection

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/soocke/rect-select-go/domain/source"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// manualScheduler queues callbacks until Step runs them, standing in for the
// display refresh.
type manualScheduler struct {
	queue []*task
}

type task struct {
	fn        func()
	cancelled bool
}

func (m *manualScheduler) Schedule(fn func()) func() {
	t := &task{fn: fn}
	m.queue = append(m.queue, t)
	return func() { t.cancelled = true }
}

// Step runs every callback queued before the call.
func (m *manualScheduler) Step() {
	batch := m.queue
	m.queue = nil
	for _, t := range batch {
		if !t.cancelled {
			t.fn()
		}
	}
}

func (m *manualScheduler) Pending() int {
	n := 0
	for _, t := range m.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type mockNode struct {
	props   map[string]float64
	widgets map[string]any
	dirty   int
}

func newMockNode() *mockNode {
	return &mockNode{props: map[string]float64{}, widgets: map[string]any{}}
}

func (n *mockNode) Property(name string) (float64, bool) {
	v, ok := n.props[name]
	return v, ok
}

func (n *mockNode) SetWidget(name string, value any) { n.widgets[name] = value }
func (n *mockNode) SetDirtyCanvas()                  { n.dirty++ }

type mockNotifier struct{ notes []string }

func (n *mockNotifier) Notify(text string) { n.notes = append(n.notes, text) }

type stroke struct {
	r     image.Rectangle
	dash  int
	phase int
	width int
	c     color.Color
}

type recordCanvas struct {
	w, h    int
	fills   int
	draws   int
	strokes []stroke
}

func (c *recordCanvas) Resize(w, h int)                       { c.w, c.h = w, h }
func (c *recordCanvas) FillRect(image.Rectangle, color.Color) { c.fills++; c.strokes = nil }
func (c *recordCanvas) DrawImage(image.Image, int, int)       { c.draws++ }
func (c *recordCanvas) StrokeDashedRect(r image.Rectangle, dash, phase, lw int, col color.Color) {
	c.strokes = append(c.strokes, stroke{r, dash, phase, lw, col})
}

type mockView struct {
	readout  string
	apply    bool
	presents int
	closed   int
}

func (v *mockView) SetReadout(text string)  { v.readout = text }
func (v *mockView) SetApplyEnabled(b bool) { v.apply = b }
func (v *mockView) Present()               { v.presents++ }
func (v *mockView) Close()                 { v.closed++ }

type stubLoader struct {
	future *source.Future
	urls   []string
}

func (l *stubLoader) Load(_ context.Context, rawURL string) *source.Future {
	l.urls = append(l.urls, rawURL)
	return l.future
}

// harness wires a session to recording fakes.
type harness struct {
	sched    *manualScheduler
	node     *mockNode
	notifier *mockNotifier
	canvas   *recordCanvas
	view     *mockView
	loader   *stubLoader
	surfaces int
	resolved bool
}

func newHarness(f *source.Future) *harness {
	return &harness{
		sched:    &manualScheduler{},
		node:     newMockNode(),
		notifier: &mockNotifier{},
		canvas:   &recordCanvas{},
		view:     &mockView{},
		loader:   &stubLoader{future: f},
		resolved: true,
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Resolve: func(HostNode) (string, bool) {
			if !h.resolved {
				return "", false
			}
			return "photo.png", true
		},
		Loader:    h.loader,
		Scheduler: h.sched,
		Notifier:  h.notifier,
		Surface: func(*Session) Surface {
			h.surfaces++
			return Surface{Canvas: h.canvas, View: h.view}
		},
		BaseURL: "http://127.0.0.1:8188",
		Logger:  discardLogger,
	}
}

func solidImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
