package view

import (
	"time"

	"github.com/soocke/rect-select-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Toast shows transient notices in a borderless window at the bottom of the
// screen. A new notice replaces the one on screen.
type Toast struct {
	duration time.Duration
	win      *ToplevelWidget
	label    *TLabelWidget
	afterID  string
}

// NewToast returns a notifier whose notices stay visible for d.
func NewToast(d time.Duration) *Toast {
	if d <= 0 {
		d = 1800 * time.Millisecond
	}
	return &Toast{duration: d}
}

// SetDuration changes how long later notices stay visible.
func (t *Toast) SetDuration(d time.Duration) {
	if d > 0 {
		t.duration = d
	}
}

// Notify shows text, replacing any visible notice.
func (t *Toast) Notify(text string) {
	if t.win == nil {
		t.win = App.Toplevel(Background(theme.ColorToastBg))
		WmAttributes(t.win.Window, "-topmost", 1)
		t.label = t.win.TLabel(Style(theme.StyleToastLabel))
		Grid(t.label, Row(0), Column(0))
	}
	t.label.Configure(Txt(text))
	WmGeometry(t.win.Window, toastGeometry())
	if t.afterID != "" {
		TclAfterCancel(t.afterID)
	}
	t.afterID = TclAfter(t.duration, t.hide)
}

func (t *Toast) hide() {
	t.afterID = ""
	if t.win != nil {
		Destroy(t.win)
		t.win, t.label = nil, nil
	}
}

// toastGeometry places the toast centred 64px above the bottom edge.
func toastGeometry() string {
	sw, sh := screenSize()
	return geometry(0, 0, sw/2-160, sh-64-40)
}
