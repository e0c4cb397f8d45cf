package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/rect-select-go/platform"
	"github.com/soocke/rect-select-go/ui/canvas"
	"github.com/soocke/rect-select-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// OverlayHandlers receive user input from the overlay. Coordinates are in
// canvas pixels. Nil handlers are skipped.
type OverlayHandlers struct {
	Press   func(x, y int)
	Move    func(x, y int)
	Release func()
	Apply   func()
	Close   func()
	Resize  func(w, h int)
}

// SelectionOverlay is the modal window holding the selection canvas, the
// coordinate readout and the Apply/Close controls.
type SelectionOverlay struct {
	logger   *slog.Logger
	raster   *canvas.Raster
	handlers OverlayHandlers

	// closeDelay is applied to a close triggered from within Apply
	closeDelay   time.Duration
	pendingDelay time.Duration

	win         *ToplevelWidget
	canvasLabel *LabelWidget
	readout     *TLabelWidget
	applyBtn    *TButtonWidget
	photo       *Img
	winW, winH  int
	closed      bool
}

// NewSelectionOverlay builds and shows the overlay window.
func NewSelectionOverlay(h OverlayHandlers, closeDelay time.Duration, logger *slog.Logger) *SelectionOverlay {
	o := &SelectionOverlay{logger: logger, handlers: h, closeDelay: closeDelay, raster: canvas.New(1, 1)}
	o.build()
	return o
}

// Canvas returns the raster the session paints into.
func (o *SelectionOverlay) Canvas() *canvas.Raster { return o.raster }

func (o *SelectionOverlay) build() {
	win := App.Toplevel(Background(theme.ColorModal), Padx("4m"), Pady("4m"))
	win.WmTitle("Rect / Select")
	o.win = win
	sw, sh := screenSize()
	WmGeometry(win.Window, geometry(sw, sh, 0, 0))
	WmAttributes(win.Window, "-topmost", 1)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", o.onClose)
	GridRowConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))

	// header: title left, Close right
	header := win.Frame(Background(theme.ColorModal))
	Grid(header, Row(0), Column(0), Sticky("we"), Pady("0.3m"))
	GridColumnConfigure(header.Window, 0, Weight(1))
	title := win.TLabel(Txt("Rect / Select"), Style(theme.StyleTitleLabel))
	Grid(title, In(header), Row(0), Column(0), Sticky("w"))
	closeBtn := win.TButton(Txt("Close"), Style(theme.StyleCloseButton), Command(o.onClose))
	Grid(closeBtn, In(header), Row(0), Column(1), Sticky("e"))

	// canvas area
	area := win.Frame(Background(theme.ColorCanvasArea), Padx("2m"), Pady("2m"))
	Grid(area, Row(1), Column(0), Sticky("nsew"))
	o.photo = NewPhoto(Data(o.raster.PNG()))
	o.canvasLabel = win.Label(Image(o.photo), Borderwidth(0), Background(theme.ColorCanvasArea))
	Grid(o.canvasLabel, In(area), Row(0), Column(0))
	Bind(o.canvasLabel, "<ButtonPress-1>", Command(func(e *Event) { o.onPress(e.X, e.Y) }))
	Bind(o.canvasLabel, "<B1-Motion>", Command(func(e *Event) { o.onMove(e.X, e.Y) }))
	Bind(o.canvasLabel, "<ButtonRelease-1>", Command(o.onRelease))

	// footer: readout left, Apply right
	footer := win.Frame(Background(theme.ColorModal))
	Grid(footer, Row(2), Column(0), Sticky("we"), Pady("0.3m"))
	GridColumnConfigure(footer.Window, 0, Weight(1))
	o.readout = win.TLabel(Txt(""), Style(theme.StyleReadoutLabel))
	Grid(o.readout, In(footer), Row(0), Column(0), Sticky("w"))
	o.applyBtn = win.TButton(Txt("Apply Rect"), Style(theme.StyleApplyButton), Command(o.onApply))
	Grid(o.applyBtn, In(footer), Row(0), Column(1), Sticky("e"))
	o.applyBtn.Configure(State("disabled"))

	Bind(win, "<Return>", Command(o.onApply))
	Bind(win, "<Escape>", Command(o.onClose))
	Bind(win, "<Configure>", Command(o.onConfigure))
}

func (o *SelectionOverlay) onPress(x, y int) {
	if !o.closed && o.handlers.Press != nil {
		o.handlers.Press(x, y)
	}
}

func (o *SelectionOverlay) onMove(x, y int) {
	if !o.closed && o.handlers.Move != nil {
		o.handlers.Move(x, y)
	}
}

func (o *SelectionOverlay) onRelease() {
	if !o.closed && o.handlers.Release != nil {
		o.handlers.Release()
	}
}

func (o *SelectionOverlay) onApply() {
	if o.closed || o.handlers.Apply == nil {
		return
	}
	o.pendingDelay = o.closeDelay
	o.handlers.Apply()
	o.pendingDelay = 0
}

func (o *SelectionOverlay) onClose() {
	if o.closed {
		return
	}
	if o.handlers.Close != nil {
		o.handlers.Close()
	}
	o.Close()
}

// onConfigure reports window size changes. Child widgets also deliver
// <Configure> through the toplevel tag, so the size is read from the window
// geometry and only changes are forwarded.
func (o *SelectionOverlay) onConfigure() {
	if o.closed || o.win == nil {
		return
	}
	r, ok := parseGeometry(WmGeometry(o.win.Window))
	if !ok || (r.Dx() == o.winW && r.Dy() == o.winH) {
		return
	}
	o.winW, o.winH = r.Dx(), r.Dy()
	if o.handlers.Resize != nil {
		o.handlers.Resize(o.winW, o.winH)
	}
}

func (o *SelectionOverlay) SetReadout(text string) {
	if o.readout != nil && !o.closed {
		o.readout.Configure(Txt(text))
	}
}

func (o *SelectionOverlay) SetApplyEnabled(enabled bool) {
	if o.applyBtn == nil || o.closed {
		return
	}
	if enabled {
		o.applyBtn.Configure(State("normal"))
	} else {
		o.applyBtn.Configure(State("disabled"))
	}
}

// Present swaps the label's photo for the current raster frame.
func (o *SelectionOverlay) Present() {
	if o.canvasLabel == nil || o.closed {
		return
	}
	next := NewPhoto(Data(o.raster.PNG()))
	o.canvasLabel.Configure(Image(next))
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if o.photo != nil {
		o.photo.Delete()
	}
	o.photo = next
}

// Close destroys the window. When called from an Apply handler the window
// lingers for the configured close delay first.
func (o *SelectionOverlay) Close() {
	if o.closed {
		return
	}
	o.closed = true
	if o.pendingDelay > 0 {
		TclAfter(o.pendingDelay, o.destroy)
		return
	}
	o.destroy()
}

func (o *SelectionOverlay) destroy() {
	if o.win != nil {
		Destroy(o.win)
		o.win = nil
	}
	if o.photo != nil {
		o.photo.Delete()
		o.photo = nil
	}
	if o.logger != nil {
		o.logger.Debug("overlay destroyed")
	}
}

// screenSize returns the active monitor size, or a 1920x1080 fallback.
func screenSize() (int, int) {
	w, h, _ := platform.ScreenSize()
	return w, h
}

// geometry formats a Tk geometry string; zero w/h leaves the size alone.
func geometry(w, h, x, y int) string {
	if w <= 0 || h <= 0 {
		return fmt.Sprintf("+%d+%d", x, y)
	}
	return fmt.Sprintf("%dx%d+%d+%d", w, h, x, y)
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
