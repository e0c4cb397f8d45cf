package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/rect-select-go/config"
	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the main window: the RectSelect node panel on top and the
// settings form below. It implements presenter.NodeView and
// presenter.StateView.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	ConfigPanel ConfigPanel

	// Widgets
	StatusLabel   *TLabelWidget
	UpstreamEntry *TextWidget
	linkBtn       *ButtonWidget
	rectLabels    [4]*LabelWidget
}

// RootHandlers are invoked on user actions in the main window.
type RootHandlers struct {
	Open         func()
	ToggleLink   func()
	UpstreamName func(name string)
	Exit         func()
	// SettingsApplied runs after the settings form is saved.
	SettingsApplied func(*config.Config)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h RootHandlers) {
	if rv == nil {
		return
	}
	App.WmTitle("Rect Select")

	// Row 0: status label and buttons frame
	rv.StatusLabel = TLabel(Txt("Selection: idle"), Style(theme.StyleStatusLabel))
	Grid(rv.StatusLabel, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	openBtn := TButton(Txt("Open Rect / Select"), Style(theme.StyleOpenButton), Command(func() { call(h.Open) }))
	Grid(openBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.linkBtn = Button(Txt("Disconnect"), Command(func() { call(h.ToggleLink) }))
	Grid(rv.linkBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(func() { call(h.Exit) }))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: upstream image name, committed on Return or focus loss
	lbl := Label(Txt("Upstream image"), Anchor("w"))
	Grid(lbl, Row(1), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	rv.UpstreamEntry = Text(Height(1), Width(24))
	Grid(rv.UpstreamEntry, Row(1), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	commitName := func() {
		if h.UpstreamName != nil {
			h.UpstreamName(rv.upstreamText())
		}
	}
	Bind(rv.UpstreamEntry, "<Return>", Command(commitName))
	Bind(rv.UpstreamEntry, "<FocusOut>", Command(commitName))

	// Row 2: stored rectangle
	rectFrame := Frame()
	Grid(rectFrame, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	for i, name := range [4]string{"x", "y", "w", "h"} {
		Grid(Label(Txt(name+":"), Anchor("e")), In(rectFrame), Row(0), Column(2*i), Sticky("e"), Padx("0.2m"))
		rv.rectLabels[i] = Label(Txt("0"), Width(6), Anchor("w"), Borderwidth(1), Relief("sunken"))
		Grid(rv.rectLabels[i], In(rectFrame), Row(0), Column(2*i+1), Sticky("w"), Padx("0.2m"))
	}

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.SettingsApplied)
	rv.ConfigPanel.Build(3)
	GridColumnConfigure(App, 1, Weight(1))
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (rv *RootView) upstreamText() string {
	if rv.UpstreamEntry == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(rv.UpstreamEntry.Get("1.0", END), ""))
}

func (rv *RootView) setUpstreamText(s string) {
	if rv.UpstreamEntry == nil {
		return
	}
	rv.UpstreamEntry.Delete("1.0", END)
	rv.UpstreamEntry.Insert("1.0", s)
}

// SetStatus updates the status label text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetRect shows the node's stored rectangle.
func (rv *RootView) SetRect(r rect.Rect) {
	if rv == nil {
		return
	}
	for i, v := range [4]int{r.X, r.Y, r.W, r.H} {
		if rv.rectLabels[i] != nil {
			rv.rectLabels[i].Configure(Txt(strconv.Itoa(v)))
		}
	}
}

// SetUpstream shows the upstream image name and link state.
func (rv *RootView) SetUpstream(name string, connected bool) {
	if rv == nil {
		return
	}
	if rv.upstreamText() != name {
		rv.setUpstreamText(name)
	}
	if rv.linkBtn != nil {
		if connected {
			rv.linkBtn.Configure(Txt("Disconnect"))
		} else {
			rv.linkBtn.Configure(Txt("Connect"))
		}
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}
