package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/rect-select-go/config"
	"github.com/soocke/rect-select-go/debug"
	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/domain/selection"
	"github.com/soocke/rect-select-go/domain/source"
	"github.com/soocke/rect-select-go/platform"
	"github.com/soocke/rect-select-go/ui/presenter"
	"github.com/soocke/rect-select-go/ui/theme"
	"github.com/soocke/rect-select-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tick           = 100 * time.Millisecond
	statsInterval  = 30 * time.Second
	exitOnCommitIn = 400 * time.Millisecond
)

type app struct {
	c       *AppContainer
	cancel  context.CancelFunc
	afterID string
	done    bool
}

// Run builds the main window and blocks in the Tk event loop until the user
// exits. It returns the last committed rectangle, if any.
func Run(ctx context.Context, cfg *config.Config, cfgPath string, opts Options, logger *slog.Logger) (rect.Rect, bool, error) {
	if platform.EnableDPIAwareness() {
		logger.Debug("dpi awareness enabled")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c, err := BuildContainer(ctx, cfg, logger, cfgPath, opts)
	if err != nil {
		return rect.Rect{}, false, err
	}
	a := &app{c: c, cancel: cancel}

	if opts.Dark {
		theme.SetDark(true)
	} else {
		theme.InitStyles()
	}
	c.RootView.Build(view.RootHandlers{
		Open:            c.NodePresenter.OpenSelection,
		ToggleLink:      c.NodePresenter.ToggleLink,
		UpstreamName:    c.NodePresenter.SetUpstreamName,
		Exit:            a.exitHandler,
		SettingsApplied: c.ApplySettings,
	})
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	c.SelectionPresenter.AddStateListener(a.onSelectionState)
	c.Loop = presenter.NewLoop(c.NodePresenter, c.StatePresenter, a.scheduleUpdate)

	if cfg.Debug {
		debug.StartRuntimeLogger(ctx, statsInterval, logger)
	}

	// open straight away when an image was given on the command line
	if opts.Screen || opts.ImageName != "" {
		TclAfter(tick, c.NodePresenter.OpenSelection)
	}
	a.scheduleUpdate()
	App.Wait()

	if sl, ok := c.Loader.(interface{ Stats() source.LoadStats }); ok {
		st := sl.Stats()
		logger.Debug("image loads", "loads", st.Loads, "failures", st.Failures, "avg", st.AvgLoad)
	}
	if l, ok := c.Loader.(*source.HTTPLoader); ok {
		l.Close()
	}
	r, ok := c.Committed()
	return r, ok, nil
}

// onSelectionState locks the settings form while a selection is open and
// ends the run after a commit when asked to.
func (a *app) onSelectionState(_, next selection.State) {
	a.c.RootView.SetConfigEditable(next == selection.StateClosed)
	if next != selection.StateClosed || !a.c.Options.ExitOnCommit {
		return
	}
	// the commit callback runs after the session has closed
	TclAfter(exitOnCommitIn, func() {
		if _, ok := a.c.Committed(); ok {
			a.exitHandler()
		}
	})
}

func (a *app) exitHandler() {
	if a.done {
		return
	}
	a.done = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if s := a.c.SelectionPresenter.Active(); s != nil {
		s.Close()
	}
	a.cancel()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.c.Loop.Tick)
}
