package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/rect-select-go/config"
	"github.com/soocke/rect-select-go/domain/host"
	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/domain/selection"
	"github.com/soocke/rect-select-go/domain/source"
	"github.com/soocke/rect-select-go/platform"
	"github.com/soocke/rect-select-go/ui/presenter"
	"github.com/soocke/rect-select-go/ui/view"
)

// ScreenImageName is the upstream name shown when selecting over the desktop.
const ScreenImageName = "screen.png"

// Options choose where upstream images come from.
type Options struct {
	// ImageName is the initial value of the upstream node's "image" widget.
	ImageName string
	// ImageDir serves images from a local directory instead of the server.
	ImageDir string
	// Screen selects over a fresh desktop capture.
	Screen bool
	// ExitOnCommit quits the application after the first committed selection.
	ExitOnCommit bool
	Dark         bool
}

// AppContainer assembles the host graph, services, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	CfgPath string
	Logger  *slog.Logger
	Options Options

	Graph    *host.Graph
	Node     *host.Node
	Upstream *host.Node

	Loader   selection.ImageLoader
	Toast    *view.Toast
	Frames   *view.FrameScheduler
	RootView *view.RootView

	// Presenters
	SelectionPresenter *presenter.SelectionPresenter
	NodePresenter      *presenter.NodePresenter
	StatePresenter     *presenter.StatePresenter
	Loop               *presenter.Loop

	committed *rect.Rect
}

// BuildContainer constructs all components. No window is created here.
func BuildContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, cfgPath string, opts Options) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger, Options: opts}

	loader, err := newLoader(cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	c.Loader = loader

	name := opts.ImageName
	if opts.Screen && name == "" {
		name = ScreenImageName
	}
	c.Graph = host.NewGraph()
	c.Upstream = host.NewLoadImageNode(1, name)
	c.Node = host.NewRectSelectNode(2)
	c.Node.SetWidget("w", cfg.DefaultRectW)
	c.Node.SetWidget("h", cfg.DefaultRectH)
	if err := errors.Join(c.Graph.AddNode(c.Upstream), c.Graph.AddNode(c.Node)); err != nil {
		return nil, err
	}
	if name != "" {
		if _, err := c.Graph.Connect(c.Upstream.ID, c.Node.ID, "image"); err != nil {
			return nil, err
		}
	}
	c.Node.OnWidgetChanged = func(name string, value any, _ *host.Widget) {
		logger.Debug("widget changed", "node", c.Node.ID, "widget", name, "value", value)
	}

	c.Toast = view.NewToast(time.Duration(cfg.ToastMillis) * time.Millisecond)
	c.Frames = view.NewFrameScheduler(time.Duration(cfg.FrameIntervalMillis) * time.Millisecond)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	deps := selection.Deps{
		Resolve:   c.resolve,
		Loader:    c.Loader,
		Scheduler: c.Frames,
		Notifier:  c.Toast,
		BaseURL:   cfg.ServerURL,
		Logger:    logger,
	}
	c.SelectionPresenter = presenter.NewSelectionPresenter(ctx, cfg, deps, c.newOverlay, screenSize, logger)
	c.SelectionPresenter.OnCommit(c.onCommit)
	c.StatePresenter = presenter.NewStatePresenter(c.RootView)
	c.SelectionPresenter.AddStateListener(c.StatePresenter.OnState)
	c.NodePresenter = presenter.NewNodePresenter(c.Graph, c.Node, c.Upstream, c.RootView, logger)

	host.AttachOpenButton(c.Node, func(n *host.Node) {
		_ = c.SelectionPresenter.Open(n)
	})
	return c, nil
}

func newLoader(cfg *config.Config, opts Options, logger *slog.Logger) (selection.ImageLoader, error) {
	switch {
	case opts.Screen:
		return platform.NewScreenLoader(), nil
	case opts.ImageDir != "":
		if fi, err := os.Stat(opts.ImageDir); err != nil {
			return nil, err
		} else if !fi.IsDir() {
			return nil, fmt.Errorf("%s: not a directory", opts.ImageDir)
		}
		return source.NewDirLoader(opts.ImageDir, logger), nil
	default:
		return source.NewHTTPLoader(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, logger), nil
	}
}

// resolve follows the node's image input through the graph.
func (c *AppContainer) resolve(n selection.HostNode) (string, bool) {
	hn, ok := n.(*host.Node)
	if !ok {
		return "", false
	}
	return c.Graph.ResolveUpstreamImageName(hn)
}

func (c *AppContainer) newOverlay(in presenter.OverlayInput) selection.Surface {
	o := view.NewSelectionOverlay(view.OverlayHandlers{
		Press:   in.Press,
		Move:    in.Move,
		Release: in.Release,
		Apply:   in.Apply,
		Close:   in.Close,
		Resize:  in.Resize,
	}, time.Duration(c.Config.CloseDelayMillis)*time.Millisecond, c.Logger)
	return selection.Surface{Canvas: o.Canvas(), View: o}
}

func (c *AppContainer) onCommit(r rect.Rect, imgW, imgH int) {
	c.committed = &r
	out := host.Run(c.Node, imgW, imgH)
	c.Logger.Info("rect committed", "rect", out.Rect, "image_w", imgW, "image_h", imgH)
}

// Committed returns the last committed image-space rectangle.
func (c *AppContainer) Committed() (rect.Rect, bool) {
	if c.committed == nil {
		return rect.Rect{}, false
	}
	return *c.committed, true
}

// ApplySettings pushes edited settings into the running services.
func (c *AppContainer) ApplySettings(cfg *config.Config) {
	c.Toast.SetDuration(time.Duration(cfg.ToastMillis) * time.Millisecond)
	c.Frames.Interval = time.Duration(cfg.FrameIntervalMillis) * time.Millisecond
	c.SelectionPresenter.SetBaseURL(cfg.ServerURL)
	// the HTTP timeout is fixed for the loader's lifetime
	c.Logger.Info("settings applied")
}

func screenSize() (int, int) {
	w, h, _ := platform.ScreenSize()
	return w, h
}
