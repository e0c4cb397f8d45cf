package presenter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soocke/rect-select-go/config"
	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/domain/selection"
)

// OverlayInput is what the overlay window forwards user input to.
type OverlayInput interface {
	Press(x, y int)
	Move(x, y int)
	Release()
	Apply()
	Close()
	Resize(w, h int)
}

// OverlayFactory creates the overlay window wired to in.
type OverlayFactory func(in OverlayInput) selection.Surface

// SelectionPresenter owns at most one live selection session and routes
// overlay input to it.
type SelectionPresenter struct {
	ctx        context.Context
	cfg        *config.Config
	logger     *slog.Logger
	deps       selection.Deps
	newOverlay OverlayFactory
	screen     func() (w, h int)
	listeners  []selection.StateListener
	onCommit   func(r rect.Rect, imgW, imgH int)

	active *selection.Session
}

// NewSelectionPresenter returns a presenter. deps.Surface is replaced by one
// built from newOverlay; screen reports the area available to the overlay.
func NewSelectionPresenter(ctx context.Context, cfg *config.Config, deps selection.Deps, newOverlay OverlayFactory, screen func() (int, int), logger *slog.Logger) *SelectionPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SelectionPresenter{ctx: ctx, cfg: cfg, deps: deps, newOverlay: newOverlay, screen: screen, logger: logger}
}

// OnCommit registers fn to receive every committed image-space rectangle
// together with the natural size of the image it was drawn on.
func (p *SelectionPresenter) OnCommit(fn func(r rect.Rect, imgW, imgH int)) { p.onCommit = fn }

// SetBaseURL changes the server later sessions load from.
func (p *SelectionPresenter) SetBaseURL(u string) { p.deps.BaseURL = u }

// AddStateListener registers l on every session opened from now on.
func (p *SelectionPresenter) AddStateListener(l selection.StateListener) {
	if l != nil {
		p.listeners = append(p.listeners, l)
	}
}

// Active returns the live session, if any.
func (p *SelectionPresenter) Active() *selection.Session {
	if p == nil || p.active == nil || !p.active.Active() {
		return nil
	}
	return p.active
}

// Viewport converts an available area into canvas limits.
func (p *SelectionPresenter) Viewport(w, h int) selection.Viewport {
	maxW, maxH := p.cfg.Viewport(w, h)
	return selection.Viewport{MaxW: maxW, MaxH: maxH}
}

// Open starts a selection for node. A session already on screen is closed
// first. ErrNoImageSource is returned when the node has no upstream image.
func (p *SelectionPresenter) Open(node selection.HostNode) error {
	if p == nil {
		return nil
	}
	if s := p.Active(); s != nil {
		s.Close()
	}
	w, h := 0, 0
	if p.screen != nil {
		w, h = p.screen()
	}
	deps := p.deps
	if p.newOverlay != nil {
		deps.Surface = func(*selection.Session) selection.Surface { return p.newOverlay(p) }
	}
	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := selection.Open(ctx, node, p.Viewport(w, h), deps)
	if err != nil {
		if p.logger != nil && !errors.Is(err, selection.ErrNoImageSource) {
			p.logger.Error("selection open failed", "error", err)
		}
		return err
	}
	for _, l := range p.listeners {
		s.AddListener(l)
		l(selection.StateIdle, s.State())
	}
	s.AddListener(func(_, next selection.State) {
		if next == selection.StateClosed && p.active == s {
			p.active = nil
		}
	})
	p.active = s
	return nil
}

func (p *SelectionPresenter) Press(x, y int) {
	if s := p.Active(); s != nil {
		s.Press(x, y)
	}
}

func (p *SelectionPresenter) Move(x, y int) {
	if s := p.Active(); s != nil {
		s.Move(x, y)
	}
}

func (p *SelectionPresenter) Release() {
	if s := p.Active(); s != nil {
		s.Release()
	}
}

// Apply commits the current selection. Empty selections are reported to the
// user by the session and leave the overlay open.
func (p *SelectionPresenter) Apply() {
	s := p.Active()
	if s == nil {
		return
	}
	w, h := s.ImageSize()
	r, err := s.Commit()
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("commit rejected", "error", err)
		}
		return
	}
	if p.onCommit != nil {
		p.onCommit(r, w, h)
	}
}

// Close discards the selection without writing to the host.
func (p *SelectionPresenter) Close() {
	if s := p.Active(); s != nil {
		s.Close()
	}
}

// Resize refits the canvas to an overlay of w x h.
func (p *SelectionPresenter) Resize(w, h int) {
	if s := p.Active(); s != nil {
		s.Resize(p.Viewport(w, h))
	}
}

var _ OverlayInput = (*SelectionPresenter)(nil)
