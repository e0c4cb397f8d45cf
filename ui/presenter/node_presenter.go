package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/rect-select-go/domain/host"
	"github.com/soocke/rect-select-go/domain/rect"
)

// NodeView shows the RectSelect node panel: its stored rectangle and the
// upstream image it is wired to.
type NodeView interface {
	SetRect(r rect.Rect)
	SetUpstream(name string, connected bool)
}

// NodePresenter mirrors a RectSelect node into the panel and applies panel
// edits to the graph.
type NodePresenter struct {
	graph    *host.Graph
	node     *host.Node
	upstream *host.Node
	view     NodeView
	logger   *slog.Logger

	shown bool
}

func NewNodePresenter(g *host.Graph, node, upstream *host.Node, view NodeView, logger *slog.Logger) *NodePresenter {
	return &NodePresenter{graph: g, node: node, upstream: upstream, view: view, logger: logger}
}

// Tick refreshes the view when the node was redrawn since the last tick.
func (p *NodePresenter) Tick(_ time.Time) {
	if p == nil || p.view == nil || p.node == nil {
		return
	}
	if p.shown && !p.node.Dirty() {
		return
	}
	p.refresh()
	p.node.ClearDirty()
}

func (p *NodePresenter) refresh() {
	r, _ := host.StoredRect(p.node)
	p.view.SetRect(r)
	p.view.SetUpstream(p.UpstreamName(), p.Connected())
	p.shown = true
}

// UpstreamName returns the image name the upstream node currently exposes.
func (p *NodePresenter) UpstreamName() string {
	if p == nil || p.upstream == nil {
		return ""
	}
	if w := p.upstream.Widget("image"); w != nil {
		if s, ok := w.Value.(string); ok {
			return s
		}
	}
	return ""
}

// SetUpstreamName changes the upstream image name.
func (p *NodePresenter) SetUpstreamName(name string) {
	if p == nil || p.upstream == nil || name == p.UpstreamName() {
		return
	}
	p.upstream.SetWidget("image", name)
	p.node.SetDirtyCanvas()
	if p.logger != nil {
		p.logger.Debug("upstream image changed", "image", name)
	}
}

// Connected reports whether the node's image input is linked.
func (p *NodePresenter) Connected() bool {
	if p == nil {
		return false
	}
	in, ok := p.node.Input("image")
	return ok && in.Link != 0
}

// ToggleLink connects the upstream node to the image input, or disconnects it
// when already linked.
func (p *NodePresenter) ToggleLink() {
	if p == nil || p.graph == nil || p.node == nil {
		return
	}
	if p.Connected() {
		p.graph.Disconnect(p.node.ID, "image")
	} else if p.upstream != nil {
		if _, err := p.graph.Connect(p.upstream.ID, p.node.ID, "image"); err != nil {
			if p.logger != nil {
				p.logger.Error("connect failed", "error", err)
			}
			return
		}
	}
	p.node.SetDirtyCanvas()
}

// OpenSelection presses the node's open button.
func (p *NodePresenter) OpenSelection() {
	if p == nil {
		return
	}
	if w := p.node.Widget(host.OpenButtonLabel); w != nil && w.Callback != nil {
		w.Callback()
	}
}
