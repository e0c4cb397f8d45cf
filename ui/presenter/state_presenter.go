package presenter

import (
	"time"

	"github.com/soocke/rect-select-go/domain/selection"
)

// StateView sets the status label in the view.
type StateView interface{ SetStatus(string) }

// StatePresenter receives session state transitions and reflects the latest
// one in the view on the next Tick.
type StatePresenter struct {
	view    StateView
	latest  selection.State
	shown   bool
	pending []selection.State
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnState queues a transitioned state. It has the selection.StateListener
// signature so it can be registered directly.
func (p *StatePresenter) OnState(_, next selection.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick processes queued states and updates the view with the most recent state.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if p.shown && last == p.latest {
		return
	}
	p.latest, p.shown = last, true
	p.view.SetStatus("Selection: " + last.String())
}
