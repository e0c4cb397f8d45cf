package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Node     *NodePresenter
	State    *StatePresenter
	Schedule func()
}

func NewLoop(node *NodePresenter, state *StatePresenter, schedule func()) *Loop {
	return &Loop{Node: node, State: state, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Flush pending state changes before the node panel so both reflect the
	// same commit.
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Node != nil {
		l.Node.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
