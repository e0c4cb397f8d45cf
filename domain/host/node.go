package host

import (
	"strconv"
	"strings"
)

// WidgetKind distinguishes the widget flavours the editor exposes.
type WidgetKind string

const (
	WidgetNumber WidgetKind = "number"
	WidgetText   WidgetKind = "text"
	WidgetButton WidgetKind = "button"
)

// Widget is a named, user-editable value on a node.
type Widget struct {
	Name     string
	Kind     WidgetKind
	Value    any
	Callback func() // buttons only
}

// Input is a named input slot. Link is zero when the slot is unconnected.
type Input struct {
	Name string
	Type string
	Link int
}

// WidgetChangedFunc is invoked once per widget write-back.
type WidgetChangedFunc func(name string, value any, w *Widget)

// Node is the in-process model of an editor node: a property bag, widgets and
// input slots. It is mutated only from the UI goroutine.
type Node struct {
	ID         int
	Class      string
	Properties map[string]any
	Widgets    []*Widget
	Inputs     []Input

	// OnWidgetChanged is the host side-effect channel for widget writes.
	OnWidgetChanged WidgetChangedFunc

	dirty bool
}

// NewNode returns a node with an empty property bag.
func NewNode(id int, class string) *Node {
	return &Node{ID: id, Class: class, Properties: map[string]any{}}
}

// AddWidget appends a widget and returns it.
func (n *Node) AddWidget(kind WidgetKind, name string, value any, cb func()) *Widget {
	w := &Widget{Name: name, Kind: kind, Value: value, Callback: cb}
	n.Widgets = append(n.Widgets, w)
	return w
}

// Widget returns the widget called name, or nil.
func (n *Node) Widget(name string) *Widget {
	if n == nil {
		return nil
	}
	for _, w := range n.Widgets {
		if w.Name == name {
			return w
		}
	}
	return nil
}

// AddInput appends an unconnected input slot.
func (n *Node) AddInput(name, typ string) {
	n.Inputs = append(n.Inputs, Input{Name: name, Type: typ})
}

// Input returns the input slot called name.
func (n *Node) Input(name string) (Input, bool) {
	if n == nil {
		return Input{}, false
	}
	for _, in := range n.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

func (n *Node) setLink(name string, link int) bool {
	for i := range n.Inputs {
		if n.Inputs[i].Name == name {
			n.Inputs[i].Link = link
			return true
		}
	}
	return false
}

// Property returns a numeric property. Strings holding numbers are accepted,
// matching how the editor coerces stored values.
func (n *Node) Property(name string) (float64, bool) {
	if n == nil || n.Properties == nil {
		return 0, false
	}
	v, ok := n.Properties[name]
	if !ok || v == nil {
		return 0, false
	}
	return toFloat(v)
}

// SetWidget writes value into the widget called name (invoking the change
// hook) and into the property bag under the same name.
func (n *Node) SetWidget(name string, value any) {
	if n == nil {
		return
	}
	if w := n.Widget(name); w != nil {
		w.Value = value
		if n.OnWidgetChanged != nil {
			n.OnWidgetChanged(name, value, w)
		}
	}
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	n.Properties[name] = value
	n.SetDirtyCanvas()
}

// SetDirtyCanvas asks the host to redraw the node.
func (n *Node) SetDirtyCanvas() {
	if n != nil {
		n.dirty = true
	}
}

// Dirty reports whether the node needs a redraw.
func (n *Node) Dirty() bool { return n != nil && n.dirty }

// ClearDirty acknowledges a redraw.
func (n *Node) ClearDirty() {
	if n != nil {
		n.dirty = false
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
