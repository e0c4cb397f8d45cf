package host

import "github.com/soocke/rect-select-go/domain/rect"

const (
	// RectSelectClass is the node class that carries the selection button.
	RectSelectClass = "RectSelect"
	// LoadImageClass is the upstream node class exposing an "image" name.
	LoadImageClass = "LoadImage"
	// OpenButtonLabel is the caption of the button attached to RectSelect nodes.
	OpenButtonLabel = "Open Rect / Select"

	DefaultRectW = 256
	DefaultRectH = 256
)

// RectFields lists the property names the selection writes back, in order.
var RectFields = [4]string{"x", "y", "w", "h"}

// NewRectSelectNode builds a RectSelect node: an IMAGE input, the four int
// widgets and the default property values 0,0,256,256.
func NewRectSelectNode(id int) *Node {
	n := NewNode(id, RectSelectClass)
	n.AddInput("image", "IMAGE")
	defaults := [4]int{0, 0, DefaultRectW, DefaultRectH}
	for i, name := range RectFields {
		n.AddWidget(WidgetNumber, name, defaults[i], nil)
		n.Properties[name] = defaults[i]
	}
	return n
}

// AttachOpenButton adds the open button to a RectSelect node exactly once.
// It reports whether a button was added.
func AttachOpenButton(n *Node, onOpen func(*Node)) bool {
	if n == nil || n.Class != RectSelectClass {
		return false
	}
	if n.Widget(OpenButtonLabel) != nil {
		return false
	}
	n.AddWidget(WidgetButton, OpenButtonLabel, "open", func() {
		if onOpen != nil {
			onOpen(n)
		}
	})
	for i, name := range RectFields {
		if _, ok := n.Properties[name]; !ok {
			n.Properties[name] = [4]int{0, 0, DefaultRectW, DefaultRectH}[i]
		}
	}
	return true
}

// NewLoadImageNode builds an upstream node whose "image" widget holds name.
func NewLoadImageNode(id int, name string) *Node {
	n := NewNode(id, LoadImageClass)
	n.AddWidget(WidgetText, "image", name, nil)
	return n
}

// StoredRect reads x,y,w,h from the property bag. ok is false for any field
// that is missing; those fields are left zero.
func StoredRect(n *Node) (r rect.Rect, ok [4]bool) {
	dst := [4]*int{&r.X, &r.Y, &r.W, &r.H}
	for i, name := range RectFields {
		if v, has := n.Property(name); has {
			*dst[i] = rect.Round(v)
			ok[i] = true
		}
	}
	return r, ok
}

// RectOutput is what a RectSelect node evaluates to: the clamped rectangle as
// a RECT mapping plus the four ints.
type RectOutput struct {
	Rect       map[string]int
	X, Y, W, H int
}

// Run evaluates a RectSelect node against an image of imageW x imageH.
func Run(n *Node, imageW, imageH int) RectOutput {
	stored, _ := StoredRect(n)
	r := rect.Clamp(stored, imageW, imageH)
	return RectOutput{
		Rect: map[string]int{"x": r.X, "y": r.Y, "w": r.W, "h": r.H},
		X:    r.X, Y: r.Y, W: r.W, H: r.H,
	}
}
