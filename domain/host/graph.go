package host

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownInput  = errors.New("unknown input")
)

// Link connects an origin node's output to a target node's input slot.
type Link struct {
	ID        int
	OriginID  int
	TargetID  int
	InputName string
}

// Graph holds nodes and links by id.
type Graph struct {
	nodes    map[int]*Node
	links    map[int]Link
	nextLink int
}

func NewGraph() *Graph {
	return &Graph{nodes: map[int]*Node{}, links: map[int]Link{}, nextLink: 1}
}

// AddNode registers n. Ids must be unique.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil", ErrUnknownNode)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
	}
	g.nodes[n.ID] = n
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id int) *Node { return g.nodes[id] }

// Link returns the link with the given id.
func (g *Graph) Link(id int) (Link, bool) {
	l, ok := g.links[id]
	return l, ok
}

// Connect links origin to the named input of target, replacing any existing
// link on that slot. It returns the new link id.
func (g *Graph) Connect(originID, targetID int, input string) (int, error) {
	if g.nodes[originID] == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, originID)
	}
	target := g.nodes[targetID]
	if target == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, targetID)
	}
	if in, ok := target.Input(input); !ok {
		return 0, fmt.Errorf("%w: %q on node %d", ErrUnknownInput, input, targetID)
	} else if in.Link != 0 {
		delete(g.links, in.Link)
	}
	id := g.nextLink
	g.nextLink++
	g.links[id] = Link{ID: id, OriginID: originID, TargetID: targetID, InputName: input}
	target.setLink(input, id)
	return id, nil
}

// Disconnect clears the named input of target.
func (g *Graph) Disconnect(targetID int, input string) {
	target := g.nodes[targetID]
	if target == nil {
		return
	}
	if in, ok := target.Input(input); ok && in.Link != 0 {
		delete(g.links, in.Link)
		target.setLink(input, 0)
	}
}

// ResolveUpstreamImageName follows n's "image" input to the upstream node and
// returns the value of its "image" widget. It fails when the input is absent or
// unconnected, or the upstream exposes no non-empty string widget of that name.
func (g *Graph) ResolveUpstreamImageName(n *Node) (string, bool) {
	in, ok := n.Input("image")
	if !ok || in.Link == 0 {
		return "", false
	}
	link, ok := g.links[in.Link]
	if !ok {
		return "", false
	}
	upstream := g.nodes[link.OriginID]
	if upstream == nil {
		return "", false
	}
	for _, w := range upstream.Widgets {
		if w.Name != "image" {
			continue
		}
		if s, ok := w.Value.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
