package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ComponentLoaded describes one component resolution attempt. Loaded is
// false when the component type was unknown or failed to deserialize.
type ComponentLoaded struct {
	ClassName string
	Name      string
	Index     int
	Encoding  arbor.Encoding
	Loaded    bool
	Component arbor.Component
}

// ComponentLoadedEvent is the Donburi event type for component resolutions.
var ComponentLoadedEvent = events.NewEventType[ComponentLoaded]()

// NewDonburiListener returns a listener that publishes every resolution to
// ComponentLoadedEvent. The payload is copied out, so events stay valid after
// the load returns.
func NewDonburiListener(world donburi.World) arbor.Listener {
	return func(c arbor.Component, p *arbor.Payload) {
		ev := ComponentLoaded{
			ClassName: p.ClassName,
			Index:     p.Index,
			Encoding:  p.Encoding(),
			Loaded:    c != nil,
			Component: c,
		}
		if c != nil {
			ev.Name = c.Name()
		}
		ComponentLoadedEvent.Publish(world, ev)
	}
}

// NodeData links an entity to a node of a loaded tree.
type NodeData struct {
	Node  *arbor.Node
	Tag   int
	Depth int
}

// NodeRef is the Donburi component type holding NodeData.
var NodeRef = donburi.NewComponentType[NodeData]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeRef))

// Spawn creates one entity per node of root's subtree, in pre-order, and
// returns how many were created. Disposed nodes are skipped.
func Spawn(world donburi.World, root *arbor.Node) int {
	if root == nil {
		return 0
	}
	count := 0
	var visit func(n *arbor.Node, depth int)
	visit = func(n *arbor.Node, depth int) {
		if n.IsDisposed() {
			return
		}
		entry := world.Entry(world.Create(NodeRef))
		NodeRef.SetValue(entry, NodeData{Node: n, Tag: n.Tag, Depth: depth})
		count++
		for _, child := range n.Children() {
			visit(child, depth+1)
		}
	}
	visit(root, 0)
	return count
}

// FindByTag returns the first spawned node whose tag equals tag.
func FindByTag(world donburi.World, tag int) (*arbor.Node, bool) {
	var found *arbor.Node
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if found != nil {
			return
		}
		if d := NodeRef.Get(entry); d.Tag == tag {
			found = d.Node
		}
	})
	return found, found != nil
}

// Prune removes entities whose node has been disposed since Spawn and
// returns how many were removed.
func Prune(world donburi.World) int {
	var stale []donburi.Entity
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if d := NodeRef.Get(entry); d.Node == nil || d.Node.IsDisposed() {
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		world.Remove(e)
	}
	return len(stale)
}
