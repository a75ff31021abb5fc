package arbor

// Scene is the top-level object that owns a node tree and advances it with a
// clock. Loaded trees are attached under Root.
type Scene struct {
	root  *Node
	debug bool
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root")}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches a loaded tree under the scene root. Nil is ignored.
func (s *Scene) Add(n *Node) {
	if n == nil {
		return
	}
	s.root.AddChild(n)
}

// Update refreshes world transforms, then ticks every component implementing
// Updater in tree pre-order. Hidden subtrees are skipped. Transforms changed
// by the tick are picked up on the next Update.
func (s *Scene) Update(dt float32) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.root.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		for _, c := range n.components {
			if u, ok := c.(Updater); ok {
				u.Update(dt)
			}
		}
		return true
	})
}

// NodeByTag searches the scene tree for tag.
func (s *Scene) NodeByTag(tag int) *Node {
	return FindNodeByTag(s.root, tag)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree shape warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool {
	return s.debug
}
