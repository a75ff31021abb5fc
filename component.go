package arbor

// Component is a polymorphic object attached to exactly one Node. Concrete
// components embed ComponentBase, which supplies the ownership bookkeeping.
type Component interface {
	// ClassName is the type name the component was created under.
	ClassName() string
	// Name is the instance name read from the document, if any.
	Name() string
	// Owner is the node the component is attached to, or nil.
	Owner() *Node
	// Deserialize reads the component's own fields from the payload and
	// reports whether the component is usable.
	Deserialize(p *Payload) bool

	base() *ComponentBase
}

// Renderer is implemented by components that can carry a pre-built node and
// hand it over to the reader instead of attaching to a fresh empty node.
type Renderer interface {
	Component
	// Node returns the carried node without giving it up.
	Node() *Node
	// TakeNode returns the carried node and clears it, transferring exclusive
	// ownership to the caller. Returns nil when nothing is carried.
	TakeNode() *Node
}

// Releaser is implemented by components holding resources that must be freed
// when the component is dropped before (or instead of) being attached.
type Releaser interface {
	Release()
}

// Updater is implemented by components that advance with the scene clock.
type Updater interface {
	Update(dt float32)
}

// ComponentBase implements the bookkeeping half of Component.
type ComponentBase struct {
	className string
	name      string
	owner     *Node
	released  bool
}

// ClassName returns the type name the component was created under.
func (c *ComponentBase) ClassName() string { return c.className }

// Name returns the instance name.
func (c *ComponentBase) Name() string { return c.name }

// SetName sets the instance name.
func (c *ComponentBase) SetName(name string) { c.name = name }

// Owner returns the node the component is attached to, or nil.
func (c *ComponentBase) Owner() *Node { return c.owner }

func (c *ComponentBase) base() *ComponentBase { return c }

// releaseComponent calls Release on c at most once over its lifetime.
func releaseComponent(c Component) {
	if c == nil {
		return
	}
	b := c.base()
	if b.released {
		return
	}
	b.released = true
	if r, ok := c.(Releaser); ok {
		r.Release()
	}
}
