package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TagInvalid is the tag every node starts with until a document or the caller
// assigns one.
const TagInvalid = -1

// nodeIDCounter is not atomic; arbor is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element produced by the reader. A single flat struct
// is used for all node types; what a node renders is decided by its Type and
// by the components attached to it.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType
	Tag  int

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is in degrees, as authored.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed, refreshed by Scene.Update
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & ordering
	Alpha   float64
	Visible bool
	ZOrder  int

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite)
	TextureRegion TextureRegion
	Color         Color
	customImage   *ebiten.Image

	components []Component
	disposed   bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Tag = TagInvalid
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that shows a texture region.
func NewSprite(name string, region TextureRegion) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, TextureRegion: region}
	nodeDefaults(n)
	return n
}

// NewImageSprite creates a sprite node backed by a whole image rather than an
// atlas region.
func NewImageSprite(name string, img *ebiten.Image) *Node {
	n := NewSprite(name, TextureRegion{})
	n.customImage = img
	if img != nil {
		b := img.Bounds()
		n.TextureRegion.OriginalW = uint16(b.Dx())
		n.TextureRegion.OriginalH = uint16(b.Dy())
	}
	return n
}

// SetCustomImage sets an *ebiten.Image to display instead of TextureRegion.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the image set with SetCustomImage, or nil.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("arbor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("arbor: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Properties ---

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(v bool) {
	n.Visible = v
}

// SetTag sets the integer tag used by FindNodeByTag.
func (n *Node) SetTag(tag int) {
	n.Tag = tag
}

// SetZOrder sets the node's local z-order among its siblings.
func (n *Node) SetZOrder(z int) {
	n.ZOrder = z
}

// --- Components ---

// AddComponent attaches c to this node and makes the node its owner.
// Panics if c is nil or already owned by a different node.
func (n *Node) AddComponent(c Component) {
	if c == nil {
		panic("arbor: cannot add nil component")
	}
	b := c.base()
	if b.owner == n {
		return
	}
	if b.owner != nil {
		panic("arbor: component " + b.className + " is already attached to another node")
	}
	b.owner = n
	n.components = append(n.components, c)
	if globalDebug {
		debugCheckComponents(n)
	}
}

// RemoveComponent detaches c from this node. It reports whether c was found.
func (n *Node) RemoveComponent(c Component) bool {
	for i, x := range n.components {
		if x == c {
			copy(n.components[i:], n.components[i+1:])
			n.components[len(n.components)-1] = nil
			n.components = n.components[:len(n.components)-1]
			c.base().owner = nil
			return true
		}
	}
	return false
}

// Components returns the attached components in attach order. The returned
// slice MUST NOT be mutated by the caller.
func (n *Node) Components() []Component {
	return n.components
}

// Component returns the first attached component with the given class name,
// or nil.
func (n *Node) Component(className string) Component {
	for _, c := range n.components {
		if c.ClassName() == className {
			return c
		}
	}
	return nil
}

// ComponentOf returns the first component of n assignable to T.
func ComponentOf[T Component](n *Node) (T, bool) {
	for _, c := range n.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// --- Lookup ---

// FindNodeByTag searches root and its descendants in depth-first pre-order
// and returns the first node whose Tag equals tag. Returns nil when root is
// nil or no node matches.
func FindNodeByTag(root *Node, tag int) *Node {
	if root == nil {
		return nil
	}
	if root.Tag == tag {
		return root
	}
	for _, child := range root.children {
		if found := FindNodeByTag(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in pre-order. Returning false from
// fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, releases
// its components and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	for _, c := range n.components {
		c.base().owner = nil
		releaseComponent(c)
	}
	n.components = nil
	n.children = nil
	n.Parent = nil
	n.customImage = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
