package arbor

// Version identifies the document format this reader understands. Bump it on
// any breaking change to field ordinals or recognized component kinds.
const Version = "1.2.0.0"

// ContainerClassName is the only node descriptor type the reader assembles.
const ContainerClassName = "CCNode"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes what a Node carries.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // carries a TextureRegion or custom image
)

// String returns a readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// AttachMode selects whether a renderer component's own node replaces the
// default empty node created for a descriptor.
type AttachMode uint8

const (
	AttachEmptyNode  AttachMode = iota // always create an empty node; renderers attach to it
	AttachRenderNode                   // use the renderer's carried node as the descriptor's node
)

// String returns the configuration spelling of the mode.
func (m AttachMode) String() string {
	if m == AttachRenderNode {
		return "render"
	}
	return "empty"
}
