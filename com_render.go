package arbor

import (
	"github.com/pkg/errors"
)

// Render component class names. ClassComRender is the registered type; the
// others are the descriptor classnames authoring tools emit for it.
const (
	ClassComRender      = "CCComRender"
	ClassSprite         = "CCSprite"
	ClassTMXTiledMap    = "CCTMXTiledMap"
	ClassParticleSystem = "CCParticleSystemQuad"
	ClassArmature       = "CCArmature"
	ClassGUIComponent   = "GUIComponent"
)

// fileData resource types.
const (
	resourceTypeFile  = 0
	resourceTypeSheet = 1
)

const (
	keyPlistFile    = "plistFile"
	keyResourceType = "resourceType"
)

var errNoTextures = errors.New("arbor: reader has no texture source")

// ComRender carries the node that draws a descriptor. Depending on the
// reader's attach mode that node either becomes the descriptor's node or
// stays with the component attached to an empty node.
type ComRender struct {
	ComponentBase
	node *Node
}

// NewComRender returns a render component carrying node.
func NewComRender(node *Node) *ComRender {
	c := &ComRender{node: node}
	c.className = ClassComRender
	return c
}

// Node returns the carried node without giving it up.
func (c *ComRender) Node() *Node {
	return c.node
}

// TakeNode hands the carried node to the caller and forgets it.
func (c *ComRender) TakeNode() *Node {
	n := c.node
	c.node = nil
	return n
}

// Release disposes a node the component still carries.
func (c *ComRender) Release() {
	if c.node != nil {
		c.node.Dispose()
		c.node = nil
	}
}

// Deserialize builds the carried node from the descriptor. Only sprites are
// supported; every other render kind fails.
func (c *ComRender) Deserialize(p *Payload) bool {
	el := p.Element
	c.SetName(GetString(el, keyName, ""))
	kind := GetString(el, keyClassName, c.ClassName())
	if kind != ClassSprite {
		logger := p.Logger()
		logger.Debug().Str("classname", kind).Msg("render kind not supported")
		return false
	}
	node, err := c.sprite(p, el.Object(keyFileData))
	if err != nil {
		logger := p.Logger()
		logger.Warn().Err(err).Str("name", c.Name()).Msg("sprite not created")
		return false
	}
	c.node = node
	return true
}

func (c *ComRender) sprite(p *Payload, fd Element) (*Node, error) {
	path := GetString(fd, keyPath, "")
	switch GetInt(fd, keyResourceType, resourceTypeFile) {
	case resourceTypeFile:
		if path == "" {
			return NewSprite(c.Name(), TextureRegion{}), nil
		}
		ts := p.Textures()
		if ts == nil {
			return nil, errNoTextures
		}
		img, err := ts.Texture(path)
		if err != nil {
			return nil, err
		}
		return NewImageSprite(c.Name(), img), nil
	case resourceTypeSheet:
		sheet := GetString(fd, keyPlistFile, "")
		atlas := p.Atlas(sheet)
		if atlas == nil {
			return nil, errors.Errorf("arbor: atlas %q not registered", sheet)
		}
		region, ok := atlas.Frame(path)
		if !ok {
			return nil, errors.Errorf("arbor: frame %q not in atlas %q", path, sheet)
		}
		return NewSprite(c.Name(), region), nil
	default:
		return nil, errors.Errorf("arbor: unknown resource type for %q", path)
	}
}
