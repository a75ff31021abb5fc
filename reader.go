package arbor

import (
	"bytes"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrNoRootNode is returned when a document's top-level descriptor is
	// not a recognized node type.
	ErrNoRootNode = errors.New("arbor: scene document has no recognized root node")
	// ErrNoAssets is returned by LoadFile when the reader has no file system.
	ErrNoAssets = errors.New("arbor: reader has no asset file system")
)

// Listener observes every component resolution attempt. c is nil when the
// type was unknown or deserialization failed. p is only valid during the call.
type Listener func(c Component, p *Payload)

// Reader turns scene documents into node trees. It holds everything a load
// needs: the component factory, the attach mode, the listener and the asset
// sources components draw from. A Reader is not safe for concurrent use.
type Reader struct {
	factory  *Factory
	mode     AttachMode
	listener Listener
	logger   zerolog.Logger

	assets   fs.FS
	textures TextureSource
	atlases  map[string]*Atlas
	audio    *AudioEngine

	strictVersion bool

	root    *Node
	pending []TypeInfo
}

// Option configures a Reader.
type Option func(*Reader)

// WithAttachMode sets how renderer components relate to descriptor nodes.
func WithAttachMode(m AttachMode) Option {
	return func(r *Reader) { r.mode = m }
}

// WithFactory makes the reader use f. The built-in component types are
// added to f if it does not have them yet.
func WithFactory(f *Factory) Option {
	return func(r *Reader) { r.factory = f }
}

// WithComponent registers an additional component type. A type named like a
// built-in one replaces it.
func WithComponent(info TypeInfo) Option {
	return func(r *Reader) { r.pending = append(r.pending, info) }
}

// WithAssets sets the file system scene files and component assets are read
// from.
func WithAssets(fsys fs.FS) Option {
	return func(r *Reader) { r.assets = fsys }
}

// WithTextures sets the texture source used by render components.
func WithTextures(ts TextureSource) Option {
	return func(r *Reader) { r.textures = ts }
}

// WithAudio sets the audio engine audio components preload into.
func WithAudio(a *AudioEngine) Option {
	return func(r *Reader) { r.audio = a }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithStrictVersion makes LoadBinary reject documents whose version string
// differs from Version in any component, not just the major one.
func WithStrictVersion(strict bool) Option {
	return func(r *Reader) { r.strictVersion = strict }
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(r *Reader) { r.listener = l }
}

// NewReader creates a reader with the built-in component types registered.
// The factory is complete once NewReader returns.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		logger:  zerolog.Nop(),
		atlases: make(map[string]*Atlas),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.factory == nil {
		r.factory = NewFactory()
	}
	for _, info := range r.pending {
		r.factory.Register(info)
	}
	r.pending = nil
	RegisterBuiltins(r.factory)
	return r
}

// Factory returns the reader's component factory.
func (r *Reader) Factory() *Factory {
	return r.factory
}

// AttachMode returns the configured attach mode.
func (r *Reader) AttachMode() AttachMode {
	return r.mode
}

// SetListener registers l, replacing any previous listener. Pass nil to
// remove it.
func (r *Reader) SetListener(l Listener) {
	r.listener = l
}

// RegisterAtlas makes atlas available to render components under name, which
// is matched against the plistFile of a descriptor's fileData.
func (r *Reader) RegisterAtlas(name string, atlas *Atlas) {
	r.atlases[name] = atlas
}

// Root returns the node produced by the last LoadJSON, LoadBinary or LoadFile.
func (r *Reader) Root() *Node {
	return r.root
}

// NodeByTag searches the last loaded tree for tag.
func (r *Reader) NodeByTag(tag int) *Node {
	return FindNodeByTag(r.root, tag)
}

// LoadJSON parses a JSON scene document and assembles it without a parent.
func (r *Reader) LoadJSON(data []byte) (*Node, error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return r.loadRoot(doc.Root())
}

// LoadBinary decodes a binary scene document and assembles it without a
// parent.
func (r *Reader) LoadBinary(data []byte) (*Node, error) {
	doc, err := DecodeBinary(data)
	if err != nil {
		return nil, err
	}
	if r.strictVersion && doc.Version() != Version {
		return nil, errors.Wrapf(ErrVersionMismatch, "document %q, reader %q", doc.Version(), Version)
	}
	return r.loadRoot(doc.Root())
}

// LoadFile reads name from the reader's asset file system and loads it,
// choosing the encoding from the file's leading bytes.
func (r *Reader) LoadFile(name string) (*Node, error) {
	if r.assets == nil {
		return nil, ErrNoAssets
	}
	data, err := fs.ReadFile(r.assets, name)
	if err != nil {
		return nil, errors.Wrapf(err, "arbor: read scene %s", name)
	}
	if bytes.HasPrefix(data, binaryMagic[:]) {
		return r.LoadBinary(data)
	}
	return r.LoadJSON(data)
}

func (r *Reader) loadRoot(el Element) (*Node, error) {
	root := r.Load(el, nil)
	if root == nil {
		return nil, ErrNoRootNode
	}
	r.root = root
	return root, nil
}

// Load assembles the node described by el and its whole subtree. When parent
// is non-nil the node is appended to it before its properties are applied.
// Returns nil when el is not a recognized node descriptor; nothing is added
// to parent in that case. Load never fails otherwise: unknown components,
// failed components and malformed fields are skipped or defaulted.
func (r *Reader) Load(el Element, parent *Node) *Node {
	if !Exists(el) {
		return nil
	}
	className := GetString(el, keyClassName, "")
	if className != ContainerClassName {
		r.logger.Debug().Str("classname", className).Msg("unrecognized node type, subtree dropped")
		return nil
	}

	var res resolved
	count := ArrayCount(el, keyComponents)
	for i := 0; i < count; i++ {
		sub := SubElement(el, keyComponents, i)
		if !Exists(sub) {
			break
		}
		r.resolveComponent(sub, i, &res)
	}

	node := r.nodeFor(parent, &res)
	if parent != nil {
		parent.AddChild(node)
	}
	applyProperties(el, node)
	for _, c := range res.components {
		node.AddComponent(c)
	}

	length := ArrayCount(el, keyChildren)
	for i := 0; i < length; i++ {
		sub := SubElement(el, keyChildren, i)
		if !Exists(sub) {
			break
		}
		r.Load(sub, node)
	}
	return node
}

// nodeFor decides which node represents a descriptor. The renderer's carried
// node is used only below a parent and in AttachRenderNode mode; in every
// other case a fresh container is created and the renderer is attached to it
// like any other component.
func (r *Reader) nodeFor(parent *Node, res *resolved) *Node {
	rc := res.renderer
	res.renderer = nil
	if parent == nil || rc == nil || r.mode == AttachEmptyNode {
		if rc != nil {
			res.components = append(res.components, rc)
		}
		return NewContainer("")
	}
	node := rc.TakeNode()
	if node == nil {
		node = NewContainer("")
	} else if node.Parent != nil {
		node.RemoveFromParent()
	}
	res.components = append(res.components, rc)
	return node
}

// Close releases everything the reader holds: the listener, the last loaded
// root, the texture cache and atlases, and the audio engine. Cached textures
// are forgotten, not deallocated, so nodes loaded earlier keep their images
// until they are collected with those nodes. The reader can still load
// documents afterwards but components lose their asset sources.
func (r *Reader) Close() {
	r.listener = nil
	r.root = nil
	if c, ok := r.textures.(interface{ Reset() }); ok {
		c.Reset()
	}
	r.textures = nil
	r.atlases = make(map[string]*Atlas)
	if r.audio != nil {
		r.audio.End()
		r.audio = nil
	}
}
