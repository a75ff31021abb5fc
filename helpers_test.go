package arbor

import "testing"

// stub is a plain component that records what happens to it.
type stub struct {
	ComponentBase
	fail         bool
	deserialized int
	releases     int
}

func newStub(className string) *stub {
	p := &stub{}
	p.className = className
	return p
}

func (c *stub) Deserialize(p *Payload) bool {
	c.deserialized++
	c.SetName(GetString(p.Element, keyName, ""))
	return !c.fail && GetBool(p.Element, "ok", true)
}

func (c *stub) Release() { c.releases++ }

// stubRenderer carries a sprite named after its descriptor.
type stubRenderer struct {
	ComponentBase
	node     *Node
	made     *Node
	releases int
}

func (c *stubRenderer) Node() *Node { return c.node }

func (c *stubRenderer) TakeNode() *Node {
	n := c.node
	c.node = nil
	return n
}

func (c *stubRenderer) Deserialize(p *Payload) bool {
	c.SetName(GetString(p.Element, keyName, ""))
	if !GetBool(p.Element, "ok", true) {
		return false
	}
	c.node = NewSprite("sprite:"+c.Name(), TextureRegion{OriginalW: 8, OriginalH: 8})
	c.made = c.node
	return true
}

func (c *stubRenderer) Release() {
	c.releases++
	if c.node != nil {
		c.node.Dispose()
		c.node = nil
	}
}

// stubs collects every component a test factory creates.
type stubs struct {
	plain     []*stub
	renderers []*stubRenderer
}

const (
	classStub    = "Stub"
	classStubRen = "StubRenderer"
)

// options registers the stub types with a reader.
func (ps *stubs) options() []Option {
	return []Option{
		WithComponent(TypeInfo{Name: classStub, New: func() Component {
			c := newStub(classStub)
			ps.plain = append(ps.plain, c)
			return c
		}}),
		WithComponent(TypeInfo{Name: classStubRen, Caps: CapRenderer, New: func() Component {
			c := &stubRenderer{}
			ps.renderers = append(ps.renderers, c)
			return c
		}}),
	}
}

func newStubReader(t *testing.T, mode AttachMode, extra ...Option) (*Reader, *stubs) {
	t.Helper()
	ps := &stubs{}
	opts := append(ps.options(), WithAttachMode(mode))
	opts = append(opts, extra...)
	return NewReader(opts...), ps
}

func mustLoadJSON(t *testing.T, r *Reader, doc string) *Node {
	t.Helper()
	n, err := r.LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	return n
}

func mustEncode(t testing.TB, doc string) []byte {
	t.Helper()
	jd, err := ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	bin, err := EncodeBinary(jd)
	if err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}
	return bin
}

func mustLoadBinary(t *testing.T, r *Reader, doc string) *Node {
	t.Helper()
	n, err := r.LoadBinary(mustEncode(t, doc))
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	return n
}

func childNames(n *Node) []string {
	names := make([]string, 0, n.NumChildren())
	for _, c := range n.Children() {
		names = append(names, c.Name)
	}
	return names
}
