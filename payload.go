package arbor

import (
	"io/fs"

	"github.com/rs/zerolog"
)

// Payload carries one component descriptor into Component.Deserialize and
// then to the listener. It is only valid during that resolution step; the
// reader clears it right after the listener returns, so neither components
// nor listeners may keep it.
type Payload struct {
	// Element is the component descriptor.
	Element Element
	// ClassName is the descriptor's classname field.
	ClassName string
	// Index is the position of the descriptor in its components array.
	Index int

	reader *Reader
}

// Encoding reports the format the descriptor came from.
func (p *Payload) Encoding() Encoding {
	if p.Element == nil {
		return EncodingJSON
	}
	return p.Element.Encoding()
}

// Assets returns the file system the reader resolves asset paths against,
// or nil.
func (p *Payload) Assets() fs.FS {
	if p.reader == nil {
		return nil
	}
	return p.reader.assets
}

// Textures returns the reader's texture source, or nil.
func (p *Payload) Textures() TextureSource {
	if p.reader == nil {
		return nil
	}
	return p.reader.textures
}

// Atlas returns the atlas registered with the reader under name, or nil.
func (p *Payload) Atlas(name string) *Atlas {
	if p.reader == nil {
		return nil
	}
	return p.reader.atlases[name]
}

// Audio returns the reader's audio engine, or nil.
func (p *Payload) Audio() *AudioEngine {
	if p.reader == nil {
		return nil
	}
	return p.reader.audio
}

// Logger returns the reader's logger.
func (p *Payload) Logger() zerolog.Logger {
	if p.reader == nil {
		return zerolog.Nop()
	}
	return p.reader.logger
}

func (p *Payload) clear() {
	p.Element = nil
	p.reader = nil
}
