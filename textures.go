package arbor

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// TextureSource resolves an asset path to an image for render components.
type TextureSource interface {
	Texture(path string) (*ebiten.Image, error)
}

// FSTextures decodes PNG and JPEG files from a file system into ebiten images
// and caches them by path.
type FSTextures struct {
	fsys  fs.FS
	cache map[string]*ebiten.Image
}

// NewFSTextures returns a texture source reading from fsys.
func NewFSTextures(fsys fs.FS) *FSTextures {
	return &FSTextures{fsys: fsys, cache: make(map[string]*ebiten.Image)}
}

// Texture returns the image at path, decoding it on first use.
func (t *FSTextures) Texture(path string) (*ebiten.Image, error) {
	if img, ok := t.cache[path]; ok {
		return img, nil
	}
	f, err := t.fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "arbor: open texture %s", path)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "arbor: decode texture %s", path)
	}
	img := ebiten.NewImageFromImage(src)
	t.cache[path] = img
	return img, nil
}

// Len returns the number of cached images.
func (t *FSTextures) Len() int {
	return len(t.cache)
}

// Reset forgets every cached image without deallocating it. Sprites that
// already show a cached image keep working.
func (t *FSTextures) Reset() {
	clear(t.cache)
}

// Purge deallocates and forgets every cached image. Sprite nodes still
// showing one of them draw nothing afterwards, so only purge once those nodes
// are gone.
func (t *FSTextures) Purge() {
	for path, img := range t.cache {
		img.Deallocate()
		delete(t.cache, path)
	}
}
