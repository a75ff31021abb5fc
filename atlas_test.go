package arbor

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const sheetJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "trimmed.png": {
      "frame": {"x": 100, "y": 50, "w": 60, "h": 58},
      "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58},
      "sourceSize": {"w": 64, "h": 64}
    },
    "rotated.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 32},
      "sourceSize": {"w": 32, "h": 48}
    }
  },
  "meta": {"image": "sheet.png"}
}`

const twoPageJSON = `{
  "textures": [
    {"image": "sheet-0.png", "frames": {
      "a.png": {"frame": {"x": 0, "y": 0, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}}
    }},
    {"image": "sheet-1.png", "frames": {
      "b.png": {"frame": {"x": 10, "y": 20, "w": 50, "h": 50}, "sourceSize": {"w": 50, "h": 50}}
    }}
  ]
}`

func loadSheet(t *testing.T) *Atlas {
	t.Helper()
	atlas, err := LoadAtlas([]byte(sheetJSON), []*ebiten.Image{ebiten.NewImage(256, 128)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return atlas
}

func TestLoadAtlas_Hash(t *testing.T) {
	atlas := loadSheet(t)
	names := atlas.Names()
	want := []string{"hero.png", "rotated.png", "trimmed.png"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names = %v, want %v", names, want)
	}
	r, ok := atlas.Frame("hero.png")
	if !ok {
		t.Fatal("hero.png not found")
	}
	if r.X != 0 || r.Y != 0 || r.Width != 64 || r.Height != 64 || r.Page != 0 {
		t.Errorf("hero.png = %+v", r)
	}
}

func TestLoadAtlas_Trimmed(t *testing.T) {
	r, _ := loadSheet(t).Frame("trimmed.png")
	if r.OffsetX != 2 || r.OffsetY != 3 {
		t.Errorf("offset = %d/%d, want 2/3", r.OffsetX, r.OffsetY)
	}
	if r.OriginalW != 64 || r.OriginalH != 64 {
		t.Errorf("original = %d/%d, want 64/64", r.OriginalW, r.OriginalH)
	}
	if r.Width != 60 || r.Height != 58 {
		t.Errorf("size = %d/%d, want 60/58", r.Width, r.Height)
	}
}

func TestLoadAtlas_Rotated(t *testing.T) {
	atlas := loadSheet(t)
	r, _ := atlas.Frame("rotated.png")
	if !r.Rotated {
		t.Error("Rotated = false, want true")
	}
	img := atlas.SubImage(r)
	if img == nil {
		t.Fatal("SubImage returned nil")
	}
	// stored rotated: the page rect is height x width
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 32 || h != 48 {
		t.Errorf("SubImage size = %dx%d, want 32x48", w, h)
	}
}

func TestLoadAtlas_MultiPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(twoPageJSON), nil)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	a, _ := atlas.Frame("a.png")
	b, _ := atlas.Frame("b.png")
	if a.Page != 0 || b.Page != 1 {
		t.Errorf("pages = %d/%d, want 0/1", a.Page, b.Page)
	}
	if b.X != 10 || b.Y != 20 {
		t.Errorf("b.png X/Y = %d/%d, want 10/20", b.X, b.Y)
	}
	if atlas.SubImage(b) != nil {
		t.Error("SubImage without pages should be nil")
	}
}

func TestAtlasFrame_Basename(t *testing.T) {
	atlas := loadSheet(t)
	if _, ok := atlas.Frame("characters/hero.png"); !ok {
		t.Error("Frame should fall back to the base name")
	}
	if _, ok := atlas.Frame("characters/nobody.png"); ok {
		t.Error("Frame found a frame that does not exist")
	}
}

func TestAtlasRegion_MissingIsPlaceholder(t *testing.T) {
	r := loadSheet(t).Region("nonexistent.png")
	if r.Page != placeholderPage {
		t.Errorf("Page = %d, want %d", r.Page, placeholderPage)
	}
	if r.Width != 1 || r.Height != 1 {
		t.Errorf("size = %dx%d, want 1x1", r.Width, r.Height)
	}
}

func TestLoadAtlas_InvalidJSON(t *testing.T) {
	if _, err := LoadAtlas([]byte(`{invalid`), nil); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadAtlas_NoFramesOrTextures(t *testing.T) {
	_, err := LoadAtlas([]byte(`{"meta":{}}`), nil)
	if err == nil {
		t.Fatal("expected error for JSON with no frames/textures")
	}
	if !strings.Contains(err.Error(), "neither") {
		t.Errorf("error = %q, want mention of neither", err.Error())
	}
}

func BenchmarkLoadAtlas(b *testing.B) {
	data := []byte(sheetJSON)
	for i := 0; i < b.N; i++ {
		_, _ = LoadAtlas(data, nil)
	}
}

func BenchmarkAtlasFrame(b *testing.B) {
	atlas, _ := LoadAtlas([]byte(sheetJSON), nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = atlas.Frame("hero.png")
	}
}
