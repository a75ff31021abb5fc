package arbor

import (
	"encoding/json"
	"image"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// TextureRegion describes a sub-rectangle within an atlas page.
// Stored by value on Node.
type TextureRegion struct {
	Page      uint16 // atlas page index
	X, Y      uint16 // top-left corner of the sub-image rect within the page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset
	OffsetY   int16  // vertical trim offset
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the page
}

// Atlas holds one or more page images and a map of named sprite frames.
// Render components look frames up by the path of their fileData when the
// resource type is a sprite sheet.
type Atlas struct {
	// Pages contains the page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// placeholderPage marks the region returned for unknown frame names.
const placeholderPage = 0xFFFF

// Frame returns the region for name. Names are matched as given first and
// then without a leading directory, so "ui/button.png" finds "button.png".
func (a *Atlas) Frame(name string) (TextureRegion, bool) {
	if r, ok := a.regions[name]; ok {
		return r, true
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		r, ok := a.regions[name[i+1:]]
		return r, ok
	}
	return TextureRegion{}, false
}

// Region returns the region for name, or a 1x1 placeholder on
// placeholderPage when the frame does not exist.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.Frame(name); ok {
		return r
	}
	if globalDebug {
		log.Warn().Str("frame", name).Msg("arbor: atlas frame not found, using placeholder")
	}
	return TextureRegion{Page: placeholderPage, Width: 1, Height: 1, OriginalW: 1, OriginalH: 1}
}

// Names returns the frame names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SubImage returns the part of the page image covered by r, or nil when the
// page is not loaded.
func (a *Atlas) SubImage(r TextureRegion) *ebiten.Image {
	if int(r.Page) >= len(a.Pages) || a.Pages[r.Page] == nil {
		return nil
	}
	w, h := int(r.Width), int(r.Height)
	if r.Rotated {
		w, h = h, w
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X)+w, int(r.Y)+h)
	return a.Pages[r.Page].SubImage(rect).(*ebiten.Image)
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists) are accepted.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, errors.Wrap(err, "arbor: parse atlas json")
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
	}

	switch {
	case probe.Textures != nil:
		var textures []atlasPage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, errors.Wrap(err, "arbor: parse atlas textures")
		}
		for i, tex := range textures {
			atlas.addFrames(tex.Frames, uint16(i))
		}
	case probe.Frames != nil:
		var frames map[string]atlasFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, errors.Wrap(err, "arbor: parse atlas frames")
		}
		atlas.addFrames(frames, 0)
	default:
		return nil, errors.New(`arbor: atlas json has neither "frames" nor "textures"`)
	}
	return atlas, nil
}

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasFrame struct {
	Frame            atlasRect `json:"frame"`
	Rotated          bool      `json:"rotated"`
	SpriteSourceSize atlasRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceSize"`
}

type atlasPage struct {
	Image  string                `json:"image"`
	Frames map[string]atlasFrame `json:"frames"`
}

func (a *Atlas) addFrames(frames map[string]atlasFrame, page uint16) {
	for name, f := range frames {
		a.regions[name] = TextureRegion{
			Page:      page,
			X:         uint16(f.Frame.X),
			Y:         uint16(f.Frame.Y),
			Width:     uint16(f.Frame.W),
			Height:    uint16(f.Frame.H),
			OriginalW: uint16(f.SourceSize.W),
			OriginalH: uint16(f.SourceSize.H),
			OffsetX:   int16(f.SpriteSourceSize.X),
			OffsetY:   int16(f.SpriteSourceSize.Y),
			Rotated:   f.Rotated,
		}
	}
}
