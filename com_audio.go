package arbor

import (
	"github.com/gopxl/beep"
)

// Audio component class names.
const (
	ClassComAudio        = "CCComAudio"
	ClassBackgroundAudio = "CCBackgroundAudio"
)

// ComAudio plays one sound file through the reader's AudioEngine. Background
// audio (created as CCBackgroundAudio) loops by default.
type ComAudio struct {
	ComponentBase
	File   string
	Loop   bool
	Volume float64

	engine *AudioEngine
	ctrl   *beep.Ctrl
}

// NewComAudio returns an audio component with full volume.
func NewComAudio() *ComAudio {
	c := &ComAudio{Volume: 1}
	c.className = ClassComAudio
	return c
}

// Background reports whether the component was created as background music.
func (c *ComAudio) Background() bool {
	return c.ClassName() == ClassBackgroundAudio
}

// Deserialize reads the sound settings and preloads the file when the reader
// has an audio engine.
func (c *ComAudio) Deserialize(p *Payload) bool {
	el := p.Element
	c.SetName(GetString(el, keyName, ""))
	c.File = GetString(el.Object(keyFileData), keyPath, "")
	c.Loop = GetBool(el, "loop", c.Background())
	c.Volume = GetFloat(el, "volume", 1)

	c.engine = p.Audio()
	if c.engine == nil || c.File == "" {
		return true
	}
	if err := c.engine.Preload(c.File); err != nil {
		logger := p.Logger()
		logger.Warn().Err(err).Str("file", c.File).Msg("audio not preloaded")
		c.engine = nil
		return false
	}
	return true
}

// Play starts the sound, restarting it if it is already playing.
func (c *ComAudio) Play() error {
	if c.engine == nil {
		return ErrNoAudio
	}
	c.Stop()
	ctrl, err := c.engine.Play(c.File, c.Loop, c.Volume)
	if err != nil {
		return err
	}
	c.ctrl = ctrl
	return nil
}

// Stop silences the sound. No-op when it is not playing.
func (c *ComAudio) Stop() {
	if c.ctrl != nil {
		c.engine.Stop(c.ctrl)
		c.ctrl = nil
	}
}

// Playing reports whether Play was called and Stop was not.
func (c *ComAudio) Playing() bool {
	return c.ctrl != nil
}

// Release stops playback.
func (c *ComAudio) Release() {
	c.Stop()
}
