package arbor

import (
	"io/fs"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// ErrNoAudio is returned when a sound is played without an audio engine.
var ErrNoAudio = errors.New("arbor: no audio engine")

// DefaultAudioFormat is the mixing format used by NewAudioEngine when the
// caller passes a zero format.
var DefaultAudioFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// AudioEngine preloads WAV files into memory and mixes playing sounds into a
// single stream. Hand Streamer to speaker.Play (or any other sink) to hear it.
type AudioEngine struct {
	fsys    fs.FS
	format  beep.Format
	mixer   *beep.Mixer
	buffers map[string]*beep.Buffer
}

// NewAudioEngine returns an engine reading sound files from fsys.
func NewAudioEngine(fsys fs.FS, format beep.Format) *AudioEngine {
	if format.SampleRate == 0 {
		format = DefaultAudioFormat
	}
	return &AudioEngine{
		fsys:    fsys,
		format:  format,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
	}
}

// Format returns the mixing format.
func (a *AudioEngine) Format() beep.Format {
	return a.format
}

// Streamer returns the mixed output.
func (a *AudioEngine) Streamer() beep.Streamer {
	return a.mixer
}

// Playing returns the number of sounds in the mix.
func (a *AudioEngine) Playing() int {
	return a.mixer.Len()
}

// Preload decodes path into memory. Already loaded paths are a no-op.
func (a *AudioEngine) Preload(path string) error {
	if _, ok := a.buffers[path]; ok {
		return nil
	}
	if a.fsys == nil {
		return ErrNoAssets
	}
	f, err := a.fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "arbor: open sound %s", path)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return errors.Wrapf(err, "arbor: decode sound %s", path)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != a.format.SampleRate {
		src = beep.Resample(4, format.SampleRate, a.format.SampleRate, s)
	}
	buf := beep.NewBuffer(a.format)
	buf.Append(src)
	a.buffers[path] = buf
	return nil
}

// Duration returns the length of a preloaded sound.
func (a *AudioEngine) Duration(path string) (time.Duration, bool) {
	buf, ok := a.buffers[path]
	if !ok {
		return 0, false
	}
	return a.format.SampleRate.D(buf.Len()), true
}

// Play starts a preloaded (or loadable) sound and returns its control handle.
// volume is linear in [0, 1].
func (a *AudioEngine) Play(path string, loop bool, volume float64) (*beep.Ctrl, error) {
	if err := a.Preload(path); err != nil {
		return nil, err
	}
	buf := a.buffers[path]
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	ctrl := &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   linearToLog2(volume),
		Silent:   volume <= 0,
	}}
	a.mixer.Add(ctrl)
	return ctrl, nil
}

// Stop pauses ctrl and detaches its stream. The mixer drops it on the next
// pull.
func (a *AudioEngine) Stop(ctrl *beep.Ctrl) {
	ctrl.Paused = true
	ctrl.Streamer = nil
}

// End stops everything and forgets all preloaded sounds.
func (a *AudioEngine) End() {
	a.mixer.Clear()
	a.buffers = make(map[string]*beep.Buffer)
}

func linearToLog2(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}
