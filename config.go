package arbor

import (
	"bytes"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config is the file form of a Reader's settings, usually kept next to the
// scene files:
//
//	attach_mode = "render"
//	debug = false
//	log_level = "warn"
//	asset_root = "assets"
//	strict_version = false
//	audio = true
type Config struct {
	AttachMode    string `toml:"attach_mode"`
	Debug         bool   `toml:"debug"`
	LogLevel      string `toml:"log_level"`
	AssetRoot     string `toml:"asset_root"`
	StrictVersion bool   `toml:"strict_version"`
	Audio         bool   `toml:"audio"`
}

// DefaultConfig returns the settings used for keys a config file leaves out.
func DefaultConfig() Config {
	return Config{
		AttachMode: AttachEmptyNode.String(),
		LogLevel:   zerolog.Disabled.String(),
	}
}

// LoadConfig decodes TOML config data over DefaultConfig. Unknown keys are
// an error.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "arbor: decode config")
	}
	if _, err := ParseAttachMode(cfg.AttachMode); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the config file at path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "arbor: read config %s", path)
	}
	return LoadConfig(data)
}

// ParseAttachMode parses "empty" or "render". An empty string is "empty".
func ParseAttachMode(s string) (AttachMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return AttachEmptyNode, nil
	case "render":
		return AttachRenderNode, nil
	default:
		return AttachEmptyNode, errors.Errorf("arbor: unknown attach mode %q", s)
	}
}

// Options converts the config into Reader options. The logger writes to
// stderr at LogLevel, or at debug level when Debug is set. AssetRoot, when
// set, backs the reader's assets and textures, and the audio engine when
// Audio is on.
func (c Config) Options() ([]Option, error) {
	mode, err := ParseAttachMode(c.AttachMode)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithAttachMode(mode), WithStrictVersion(c.StrictVersion)}

	level := zerolog.Disabled
	switch {
	case c.Debug:
		level = zerolog.DebugLevel
	case c.LogLevel != "":
		level, err = zerolog.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "arbor: log level %q", c.LogLevel)
		}
	}
	if level != zerolog.Disabled {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Str("component", "arbor").Logger()
		opts = append(opts, WithLogger(logger))
	}

	if c.AssetRoot != "" {
		fsys := os.DirFS(c.AssetRoot)
		opts = append(opts, WithAssets(fsys), WithTextures(NewFSTextures(fsys)))
		if c.Audio {
			opts = append(opts, WithAudio(NewAudioEngine(fsys, DefaultAudioFormat)))
		}
	}
	return opts, nil
}
