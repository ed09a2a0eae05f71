package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
)

// GridConfig is the musical grid. Sizes are in terminal cells.
type GridConfig struct {
	MinPitch   int     `json:"minPitch"`
	MaxPitch   int     `json:"maxPitch"`
	LaneHeight float64 `json:"laneHeight"`
	BeatWidth  float64 `json:"beatWidth"`
	BeatCount  int     `json:"beatCount"`
	Snap       float64 `json:"snap"`
}

// LayoutConfig sizes the chrome around the note grid
type LayoutConfig struct {
	PianoBarWidth      float64 `json:"pianoBarWidth"`
	MeterBarHeight     float64 `json:"meterBarHeight"`
	ScrollBarThickness float64 `json:"scrollBarThickness"`
}

// EditingConfig holds the gesture tunables
type EditingConfig struct {
	DoubleClickMs   int     `json:"doubleClickMs"`
	Tolerance       float64 `json:"tolerance"`
	BoxThreshold    float64 `json:"boxThreshold"`
	HandleWidth     float64 `json:"handleWidth"`
	DefaultDuration float64 `json:"defaultDuration"`
}

type TransportConfig struct {
	Tempo int `json:"tempo"`
}

// MIDIConfig selects ports. Channel is 1-16 like on the hardware.
type MIDIConfig struct {
	OutputPort string `json:"outputPort,omitempty"`
	InputPort  string `json:"inputPort,omitempty"`
	Channel    int    `json:"channel"`
	Velocity   int    `json:"velocity"`
	Monitor    bool   `json:"monitor"` // echo keyboard input to the output
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette   string `json:"palette,omitempty"` // GIMP .gpl file
	LastTempo int    `json:"lastTempo,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Grid      GridConfig      `json:"grid"`
	Layout    LayoutConfig    `json:"layout"`
	Editing   EditingConfig   `json:"editing"`
	Transport TransportConfig `json:"transport"`
	MIDI      MIDIConfig      `json:"midi"`
	UI        UIConfig        `json:"ui,omitempty"`
}

// DefaultConfig returns a config sized for a terminal where one cell is
// one pixel
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			MinPitch:   21,
			MaxPitch:   108,
			LaneHeight: 1,
			BeatWidth:  8,
			BeatCount:  100,
			Snap:       0.5,
		},
		Layout: LayoutConfig{
			PianoBarWidth:      6,
			MeterBarHeight:     1,
			ScrollBarThickness: 1,
		},
		Editing: EditingConfig{
			DoubleClickMs:   300,
			Tolerance:       1,
			BoxThreshold:    1,
			HandleWidth:     1,
			DefaultDuration: 1,
		},
		Transport: TransportConfig{
			Tempo: 120,
		},
		MIDI: MIDIConfig{
			Channel:  1,
			Velocity: 100,
			Monitor:  true,
		},
	}
}

// Tempo is the tempo to start with: the last one used, else the configured one
func (c *Config) Tempo() int {
	if c.UI.LastTempo > 0 {
		return c.UI.LastTempo
	}
	return c.Transport.Tempo
}

// Validate rejects values the editor can't lay out
func (c *Config) Validate() error {
	g := c.Grid
	switch {
	case g.MinPitch < 0 || g.MaxPitch > 127 || g.MinPitch > g.MaxPitch:
		return fault.New("invalid pitch band",
			fmsg.WithDesc("grid pitch band out of range", "grid.minPitch/maxPitch must satisfy 0 <= min <= max <= 127"))
	case g.LaneHeight <= 0 || g.BeatWidth <= 0:
		return fault.New("invalid grid size",
			fmsg.WithDesc("non-positive lane height or beat width", "grid.laneHeight and grid.beatWidth must be positive"))
	case g.BeatCount <= 0:
		return fault.New("invalid beat count",
			fmsg.WithDesc("non-positive beat count", "grid.beatCount must be positive"))
	case g.Snap < 0:
		return fault.New("invalid snap",
			fmsg.WithDesc("negative snap", "grid.snap must be zero (off) or positive"))
	case c.MIDI.Channel < 1 || c.MIDI.Channel > 16:
		return fault.New("invalid midi channel",
			fmsg.WithDesc("midi channel out of range", "midi.channel must be between 1 and 16"))
	}

	e := c.Editing
	if e.DoubleClickMs < 0 || e.Tolerance < 0 || e.BoxThreshold < 0 || e.HandleWidth < 0 || e.DefaultDuration < 0 {
		return fault.New("invalid editing settings",
			fmsg.WithDesc("negative editing value", "editing.doubleClickMs, tolerance, boxThreshold, handleWidth and defaultDuration must not be negative"))
	}
	return nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("locate home directory"))
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the default config file, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path over the defaults, so a partial file only overrides
// what it names. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fault.Wrap(err, fmsg.WithDesc("read config", "Could not read config file "+path))
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("parse config", "Config file "+path+" is not valid JSON"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fault.Wrap(err, fmsg.With("validate "+path))
	}

	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config directory"))
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.WithDesc("write config", "Could not write config file "+path))
	}
	return nil
}
