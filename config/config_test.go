package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grid":{"snap":0.25},"midi":{"outputPort":"IAC"}}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Grid.Snap)
	assert.Equal(t, 108, cfg.Grid.MaxPitch)
	assert.Equal(t, "IAC", cfg.MIDI.OutputPort)
	assert.Equal(t, 1, cfg.MIDI.Channel)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`{grid`), 0644))
	_, err := LoadFrom(garbage)
	require.Error(t, err)
	assert.Contains(t, fmsg.GetIssue(err), "not valid JSON")

	inverted := filepath.Join(dir, "inverted.json")
	require.NoError(t, os.WriteFile(inverted, []byte(`{"grid":{"minPitch":90,"maxPitch":60}}`), 0644))
	_, err = LoadFrom(inverted)
	require.Error(t, err)
	assert.Contains(t, fmsg.GetIssue(err), "minPitch")

	clicks := filepath.Join(dir, "clicks.json")
	require.NoError(t, os.WriteFile(clicks, []byte(`{"editing":{"boxThreshold":-1}}`), 0644))
	_, err = LoadFrom(clicks)
	require.Error(t, err)
	assert.Contains(t, fmsg.GetIssue(err), "boxThreshold")
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.UI.LastTempo = 96
	cfg.Grid.BeatWidth = 16

	require.NoError(t, cfg.SaveTo(path))
	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, 96, got.Tempo())
}

func TestTempoFallsBackToTransport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport.Tempo = 140
	assert.Equal(t, 140, cfg.Tempo())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"snap off", func(c *Config) { c.Grid.Snap = 0 }, true},
		{"negative snap", func(c *Config) { c.Grid.Snap = -1 }, false},
		{"zero lane height", func(c *Config) { c.Grid.LaneHeight = 0 }, false},
		{"no beats", func(c *Config) { c.Grid.BeatCount = 0 }, false},
		{"pitch above midi", func(c *Config) { c.Grid.MaxPitch = 128 }, false},
		{"channel 17", func(c *Config) { c.MIDI.Channel = 17 }, false},
		{"zero box threshold", func(c *Config) { c.Editing.BoxThreshold = 0 }, true},
		{"negative box threshold", func(c *Config) { c.Editing.BoxThreshold = -1 }, false},
		{"negative double-click window", func(c *Config) { c.Editing.DoubleClickMs = -300 }, false},
		{"negative handle width", func(c *Config) { c.Editing.HandleWidth = -2 }, false},
		{"negative tolerance", func(c *Config) { c.Editing.Tolerance = -0.5 }, false},
		{"negative default duration", func(c *Config) { c.Editing.DefaultDuration = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestSaverDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := NewSaver(path, 20*time.Millisecond)
	require.NoError(t, err)

	for tempo := 100; tempo <= 110; tempo++ {
		cfg := DefaultConfig()
		cfg.UI.LastTempo = tempo
		s.Save(*cfg)
	}

	require.Eventually(t, func() bool {
		got, err := LoadFrom(path)
		return err == nil && got.UI.LastTempo == 110
	}, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, s.Err())
}

func TestSaverFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := NewSaver(path, time.Hour)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.UI.LastTempo = 77
	s.Save(*cfg)
	require.NoError(t, s.Flush())

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 77, got.UI.LastTempo)
	assert.NoError(t, s.Flush())
}
