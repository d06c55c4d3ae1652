package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.True(t, cfg.MIDI.ClockOnly)
	assert.Equal(t, 3*time.Second, cfg.MIDI.ScanTimeout)
	assert.Equal(t, 96, cfg.Perform.UpdateInterval)
	assert.Equal(t, 10, cfg.Perform.ClipDelta)
	assert.Equal(t, 8, cfg.Perform.Tracks)
	assert.Equal(t, 8, cfg.Perform.Scenes)
	assert.Equal(t, 120.0, cfg.Sequence.BPM)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"midi": {"in": "Digitakt", "out": "Bitwig", "scan_timeout": "500ms"},
		"perform": {"tracks": 4}, "sequence": {"bpm": 93.5}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Digitakt", cfg.MIDI.In)
	assert.Equal(t, "Bitwig", cfg.MIDI.Out)
	assert.Equal(t, 500*time.Millisecond, cfg.MIDI.ScanTimeout)
	assert.Equal(t, 4, cfg.Perform.Tracks)
	assert.Equal(t, 8, cfg.Perform.Scenes)
	assert.Equal(t, 93.5, cfg.Sequence.BPM)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PHINRIP_MIDI_OUT", "IAC Driver Bus 1")
	t.Setenv("PHINRIP_PERFORM_SCENES", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "IAC Driver Bus 1", cfg.MIDI.Out)
	assert.Equal(t, 4, cfg.Perform.Scenes)
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("midi.in", "Clock Source"))
	assert.Equal(t, "Clock Source", cfg.MIDI.In)

	cfg.Perform.Tracks = 6
	cfg.UI.Palette = "/tmp/palette.gpl"
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Clock Source", again.MIDI.In)
	assert.Equal(t, 6, again.Perform.Tracks)
	assert.Equal(t, "/tmp/palette.gpl", again.UI.Palette)
	assert.Equal(t, 3*time.Second, again.MIDI.ScanTimeout)
}
