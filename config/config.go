package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. PHINRIP_MIDI_IN
const EnvPrefix = "PHINRIP"

// MIDIConfig selects the live ports
type MIDIConfig struct {
	In          string        `mapstructure:"in"`
	Out         string        `mapstructure:"out"`
	ClockOnly   bool          `mapstructure:"clock_only"`
	ScanTimeout time.Duration `mapstructure:"scan_timeout"`
}

// PerformConfig tunes the live clip controller
type PerformConfig struct {
	UpdateInterval int `mapstructure:"update_interval"`
	ClipDelta      int `mapstructure:"clip_delta"`
	Tracks         int `mapstructure:"tracks"`
	Scenes         int `mapstructure:"scenes"`
}

// SequenceConfig holds defaults for rendered files
type SequenceConfig struct {
	BPM float64 `mapstructure:"bpm"`
}

type LogConfig struct {
	File    string `mapstructure:"file"`
	Verbose bool   `mapstructure:"verbose"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	// Palette is a GIMP .gpl file, empty for the built-in palette
	Palette string `mapstructure:"palette"`
}

// Config is the main configuration structure
type Config struct {
	MIDI     MIDIConfig     `mapstructure:"midi"`
	Perform  PerformConfig  `mapstructure:"perform"`
	Sequence SequenceConfig `mapstructure:"sequence"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`

	path string
	v    *viper.Viper
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-phinrip"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("midi.in", "")
	v.SetDefault("midi.out", "")
	v.SetDefault("midi.clock_only", true)
	v.SetDefault("midi.scan_timeout", "3s")
	v.SetDefault("perform.update_interval", 96)
	v.SetDefault("perform.clip_delta", 10)
	v.SetDefault("perform.tracks", 8)
	v.SetDefault("perform.scenes", 8)
	v.SetDefault("sequence.bpm", 120)
	v.SetDefault("log.file", "")
	v.SetDefault("log.verbose", false)
	v.SetDefault("ui.palette", "")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigFile(path)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	path, _ := ConfigPath()
	cfg, _ := decode(newViper(path), path)
	return cfg
}

// Load reads the config from path, or the default path when empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return decode(v, path)
}

func decode(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{path: path, v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.UI.Palette = expandPath(cfg.UI.Palette)
	return cfg, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Set overrides a key for this run, e.g. from a command-line flag
func (c *Config) Set(key string, value any) error {
	c.v.Set(key, value)
	fresh, err := decode(c.v, c.path)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	c.v.Set("midi.in", c.MIDI.In)
	c.v.Set("midi.out", c.MIDI.Out)
	c.v.Set("midi.clock_only", c.MIDI.ClockOnly)
	c.v.Set("midi.scan_timeout", c.MIDI.ScanTimeout.String())
	c.v.Set("perform.update_interval", c.Perform.UpdateInterval)
	c.v.Set("perform.clip_delta", c.Perform.ClipDelta)
	c.v.Set("perform.tracks", c.Perform.Tracks)
	c.v.Set("perform.scenes", c.Perform.Scenes)
	c.v.Set("sequence.bpm", c.Sequence.BPM)
	c.v.Set("log.file", c.Log.File)
	c.v.Set("log.verbose", c.Log.Verbose)
	c.v.Set("ui.palette", c.UI.Palette)
	return c.v.WriteConfigAs(c.path)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
