package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sonorbit/internal/audio"
	"github.com/san-kum/sonorbit/internal/gravity"
)

const (
	DefaultFrameRate  = 60
	DefaultHistoryLen = 60
	DefaultDuration   = 30.0
	DefaultBPM        = 120.0
)

// Config is the whole engine's YAML-loadable configuration: analyzer band
// tuning, gravity/orbital parameters and run settings.
type Config struct {
	FrameRate  int     `yaml:"frame_rate"`
	HistoryLen int     `yaml:"history_len"`
	Duration   float64 `yaml:"duration"`
	Seed       int64   `yaml:"seed"`
	Mode       string  `yaml:"mode"`

	Bands   BandsConfig    `yaml:"bands"`
	Gravity gravity.Config `yaml:"gravity"`
	Synth   SynthConfig    `yaml:"synth"`
}

type BandsConfig struct {
	Bass   audio.BandConfig `yaml:"bass"`
	Mid    audio.BandConfig `yaml:"mid"`
	Treble audio.BandConfig `yaml:"treble"`
}

type SynthConfig struct {
	BPM    float64 `yaml:"bpm"`
	Bass   float64 `yaml:"bass"`
	Mid    float64 `yaml:"mid"`
	Treble float64 `yaml:"treble"`
}

func DefaultConfig() *Config {
	bands := audio.DefaultBandConfigs()
	return &Config{
		FrameRate:  DefaultFrameRate,
		HistoryLen: DefaultHistoryLen,
		Duration:   DefaultDuration,
		Seed:       1,
		Mode:       "reactive",
		Bands: BandsConfig{
			Bass:   bands[audio.Bass],
			Mid:    bands[audio.Mid],
			Treble: bands[audio.Treble],
		},
		Gravity: gravity.DefaultConfig(),
		Synth:   SynthConfig{BPM: DefaultBPM, Bass: 0.9, Mid: 0.6, Treble: 0.5},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.FrameRate)
	}
	if c.HistoryLen < 2 {
		return fmt.Errorf("history length must be at least 2, got %d", c.HistoryLen)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Mode != "legacy" && c.Mode != "reactive" {
		return fmt.Errorf("mode must be legacy or reactive, got %q", c.Mode)
	}
	return nil
}

// BandConfigs returns the per-band tuning in detector order.
func (c *Config) BandConfigs() [audio.NumBands]audio.BandConfig {
	return [audio.NumBands]audio.BandConfig{
		audio.Bass:   c.Bands.Bass,
		audio.Mid:    c.Bands.Mid,
		audio.Treble: c.Bands.Treble,
	}
}

// GravityMode maps the config string onto the system mode.
func (c *Config) GravityMode() gravity.Mode {
	if c.Mode == "legacy" {
		return gravity.ModeLegacy
	}
	return gravity.ModeReactive
}
