package config

// Presets are named tunings selectable from the CLI. Each starts from the
// defaults and overrides what makes the feel different.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.Synth = SynthConfig{BPM: 140, Bass: 1.0, Mid: 0.7, Treble: 0.6}
		cfg.Bands.Bass.Sensitivity = 1.3
		cfg.Gravity.ShockGain = 70
		return cfg
	},
	"chill": func() *Config {
		cfg := DefaultConfig()
		cfg.Synth = SynthConfig{BPM: 84, Bass: 0.6, Mid: 0.5, Treble: 0.3}
		cfg.Bands.Bass.Sensitivity = 1.7
		cfg.Bands.Mid.Sensitivity = 1.6
		cfg.Gravity.ShockGain = 20
		return cfg
	},
	"legacy": func() *Config {
		cfg := DefaultConfig()
		cfg.Mode = "legacy"
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
