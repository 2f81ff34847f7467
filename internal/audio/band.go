package audio

import (
	"errors"
	"fmt"
)

// Band identifies one independently analyzed frequency sub-range.
type Band int

const (
	Bass Band = iota
	Mid
	Treble
	NumBands
)

func (b Band) String() string {
	switch b {
	case Bass:
		return "bass"
	case Mid:
		return "mid"
	case Treble:
		return "treble"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// Domain errors for analyzer construction.
var (
	// ErrBandConfig indicates an invalid per-band detector configuration.
	ErrBandConfig = errors.New("audio: invalid band config")

	// ErrHistoryLength indicates a history too short for rising-edge detection.
	ErrHistoryLength = errors.New("audio: history length must be at least 2")
)

// BandConfig holds the static tuning of one band's beat detector.
type BandConfig struct {
	CooldownMs  float64 `yaml:"cooldown_ms"`
	Cutoff      float64 `yaml:"cutoff"`
	DecayRate   float64 `yaml:"decay_rate"`
	Sensitivity float64 `yaml:"sensitivity"`
	PulseGain   float64 `yaml:"pulse_gain"`
	PulseDecay  float64 `yaml:"pulse_decay"`
}

// thresholdCeiling caps both the dynamic and decaying thresholds. Keeping it
// below 1.0 bounds the intensity mapping denominator (see Detect).
const thresholdCeiling = 0.98

func (c BandConfig) validate(band Band) error {
	if c.CooldownMs < 0 {
		return fmt.Errorf("%w: %s cooldown %.1fms is negative", ErrBandConfig, band, c.CooldownMs)
	}
	if c.Cutoff <= 0 || c.Cutoff > thresholdCeiling {
		return fmt.Errorf("%w: %s cutoff %.3f outside (0, %.2f]", ErrBandConfig, band, c.Cutoff, thresholdCeiling)
	}
	if c.DecayRate <= 0 || c.DecayRate > 1 {
		return fmt.Errorf("%w: %s decay rate %.3f outside (0, 1]", ErrBandConfig, band, c.DecayRate)
	}
	if c.Sensitivity <= 0 {
		return fmt.Errorf("%w: %s sensitivity %.3f not positive", ErrBandConfig, band, c.Sensitivity)
	}
	if c.PulseGain < 0 {
		return fmt.Errorf("%w: %s pulse gain %.3f is negative", ErrBandConfig, band, c.PulseGain)
	}
	if c.PulseDecay <= 0 || c.PulseDecay >= 1 {
		return fmt.Errorf("%w: %s pulse decay %.3f outside (0, 1)", ErrBandConfig, band, c.PulseDecay)
	}
	return nil
}

// DefaultBandConfigs returns the stock tuning for all bands. Bass transients
// sustain longest (kick tails), so bass carries the longest cooldown and the
// slowest threshold decay; treble events re-arm fastest.
func DefaultBandConfigs() [NumBands]BandConfig {
	return [NumBands]BandConfig{
		Bass:   {CooldownMs: 200, Cutoff: 0.30, DecayRate: 0.95, Sensitivity: 1.5, PulseGain: 0.5, PulseDecay: 0.88},
		Mid:    {CooldownMs: 150, Cutoff: 0.25, DecayRate: 0.93, Sensitivity: 1.4, PulseGain: 0.4, PulseDecay: 0.85},
		Treble: {CooldownMs: 100, Cutoff: 0.20, DecayRate: 0.90, Sensitivity: 1.3, PulseGain: 0.3, PulseDecay: 0.80},
	}
}
