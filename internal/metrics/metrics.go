// Package metrics provides per-run observers over the analyzer and
// gravity outputs: integration quality and rhythm statistics.
package metrics

import (
	"math"

	"github.com/san-kum/sonorbit/internal/audio"
	"github.com/san-kum/sonorbit/internal/gravity"
)

// Metric observes one frame at a time and reduces to a single value.
type Metric interface {
	Name() string
	Observe(s *gravity.System, snap *audio.Snapshot, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the worst relative drift of the summed planetary
// specific energy. In legacy mode this measures integrator quality; under
// audio modulation it measures how hard the music is pumping the orbits.
type EnergyDrift struct {
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *gravity.System, _ *audio.Snapshot, _ float64) {
	total := 0.0
	for _, p := range s.Planets() {
		total += s.SpecificEnergy(p)
	}

	if e.samples == 0 {
		e.initial = total
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(total-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// BeatRate counts beats across all bands and reports beats per minute.
type BeatRate struct {
	beats    int
	firstMs  float64
	lastMs   float64
	observed bool
}

func NewBeatRate() *BeatRate { return &BeatRate{} }

func (b *BeatRate) Name() string { return "beat_rate" }

func (b *BeatRate) Observe(_ *gravity.System, snap *audio.Snapshot, tMs float64) {
	if snap == nil {
		return
	}
	if !b.observed {
		b.firstMs = tMs
		b.observed = true
	}
	b.lastMs = tMs

	for band := audio.Band(0); band < audio.NumBands; band++ {
		if snap.Beats[band].IsBeat {
			b.beats++
		}
	}
}

func (b *BeatRate) Value() float64 {
	span := b.lastMs - b.firstMs
	if span <= 0 {
		return 0
	}
	return float64(b.beats) / span * 60000
}

func (b *BeatRate) Reset() {
	b.beats = 0
	b.firstMs = 0
	b.lastMs = 0
	b.observed = false
}

// TenseRatio reports the fraction of frames flagged tense.
type TenseRatio struct {
	tense  int
	frames int
}

func NewTenseRatio() *TenseRatio { return &TenseRatio{} }

func (t *TenseRatio) Name() string { return "tense_ratio" }

func (t *TenseRatio) Observe(_ *gravity.System, snap *audio.Snapshot, _ float64) {
	if snap == nil {
		return
	}
	t.frames++
	if snap.Tense {
		t.tense++
	}
}

func (t *TenseRatio) Value() float64 {
	if t.frames == 0 {
		return 0
	}
	return float64(t.tense) / float64(t.frames)
}

func (t *TenseRatio) Reset() {
	t.tense = 0
	t.frames = 0
}
