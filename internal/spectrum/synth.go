package spectrum

import (
	"math"
	"math/rand"

	"github.com/san-kum/sonorbit/internal/audio"
)

// Source produces one spectrum frame per tick. Both the synthetic
// generator and scripted scenarios satisfy it; a real audio front end
// would too.
type Source interface {
	Next(tMs float64) audio.Frame
}

// Synth generates a deterministic rhythmic spectrum: kick envelopes on the
// beat, snare-ish mids on the offbeat, hats at quarter-beat rate. It lets
// the engine run and demo with no audio hardware at all.
type Synth struct {
	BPM    float64
	Bass   float64
	Mid    float64
	Treble float64
	Noise  float64

	rng *rand.Rand
}

func NewSynth(seed int64) *Synth {
	return &Synth{
		BPM:    120,
		Bass:   0.9,
		Mid:    0.6,
		Treble: 0.5,
		Noise:  0.02,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *Synth) Next(tMs float64) audio.Frame {
	beatMs := 60000.0 / s.BPM
	beatPhase := math.Mod(tMs, beatMs) / beatMs

	// Offbeat: shift by half a beat.
	offPhase := math.Mod(tMs+beatMs/2, beatMs) / beatMs
	hatPhase := math.Mod(tMs, beatMs/4) / (beatMs / 4)

	bass := s.Bass * math.Exp(-beatPhase*7)
	mid := s.Mid * math.Exp(-offPhase*9)
	treble := s.Treble * math.Exp(-hatPhase*12)

	noise := func() float64 { return s.rng.Float64() * s.Noise }

	bass = clampUnit(bass + noise())
	mid = clampUnit(mid + noise())
	treble = clampUnit(treble + noise())
	lowMid := clampUnit(0.5*bass + 0.3*mid)
	highMid := clampUnit(0.4*mid + 0.4*treble)

	// Centroid wanders slowly between roughly 300 and 3300 Hz.
	centroid := 1800 + 1500*math.Sin(tMs/4000)

	return audio.Frame{
		Bass:     bass,
		LowMid:   lowMid,
		Mid:      mid,
		HighMid:  highMid,
		Treble:   treble,
		Volume:   clampUnit(0.5*bass + 0.3*mid + 0.2*treble),
		Centroid: centroid,
	}
}
