package audio

import "math"

// Frame is one frame of spectrum input: five normalized band energies, raw
// volume, and the raw spectral centroid in Hz. All energies are expected in
// [0, 1]; the analyzer sanitizes anything else.
type Frame struct {
	Bass     float64
	LowMid   float64
	Mid      float64
	HighMid  float64
	Treble   float64
	Volume   float64
	Centroid float64
}

// BeatEvent is the per-band beat outcome published in a Snapshot.
type BeatEvent struct {
	IsBeat    bool
	Intensity float64
}

// Snapshot is the immutable per-frame analysis output. A fresh value is
// produced every Update; consumers read it and never mutate it.
type Snapshot struct {
	Volume  float64
	Pitch   float64
	HighMid float64

	Raw    [NumBands]float64
	Smooth [NumBands]float64
	Beats  [NumBands]BeatEvent
	Pulses [NumBands]float64

	Tense bool
}

// Centroid log-mapping range. Anything at or below the floor maps to pitch
// 0, anything at or above the ceiling to 1.
const (
	centroidFloorHz   = 100.0
	centroidCeilingHz = 8000.0
)

// Per-channel exponential smoothing rates; higher is snappier. Bass is
// tuned punchy, the centroid slow enough to feel melodic rather than
// jittery.
const (
	centroidLerp = 0.15
	volumeLerp   = 0.25
)

var bandLerp = [NumBands]float64{Bass: 0.30, Mid: 0.25, Treble: 0.20}

const pulseSnapEpsilon = 1e-3

// Analyzer owns one BeatDetector per band plus the smoothing filters for
// volume and spectral centroid, and aggregates everything into one
// Snapshot per frame. It is single-threaded by contract: Update is called
// exactly once per frame before the gravity system consumes the result.
type Analyzer struct {
	detectors [NumBands]*BeatDetector

	volume     float64
	volHistory *EnergyHistory
	pitch      float64
	smooth     [NumBands]float64
	pulses     [NumBands]float64

	lastValid Frame
}

// NewAnalyzer validates every band config up front; per-frame code never
// re-validates.
func NewAnalyzer(cfgs [NumBands]BandConfig, historyLen int) (*Analyzer, error) {
	if historyLen < 2 {
		return nil, ErrHistoryLength
	}
	a := &Analyzer{volHistory: NewEnergyHistory(historyLen)}
	for b := Band(0); b < NumBands; b++ {
		if err := cfgs[b].validate(b); err != nil {
			return nil, err
		}
		a.detectors[b] = NewBeatDetector(cfgs[b], historyLen)
		a.pulses[b] = 1.0
	}
	return a, nil
}

// Update consumes one sanitized spectrum frame at timestamp tMs and returns
// the frame's analysis snapshot.
func (a *Analyzer) Update(f Frame, tMs float64) Snapshot {
	f = a.sanitize(f)

	raw := [NumBands]float64{Bass: f.Bass, Mid: f.Mid, Treble: f.Treble}

	snap := Snapshot{Raw: raw, HighMid: f.HighMid}

	avgVolume := a.volHistory.Mean()
	a.volume = lerp(a.volume, f.Volume, volumeLerp)
	a.volHistory.Push(f.Volume)
	snap.Volume = a.volume

	a.pitch = lerp(a.pitch, pitchFromCentroid(f.Centroid), centroidLerp)
	snap.Pitch = a.pitch

	anyBeat := false
	for b := Band(0); b < NumBands; b++ {
		a.smooth[b] = lerp(a.smooth[b], raw[b], bandLerp[b])
		snap.Smooth[b] = a.smooth[b]

		res := a.detectors[b].Detect(raw[b], tMs)
		snap.Beats[b] = BeatEvent{IsBeat: res.IsBeat, Intensity: res.Intensity}

		cfg := a.detectors[b].cfg
		if res.IsBeat {
			anyBeat = true
			a.pulses[b] = 1.0 + cfg.PulseGain*res.Intensity
		} else {
			a.pulses[b] = lerp(a.pulses[b], 1.0, 1.0-cfg.PulseDecay)
			if math.Abs(a.pulses[b]-1.0) < pulseSnapEpsilon {
				a.pulses[b] = 1.0
			}
		}
		snap.Pulses[b] = a.pulses[b]
	}

	snap.Tense = (a.volume > avgVolume*1.2 && a.volume > 0.02) ||
		anyBeat || raw[Treble] > 0.2 || f.HighMid > 0.5

	return snap
}

// Reset restores detectors, filters and pulses to construction state.
func (a *Analyzer) Reset() {
	for b := Band(0); b < NumBands; b++ {
		a.detectors[b].Reset()
		a.smooth[b] = 0
		a.pulses[b] = 1.0
	}
	a.volHistory.Reset()
	a.volume = 0
	a.pitch = 0
	a.lastValid = Frame{}
}

// sanitize replaces NaN/Inf channels with the last valid value and clamps
// energies into [0, 1]. A bad sample must never reach the integrator.
func (a *Analyzer) sanitize(f Frame) Frame {
	f.Bass = sanitizeUnit(f.Bass, a.lastValid.Bass)
	f.LowMid = sanitizeUnit(f.LowMid, a.lastValid.LowMid)
	f.Mid = sanitizeUnit(f.Mid, a.lastValid.Mid)
	f.HighMid = sanitizeUnit(f.HighMid, a.lastValid.HighMid)
	f.Treble = sanitizeUnit(f.Treble, a.lastValid.Treble)
	f.Volume = sanitizeUnit(f.Volume, a.lastValid.Volume)
	if math.IsNaN(f.Centroid) || math.IsInf(f.Centroid, 0) || f.Centroid < 0 {
		f.Centroid = a.lastValid.Centroid
	}
	a.lastValid = f
	return f
}

func sanitizeUnit(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return clamp(v, 0, 1)
}

func pitchFromCentroid(hz float64) float64 {
	if hz <= centroidFloorHz {
		return 0
	}
	p := (math.Log(hz) - math.Log(centroidFloorHz)) /
		(math.Log(centroidCeilingHz) - math.Log(centroidFloorHz))
	return clamp(p, 0, 1)
}
