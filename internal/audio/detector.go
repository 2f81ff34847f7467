package audio

import "math"

// BeatDetector is a stateful per-band adaptive-threshold detector. It
// consumes one normalized energy sample per frame and reports whether that
// sample is a beat onset.
//
// Two thresholds gate a beat: a dynamic one derived from the recent average
// energy (loud passages demand proportionally louder onsets) and a decaying
// one that spikes to just under the last beat's energy and relaxes toward
// the band's cutoff floor, suppressing re-triggers on a transient's tail.
type BeatDetector struct {
	cfg     BandConfig
	history *EnergyHistory

	decayingThreshold float64
	lastBeatMs        float64
}

// BeatResult is the outcome of one Detect call. Threshold is the decaying
// threshold after this frame's update; Dynamic is the ambient-energy
// threshold the sample was compared against.
type BeatResult struct {
	IsBeat    bool
	Intensity float64
	Threshold float64
	Dynamic   float64
}

func NewBeatDetector(cfg BandConfig, historyLen int) *BeatDetector {
	return &BeatDetector{
		cfg:               cfg,
		history:           NewEnergyHistory(historyLen),
		decayingThreshold: cfg.Cutoff,
		lastBeatMs:        math.Inf(-1),
	}
}

// Detect processes one energy sample at timestamp tMs (caller-supplied
// milliseconds, monotonic within a run). The sample is pushed onto the
// history only after every read against the previous window, so a sample
// never influences its own baseline.
func (d *BeatDetector) Detect(energy, tMs float64) BeatResult {
	avg := d.history.Mean()

	// Higher ambient energy lowers the required multiplier.
	adaptive := lerp(d.cfg.Sensitivity, d.cfg.Sensitivity*0.8, avg)
	dynamicThreshold := math.Min(avg*adaptive, thresholdCeiling)

	isRising := energy > d.history.Last()
	cooled := tMs-d.lastBeatMs > d.cfg.CooldownMs

	res := BeatResult{Dynamic: dynamicThreshold}
	if energy > d.decayingThreshold && energy > dynamicThreshold && isRising && cooled {
		span := 1.0 - d.decayingThreshold
		res.IsBeat = true
		res.Intensity = clamp(0.5+0.5*(energy-d.decayingThreshold)/span, 0.5, 1.0)
		d.decayingThreshold = energy * 0.95
		d.lastBeatMs = tMs
	}

	// Relax toward the floor every frame, beat or not.
	d.decayingThreshold = math.Max(d.decayingThreshold*d.cfg.DecayRate, d.cfg.Cutoff)
	res.Threshold = d.decayingThreshold

	d.history.Push(energy)
	return res
}

// Threshold exposes the current decaying threshold, mainly for display.
func (d *BeatDetector) Threshold() float64 { return d.decayingThreshold }

// Reset restores the detector to its construction state.
func (d *BeatDetector) Reset() {
	d.history.Reset()
	d.decayingThreshold = d.cfg.Cutoff
	d.lastBeatMs = math.Inf(-1)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
