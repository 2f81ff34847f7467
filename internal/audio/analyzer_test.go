package audio

import (
	"math"
	"testing"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultBandConfigs(), 60)
	if err != nil {
		t.Fatalf("analyzer construction failed: %v", err)
	}
	return a
}

func TestAnalyzerRejectsBadConfig(t *testing.T) {
	cfgs := DefaultBandConfigs()
	cfgs[Mid].CooldownMs = -1

	if _, err := NewAnalyzer(cfgs, 60); err == nil {
		t.Error("expected error for negative cooldown")
	}

	cfgs = DefaultBandConfigs()
	cfgs[Treble].Cutoff = 0.99
	if _, err := NewAnalyzer(cfgs, 60); err == nil {
		t.Error("expected error for cutoff above threshold ceiling")
	}

	if _, err := NewAnalyzer(DefaultBandConfigs(), 1); err == nil {
		t.Error("expected error for history shorter than 2")
	}
}

func TestPulseSpikesAndSnapsBack(t *testing.T) {
	a := newTestAnalyzer(t)

	snap := a.Update(Frame{Bass: 1.0, Volume: 0.8}, 0)
	if !snap.Beats[Bass].IsBeat {
		t.Fatal("expected bass beat")
	}
	if snap.Pulses[Bass] <= 1.0 {
		t.Fatalf("pulse should spike above 1.0 on beat, got %f", snap.Pulses[Bass])
	}

	// Silence: pulse must decay and snap to exactly 1.0, not drift forever.
	for i := 1; i <= 120; i++ {
		snap = a.Update(Frame{}, float64(i)*16.7)
		if snap.Pulses[Bass] < 1.0 {
			t.Fatalf("pulse undershot 1.0: %f", snap.Pulses[Bass])
		}
	}
	if snap.Pulses[Bass] != 1.0 {
		t.Errorf("pulse should snap to exactly 1.0, got %f", snap.Pulses[Bass])
	}
}

func TestSmoothingConverges(t *testing.T) {
	a := newTestAnalyzer(t)

	var snap Snapshot
	for i := 0; i < 200; i++ {
		snap = a.Update(Frame{Bass: 0.6, Mid: 0.4, Treble: 0.2, Volume: 0.5}, float64(i)*16.7)
	}

	if math.Abs(snap.Smooth[Bass]-0.6) > 1e-3 {
		t.Errorf("bass smoothing should converge to 0.6, got %f", snap.Smooth[Bass])
	}
	if math.Abs(snap.Volume-0.5) > 1e-3 {
		t.Errorf("volume smoothing should converge to 0.5, got %f", snap.Volume)
	}
}

func TestPitchLogMapping(t *testing.T) {
	tests := []struct {
		hz   float64
		want float64
	}{
		{100, 0.0},
		{50, 0.0},
		{8000, 1.0},
		{20000, 1.0},
	}

	for _, tc := range tests {
		a := newTestAnalyzer(t)
		var snap Snapshot
		for i := 0; i < 400; i++ {
			snap = a.Update(Frame{Centroid: tc.hz}, float64(i)*16.7)
		}
		if math.Abs(snap.Pitch-tc.want) > 1e-2 {
			t.Errorf("centroid %vHz: expected pitch near %f, got %f", tc.hz, tc.want, snap.Pitch)
		}
	}
}

func TestTenseFlag(t *testing.T) {
	a := newTestAnalyzer(t)

	// Quiet steady state is not tense.
	var snap Snapshot
	for i := 0; i < 120; i++ {
		snap = a.Update(Frame{Volume: 0.01}, float64(i)*16.7)
	}
	if snap.Tense {
		t.Error("near-silence should not be tense")
	}

	// High treble alone trips the flag.
	snap = a.Update(Frame{Treble: 0.25, Volume: 0.01}, 3000)
	if !snap.Tense {
		t.Error("treble above 0.2 should be tense")
	}

	// High-mid alone trips the flag.
	b := newTestAnalyzer(t)
	snap = b.Update(Frame{HighMid: 0.6}, 0)
	if !snap.Tense {
		t.Error("high-mid above 0.5 should be tense")
	}
}

func TestNaNInputSanitized(t *testing.T) {
	a := newTestAnalyzer(t)

	a.Update(Frame{Bass: 0.5, Volume: 0.4, Centroid: 1000}, 0)
	snap := a.Update(Frame{
		Bass:     math.NaN(),
		Mid:      math.Inf(1),
		Treble:   math.NaN(),
		Volume:   math.NaN(),
		Centroid: math.NaN(),
	}, 17)

	for b := Band(0); b < NumBands; b++ {
		if math.IsNaN(snap.Raw[b]) || math.IsNaN(snap.Smooth[b]) {
			t.Fatalf("NaN leaked through band %s", b)
		}
		if math.IsNaN(snap.Pulses[b]) {
			t.Fatalf("NaN leaked into pulse %s", b)
		}
	}
	if math.IsNaN(snap.Volume) || math.IsNaN(snap.Pitch) {
		t.Error("NaN leaked into volume/pitch")
	}
	if snap.Raw[Bass] != 0.5 {
		t.Errorf("NaN bass should fall back to last valid 0.5, got %f", snap.Raw[Bass])
	}
}
