package spectrum

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sonorbit/internal/audio"
)

func frameInRange(t *testing.T, f audio.Frame) {
	t.Helper()
	for name, v := range map[string]float64{
		"bass": f.Bass, "lowMid": f.LowMid, "mid": f.Mid,
		"highMid": f.HighMid, "treble": f.Treble, "volume": f.Volume,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %f outside [0,1]", name, v)
		}
	}
	if f.Centroid < 0 {
		t.Errorf("centroid %f is negative", f.Centroid)
	}
}

func TestFFTSourceLowSine(t *testing.T) {
	src := NewFFTSource(44100)

	n := 2048
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*60*float64(i)/44100)
	}

	f := src.Analyze(samples)
	frameInRange(t, f)

	if f.Bass <= f.Treble {
		t.Errorf("60Hz sine should load bass (%f) over treble (%f)", f.Bass, f.Treble)
	}
	if f.Centroid > 500 {
		t.Errorf("60Hz sine centroid should sit low, got %fHz", f.Centroid)
	}
	if f.Volume <= 0 {
		t.Error("non-silent block should report volume")
	}
}

func TestFFTSourceHighSine(t *testing.T) {
	src := NewFFTSource(44100)

	n := 2048
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*8000*float64(i)/44100)
	}

	f := src.Analyze(samples)
	if f.Treble <= f.Bass {
		t.Errorf("8kHz sine should load treble (%f) over bass (%f)", f.Treble, f.Bass)
	}
	if f.Centroid < 4000 {
		t.Errorf("8kHz sine centroid should sit high, got %fHz", f.Centroid)
	}
}

func TestFFTSourceEmptyBlock(t *testing.T) {
	src := NewFFTSource(44100)
	f := src.Analyze(nil)
	if f != (audio.Frame{}) {
		t.Errorf("empty block should produce a zero frame, got %+v", f)
	}
}

func TestSynthDeterministic(t *testing.T) {
	a := NewSynth(7)
	b := NewSynth(7)

	for i := 0; i < 200; i++ {
		tMs := float64(i) * 16.7
		fa, fb := a.Next(tMs), b.Next(tMs)
		if fa != fb {
			t.Fatalf("same seed diverged at frame %d: %+v vs %+v", i, fa, fb)
		}
		frameInRange(t, fa)
	}
}

func TestSynthKickOnBeat(t *testing.T) {
	s := NewSynth(1)
	s.Noise = 0

	onBeat := s.Next(0)
	offBeat := s.Next(250) // half a beat at 120 BPM

	if onBeat.Bass <= offBeat.Bass {
		t.Errorf("bass should peak on the beat: on=%f off=%f", onBeat.Bass, offBeat.Bass)
	}
}

func TestScenarioPlayback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "set.yaml")
	content := `name: test-set
segments:
  - {duration: 2, bpm: 100, bass: 0.9, mid: 0.3, treble: 0.2}
  - {duration: 3, bpm: 140, bass: 0.5, mid: 0.7, treble: 0.6}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if sc.TotalSec() != 5 {
		t.Errorf("expected 5s total, got %f", sc.TotalSec())
	}

	if seg := sc.segmentAt(1000); seg.BPM != 100 {
		t.Errorf("expected first segment at 1s, got bpm %f", seg.BPM)
	}
	if seg := sc.segmentAt(3000); seg.BPM != 140 {
		t.Errorf("expected second segment at 3s, got bpm %f", seg.BPM)
	}
	// Past the end the last segment holds.
	if seg := sc.segmentAt(60000); seg.BPM != 140 {
		t.Errorf("expected last segment past end, got bpm %f", seg.BPM)
	}

	src := NewScriptSource(sc, 3)
	frameInRange(t, src.Next(0))
}

func TestScenarioValidation(t *testing.T) {
	sc := &Scenario{Name: "empty"}
	if err := sc.validate(); err == nil {
		t.Error("expected error for scenario without segments")
	}

	sc = &Scenario{Name: "bad", Segments: []Segment{{DurationSec: 0, BPM: 120}}}
	if err := sc.validate(); err == nil {
		t.Error("expected error for zero-duration segment")
	}
}
