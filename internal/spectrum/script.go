package spectrum

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sonorbit/internal/audio"
)

// Scenario scripts a sequence of synthetic spectrum segments, so a whole
// run (build-up, drop, breakdown) can be described in a YAML file.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Segments    []Segment `yaml:"segments"`
}

// Segment drives the synth with fixed levels for a span of seconds.
type Segment struct {
	DurationSec float64 `yaml:"duration"`
	BPM         float64 `yaml:"bpm"`
	Bass        float64 `yaml:"bass"`
	Mid         float64 `yaml:"mid"`
	Treble      float64 `yaml:"treble"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if len(sc.Segments) == 0 {
		return fmt.Errorf("scenario %q has no segments", sc.Name)
	}
	for i, seg := range sc.Segments {
		if seg.DurationSec <= 0 {
			return fmt.Errorf("scenario %q segment %d: duration must be positive", sc.Name, i)
		}
		if seg.BPM <= 0 {
			return fmt.Errorf("scenario %q segment %d: bpm must be positive", sc.Name, i)
		}
	}
	return nil
}

// TotalSec is the scripted run length.
func (sc *Scenario) TotalSec() float64 {
	total := 0.0
	for _, seg := range sc.Segments {
		total += seg.DurationSec
	}
	return total
}

// segmentAt returns the segment active at tMs; past the end, the last
// segment keeps playing.
func (sc *Scenario) segmentAt(tMs float64) Segment {
	acc := 0.0
	for _, seg := range sc.Segments {
		acc += seg.DurationSec * 1000
		if tMs < acc {
			return seg
		}
	}
	return sc.Segments[len(sc.Segments)-1]
}

// ScriptSource plays a scenario through a seeded synth.
type ScriptSource struct {
	scenario *Scenario
	synth    *Synth
}

func NewScriptSource(sc *Scenario, seed int64) *ScriptSource {
	return &ScriptSource{scenario: sc, synth: NewSynth(seed)}
}

func (s *ScriptSource) Next(tMs float64) audio.Frame {
	seg := s.scenario.segmentAt(tMs)
	s.synth.BPM = seg.BPM
	s.synth.Bass = seg.Bass
	s.synth.Mid = seg.Mid
	s.synth.Treble = seg.Treble
	return s.synth.Next(tMs)
}
