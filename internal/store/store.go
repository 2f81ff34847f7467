// Package store persists runs: JSON metadata plus CSV frame and body
// traces, one directory per run.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sonorbit/internal/audio"
	"github.com/san-kum/sonorbit/internal/gravity"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FrameRate int                `json:"frame_rate"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameRecord is one analysis+modulation row of frames.csv.
type FrameRecord struct {
	TMs        float64
	Snapshot   audio.Snapshot
	Modulation gravity.Modulation
}

// BodyRecord is one body-position row of bodies.csv.
type BodyRecord struct {
	TMs  float64
	Name string
	Pos  gravity.Vec2
	Vel  gravity.Vec2
	Life float64
}

var frameHeader = []string{
	"t_ms", "volume", "pitch",
	"bass", "mid", "treble",
	"smooth_bass", "smooth_mid", "smooth_treble",
	"beat_bass", "beat_mid", "beat_treble",
	"pulse_bass", "pulse_mid", "pulse_treble",
	"tense", "gm_mult", "time_scale", "pulse_potential",
}

// Save writes one run directory and returns its ID.
func (s *Store) Save(meta RunMetadata, frames []FrameRecord, bodies []BodyRecord) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeFrames(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		return "", err
	}
	if err := s.writeBodies(filepath.Join(runDir, "bodies.csv"), bodies); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeFrames(path string, frames []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return err
	}

	for _, fr := range frames {
		snap := fr.Snapshot
		row := []string{
			ff(fr.TMs), ff(snap.Volume), ff(snap.Pitch),
			ff(snap.Raw[audio.Bass]), ff(snap.Raw[audio.Mid]), ff(snap.Raw[audio.Treble]),
			ff(snap.Smooth[audio.Bass]), ff(snap.Smooth[audio.Mid]), ff(snap.Smooth[audio.Treble]),
			fb(snap.Beats[audio.Bass].IsBeat), fb(snap.Beats[audio.Mid].IsBeat), fb(snap.Beats[audio.Treble].IsBeat),
			ff(snap.Pulses[audio.Bass]), ff(snap.Pulses[audio.Mid]), ff(snap.Pulses[audio.Treble]),
			fb(snap.Tense), ff(fr.Modulation.GMMultiplier), ff(fr.Modulation.TimeScale), ff(fr.Modulation.PulsePotential),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeBodies(path string, bodies []BodyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"t_ms", "name", "x", "y", "vx", "vy", "life"}); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{
			ff(b.TMs), b.Name,
			ff(b.Pos.X), ff(b.Pos.Y), ff(b.Vel.X), ff(b.Vel.Y), ff(b.Life),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's frames.csv back into records.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("frames.csv for %s is empty", runID)
	}

	frames := make([]FrameRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(frameHeader) {
			return nil, fmt.Errorf("frames.csv for %s: expected %d columns, got %d", runID, len(frameHeader), len(row))
		}
		var fr FrameRecord
		fr.TMs = pf(row[0])
		fr.Snapshot.Volume = pf(row[1])
		fr.Snapshot.Pitch = pf(row[2])
		fr.Snapshot.Raw[audio.Bass] = pf(row[3])
		fr.Snapshot.Raw[audio.Mid] = pf(row[4])
		fr.Snapshot.Raw[audio.Treble] = pf(row[5])
		fr.Snapshot.Smooth[audio.Bass] = pf(row[6])
		fr.Snapshot.Smooth[audio.Mid] = pf(row[7])
		fr.Snapshot.Smooth[audio.Treble] = pf(row[8])
		fr.Snapshot.Beats[audio.Bass].IsBeat = row[9] == "1"
		fr.Snapshot.Beats[audio.Mid].IsBeat = row[10] == "1"
		fr.Snapshot.Beats[audio.Treble].IsBeat = row[11] == "1"
		fr.Snapshot.Pulses[audio.Bass] = pf(row[12])
		fr.Snapshot.Pulses[audio.Mid] = pf(row[13])
		fr.Snapshot.Pulses[audio.Treble] = pf(row[14])
		fr.Snapshot.Tense = row[15] == "1"
		fr.Modulation.GMMultiplier = pf(row[16])
		fr.Modulation.TimeScale = pf(row[17])
		fr.Modulation.PulsePotential = pf(row[18])
		frames = append(frames, fr)
	}
	return frames, nil
}

// LoadBodies reads a run's bodies.csv back into records.
func (s *Store) LoadBodies(runID string) ([]BodyRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	bodies := make([]BodyRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) != 7 {
			return nil, fmt.Errorf("bodies.csv for %s: expected 7 columns, got %d", runID, len(row))
		}
		bodies = append(bodies, BodyRecord{
			TMs:  pf(row[0]),
			Name: row[1],
			Pos:  gravity.Vec2{X: pf(row[2]), Y: pf(row[3])},
			Vel:  gravity.Vec2{X: pf(row[4]), Y: pf(row[5])},
			Life: pf(row[6]),
		})
	}
	return bodies, nil
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func fb(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func pf(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
