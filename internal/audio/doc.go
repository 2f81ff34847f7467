// Package audio implements the multi-band adaptive beat-detection pipeline.
//
// The pipeline converts a per-frame spectrum [Frame] into a [Snapshot] of
// beat events, pulse envelopes and smoothed levels:
//
//   - [EnergyHistory]: fixed-length window of recent band energy
//   - [BeatDetector]: adaptive-threshold, rising-edge onset detector
//   - [Analyzer]: one detector per [Band] plus smoothing and pulse envelopes
//
// The whole pipeline is frame-synchronous and single-threaded: the caller
// invokes [Analyzer.Update] exactly once per frame, before the gravity
// system consumes the snapshot. No locking is required or provided.
package audio
