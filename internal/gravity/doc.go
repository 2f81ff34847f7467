// Package gravity implements the audio-modulated n-body core.
//
//   - [Field]: softened Newtonian force law with an explicit [Modulation]
//     input (GM multiplier, time scale, pulse shockwave)
//   - [StepVerlet]: second-order velocity-Verlet integration
//   - [System]: sun + planets + transient comets, vis-viva orbital
//     initialization, comet lifecycle, mode gating
//
// The system is frame-synchronous: [System.Update] runs once per frame
// after the analyzer, on the same goroutine. It is not safe for concurrent
// use and does not need to be.
package gravity
