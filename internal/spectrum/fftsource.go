package spectrum

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/sonorbit/internal/audio"
)

// Band edges in Hz. The five ranges match the analyzer's expectations:
// bass, low-mid, mid, high-mid, treble.
var bandEdges = [6]float64{20, 140, 400, 2600, 5200, 14000}

// magGain scales averaged bin magnitudes into the analyzer's [0,1] range.
const magGain = 6.0

// FFTSource converts mono PCM blocks into normalized band energies. It is
// the in-repo stand-in for the spectrum front end; any producer of
// audio.Frame values can replace it.
type FFTSource struct {
	sampleRate float64
	window     []float64
}

func NewFFTSource(sampleRate float64) *FFTSource {
	return &FFTSource{sampleRate: sampleRate}
}

// Analyze windows the block, runs a real FFT and buckets bin magnitudes
// into the five band energies, overall RMS volume and the raw spectral
// centroid in Hz.
func (s *FFTSource) Analyze(samples []float64) audio.Frame {
	n := len(samples)
	if n == 0 {
		return audio.Frame{}
	}

	if len(s.window) != n {
		s.window = hann(n)
	}

	buf := make([]float64, n)
	rms := 0.0
	for i, v := range samples {
		buf[i] = v * s.window[i]
		rms += v * v
	}
	rms = math.Sqrt(rms / float64(n))

	spectrum := fft.FFTReal(buf)

	half := n / 2
	binHz := s.sampleRate / float64(n)

	var sums [5]float64
	var counts [5]int
	centroidNum, centroidDen := 0.0, 0.0

	for i := 1; i < half; i++ {
		re := real(spectrum[i])
		im := imag(spectrum[i])
		mag := 2 * math.Sqrt(re*re+im*im) / float64(n)
		freq := float64(i) * binHz

		centroidNum += freq * mag
		centroidDen += mag

		for b := 0; b < 5; b++ {
			if freq >= bandEdges[b] && freq < bandEdges[b+1] {
				sums[b] += mag
				counts[b]++
				break
			}
		}
	}

	var energies [5]float64
	for b := 0; b < 5; b++ {
		if counts[b] > 0 {
			energies[b] = clampUnit(sums[b] / float64(counts[b]) * magGain)
		}
	}

	centroid := 0.0
	if centroidDen > 0 {
		centroid = centroidNum / centroidDen
	}

	return audio.Frame{
		Bass:     energies[0],
		LowMid:   energies[1],
		Mid:      energies[2],
		HighMid:  energies[3],
		Treble:   energies[4],
		Volume:   clampUnit(rms * 2),
		Centroid: centroid,
	}
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
