package audio

// EnergyHistory is a fixed-length ring of normalized energy samples for one
// band. The buffer is zero-filled at construction so its length is always
// exactly n; Push evicts the oldest sample.
type EnergyHistory struct {
	samples []float64
	head    int
}

// NewEnergyHistory panics if n < 2: the rising-edge comparison needs at
// least one prior sample, and a violation here is a programming error.
func NewEnergyHistory(n int) *EnergyHistory {
	if n < 2 {
		panic(ErrHistoryLength)
	}
	return &EnergyHistory{samples: make([]float64, n)}
}

func (h *EnergyHistory) Len() int { return len(h.samples) }

// Push stores v, evicting the oldest sample.
func (h *EnergyHistory) Push(v float64) {
	h.samples[h.head] = v
	h.head = (h.head + 1) % len(h.samples)
}

// Last returns the most recently pushed sample.
func (h *EnergyHistory) Last() float64 {
	idx := h.head - 1
	if idx < 0 {
		idx = len(h.samples) - 1
	}
	return h.samples[idx]
}

// Mean returns the average over the whole window.
func (h *EnergyHistory) Mean() float64 {
	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Reset zeroes the window.
func (h *EnergyHistory) Reset() {
	for i := range h.samples {
		h.samples[i] = 0
	}
	h.head = 0
}
