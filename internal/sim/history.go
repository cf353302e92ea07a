package sim

import "github.com/san-kum/chemlab/internal/dynamo"

const DefaultHistoryCapacity = 30

// History is a fixed-capacity FIFO of samples. When full, pushing evicts the
// oldest sample.
type History struct {
	buf   []dynamo.Sample
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]dynamo.Sample, capacity)}
}

func (h *History) Push(s dynamo.Sample) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

func (h *History) Len() int { return h.size }

func (h *History) Cap() int { return len(h.buf) }

// At returns the i-th retained sample, 0 being the oldest.
func (h *History) At(i int) (dynamo.Sample, bool) {
	if i < 0 || i >= h.size {
		return dynamo.Sample{}, false
	}
	return h.buf[(h.start+i)%len(h.buf)], true
}

func (h *History) Oldest() (dynamo.Sample, bool) { return h.At(0) }

func (h *History) Latest() (dynamo.Sample, bool) { return h.At(h.size - 1) }

// Samples copies the retained samples, oldest first.
func (h *History) Samples() []dynamo.Sample {
	out := make([]dynamo.Sample, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)].Clone()
	}
	return out
}

// Series extracts one output across the window.
func (h *History) Series(key string) []float64 {
	out := make([]float64, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)].Outputs[key]
	}
	return out
}

func (h *History) Reset() {
	for i := range h.buf {
		h.buf[i] = dynamo.Sample{}
	}
	h.start = 0
	h.size = 0
}
