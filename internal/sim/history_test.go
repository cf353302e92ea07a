package sim

import (
	"testing"

	"github.com/san-kum/chemlab/internal/dynamo"
)

func sampleAt(tick int) dynamo.Sample {
	return dynamo.Sample{Tick: tick, Time: float64(tick) * 0.1, Outputs: dynamo.Outputs{"v": float64(tick)}}
}

func TestHistoryEvictsOldest(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushes   int
		wantLen  int
		oldest   int
	}{
		{"under capacity", 30, 10, 10, 1},
		{"exactly full", 30, 30, 30, 1},
		{"overflow", 30, 75, 30, 46},
		{"tiny window", 3, 10, 3, 8},
		{"default capacity", 0, 40, DefaultHistoryCapacity, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			for i := 1; i <= tt.pushes; i++ {
				h.Push(sampleAt(i))
			}
			if h.Len() != tt.wantLen {
				t.Fatalf("expected length %d, got %d", tt.wantLen, h.Len())
			}
			oldest, _ := h.Oldest()
			if oldest.Tick != tt.oldest {
				t.Errorf("expected oldest tick %d, got %d", tt.oldest, oldest.Tick)
			}
			latest, _ := h.Latest()
			if latest.Tick != tt.pushes {
				t.Errorf("expected latest tick %d, got %d", tt.pushes, latest.Tick)
			}

			samples := h.Samples()
			for i := 1; i < len(samples); i++ {
				if samples[i].Tick != samples[i-1].Tick+1 {
					t.Fatalf("samples out of order at %d: %v", i, samples)
				}
			}
		})
	}
}

func TestHistorySamplesAreCopies(t *testing.T) {
	h := NewHistory(4)
	h.Push(sampleAt(1))
	got := h.Samples()
	got[0].Outputs["v"] = 99

	again, _ := h.At(0)
	if again.Outputs["v"] != 1 {
		t.Error("mutating a returned sample leaked into the history")
	}
}

func TestHistorySeriesAndReset(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(sampleAt(i))
	}
	series := h.Series("v")
	if len(series) != 3 || series[0] != 3 || series[2] != 5 {
		t.Errorf("unexpected series %v", series)
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("expected empty history after reset, got %d", h.Len())
	}
	if _, ok := h.Latest(); ok {
		t.Error("Latest should report false on an empty history")
	}
	if _, ok := h.At(-1); ok {
		t.Error("At(-1) should report false")
	}
}
