// Package steps sequences multi-phase demonstrations.
//
// A [Machine] walks a fixed ring of [Phase] values. Manual navigation wraps
// in both directions; autoplay advances every N ticks. Each phase carries a
// static [Visual] lookup so renderers never compute what to show.
package steps

import (
	"fmt"

	"github.com/san-kum/chemlab/internal/dynamo"
)

// Visual lists what a renderer shows in a phase.
type Visual struct {
	Visible map[string]bool    `json:"visible,omitempty"`
	Offsets map[string]float64 `json:"offsets,omitempty"`
}

func (v Visual) Shows(element string) bool { return v.Visible[element] }

func (v Visual) Offset(element string) float64 { return v.Offsets[element] }

type Phase struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Visual Visual `json:"visual"`
}

type State struct {
	Index       int  `json:"index"`
	Count       int  `json:"count"`
	AutoPlaying bool `json:"autoPlaying"`
}

type Option func(*Machine)

// StopAtEnd makes autoplay halt on the last phase instead of wrapping.
func StopAtEnd() Option {
	return func(m *Machine) { m.stopAtEnd = true }
}

// Machine is not safe for concurrent use.
type Machine struct {
	phases    []Phase
	index     int
	autoplay  bool
	every     int
	elapsed   int
	stopAtEnd bool
}

// NewMachine builds a ring over phases that autoplays every `every` ticks.
func NewMachine(phases []Phase, every int, opts ...Option) (*Machine, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: no phases", dynamo.ErrStepOutOfRange)
	}
	if every < 1 {
		every = 1
	}
	m := &Machine{phases: phases, every: every}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Machine) Len() int { return len(m.phases) }

func (m *Machine) Index() int { return m.index }

func (m *Machine) Current() Phase { return m.phases[m.index] }

func (m *Machine) Phases() []Phase {
	out := make([]Phase, len(m.phases))
	copy(out, m.phases)
	return out
}

func (m *Machine) State() State {
	return State{Index: m.index, Count: len(m.phases), AutoPlaying: m.autoplay}
}

func (m *Machine) Next() int {
	m.index = (m.index + 1) % len(m.phases)
	m.elapsed = 0
	return m.index
}

func (m *Machine) Prev() int {
	n := len(m.phases)
	m.index = (m.index - 1 + n) % n
	m.elapsed = 0
	return m.index
}

func (m *Machine) GoTo(i int) error {
	if i < 0 || i >= len(m.phases) {
		return fmt.Errorf("%w: %d not in [0, %d)", dynamo.ErrStepOutOfRange, i, len(m.phases))
	}
	m.index = i
	m.elapsed = 0
	return nil
}

func (m *Machine) AutoPlaying() bool { return m.autoplay }

func (m *Machine) SetAutoplay(on bool) {
	m.autoplay = on
	m.elapsed = 0
}

func (m *Machine) ToggleAutoplay() bool {
	m.SetAutoplay(!m.autoplay)
	return m.autoplay
}

// Tick counts one scheduler tick and reports whether autoplay advanced.
func (m *Machine) Tick() bool {
	if !m.autoplay {
		return false
	}
	m.elapsed++
	if m.elapsed < m.every {
		return false
	}
	m.elapsed = 0
	if m.stopAtEnd && m.index == len(m.phases)-1 {
		m.autoplay = false
		return false
	}
	m.Next()
	return true
}

// Reset returns to the first phase with autoplay off.
func (m *Machine) Reset() {
	m.index = 0
	m.elapsed = 0
	m.autoplay = false
}
