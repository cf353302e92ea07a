package sim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/observability"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
	"github.com/san-kum/chemlab/internal/projection"
	"github.com/san-kum/chemlab/internal/steps"
)

const DefaultInterval = 100 * time.Millisecond

type Option func(*Session)

func WithInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

func WithHistoryCapacity(n int) Option {
	return func(s *Session) { s.capacity = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = logging.OrNoop(l) }
}

func WithCollector(c *observability.SessionCollector) Option {
	return func(s *Session) { s.metrics = c }
}

// Session binds one Simulation to its scheduler and history. All access to
// the simulation goes through the session lock, so a tick and a user edit
// never interleave.
type Session struct {
	topic    string
	sim      Simulation
	interval time.Duration
	capacity int
	logger   logging.Logger
	metrics  *observability.SessionCollector
	sched    *Scheduler
	active   atomic.Bool

	mu      sync.Mutex
	tick    int
	history *History
	events  []dynamo.Event
	fault   error
}

func NewSession(topic string, simulation Simulation, opts ...Option) *Session {
	s := &Session{
		topic:    topic,
		sim:      simulation,
		interval: DefaultInterval,
		capacity: DefaultHistoryCapacity,
		logger:   logging.Noop(),
	}
	if t, ok := simulation.(Timed); ok && t.TickInterval() > 0 {
		s.interval = t.TickInterval()
	}
	if w, ok := simulation.(Windowed); ok && w.HistoryCapacity() > 0 {
		s.capacity = w.HistoryCapacity()
	}
	for _, opt := range opts {
		opt(s)
	}
	if p, ok := simulation.(Paced); ok {
		p.SetTickInterval(s.interval)
	}
	s.logger = s.logger.With(logging.String("topic", topic), logging.String("kind", simulation.Kind().String()))
	s.history = NewHistory(s.capacity)
	s.sched = NewScheduler(s.scheduledStep,
		OnReset(s.clear),
		OnFault(s.fail),
		WithSchedulerLogger(s.logger),
	)
	return s
}

func (s *Session) Topic() string           { return s.topic }
func (s *Session) Kind() dynamo.Kind       { return s.sim.Kind() }
func (s *Session) Interval() time.Duration { return s.interval }
func (s *Session) Running() bool           { return s.sched.Running() }

// Start begins ticking on the session interval.
func (s *Session) Start() error {
	// counted before the loop runs; a first-tick fault uncounts it
	started := s.active.CompareAndSwap(false, true)
	if started {
		s.metrics.SessionStarted()
	}
	if err := s.sched.Start(s.interval); err != nil {
		if started {
			s.deactivate()
		}
		return err
	}
	s.logger.Info(context.Background(), "session started", logging.Duration("interval", s.interval))
	return nil
}

func (s *Session) Stop() {
	s.sched.Stop()
	s.deactivate()
}

// Reset stops ticking and returns the simulation, history and tick count to
// their initial state. Parameter values are kept.
func (s *Session) Reset() {
	s.sched.Reset()
	s.deactivate()
	s.logger.Info(context.Background(), "session reset")
}

func (s *Session) deactivate() {
	if s.active.CompareAndSwap(true, false) {
		s.metrics.SessionStopped()
	}
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = 0
	s.history.Reset()
	s.events = nil
	s.fault = nil
	s.sim.Reset()
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.fault = err
	s.mu.Unlock()
	s.metrics.TickFault(s.sim.Kind().String())
	s.deactivate()
	s.logger.Warn(context.Background(), "session stopped after tick fault", logging.Err(err))
}

func (s *Session) scheduledStep() error {
	_, err := s.Step()
	return err
}

// Step advances the simulation by one tick and records the sample.
func (s *Session) Step() (sample dynamo.Sample, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tick + 1
	defer func() {
		if r := recover(); r != nil {
			err = &dynamo.TickError{Tick: next, Topic: s.topic, Wrapped: fmt.Errorf("%w: %v", dynamo.ErrTickPanic, r)}
		}
	}()

	start := time.Now()
	out := s.sim.Step(next)
	if !out.IsValid() {
		return dynamo.Sample{}, &dynamo.TickError{Tick: next, Topic: s.topic, Wrapped: dynamo.ErrInvalidOutputs}
	}

	s.tick = next
	sample = dynamo.Sample{
		Tick:    next,
		Time:    float64(next) * s.interval.Seconds(),
		Outputs: out.Clone(),
	}
	s.history.Push(sample)

	if src, ok := s.sim.(EventSource); ok {
		for _, name := range src.DrainEvents() {
			s.events = append(s.events, dynamo.Event{Tick: next, Name: name})
			s.logger.Info(context.Background(), "simulation event", logging.String("event", name), logging.Int("tick", next))
		}
	}
	s.metrics.ObserveTick(s.sim.Kind().String(), time.Since(start))
	return sample, nil
}

// Settle takes the current parameter values as the starting configuration.
// Call it after applying overrides and before the first tick.
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sim.(Settler); ok {
		st.Settle()
	}
}

// SetParam writes a parameter, clamped into range. It takes effect on the
// next tick.
func (s *Session) SetParam(name string, v float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Params().Set(name, v)
}

func (s *Session) Params() []param.Parameter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Params().Params()
}

func (s *Session) Drag(dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.sim.(Rotatable)
	if !ok {
		return fmt.Errorf("%w: drag on %s", dynamo.ErrUnsupported, s.sim.Kind())
	}
	r.Drag(dx, dy)
	return nil
}

func (s *Session) SetDragging(dragging bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.sim.(Rotatable)
	if !ok {
		return fmt.Errorf("%w: drag on %s", dynamo.ErrUnsupported, s.sim.Kind())
	}
	r.SetDragging(dragging)
	return nil
}

// StepControl applies fn to the simulation's step machine.
func (s *Session) StepControl(fn func(m *steps.Machine) error) (steps.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sim.(Stepped)
	if !ok {
		return steps.State{}, fmt.Errorf("%w: steps on %s", dynamo.ErrUnsupported, s.sim.Kind())
	}
	m := st.Machine()
	if err := fn(m); err != nil {
		return m.State(), err
	}
	return m.State(), nil
}

func (s *Session) NextStep() (steps.State, error) {
	return s.StepControl(func(m *steps.Machine) error { m.Next(); return nil })
}

func (s *Session) PrevStep() (steps.State, error) {
	return s.StepControl(func(m *steps.Machine) error { m.Prev(); return nil })
}

func (s *Session) GoToStep(i int) (steps.State, error) {
	return s.StepControl(func(m *steps.Machine) error { return m.GoTo(i) })
}

func (s *Session) ToggleAutoplay() (steps.State, error) {
	return s.StepControl(func(m *steps.Machine) error { m.ToggleAutoplay(); return nil })
}

func (s *Session) History() []dynamo.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Samples()
}

func (s *Session) Series(key string) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Series(key)
}

func (s *Session) Latest() (dynamo.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample, ok := s.history.Latest()
	if !ok {
		return sample, false
	}
	return sample.Clone(), true
}

func (s *Session) Events() []dynamo.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dynamo.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Err returns the fault that stopped the scheduler, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Snapshot is everything a renderer needs to draw the current state.
type Snapshot struct {
	Topic     string                 `json:"topic"`
	Kind      dynamo.Kind            `json:"kind"`
	Tick      int                    `json:"tick"`
	Running   bool                   `json:"running"`
	Sample    *dynamo.Sample         `json:"sample,omitempty"`
	Params    []param.Parameter      `json:"params"`
	Particles []particles.Particle   `json:"particles,omitempty"`
	Bounds    *particles.Bounds      `json:"bounds,omitempty"`
	Atoms     []projection.Projected `json:"atoms,omitempty"`
	Bonds     []projection.Bond      `json:"bonds,omitempty"`
	Rotation  *projection.Rotation   `json:"rotation,omitempty"`
	Phase     *steps.State           `json:"phase,omitempty"`
	PhaseName string                 `json:"phaseName,omitempty"`
	Labels    map[string]string      `json:"labels,omitempty"`
	Events    []dynamo.Event         `json:"events,omitempty"`
	Fault     string                 `json:"fault,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	running := s.Running()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Topic:   s.topic,
		Kind:    s.sim.Kind(),
		Tick:    s.tick,
		Running: running,
		Params:  s.sim.Params().Params(),
	}
	if latest, ok := s.history.Latest(); ok {
		c := latest.Clone()
		snap.Sample = &c
	}
	if ps, ok := s.sim.(ParticleSource); ok {
		snap.Particles = ps.Particles()
		b := ps.Bounds()
		snap.Bounds = &b
	}
	if ms, ok := s.sim.(MoleculeSource); ok {
		snap.Atoms = ms.Atoms()
		snap.Bonds = ms.Bonds()
	}
	if r, ok := s.sim.(Rotatable); ok {
		rot := r.Rotation()
		snap.Rotation = &rot
	}
	if st, ok := s.sim.(Stepped); ok {
		state := st.Machine().State()
		snap.Phase = &state
		snap.PhaseName = st.Machine().Current().Name
	}
	if l, ok := s.sim.(Labeled); ok {
		snap.Labels = l.Labels()
	}
	if len(s.events) > 0 {
		snap.Events = append([]dynamo.Event(nil), s.events...)
	}
	if s.fault != nil {
		snap.Fault = s.fault.Error()
	}
	return snap
}
