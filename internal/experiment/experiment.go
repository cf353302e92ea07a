package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/sim"
)

// Config describes a headless run: Ticks steps of one topic with the
// parameters overridden up front.
type Config struct {
	Topic           string
	Ticks           int
	Seed            int64
	HistoryCapacity int
	Params          map[string]float64
}

// Hook runs before a tick is stepped. tick is the number about to be
// produced.
type Hook func(tick int, s *sim.Session) error

type Result struct {
	Topic   string             `json:"topic"`
	Kind    dynamo.Kind        `json:"kind"`
	Samples []dynamo.Sample    `json:"samples"`
	Window  []dynamo.Sample    `json:"window"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Events  []dynamo.Event     `json:"events,omitempty"`
}

// Final returns the last sample of the run.
func (r *Result) Final() (dynamo.Sample, bool) {
	if len(r.Samples) == 0 {
		return dynamo.Sample{}, false
	}
	return r.Samples[len(r.Samples)-1], true
}

// Experiment steps a session synchronously, without the wall clock.
type Experiment struct {
	cfg     Config
	reg     *Registry
	session *sim.Session
	metrics []sim.Metric
	hooks   []Hook
}

func New(cfg Config, reg *Registry) *Experiment {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Experiment{cfg: cfg, reg: reg}
}

// Setup builds the session and applies parameter overrides. Without explicit
// metrics the kind's defaults are used.
func (e *Experiment) Setup(opts []sim.Option, metrics ...sim.Metric) error {
	simulation := e.reg.New(e.cfg.Topic, e.cfg.Seed)
	if e.cfg.HistoryCapacity > 0 {
		opts = append(opts, sim.WithHistoryCapacity(e.cfg.HistoryCapacity))
	}
	e.session = sim.NewSession(e.cfg.Topic, simulation, opts...)

	names := make([]string, 0, len(e.cfg.Params))
	for name := range e.cfg.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := e.session.SetParam(name, e.cfg.Params[name]); err != nil {
			return fmt.Errorf("topic %s: %w", e.cfg.Topic, err)
		}
	}
	e.session.Settle()

	if len(metrics) == 0 {
		metrics = e.reg.DefaultMetrics(simulation.Kind())
	}
	e.metrics = metrics
	return nil
}

func (e *Experiment) OnTick(h Hook) {
	e.hooks = append(e.hooks, h)
}

func (e *Experiment) Session() *sim.Session {
	return e.session
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	result := &Result{
		Topic:   e.cfg.Topic,
		Kind:    e.session.Kind(),
		Samples: make([]dynamo.Sample, 0, e.cfg.Ticks),
	}

	var runErr error
	for i := 1; i <= e.cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		for _, h := range e.hooks {
			if runErr = h(i, e.session); runErr != nil {
				break
			}
		}
		if runErr != nil {
			break
		}

		sample, err := e.session.Step()
		if err != nil {
			runErr = err
			break
		}
		for _, m := range e.metrics {
			m.Observe(sample)
		}
		result.Samples = append(result.Samples, sample)
	}

	result.Window = e.session.History()
	result.Events = e.session.Events()
	result.Metrics = make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}
