// Package observability exposes Prometheus metrics for lab sessions and the
// tutor proxy.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionCollector records scheduler activity across all sessions.
type SessionCollector struct {
	gatherer prometheus.Gatherer

	Ticks          *prometheus.CounterVec
	TickDurations  *prometheus.HistogramVec
	TickFaults     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// NewSessionCollector registers session metrics against reg, defaulting to
// the global registry when nil.
func NewSessionCollector(reg prometheus.Registerer) (*SessionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chemlab_ticks_total",
		Help: "Total number of completed simulation ticks, labeled by simulation kind.",
	}, []string{"kind"}), "chemlab_ticks_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chemlab_tick_duration_seconds",
		Help:    "Time spent computing one simulation tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"kind"}), "chemlab_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	faults, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chemlab_tick_faults_total",
		Help: "Ticks that failed and stopped their session, labeled by simulation kind.",
	}, []string{"kind"}), "chemlab_tick_faults_total")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chemlab_active_sessions",
		Help: "Number of sessions whose scheduler is currently running.",
	}), "chemlab_active_sessions")
	if err != nil {
		return nil, err
	}

	return &SessionCollector{
		gatherer:       gatherer,
		Ticks:          ticks,
		TickDurations:  durations,
		TickFaults:     faults,
		ActiveSessions: active,
	}, nil
}

func (c *SessionCollector) ObserveTick(kind string, took time.Duration) {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues(kind).Inc()
	c.TickDurations.WithLabelValues(kind).Observe(took.Seconds())
}

func (c *SessionCollector) TickFault(kind string) {
	if c == nil {
		return
	}
	c.TickFaults.WithLabelValues(kind).Inc()
}

func (c *SessionCollector) SessionStarted() {
	if c == nil {
		return
	}
	c.ActiveSessions.Inc()
}

func (c *SessionCollector) SessionStopped() {
	if c == nil {
		return
	}
	c.ActiveSessions.Dec()
}

// Handler exposes a /metrics handler for the collector's gatherer.
func (c *SessionCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Tutor request outcomes.
const (
	OutcomeUpstream = "upstream"
	OutcomePreset   = "preset"
	OutcomeInvalid  = "invalid"
)

// TutorCollector records tutor proxy traffic.
type TutorCollector struct {
	Requests        *prometheus.CounterVec
	UpstreamLatency prometheus.Histogram
}

func NewTutorCollector(reg prometheus.Registerer) (*TutorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chemlab_tutor_requests_total",
		Help: "Tutor requests, labeled by how the answer was produced.",
	}, []string{"outcome"}), "chemlab_tutor_requests_total")
	if err != nil {
		return nil, err
	}

	latency, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chemlab_tutor_upstream_duration_seconds",
		Help:    "Latency of upstream chat completion calls, successful or not.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}), "chemlab_tutor_upstream_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &TutorCollector{Requests: requests, UpstreamLatency: latency}, nil
}

func (c *TutorCollector) ObserveRequest(outcome string) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(outcome).Inc()
}

func (c *TutorCollector) ObserveUpstream(took time.Duration) {
	if c == nil {
		return
	}
	c.UpstreamLatency.Observe(took.Seconds())
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
