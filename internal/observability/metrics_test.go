package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestSessionCollectorRecordsTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSessionCollector(reg)
	if err != nil {
		t.Fatalf("NewSessionCollector: %v", err)
	}

	c.ObserveTick("titration", 2*time.Millisecond)
	c.ObserveTick("titration", time.Millisecond)
	c.TickFault("equilibrium")
	c.SessionStarted()
	c.SessionStarted()
	c.SessionStopped()

	if got := testutil.ToFloat64(c.Ticks.WithLabelValues("titration")); got != 2 {
		t.Errorf("chemlab_ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.TickFaults.WithLabelValues("equilibrium")); got != 1 {
		t.Errorf("chemlab_tick_faults_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ActiveSessions); got != 1 {
		t.Errorf("chemlab_active_sessions = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "chemlab_tick_duration_seconds", "kind", "titration"); count != 2 {
		t.Errorf("chemlab_tick_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestCollectorsReuseExistingRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSessionCollector(reg)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := NewSessionCollector(reg)
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}
	first.ObserveTick("atom", time.Millisecond)
	if got := testutil.ToFloat64(second.Ticks.WithLabelValues("atom")); got != 1 {
		t.Errorf("collectors should share the registered vector, got %v", got)
	}
}

func TestNilCollectorsAreSafe(t *testing.T) {
	var s *SessionCollector
	s.ObserveTick("atom", time.Millisecond)
	s.TickFault("atom")
	s.SessionStarted()
	s.SessionStopped()

	var tc *TutorCollector
	tc.ObserveRequest(OutcomePreset)
	tc.ObserveUpstream(time.Second)
}

func TestTutorCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewTutorCollector(reg)
	if err != nil {
		t.Fatalf("NewTutorCollector: %v", err)
	}
	c.ObserveRequest(OutcomePreset)
	c.ObserveRequest(OutcomePreset)
	c.ObserveRequest(OutcomeUpstream)
	c.ObserveUpstream(300 * time.Millisecond)

	if got := testutil.ToFloat64(c.Requests.WithLabelValues(OutcomePreset)); got != 2 {
		t.Errorf("preset requests = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(c.UpstreamLatency); got != 1 {
		t.Errorf("expected one latency series, got %d", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSessionCollector(reg)
	if err != nil {
		t.Fatalf("NewSessionCollector: %v", err)
	}
	c.ObserveTick("redox", time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `chemlab_ticks_total{kind="redox"} 1`) {
		t.Errorf("metrics output missing tick counter:\n%s", body)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name, label, value string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if hasLabel(m.GetLabel(), label, value) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func hasLabel(pairs []*dto.LabelPair, name, value string) bool {
	for _, lp := range pairs {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}
