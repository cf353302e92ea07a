package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"temperature=1.5", "shape=3"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"temperature": 1.5, "shape": 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseSets mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"temperature", "=1", "pressure=high"} {
		if _, err := parseSets([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatParams(t *testing.T) {
	got := formatParams(map[string]float64{"pressure": 2, "concentration": 0.5})
	if got != "concentration=0.5 pressure=2" {
		t.Errorf("unexpected %q", got)
	}
}
