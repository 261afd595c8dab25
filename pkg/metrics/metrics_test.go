package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveCache(false)
	m.ObserveCache(true)
	m.ObserveCache(true)
	m.ObserveRun(5, 5, 300, 0.00099, 20*time.Millisecond)
	m.ObserveRun(3, 2, 100, 0.5, time.Millisecond)
	m.ObserveError()
	m.ObserveRender("svg")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"hits", testutil.ToFloat64(m.LayoutRuns.WithLabelValues(CacheHit)), 2},
		{"misses", testutil.ToFloat64(m.LayoutRuns.WithLabelValues(CacheMiss)), 1},
		{"ticks", testutil.ToFloat64(m.Ticks), 400},
		{"nodes", testutil.ToFloat64(m.Nodes), 3},
		{"edges", testutil.ToFloat64(m.Edges), 2},
		{"alpha", testutil.ToFloat64(m.FinalAlpha), 0.5},
		{"errors", testutil.ToFloat64(m.LayoutErrors), 1},
		{"renders", testutil.ToFloat64(m.Renders.WithLabelValues("svg")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveError()
	if got := testutil.ToFloat64(b.LayoutErrors); got != 0 {
		t.Errorf("second registry errors = %v, want 0", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveCache(true)
	m.ObserveRun(1, 0, 1, 0, 0)
	m.ObserveError()
	m.ObserveRender("svg")
	if err := m.WriteFile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("WriteFile on nil = %v, want nil", err)
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveRun(2, 1, 10, 0.1, time.Millisecond)
	path := filepath.Join(t.TempDir(), "forcetower.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"forcetower_simulation_ticks_total 10", "forcetower_graph_nodes 2"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("output missing %q", name)
		}
	}
}
