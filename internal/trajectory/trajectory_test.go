package trajectory

import (
	"testing"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
)

func TestRecordAndSeries(t *testing.T) {
	tr := New(2)
	tr.Record(dynamics.State{Omega: 0.1, H: 0.05, StepIndex: 0})
	tr.Record(dynamics.State{Omega: 0.2, H: 0.06, StepIndex: 1})
	tr.Record(dynamics.State{Omega: 0.3, H: 0.07, StepIndex: 2})

	if tr.Len() != 3 {
		t.Fatalf("len %d, want 3", tr.Len())
	}
	if got := tr.At(1); got.Step != 1 || got.Omega != 0.2 || got.H != 0.06 {
		t.Fatalf("point 1 = %+v", got)
	}

	omega := tr.Omega()
	h := tr.H()
	if len(omega) != 3 || len(h) != 3 {
		t.Fatalf("series lengths %d/%d, want 3/3", len(omega), len(h))
	}
	if omega[2] != 0.3 || h[0] != 0.05 {
		t.Fatalf("series values omega[2]=%v h[0]=%v", omega[2], h[0])
	}
}

func TestFromSeriesRoundTrip(t *testing.T) {
	omega := []float64{0.1, 0.5, 0.9}
	h := []float64{0.0, 0.2, 0.4}

	tr := FromSeries(omega, h)
	if tr.Len() != 3 {
		t.Fatalf("len %d, want 3", tr.Len())
	}
	for i := 0; i < 3; i++ {
		p := tr.At(i)
		if p.Step != i || p.Omega != omega[i] || p.H != h[i] {
			t.Fatalf("point %d = %+v", i, p)
		}
	}
}

func TestComputeStats(t *testing.T) {
	series := []float64{0, 0.5, 1.0, 0.5}
	s := ComputeStats(series, 2)

	if s.Mean != 0.5 {
		t.Fatalf("mean %v, want 0.5", s.Mean)
	}
	// population variance: (0.25 + 0 + 0.25 + 0) / 4
	if s.Variance != 0.125 {
		t.Fatalf("variance %v, want 0.125", s.Variance)
	}
	if s.Min != 0 || s.Max != 1 {
		t.Fatalf("min/max %v/%v, want 0/1", s.Min, s.Max)
	}
	// terminal window 2: (1.0 + 0.5) / 2
	if s.TerminalMean != 0.75 {
		t.Fatalf("terminal mean %v, want 0.75", s.TerminalMean)
	}
	if s.TerminalWindow != 2 {
		t.Fatalf("terminal window %d, want 2", s.TerminalWindow)
	}
}

func TestComputeStatsWindowTruncation(t *testing.T) {
	series := []float64{1, 1, 1, 1}
	s := ComputeStats(series, 50)
	if s.TerminalWindow != 4 {
		t.Fatalf("terminal window %d, want 4", s.TerminalWindow)
	}
	if s.TerminalMean != 1 {
		t.Fatalf("terminal mean %v, want 1", s.TerminalMean)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil, 50)
	if s != (Stats{}) {
		t.Fatalf("empty series stats = %+v", s)
	}
}

func TestCheckPasses(t *testing.T) {
	tr := New(2)
	for i := 0; i <= 2; i++ {
		tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: i})
	}
	res := Check(tr, 2)
	if !res.Passed {
		t.Fatalf("valid trajectory failed check: %s", res.Reason)
	}
	if len(res.Metrics) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(res.Metrics))
	}
}

func TestCheckFailsOnLength(t *testing.T) {
	tr := New(5)
	tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: 0})
	res := Check(tr, 5)
	if res.Passed {
		t.Fatal("short trajectory passed check")
	}
}

func TestCheckFailsOnBounds(t *testing.T) {
	tr := New(1)
	tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: 0})
	tr.Record(dynamics.State{Omega: 1.5, H: 0.1, StepIndex: 1})
	res := Check(tr, 1)
	if res.Passed {
		t.Fatal("out-of-bounds omega passed check")
	}
	for _, m := range res.Metrics {
		if m.Name == "bounds_invariant" && m.Pass {
			t.Fatal("bounds_invariant metric passed")
		}
	}
}

func TestCheckFailsOnIndexGap(t *testing.T) {
	tr := New(2)
	tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: 0})
	tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: 2})
	tr.Record(dynamics.State{Omega: 0.5, H: 0.1, StepIndex: 3})
	res := Check(tr, 2)
	if res.Passed {
		t.Fatal("gapped indices passed check")
	}
}
