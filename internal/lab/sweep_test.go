package lab

import (
	"testing"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

func smallGrid() Grid {
	return Grid{
		AlphaOpt:  []float64{0.5},
		Kappa:     []float64{0, 0.2},
		BetaHeat:  []float64{0.1},
		GammaDiss: []float64{0.05},
		Steps:     2000,
		Seed:      42,
	}
}

func TestGridExpansion(t *testing.T) {
	g := Grid{
		AlphaOpt:  []float64{0.3, 0.5},
		Kappa:     []float64{0, 0.2},
		BetaHeat:  []float64{0.1},
		GammaDiss: []float64{0.05, 0.1},
		Steps:     100,
		Seed:      7,
	}
	exps := g.Experiments()
	if len(exps) != 8 {
		t.Fatalf("got %d experiments, want 8", len(exps))
	}
	if exps[0].Name != "a0.3_k0_b0.1_g0.05" {
		t.Fatalf("first experiment name %q", exps[0].Name)
	}
	for _, e := range exps {
		if e.Params.Steps != 100 || e.Params.Seed != 7 {
			t.Fatalf("experiment %q did not inherit steps/seed: %+v", e.Name, e.Params)
		}
	}
}

func TestSweepFindsFirstCycle(t *testing.T) {
	// kappa=0 settles into stasis; kappa=0.2 sustains the cycle.
	res, err := Sweep(smallGrid(), false)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	if res.FirstCycle != 1 {
		t.Fatalf("first cycle index %d, want 1", res.FirstCycle)
	}
	if res.Results[1].Verdict.Label != verdict.LabelLimitCycle {
		t.Fatalf("hit label %s, want LIMIT_CYCLE", res.Results[1].Verdict.Label)
	}
}

func TestSweepStopOnCycle(t *testing.T) {
	g := smallGrid()
	// Put the cycling combination first so the early stop is observable.
	g.Kappa = []float64{0.2, 0}

	res, err := Sweep(g, true)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("got %d results after early stop, want 1", len(res.Results))
	}
	if res.FirstCycle != 0 {
		t.Fatalf("first cycle index %d, want 0", res.FirstCycle)
	}
}

func TestSweepIsolatesFailures(t *testing.T) {
	g := smallGrid()
	g.Steps = 2000
	// Inject an invalid combination via a negative alpha alongside a valid one.
	g.AlphaOpt = []float64{-1, 0.5}

	res, err := Sweep(g, false)
	if err == nil {
		t.Fatal("expected aggregate error, got nil")
	}
	// The two valid kappa combinations under alpha=0.5 still complete.
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
}

func TestSweepNoCycle(t *testing.T) {
	g := smallGrid()
	g.Kappa = []float64{0}

	res, err := Sweep(g, false)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.FirstCycle != -1 {
		t.Fatalf("first cycle index %d, want -1", res.FirstCycle)
	}
}
