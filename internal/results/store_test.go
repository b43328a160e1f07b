package results

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "lab.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord() RunRecord {
	return RunRecord{
		RunID: "11111111-2222-3333-4444-555555555555",
		Name:  "baseline",
		Params: dynamics.Params{
			AlphaOpt: 0.5, Kappa: 0.2, BetaHeat: 0.1, GammaDiss: 0.05,
			Steps: 3, Seed: 42,
		},
		Omega:     []float64{0.1, 0.14, 0.155, 0.17},
		H:         []float64{0.05, 0.0575, 0.064, 0.07},
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Verdict: &verdict.Verdict{
			Label:      verdict.LabelLimitCycle,
			Score:      0.7089,
			Lag:        86,
			Thresholds: verdict.DefaultThresholds(),
		},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	rec := sampleRecord()

	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetRun(rec.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Name != rec.Name {
		t.Fatalf("name %q, want %q", got.Name, rec.Name)
	}
	if got.Params != rec.Params {
		t.Fatalf("params %+v, want %+v", got.Params, rec.Params)
	}
	if len(got.Omega) != len(rec.Omega) {
		t.Fatalf("omega length %d, want %d", len(got.Omega), len(rec.Omega))
	}
	for i := range rec.Omega {
		// blob codec must be exact, not approximate
		if got.Omega[i] != rec.Omega[i] || got.H[i] != rec.H[i] {
			t.Fatalf("series[%d] = %v/%v, want %v/%v",
				i, got.Omega[i], got.H[i], rec.Omega[i], rec.H[i])
		}
	}
	if got.Verdict == nil {
		t.Fatal("verdict not loaded")
	}
	if got.Verdict.Label != verdict.LabelLimitCycle || got.Verdict.Lag != 86 {
		t.Fatalf("verdict %+v", got.Verdict)
	}
	if got.Verdict.Thresholds != verdict.DefaultThresholds() {
		t.Fatalf("thresholds %+v", got.Verdict.Thresholds)
	}
}

func TestSaveRunWithoutVerdict(t *testing.T) {
	store := newTestStore(t)
	rec := sampleRecord()
	rec.Verdict = nil

	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := store.GetRun(rec.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Verdict != nil {
		t.Fatalf("expected nil verdict, got %+v", got.Verdict)
	}
}

func TestGetRunMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetRun("nope"); err == nil {
		t.Fatal("expected error for missing run")
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := newTestStore(t)
	rec := sampleRecord()
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	if err := store.SaveRun(rec); err == nil {
		t.Fatal("duplicate run_id accepted")
	}
}

func TestListRuns(t *testing.T) {
	store := newTestStore(t)

	a := sampleRecord()
	b := sampleRecord()
	b.RunID = "66666666-7777-8888-9999-000000000000"
	b.Name = "control"
	b.CreatedAt = a.CreatedAt.Add(time.Minute)
	b.Verdict = nil

	if err := store.SaveRun(a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := store.SaveRun(b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	rows, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// newest first
	if rows[0].Name != "control" || rows[1].Name != "baseline" {
		t.Fatalf("row order %q, %q", rows[0].Name, rows[1].Name)
	}
	if rows[1].Label != "LIMIT_CYCLE" {
		t.Fatalf("baseline label %q", rows[1].Label)
	}
	if rows[0].Label != "" {
		t.Fatalf("unverdicted run label %q, want empty", rows[0].Label)
	}
}

func TestFromRunResult(t *testing.T) {
	res, err := lab.Run(lab.Experiment{
		Name: "baseline",
		Params: dynamics.Params{
			AlphaOpt: 0.5, Kappa: 0.2, BetaHeat: 0.1, GammaDiss: 0.05,
			Steps: 100, Seed: 42,
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	rec := FromRunResult(res)
	if rec.RunID != res.RunID {
		t.Fatalf("run id %q, want %q", rec.RunID, res.RunID)
	}
	if len(rec.Omega) != 101 || len(rec.H) != 101 {
		t.Fatalf("series lengths %d/%d, want 101", len(rec.Omega), len(rec.H))
	}
	if rec.Verdict == nil || rec.Verdict.Label != res.Verdict.Label {
		t.Fatalf("verdict not carried: %+v", rec.Verdict)
	}
}
