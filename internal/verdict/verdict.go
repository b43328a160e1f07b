package verdict

import (
	"fmt"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/autocorr"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/trajectory"
)

// #region label
// Label classifies the regime a run settled into.
type Label string

const (
	LabelStasis       Label = "STASIS"
	LabelLimitCycle   Label = "LIMIT_CYCLE"
	LabelCollapse     Label = "COLLAPSE"
	LabelInconclusive Label = "INCONCLUSIVE"
)

// #endregion label

// #region thresholds
// Thresholds are the fixed decision constants. They are configuration, not
// derived values; every default is documented with its rationale.
type Thresholds struct {
	// Periodicity is the minimum score accepted as a limit cycle. 0.5 sits
	// well above anything a noise-dominated or settled series produces
	// (observed < 0.1) while admitting the governed reference runs
	// (observed 0.57-0.71 across seeds).
	Periodicity float64 `json:"periodicity" yaml:"periodicity"`

	// LowScore is the ceiling below which periodicity is considered absent.
	// 0.2 leaves a deliberate gray band up to Periodicity that maps to
	// INCONCLUSIVE rather than forcing a call.
	LowScore float64 `json:"low_score" yaml:"low_score"`

	// LowVariance is the ceiling for "no dynamics". The ungoverned control
	// run jitters around its ceiling with variance ~2e-3; sustained cycles
	// measure ~7e-2. 5e-3 splits the two by an order of magnitude each way.
	LowVariance float64 `json:"low_variance" yaml:"low_variance"`

	// HighVariance marks runaway noise domination. A series bouncing over
	// the full [0,1] range uniformly would measure ~8.3e-2; 0.15 is beyond
	// any bounded oscillation observed in the governed regime.
	HighVariance float64 `json:"high_variance" yaml:"high_variance"`

	// CollapseEpsilon bounds the terminal average treated as "driven to 0".
	CollapseEpsilon float64 `json:"collapse_epsilon" yaml:"collapse_epsilon"`

	// TerminalWindow is the number of final points averaged for the
	// collapse test.
	TerminalWindow int `json:"terminal_window" yaml:"terminal_window"`
}

// DefaultThresholds returns the reference decision constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Periodicity:     0.5,
		LowScore:        0.2,
		LowVariance:     0.005,
		HighVariance:    0.15,
		CollapseEpsilon: 0.05,
		TerminalWindow:  50,
	}
}

// #endregion thresholds

// #region verdict
// Verdict is the classification record for one run. Produced once, consumed
// by reporting collaborators, never recomputed downstream.
type Verdict struct {
	Label      Label            `json:"label"`
	Score      float64          `json:"score"`
	Lag        int              `json:"lag"`
	Degenerate bool             `json:"degenerate"`
	Params     dynamics.Params  `json:"params"`
	Thresholds Thresholds       `json:"thresholds"`
	Stats      trajectory.Stats `json:"stats"`
}

// Summary renders a one-line human-readable description.
func (v Verdict) Summary() string {
	return fmt.Sprintf("regime %s: score=%.4f lag=%d variance=%.5f terminal=%.4f",
		v.Label, v.Score, v.Lag, v.Stats.Variance, v.Stats.TerminalMean)
}

// #endregion verdict

// #region classify
// Classify is a pure function from the analyzer result, trajectory stats and
// parameters to a Verdict. Predicates are checked in severity order:
// collapse, stasis, limit cycle; anything not unambiguously matched is
// INCONCLUSIVE.
func Classify(res autocorr.Result, stats trajectory.Stats, p dynamics.Params, th Thresholds) Verdict {
	v := Verdict{
		Score:      res.Score,
		Lag:        res.Lag,
		Degenerate: res.Degenerate,
		Params:     p,
		Thresholds: th,
		Stats:      stats,
	}

	switch {
	case stats.TerminalMean <= th.CollapseEpsilon || stats.Variance > th.HighVariance:
		v.Label = LabelCollapse
	case res.Score < th.LowScore && stats.Variance < th.LowVariance:
		v.Label = LabelStasis
	case res.Score >= th.Periodicity && stats.Variance >= th.LowVariance && stats.Variance <= th.HighVariance:
		v.Label = LabelLimitCycle
	default:
		v.Label = LabelInconclusive
	}
	return v
}

// #endregion classify
