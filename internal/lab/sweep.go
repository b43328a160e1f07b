package lab

import (
	"fmt"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

// #region grid
// Grid is a cartesian sweep over rate parameters at a fixed horizon and seed.
type Grid struct {
	AlphaOpt  []float64 `json:"alpha_opt" yaml:"alpha_opt"`
	Kappa     []float64 `json:"kappa" yaml:"kappa"`
	BetaHeat  []float64 `json:"beta_heat" yaml:"beta_heat"`
	GammaDiss []float64 `json:"gamma_diss" yaml:"gamma_diss"`
	Steps     int       `json:"steps" yaml:"steps"`
	Seed      int64     `json:"seed" yaml:"seed"`
}

// Experiments expands the grid into one named experiment per combination.
func (g Grid) Experiments() []Experiment {
	var exps []Experiment
	for _, a := range g.AlphaOpt {
		for _, k := range g.Kappa {
			for _, b := range g.BetaHeat {
				for _, d := range g.GammaDiss {
					exp := Experiment{
						Name: fmt.Sprintf("a%g_k%g_b%g_g%g", a, k, b, d),
					}
					exp.Params.AlphaOpt = a
					exp.Params.Kappa = k
					exp.Params.BetaHeat = b
					exp.Params.GammaDiss = d
					exp.Params.Steps = g.Steps
					exp.Params.Seed = g.Seed
					exps = append(exps, exp)
				}
			}
		}
	}
	return exps
}

// #endregion grid

// #region sweep-result
// SweepResult aggregates a grid sweep.
type SweepResult struct {
	Results []RunResult
	// FirstCycle indexes the first LIMIT_CYCLE hit in Results, -1 if none.
	FirstCycle int
}

// #endregion sweep-result

// #region sweep
// Sweep runs the whole grid. stopOnCycle stops expanding further
// combinations once a LIMIT_CYCLE verdict appears, mirroring the original
// cycle-hunt protocol. Failed combinations are reported in the joined error
// and do not abort the rest of the sweep.
func Sweep(g Grid, stopOnCycle bool) (SweepResult, error) {
	exps := g.Experiments()
	out := SweepResult{FirstCycle: -1}

	var errs []error
	for _, exp := range exps {
		res, err := Run(exp)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Results = append(out.Results, res)
		if out.FirstCycle < 0 && res.Verdict.Label == verdict.LabelLimitCycle {
			out.FirstCycle = len(out.Results) - 1
			if stopOnCycle {
				break
			}
		}
	}
	return out, joinErrs(errs)
}

func joinErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return fmt.Errorf("%d runs failed, first: %w", len(errs), errs[0])
}

// #endregion sweep
