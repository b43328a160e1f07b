package lab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/autocorr"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/rng"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/trajectory"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

// #region experiment
// Experiment is one named, tagged configuration. Scenario identity lives in
// the data; the stepper, analyzer and classifier never branch on the name.
type Experiment struct {
	Name       string               `json:"name" yaml:"name"`
	Params     dynamics.Params      `json:"params" yaml:"params"`
	Step       *dynamics.StepConfig `json:"step,omitempty" yaml:"step,omitempty"`
	Thresholds *verdict.Thresholds  `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Analyzer   *autocorr.Config     `json:"analyzer,omitempty" yaml:"analyzer,omitempty"`
}

func (e Experiment) stepConfig() dynamics.StepConfig {
	if e.Step != nil {
		return *e.Step
	}
	return dynamics.DefaultStepConfig()
}

func (e Experiment) thresholds() verdict.Thresholds {
	if e.Thresholds != nil {
		return *e.Thresholds
	}
	return verdict.DefaultThresholds()
}

func (e Experiment) analyzerConfig() autocorr.Config {
	if e.Analyzer != nil {
		return *e.Analyzer
	}
	return autocorr.DefaultConfig()
}

// #endregion experiment

// #region run-result
// RunResult bundles everything one run produced.
type RunResult struct {
	RunID      string                 `json:"run_id"`
	Experiment Experiment             `json:"experiment"`
	Trajectory *trajectory.Trajectory `json:"-"`
	Autocorr   autocorr.Result        `json:"autocorr"`
	Verdict    verdict.Verdict        `json:"verdict"`
	Elapsed    time.Duration          `json:"elapsed_ns"`
}

// #endregion run-result

// #region run
// Run executes one experiment end to end: validate, step, record, analyze,
// classify. The run owns its random source and every piece of state it
// touches; two calls with identical configuration produce bit-identical
// trajectories and identical verdicts.
func Run(exp Experiment) (RunResult, error) {
	if err := exp.Params.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("experiment %q: %w", exp.Name, err)
	}

	start := time.Now()
	stepCfg := exp.stepConfig()
	src := rng.NewSource(exp.Params.Seed)

	st := dynamics.InitialState(stepCfg)
	tr := trajectory.New(exp.Params.Steps)
	tr.Record(st)

	for i := 0; i < exp.Params.Steps; i++ {
		next, err := dynamics.Step(st, exp.Params, stepCfg, src)
		if err != nil {
			return RunResult{}, fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
		st = next
		tr.Record(st)
	}

	th := exp.thresholds()
	res := autocorr.Analyze(tr.Omega(), exp.analyzerConfig())
	stats := trajectory.ComputeStats(tr.Omega(), th.TerminalWindow)
	v := verdict.Classify(res, stats, exp.Params, th)

	return RunResult{
		RunID:      uuid.New().String(),
		Experiment: exp,
		Trajectory: tr,
		Autocorr:   res,
		Verdict:    v,
		Elapsed:    time.Since(start),
	}, nil
}

// #endregion run

// #region run-all
// RunAll executes every experiment, one goroutine each. Runs share nothing
// mutable, so no synchronization beyond the collection barrier is needed.
// Failure domains are isolated: a diverged run is reported in the joined
// error while the remaining results are still returned.
func RunAll(exps []Experiment) ([]RunResult, error) {
	results := make([]RunResult, len(exps))
	errs := make([]error, len(exps))

	var wg sync.WaitGroup
	for i, exp := range exps {
		wg.Add(1)
		go func(i int, exp Experiment) {
			defer wg.Done()
			results[i], errs[i] = Run(exp)
		}(i, exp)
	}
	wg.Wait()

	ok := results[:0:0]
	for i := range results {
		if errs[i] == nil {
			ok = append(ok, results[i])
		}
	}
	return ok, errors.Join(errs...)
}

// #endregion run-all

// #region defaults
// DefaultExperiments returns the three reference configurations: the
// governed baseline, the ungoverned control (kappa=0) and the chaos case
// (governance strength far beyond dissipation capacity).
func DefaultExperiments() []Experiment {
	return []Experiment{
		{
			Name: "baseline",
			Params: dynamics.Params{
				AlphaOpt: 0.5, Kappa: 0.2, BetaHeat: 0.1, GammaDiss: 0.05,
				Steps: 2000, Seed: 42,
			},
		},
		{
			Name: "control",
			Params: dynamics.Params{
				AlphaOpt: 0.5, Kappa: 0, BetaHeat: 0.1, GammaDiss: 0.05,
				Steps: 2000, Seed: 42,
			},
		},
		{
			Name: "chaos",
			Params: dynamics.Params{
				AlphaOpt: 0.5, Kappa: 1.5, BetaHeat: 0.5, GammaDiss: 0.01,
				Steps: 2000, Seed: 42,
			},
		},
	}
}

// #endregion defaults
