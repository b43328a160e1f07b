package dynamics

import (
	"fmt"
	"math"
	"strings"
)

// #region params
// Params is the immutable parameter set for one run.
type Params struct {
	AlphaOpt  float64 `json:"alpha_opt" yaml:"alpha_opt"`   // optimization gain, > 0
	Kappa     float64 `json:"kappa" yaml:"kappa"`           // governance coupling strength, >= 0
	BetaHeat  float64 `json:"beta_heat" yaml:"beta_heat"`   // heat generation rate, >= 0
	GammaDiss float64 `json:"gamma_diss" yaml:"gamma_diss"` // heat dissipation rate, >= 0
	Steps     int     `json:"steps" yaml:"steps"`           // horizon, > 0
	Seed      int64   `json:"seed" yaml:"seed"`             // determinism key
}

// #endregion params

// #region validate
// Validate collects every constraint violation and returns a ConfigError
// naming all of them, or nil. Hard-veto pass: any violation blocks the run
// before stepping starts.
func (p Params) Validate() error {
	var violations []string

	if math.IsNaN(p.AlphaOpt) || math.IsInf(p.AlphaOpt, 0) || p.AlphaOpt <= 0 {
		violations = append(violations, fmt.Sprintf("alpha_opt %v must be finite and > 0", p.AlphaOpt))
	}
	if math.IsNaN(p.Kappa) || math.IsInf(p.Kappa, 0) || p.Kappa < 0 {
		violations = append(violations, fmt.Sprintf("kappa %v must be finite and >= 0", p.Kappa))
	}
	if math.IsNaN(p.BetaHeat) || math.IsInf(p.BetaHeat, 0) || p.BetaHeat < 0 {
		violations = append(violations, fmt.Sprintf("beta_heat %v must be finite and >= 0", p.BetaHeat))
	}
	if math.IsNaN(p.GammaDiss) || math.IsInf(p.GammaDiss, 0) || p.GammaDiss < 0 {
		violations = append(violations, fmt.Sprintf("gamma_diss %v must be finite and >= 0", p.GammaDiss))
	}
	if p.Steps <= 0 {
		violations = append(violations, fmt.Sprintf("steps %d must be > 0", p.Steps))
	}

	if len(violations) > 0 {
		return &ConfigError{Violations: violations}
	}
	return nil
}

// #endregion validate

// #region state
// State is the live simulation state, one instance per run, mutated step by
// step. StepIndex counts completed steps; 0 is the initial state.
type State struct {
	Omega     float64
	H         float64
	StepIndex int
}

// #endregion state

// #region step-config
// StepConfig holds the stepper constants that are not part of the published
// parameter set. Defaults are tuned so the governed reference configuration
// (alpha_opt=0.5, kappa=0.2, beta_heat=0.1, gamma_diss=0.05, seed=42)
// sustains its relaxation cycle for the full 2000-step horizon.
type StepConfig struct {
	// NoiseFactor maps H into the perturbation trigger probability,
	// clamp(NoiseFactor*H, 0, 1). 25.0 saturates the probability over most
	// of the governed operating range (H up to ~0.9), which keeps the
	// restart kick available while H drains and prevents the Omega=0,
	// H=0 point from becoming absorbing.
	NoiseFactor float64 `json:"noise_factor" yaml:"noise_factor"`

	// PerturbationMag bounds the additive kick applied on a triggered step,
	// uniform in [-PerturbationMag, +PerturbationMag]. The magnitude is
	// fixed, independent of H; only the trigger probability scales with H.
	PerturbationMag float64 `json:"perturbation_mag" yaml:"perturbation_mag"`

	// OmegaInit and HInit seed the state before step 1.
	OmegaInit float64 `json:"omega_init" yaml:"omega_init"`
	HInit     float64 `json:"h_init" yaml:"h_init"`
}

// DefaultStepConfig returns the reference stepper constants.
func DefaultStepConfig() StepConfig {
	return StepConfig{
		NoiseFactor:     25.0,
		PerturbationMag: 0.04,
		OmegaInit:       0.1,
		HInit:           0.05,
	}
}

// #endregion step-config

// #region errors
// ConfigError reports invalid parameters. The run never starts.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", strings.Join(e.Violations, "; "))
}

// DivergenceError reports a non-finite delta at a specific step. Fatal for
// the run; never retried, other runs in a sweep are unaffected.
type DivergenceError struct {
	StepIndex  int
	DeltaOmega float64
	DeltaH     float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("divergence at step %d: delta_omega=%v delta_h=%v",
		e.StepIndex, e.DeltaOmega, e.DeltaH)
}

// #endregion errors
