package dynamics

import (
	"math"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/rng"
)

// #region initial-state
// InitialState builds the step-0 state from the stepper constants.
func InitialState(cfg StepConfig) State {
	return State{Omega: cfg.OmegaInit, H: cfg.HInit, StepIndex: 0}
}

// #endregion initial-state

// #region step
// Step advances the state by one discrete step. Pure except for the draws it
// consumes from src: exactly one for the trigger, plus one more when the
// trigger fires. Each arithmetic term is assigned to its own variable so the
// compiler cannot fuse multiply-add pairs; the trajectory must be identical
// on every platform for a given seed.
func Step(cur State, p Params, cfg StepConfig, src *rng.Source) (State, error) {
	noiseP := clamp(cfg.NoiseFactor*cur.H, 0, 1)
	triggered := src.Bernoulli(noiseP)

	growth := p.AlphaOpt * cur.Omega
	growth = growth * (1.0 - cur.Omega)
	drag := p.Kappa * cur.H
	deltaOmega := growth - drag
	if triggered {
		kick := src.Symmetric(cfg.PerturbationMag)
		deltaOmega = deltaOmega + kick
	}

	gen := p.BetaHeat * cur.Omega
	diss := p.GammaDiss * cur.H
	deltaH := gen - diss

	if !isFinite(deltaOmega) || !isFinite(deltaH) {
		return State{}, &DivergenceError{
			StepIndex:  cur.StepIndex + 1,
			DeltaOmega: deltaOmega,
			DeltaH:     deltaH,
		}
	}

	next := State{
		Omega:     clamp(cur.Omega+deltaOmega, 0, 1),
		H:         floorZero(cur.H + deltaH),
		StepIndex: cur.StepIndex + 1,
	}
	return next, nil
}

// #endregion step

// #region helpers
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorZero(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// #endregion helpers
