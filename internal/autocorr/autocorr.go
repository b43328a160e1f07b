package autocorr

// #region config
// Config controls the analyzer.
type Config struct {
	// VarianceFloor is the denominator below which a series is treated as
	// constant. Population sum of squared deviations, not per-sample.
	VarianceFloor float64 `json:"variance_floor" yaml:"variance_floor"`
}

// DefaultConfig returns the reference analyzer settings.
func DefaultConfig() Config {
	return Config{VarianceFloor: 1e-12}
}

// #endregion config

// #region result
// Result is the periodicity measurement for one series. Immutable once
// computed; analyzing the same series twice yields the same Result.
type Result struct {
	// Score is the autocorrelation at the dominant nontrivial lag, in [-1, 1].
	Score float64 `json:"score"`
	// Lag is the lag at which Score was measured; 0 when Degenerate.
	Lag int `json:"lag"`
	// Degenerate marks a numerically constant series (Score forced to 0).
	Degenerate bool `json:"degenerate"`
}

// #endregion result

// #region analyze
// Analyze computes the mean-centered, variance-normalized autocorrelation of
// series over lags 1..len/2 and reports the first local maximum after the
// function's first zero-crossing. That peak identifies the dominant
// oscillation lag while skipping the trivial r(0)=1 ridge. With no
// zero-crossing (monotonic or flat series) the score falls back to r(1),
// which sits near zero for noise-dominated data.
func Analyze(series []float64, cfg Config) Result {
	n := len(series)
	if n < 4 {
		return Result{Score: 0, Lag: 0, Degenerate: true}
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(n)

	var den float64
	for _, v := range series {
		d := v - mean
		sq := d * d
		den += sq
	}
	if den <= cfg.VarianceFloor {
		return Result{Score: 0, Lag: 0, Degenerate: true}
	}

	maxLag := n / 2
	r := make([]float64, maxLag+1)
	for lag := 1; lag <= maxLag; lag++ {
		var num float64
		for t := 0; t < n-lag; t++ {
			a := series[t] - mean
			b := series[t+lag] - mean
			prod := a * b
			num += prod
		}
		r[lag] = num / den
	}

	// First zero-crossing: the ACF starts near 1 at small lags and the first
	// non-positive value marks the end of the trivial ridge.
	crossing := 0
	for lag := 1; lag <= maxLag; lag++ {
		if r[lag] <= 0 {
			crossing = lag
			break
		}
	}
	if crossing == 0 {
		return Result{Score: r[1], Lag: 1}
	}

	// First local maximum after the crossing.
	for lag := crossing + 1; lag < maxLag; lag++ {
		if r[lag] >= r[lag-1] && r[lag] >= r[lag+1] {
			return Result{Score: r[lag], Lag: lag}
		}
	}

	// No interior local maximum: report the largest remaining value.
	best, bestLag := r[maxLag], maxLag
	for lag := crossing + 1; lag <= maxLag; lag++ {
		if r[lag] > best {
			best, bestLag = r[lag], lag
		}
	}
	return Result{Score: best, Lag: bestLag}
}

// #endregion analyze
