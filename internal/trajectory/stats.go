package trajectory

// #region stats
// Stats summarizes the Omega series of a completed run. Computed once and
// consumed read-only by the classifier.
type Stats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"` // population variance
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`

	// TerminalMean is the average over the final TerminalWindow points.
	TerminalMean   float64 `json:"terminal_mean"`
	TerminalWindow int     `json:"terminal_window"`
}

// #endregion stats

// #region compute
// ComputeStats summarizes a dense series. window bounds the terminal average;
// it is truncated to the series length, and a non-positive window averages
// the whole series. A zero-length series yields zeros.
func ComputeStats(series []float64, window int) Stats {
	n := len(series)
	if n == 0 {
		return Stats{TerminalWindow: 0}
	}

	var sum float64
	min, max := series[0], series[0]
	for _, v := range series {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(n)

	var varSum float64
	for _, v := range series {
		d := v - mean
		sq := d * d
		varSum += sq
	}

	if window <= 0 || window > n {
		window = n
	}
	var termSum float64
	for _, v := range series[n-window:] {
		termSum += v
	}

	return Stats{
		Mean:           mean,
		Variance:       varSum / float64(n),
		Min:            min,
		Max:            max,
		TerminalMean:   termSum / float64(window),
		TerminalWindow: window,
	}
}

// #endregion compute
