package trajectory

import "fmt"

// #region check-types
// CheckMetric is a single named validation with its observed value.
type CheckMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// CheckResult is the outcome of post-run trajectory validation.
type CheckResult struct {
	Passed  bool
	Metrics []CheckMetric
	Reason  string
}

// #endregion check-types

// #region check
// Check validates the recorder contract for a completed run of the given
// horizon: exactly steps+1 points, strictly consecutive indices from 0, and
// the bounds invariant 0 <= omega <= 1, h >= 0 at every point.
func Check(tr *Trajectory, steps int) CheckResult {
	var metrics []CheckMetric
	passed := true
	var failReasons []string

	lengthPass := tr.Len() == steps+1
	metrics = append(metrics, CheckMetric{Name: "length", Value: float64(tr.Len()), Pass: lengthPass})
	if !lengthPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("length %d, want %d", tr.Len(), steps+1))
	}

	monotonic := true
	bounds := true
	for i, pt := range tr.Points() {
		if pt.Step != i {
			monotonic = false
		}
		if pt.Omega < 0 || pt.Omega > 1 || pt.H < 0 {
			bounds = false
		}
	}
	metrics = append(metrics, CheckMetric{Name: "index_monotonic", Value: boolValue(monotonic), Pass: monotonic})
	if !monotonic {
		passed = false
		failReasons = append(failReasons, "step indices not consecutive from 0")
	}
	metrics = append(metrics, CheckMetric{Name: "bounds_invariant", Value: boolValue(bounds), Pass: bounds})
	if !bounds {
		passed = false
		failReasons = append(failReasons, "omega or h out of bounds")
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("trajectory check failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("trajectory check failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return CheckResult{Passed: passed, Metrics: metrics, Reason: reason}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion check
