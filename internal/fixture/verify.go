package fixture

import (
	"fmt"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
)

// #region types
// CheckStatus is the outcome of one pinned expectation.
type CheckStatus string

const (
	StatusOK   CheckStatus = "OK"
	StatusDiff CheckStatus = "DIFF"
)

// Check is one expectation compared against the fresh run.
type Check struct {
	Name     string
	Status   CheckStatus
	Expected string
	Got      string
}

// Report is the full comparison for one fixture.
type Report struct {
	Fixture *Fixture
	Result  lab.RunResult
	Checks  []Check
}

// Passed reports whether every check matched.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}

// #endregion types

// #region verify
// Verify re-runs the fixture's experiment and compares the fresh verdict
// against the pinned expectations. A simulation failure is an error; a
// mismatched outcome is a DIFF in the report, not an error.
func Verify(f *Fixture) (Report, error) {
	res, err := lab.Run(f.Experiment)
	if err != nil {
		return Report{}, fmt.Errorf("fixture %q: %w", f.Description, err)
	}

	rep := Report{Fixture: f, Result: res}

	rep.Checks = append(rep.Checks, check(
		"label",
		string(f.Expected.Label),
		string(res.Verdict.Label),
		res.Verdict.Label == f.Expected.Label,
	))

	inWindow := res.Verdict.Score >= f.Expected.ScoreMin &&
		res.Verdict.Score <= f.Expected.ScoreMax
	rep.Checks = append(rep.Checks, check(
		"score",
		fmt.Sprintf("[%.4f, %.4f]", f.Expected.ScoreMin, f.Expected.ScoreMax),
		fmt.Sprintf("%.4f", res.Verdict.Score),
		inWindow,
	))

	if f.Expected.Lag > 0 {
		rep.Checks = append(rep.Checks, check(
			"lag",
			fmt.Sprintf("%d", f.Expected.Lag),
			fmt.Sprintf("%d", res.Verdict.Lag),
			res.Verdict.Lag == f.Expected.Lag,
		))
	}

	return rep, nil
}

// VerifyAll verifies every fixture and reports each outcome; simulation
// failures are collected rather than aborting the rest.
func VerifyAll(fixtures []*Fixture) ([]Report, error) {
	var reports []Report
	var firstErr error
	failed := 0
	for _, f := range fixtures {
		rep, err := Verify(f)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, rep)
	}
	if failed > 0 {
		return reports, fmt.Errorf("%d fixtures failed to run, first: %w", failed, firstErr)
	}
	return reports, nil
}

func check(name, expected, got string, ok bool) Check {
	status := StatusDiff
	if ok {
		status = StatusOK
	}
	return Check{Name: name, Status: status, Expected: expected, Got: got}
}

// #endregion verify
