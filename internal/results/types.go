package results

import (
	"time"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

// #region run-record
// RunRecord is one persisted run: its configuration, both dense series and,
// once classified, the verdict.
type RunRecord struct {
	RunID     string
	Name      string
	Params    dynamics.Params
	Omega     []float64
	H         []float64
	CreatedAt time.Time

	// Verdict is nil for a run row without a stored classification.
	Verdict *verdict.Verdict
}

// FromRunResult flattens a completed run into its persisted form.
func FromRunResult(res lab.RunResult) RunRecord {
	v := res.Verdict
	return RunRecord{
		RunID:     res.RunID,
		Name:      res.Experiment.Name,
		Params:    res.Experiment.Params,
		Omega:     res.Trajectory.Omega(),
		H:         res.Trajectory.H(),
		CreatedAt: time.Now().UTC(),
		Verdict:   &v,
	}
}

// #endregion run-record
