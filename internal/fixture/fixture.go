// Package fixture pins experiment outcomes as JSON files and re-verifies
// them by re-running the simulation. A fixture is the executable form of a
// falsifiable claim: given these parameters and this seed, the analyzer must
// land inside this score window with this label.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a verification fixture.
type Fixture struct {
	Description string         `json:"description"`
	Experiment  lab.Experiment `json:"experiment"`
	Expected    Expected       `json:"expected"`
}

// Expected captures the pinned outcome for one experiment.
type Expected struct {
	Label    verdict.Label `json:"label"`
	ScoreMin float64       `json:"score_min"`
	ScoreMax float64       `json:"score_max"`

	// Lag is the expected dominant period; 0 means not pinned.
	Lag int `json:"lag,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// Load reads and parses a JSON fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Save writes a fixture as pretty-printed JSON.
func Save(path string, f Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// FromRunResult pins a completed run as a fixture, with a score window of
// ±window around the observed score (clamped to the [-1,1] score range).
func FromRunResult(res lab.RunResult, description string, window float64) Fixture {
	lo := res.Verdict.Score - window
	hi := res.Verdict.Score + window
	if lo < -1 {
		lo = -1
	}
	if hi > 1 {
		hi = 1
	}
	return Fixture{
		Description: description,
		Experiment:  res.Experiment,
		Expected: Expected{
			Label:    res.Verdict.Label,
			ScoreMin: lo,
			ScoreMax: hi,
			Lag:      res.Verdict.Lag,
		},
	}
}

// #endregion fixture-loader
