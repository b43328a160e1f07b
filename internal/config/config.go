// Package config loads lab configuration from YAML files: the experiment
// set, optional sweep grid, and CLI settings. Paths are explicit; there are
// no environment fallbacks.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
)

// #region config-struct
// LabConfig is the full contents of a lab configuration file.
type LabConfig struct {
	// LogLevel sets CLI log verbosity: "debug", "info", "warn" or "error".
	LogLevel string `json:"log_level" yaml:"log_level"`

	// DBPath is the SQLite results database. Empty disables persistence.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// ArtifactDir receives trajectory and verdict artifacts. Empty disables
	// artifact output.
	ArtifactDir string `json:"artifact_dir,omitempty" yaml:"artifact_dir,omitempty"`

	// Experiments is the named configuration set executed by `run`.
	Experiments []lab.Experiment `json:"experiments" yaml:"experiments"`

	// Sweep, when present, is the grid expanded by the `sweep` subcommand.
	Sweep *lab.Grid `json:"sweep,omitempty" yaml:"sweep,omitempty"`
}

// #endregion config-struct

// #region defaults
// Default returns a LabConfig carrying the reference experiment set.
func Default() *LabConfig {
	return &LabConfig{
		LogLevel:    "info",
		Experiments: lab.DefaultExperiments(),
	}
}

// #endregion defaults

// #region load
// LoadFromFile parses a YAML lab configuration and validates it.
func LoadFromFile(path string) (*LabConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &LabConfig{LogLevel: "info"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// #endregion load

// #region validate
// Validate checks every experiment's parameter set before anything runs.
// A file with an invalid configuration is rejected whole.
func (c *LabConfig) Validate() error {
	if len(c.Experiments) == 0 && c.Sweep == nil {
		return fmt.Errorf("config declares no experiments and no sweep")
	}

	seen := make(map[string]bool, len(c.Experiments))
	for i, exp := range c.Experiments {
		if exp.Name == "" {
			return fmt.Errorf("experiment %d: missing name", i)
		}
		if seen[exp.Name] {
			return fmt.Errorf("experiment %q: duplicate name", exp.Name)
		}
		seen[exp.Name] = true
		if err := exp.Params.Validate(); err != nil {
			return fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
	}

	if c.Sweep != nil {
		if c.Sweep.Steps <= 0 {
			return fmt.Errorf("sweep: steps must be positive, got %d", c.Sweep.Steps)
		}
		if len(c.Sweep.AlphaOpt) == 0 || len(c.Sweep.Kappa) == 0 ||
			len(c.Sweep.BetaHeat) == 0 || len(c.Sweep.GammaDiss) == 0 {
			return fmt.Errorf("sweep: every parameter axis needs at least one value")
		}
	}
	return nil
}

// #endregion validate
