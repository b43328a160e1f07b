package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/artifact"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/config"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/logging"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/results"
)

// #region setup

func newCmdLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, os.Stderr)
}

// loadConfig resolves the effective configuration: an explicit file when
// --config is set, the built-in defaults otherwise. The --db flag overrides
// the file's db_path either way.
func loadConfig(cmd *cobra.Command) (*config.LabConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	var cfg *config.LabConfig
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}

func openStore(cfg *config.LabConfig) (*results.Store, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	return results.NewStore(cfg.DBPath)
}

// #endregion setup

// #region persist

// persistResult saves a completed run and its verdict, logging the lifecycle
// events as it goes. A nil store is a no-op.
func persistResult(store *results.Store, logger *slog.Logger, res lab.RunResult) error {
	if store == nil {
		return nil
	}
	if err := store.SaveRun(results.FromRunResult(res)); err != nil {
		return fmt.Errorf("persist run %q: %w", res.Experiment.Name, err)
	}
	if err := logging.LogEvent(store.DB(), logging.RunLogEntry{
		RunID:  res.RunID,
		Event:  "verdict",
		Reason: res.Verdict.Summary(),
	}); err != nil {
		return err
	}
	logger.Debug("run persisted", "run_id", res.RunID, "name", res.Experiment.Name)
	return nil
}

// writeArtifacts emits the Arrow trajectory file and the verdict JSON for a
// run. An empty dir is a no-op.
func writeArtifacts(dir string, res lab.RunResult) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("artifact dir: %w", err)
	}
	base := filepath.Join(dir, res.Experiment.Name)
	if err := artifact.WriteTrajectory(base+".arrow", res.Trajectory); err != nil {
		return err
	}
	return artifact.WriteVerdict(base+".verdict.json", res)
}

// #endregion persist

// #region output

func printResult(res lab.RunResult) {
	fmt.Printf("%-24s %-12s score=%.4f lag=%-5d elapsed=%s\n",
		res.Experiment.Name, res.Verdict.Label, res.Verdict.Score,
		res.Verdict.Lag, res.Elapsed.Round(time.Microsecond))
}

// #endregion output
