package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [experiment ...]",
		Short: "Run configured experiments and print verdicts",
		Long: `Runs every experiment in the configuration (or only the named ones),
prints one verdict line per run, and persists runs when a database path is
set. Exits nonzero if any run diverged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCmdLogger(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			artifactDir, _ := cmd.Flags().GetString("artifacts")
			if artifactDir == "" {
				artifactDir = cfg.ArtifactDir
			}

			exps, err := selectExperiments(cfg.Experiments, args)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			logger.Info("starting runs", "experiments", len(exps))
			resultsList, runErr := lab.RunAll(exps)

			for _, res := range resultsList {
				printResult(res)
				if err := persistResult(store, logger, res); err != nil {
					return err
				}
				if err := writeArtifacts(artifactDir, res); err != nil {
					return err
				}
			}

			if runErr != nil {
				var div *dynamics.DivergenceError
				if errors.As(runErr, &div) {
					logger.Error("run diverged", "step", div.StepIndex)
				}
				return runErr
			}
			return nil
		},
	}
	cmd.Flags().String("artifacts", "", "Directory for trajectory and verdict artifacts")
	return cmd
}

// selectExperiments filters the configured set by name; no names selects all.
func selectExperiments(exps []lab.Experiment, names []string) ([]lab.Experiment, error) {
	if len(names) == 0 {
		return exps, nil
	}
	byName := make(map[string]lab.Experiment, len(exps))
	for _, e := range exps {
		byName[e.Name] = e
	}
	var out []lab.Experiment
	for _, n := range names {
		e, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown experiment %q", n)
		}
		out = append(out, e)
	}
	return out, nil
}
