package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the configured parameter grid",
		Long: `Expands the config's sweep grid into one experiment per parameter
combination and runs them in order, printing a verdict line each. With
--stop-on-cycle the sweep halts at the first LIMIT_CYCLE hit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCmdLogger(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Sweep == nil {
				return fmt.Errorf("config has no sweep grid")
			}
			stopOnCycle, _ := cmd.Flags().GetBool("stop-on-cycle")

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			grid := *cfg.Sweep
			logger.Info("starting sweep",
				"combinations", len(grid.Experiments()), "stop_on_cycle", stopOnCycle)

			sweep, sweepErr := lab.Sweep(grid, stopOnCycle)
			for _, res := range sweep.Results {
				printResult(res)
				if err := persistResult(store, logger, res); err != nil {
					return err
				}
			}

			if sweep.FirstCycle >= 0 {
				hit := sweep.Results[sweep.FirstCycle]
				fmt.Printf("\nfirst limit cycle: %s (score %.4f, lag %d)\n",
					hit.Experiment.Name, hit.Verdict.Score, hit.Verdict.Lag)
			} else {
				fmt.Println("\nno limit cycle found")
			}
			return sweepErr
		},
	}
	cmd.Flags().Bool("stop-on-cycle", false, "Stop at the first LIMIT_CYCLE verdict")
	return cmd
}
