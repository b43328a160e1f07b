package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs and their verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("runs needs a database path (--db or db_path in config)")
			}
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("no runs stored")
				return nil
			}
			for _, s := range summaries {
				label := s.Label
				if label == "" {
					label = "-"
				}
				fmt.Printf("%s  %-24s %-12s score=%.4f  %s\n",
					s.RunID, s.Name, label, s.Score,
					s.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum rows to list")
	return cmd
}
