package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/artifact"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/trajectory"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a stored run as an Arrow trajectory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCmdLogger(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("export needs a database path (--db or db_path in config)")
			}
			outDir, _ := cmd.Flags().GetString("out")

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.GetRun(args[0])
			if err != nil {
				return err
			}

			tr := trajectory.FromSeries(rec.Omega, rec.H)
			path := filepath.Join(outDir, rec.Name+".arrow")
			if err := artifact.WriteTrajectory(path, tr); err != nil {
				return err
			}
			logger.Info("exported trajectory", "run_id", rec.RunID, "path", path, "rows", tr.Len())
			return nil
		},
	}
	cmd.Flags().String("out", ".", "Output directory")
	return cmd
}
