package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/fixture"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <fixture.json> [...]",
		Short: "Re-run pinned fixtures and compare outcomes",
		Long: `Loads each fixture, re-runs its experiment from the pinned seed and
compares label, score window and lag against the pinned expectations.
Exits nonzero if any check differs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCmdLogger(cmd)

			var fixtures []*fixture.Fixture
			for _, path := range args {
				f, err := fixture.Load(path)
				if err != nil {
					return err
				}
				fixtures = append(fixtures, f)
			}

			reports, err := fixture.VerifyAll(fixtures)
			diffs := 0
			for _, rep := range reports {
				fmt.Printf("%s\n", rep.Fixture.Description)
				for _, c := range rep.Checks {
					fmt.Printf("  %-6s %-8s expected %-22s got %s\n",
						c.Name, c.Status, c.Expected, c.Got)
					if c.Status != fixture.StatusOK {
						diffs++
					}
				}
			}
			if err != nil {
				return err
			}
			if diffs > 0 {
				logger.Error("verification failed", "diffs", diffs)
				return fmt.Errorf("%d checks differed", diffs)
			}
			logger.Info("all fixtures verified", "fixtures", len(reports))
			return nil
		},
	}
}
