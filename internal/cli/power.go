package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitsig/splitsig/internal/report"
	"github.com/splitsig/splitsig/internal/stats"
)

func init() {
	rootCmd.AddCommand(newPowerCmd())
}

func newPowerCmd() *cobra.Command {
	var (
		minN   int
		maxN   int
		points int
	)

	cmd := &cobra.Command{
		Use:   "power <control-visitors> <control-conversions> <variant-visitors> <variant-conversions>",
		Short: "Sweep statistical power across sample sizes",
		Long: `Compute the power to detect the observed effect at the observed
sample size, then sweep the power function across a range of per-arm
sample sizes.

Example:
  splitsig power 10000 500 10000 580 --min-n 1000 --max-n 50000`,
		Args: exactlyFourCounts,
		RunE: func(cmd *cobra.Command, args []string) error {
			control, variant, err := parseVariants(args)
			if err != nil {
				return err
			}

			res, err := stats.ComputeTestResult(control, variant)
			if err != nil {
				return err
			}

			if minN == 0 {
				minN = cfg.Power.MinSampleSize
			}
			if maxN == 0 {
				maxN = cfg.Power.MaxSampleSize
			}
			if points == 0 {
				points = cfg.Power.Points
			}

			zCrit := stats.CriticalZ(cfg.Test.Confidence)
			current, err := stats.StatisticalPower(res.AbsoluteLift, res.PooledRate, control.Visitors, zCrit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Observed effect:  %+.4f (pooled rate %.4f)\n", res.AbsoluteLift, res.PooledRate)
			fmt.Fprintf(out, "Power at n=%d: %.4f\n\n", control.Visitors, current)

			curve, err := stats.PowerCurve(res.AbsoluteLift, res.PooledRate, minN, maxN, points)
			if err != nil {
				return err
			}
			report.PowerTable(out, curve, control.Visitors)

			return nil
		},
	}

	cmd.Flags().IntVar(&minN, "min-n", 0, "smallest per-arm sample size in the sweep")
	cmd.Flags().IntVar(&maxN, "max-n", 0, "largest per-arm sample size in the sweep")
	cmd.Flags().IntVar(&points, "points", 0, "number of points in the sweep")

	return cmd
}
