package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitsig/splitsig/internal/stats"
)

func init() {
	rootCmd.AddCommand(newSampleSizeCmd())
}

func newSampleSizeCmd() *cobra.Command {
	var (
		targetPower float64
		minN        int
		maxN        int
	)

	cmd := &cobra.Command{
		Use:   "samplesize <control-visitors> <control-conversions> <variant-visitors> <variant-conversions>",
		Short: "Find the sample size needed to power the observed effect",
		Long: `Find the smallest per-arm sample size whose power to detect the
observed effect reaches the target, by bisection over the monotone
power function.

Example:
  splitsig samplesize 10000 500 10000 580 --target-power 0.8`,
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

			if targetPower == 0 {
				targetPower = cfg.Power.Target
			}
			if minN == 0 {
				minN = cfg.Power.MinSampleSize
			}
			if maxN == 0 {
				maxN = cfg.Power.MaxSampleSize
			}

			n, err := stats.MinimumSampleSize(targetPower, res.AbsoluteLift, res.PooledRate, minN, maxN)
			if err != nil {
				return err
			}

			achieved, err := stats.StatisticalPower(res.AbsoluteLift, res.PooledRate, n, stats.CriticalZ(cfg.Test.Confidence))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Observed effect:      %+.4f\n", res.AbsoluteLift)
			fmt.Fprintf(out, "Target power:         %.2f\n", targetPower)
			fmt.Fprintf(out, "Required sample size: %d per arm\n", n)
			fmt.Fprintf(out, "Power at that size:   %.4f\n", achieved)

			return nil
		},
	}

	cmd.Flags().Float64Var(&targetPower, "target-power", 0, "power to reach (default from config, 0.80)")
	cmd.Flags().IntVar(&minN, "min-n", 0, "lower bound of the search range")
	cmd.Flags().IntVar(&maxN, "max-n", 0, "upper bound of the search range")

	return cmd
}
