package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitsig/splitsig/internal/report"
	"github.com/splitsig/splitsig/internal/stats"
)

func init() {
	rootCmd.AddCommand(newChartsCmd())
}

func newChartsCmd() *cobra.Command {
	var (
		breakdownOut string
		explainedOut string
	)

	cmd := &cobra.Command{
		Use:   "charts <control-visitors> <control-conversions> <variant-visitors> <variant-conversions>",
		Short: "Render the statistical breakdown and walkthrough figures",
		Long: `Render both chart figures for an experiment: the six-panel
statistical breakdown and the four-panel plain-language walkthrough.

Example:
  splitsig charts 10000 500 10000 580
  splitsig charts 10000 500 10000 580 --breakdown-out /tmp/breakdown.png`,
		Args: exactlyFourCounts,
		RunE: func(cmd *cobra.Command, args []string) error {
			control, variant, err := parseVariants(args)
			if err != nil {
				return err
			}

			res, err := stats.ComputeTestResultAt(control, variant, cfg.Test.Alpha)
			if err != nil {
				return err
			}

			if err := renderCharts(res, breakdownOut, explainedOut); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", pathOr(breakdownOut, cfg.Charts.BreakdownPath))
			fmt.Fprintf(out, "Wrote %s\n", pathOr(explainedOut, cfg.Charts.ExplainedPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&breakdownOut, "breakdown-out", "", "output path for the breakdown figure")
	cmd.Flags().StringVar(&explainedOut, "explained-out", "", "output path for the explained figure")

	return cmd
}

// renderCharts writes both figures. The breakdown needs a power curve;
// when the observed experiment cannot support one (zero variance or no
// positive effect) the breakdown is skipped with a warning and the
// explained figure is still written.
func renderCharts(res *stats.TestResult, breakdownOut, explainedOut string) error {
	ccfg := cfg.Charts
	ccfg.BreakdownPath = pathOr(breakdownOut, ccfg.BreakdownPath)
	ccfg.ExplainedPath = pathOr(explainedOut, ccfg.ExplainedPath)

	cs := report.NewChartSet(ccfg)

	curve, err := stats.PowerCurve(res.AbsoluteLift, res.PooledRate,
		cfg.Power.MinSampleSize, cfg.Power.MaxSampleSize, cfg.Power.Points)
	if err != nil {
		zap.L().Warn("cli: skipping breakdown figure", zap.Error(err))
	} else {
		recommended := 0
		if n, err := stats.MinimumSampleSize(cfg.Power.Target, res.AbsoluteLift, res.PooledRate,
			cfg.Power.MinSampleSize, cfg.Power.MaxSampleSize); err == nil {
			recommended = n
		} else {
			zap.L().Debug("cli: no sample-size recommendation", zap.Error(err))
		}

		if err := cs.RenderBreakdown(res, curve, recommended, cfg.Test.Confidence, cfg.Power.Target); err != nil {
			return err
		}
	}

	return cs.RenderExplained(res)
}

func pathOr(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
