package cli

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitsig/splitsig/internal/report"
	"github.com/splitsig/splitsig/internal/stats"
)

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}

func newAnalyzeCmd() *cobra.Command {
	var (
		alpha      float64
		format     string
		withCharts bool
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [control-visitors control-conversions variant-visitors variant-conversions]",
		Short: "Run the z-test over an experiment's counts",
		Long: `Run a two-tailed two-proportion z-test over the four counts of an
A/B experiment and print the readout. With no arguments the counts are
collected interactively.

Examples:
  splitsig analyze 10000 500 10000 580
  splitsig analyze 10000 500 10000 580 --format json
  splitsig analyze 10000 500 10000 580 --charts --explain
  splitsig analyze`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return eris.New("analyze takes either no arguments (interactive) or exactly 4 counts")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				control, variant stats.Variant
				err              error
			)
			if len(args) == 4 {
				control, variant, err = parseVariants(args)
			} else {
				control, variant, err = promptForVariants()
			}
			if err != nil {
				return err
			}

			if alpha <= 0 || alpha >= 1 {
				return eris.Errorf("alpha must be in (0,1), got %v", alpha)
			}

			res, err := stats.ComputeTestResultAt(control, variant, alpha)
			if err != nil {
				return err
			}

			zap.L().Debug("cli: computed test result",
				zap.Float64("z", res.ZStatistic),
				zap.Float64("p", res.PValue),
				zap.Bool("significant", res.Significant),
			)

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				report.Summary(out, res, cfg.Test.Confidence)
				if explain {
					fmt.Fprintln(out, report.FormulaWalkthrough(res))
				}
				fmt.Fprintln(out, report.Interpretation(res))
			case "json":
				if err := report.WriteJSON(out, res); err != nil {
					return err
				}
			case "csv":
				if err := report.WriteCSV(out, res); err != nil {
					return err
				}
			default:
				return eris.Errorf("invalid format %q: must be text, json, or csv", format)
			}

			if withCharts {
				return renderCharts(res, "", "")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", stats.DefaultAlpha, "significance threshold")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, or csv)")
	cmd.Flags().BoolVar(&withCharts, "charts", false, "also render both chart figures")
	cmd.Flags().BoolVar(&explain, "explain", false, "include the formula walkthrough (text format only)")

	return cmd
}
