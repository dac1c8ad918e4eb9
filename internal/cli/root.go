// Package cli wires the splitsig command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitsig/splitsig/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "splitsig",
	Short: "Two-proportion z-test readouts for A/B experiments",
	Long: `splitsig runs a two-proportion z-test over the four counts of an A/B
experiment, reports significance, lift, confidence intervals, and
statistical power, and renders the explanatory chart figures.

Example:
  splitsig analyze 10000 500 10000 580
  splitsig analyze 10000 500 10000 580 --charts
  splitsig samplesize 10000 500 10000 580 --target-power 0.9`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
