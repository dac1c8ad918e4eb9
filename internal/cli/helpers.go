package cli

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/splitsig/splitsig/internal/stats"
)

// parseVariants turns the four positional count arguments into the two
// experiment arms.
func parseVariants(args []string) (control, variant stats.Variant, err error) {
	counts := make([]int, 4)
	names := []string{
		"control visitors", "control conversions",
		"variant visitors", "variant conversions",
	}
	for i, arg := range args {
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return control, variant, eris.Wrapf(stats.ErrInvalidInput,
				"cli: %s must be an integer, got %q", names[i], arg)
		}
		counts[i] = n
	}

	control = stats.Variant{Visitors: counts[0], Conversions: counts[1]}
	variant = stats.Variant{Visitors: counts[2], Conversions: counts[3]}
	return control, variant, nil
}

// exactlyFourCounts is the Args check shared by the commands that take
// the experiment counts positionally.
func exactlyFourCounts(cmd *cobra.Command, args []string) error {
	if len(args) != 4 {
		return eris.Errorf("%s needs exactly 4 arguments: <control-visitors> <control-conversions> <variant-visitors> <variant-conversions>", cmd.Name())
	}
	return nil
}
