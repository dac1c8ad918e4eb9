package cli

import (
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/rotisserie/eris"

	"github.com/splitsig/splitsig/internal/stats"
)

// promptForVariants collects the four experiment counts interactively.
func promptForVariants() (control, variant stats.Variant, err error) {
	fields := []struct {
		label string
		dst   *int
	}{
		{"Control visitors", &control.Visitors},
		{"Control conversions", &control.Conversions},
		{"Variant visitors", &variant.Visitors},
		{"Variant conversions", &variant.Conversions},
	}

	for _, field := range fields {
		prompt := promptui.Prompt{
			Label:    field.label,
			Validate: validateCount,
		}

		value, runErr := prompt.Run()
		if runErr != nil {
			if runErr == promptui.ErrInterrupt {
				return control, variant, eris.New("cli: cancelled")
			}
			return control, variant, eris.Wrap(runErr, "cli: read input")
		}

		// Validate already accepted it.
		n, _ := strconv.Atoi(value)
		*field.dst = n
	}

	return control, variant, nil
}

func validateCount(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return eris.New("enter a whole number")
	}
	if n < 0 {
		return eris.New("enter a non-negative number")
	}
	return nil
}
