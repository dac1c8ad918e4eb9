package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at build time with
// -ldflags "-X github.com/splitsig/splitsig/internal/cli.Version=...".
var Version = "dev"

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the splitsig version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "splitsig "+Version)
		},
	})
}
