package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crypto-price/internal/version"
)

var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print build information",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
