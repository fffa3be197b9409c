package cli

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Select pairs and fetch prices in an interactive session",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
