package cli

import (
	"github.com/spf13/cobra"

	"crypto-price/internal/app"
	"crypto-price/internal/view"
)

var priceOutput string

var priceCmd = &cobra.Command{
	Use:   "price [pair]",
	Short: "Fetch the latest price of a pair once",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := view.ParseFormat(priceOutput)
		if err != nil {
			return err
		}

		opts := app.PriceOptions{Format: format}
		if len(args) == 1 {
			opts.Pair = args[0]
		}
		return getApp().Price(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the available pairs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ListPairs(cmd.OutOrStdout())
	},
}

func init() {
	priceCmd.Flags().StringVarP(&priceOutput, "output", "o", "text", "Output format (text|json)")
}
