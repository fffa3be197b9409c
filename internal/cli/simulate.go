package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

var (
	simulatePair string
	simulateRaw  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate-alert",
	Short: "Send a price notification for a fixed raw oracle answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, ok := new(big.Int).SetString(simulateRaw, 10)
		if !ok {
			return fmt.Errorf("--raw must be a base-10 integer, got %q", simulateRaw)
		}
		return getApp().SimulateAlert(cmd.Context(), cmd.OutOrStdout(), simulatePair, raw)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulatePair, "pair", "", "Pair to simulate, e.g. ETH/USD")
	simulateCmd.Flags().StringVar(&simulateRaw, "raw", "", "Raw oracle answer, e.g. 250000000000")
	_ = simulateCmd.MarkFlagRequired("pair")
	_ = simulateCmd.MarkFlagRequired("raw")
}
