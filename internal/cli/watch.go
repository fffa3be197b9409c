package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crypto-price/internal/app"
	"crypto-price/internal/view"
)

var (
	watchInterval time.Duration
	watchCount    int
	watchOutput   string
)

var watchCmd = &cobra.Command{
	Use:   "watch <pair>",
	Short: "Poll a pair on an interval and report price changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchCount < 0 {
			return fmt.Errorf("--count cannot be negative")
		}
		format, err := view.ParseFormat(watchOutput)
		if err != nil {
			return err
		}

		opts := app.WatchOptions{
			Pair:     args[0],
			Format:   format,
			Interval: watchInterval,
			Count:    watchCount,
		}
		return getApp().Watch(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (defaults to watch.interval)")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Stop after this many fetches (0 runs until interrupted)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "text", "Output format (text|json)")
}
