package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crypto-price/internal/app"
	"crypto-price/internal/config"
	"crypto-price/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	rpcURL    string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:   "cryptoprice",
	Short: "Fetch the latest crypto pair prices from an on-chain oracle",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if rpcURL != "" {
			cfg.Ethereum.RPCURL = rpcURL
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle, err = app.NewApp(cfg, logger)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "Override ethereum.rpc_url")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}
