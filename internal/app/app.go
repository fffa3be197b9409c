package app

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"crypto-price/internal/alerting"
	"crypto-price/internal/config"
	"crypto-price/internal/controller"
	"crypto-price/internal/fetcher"
	"crypto-price/internal/pair"
)

// ErrFetchFailed is returned by one-shot commands whose fetch ended in Failed.
var ErrFetchFailed = errors.New("price fetch failed")

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *pair.Registry

	// reader overrides the on-chain oracle; used by simulate-alert and tests.
	reader fetcher.ContractReader
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return &App{
		Config:   cfg,
		Logger:   logger.With().Str("component", "app").Logger(),
		Registry: reg,
	}, nil
}

// newController wires a controller to the oracle. The returned func releases
// the RPC connection.
func (a *App) newController(opts ...controller.Option) (*controller.Controller, func()) {
	reader := a.reader
	closer := func() {}
	if reader == nil {
		oracle := fetcher.NewOracle(fetcher.OracleOptions{
			RPCURL:  a.Config.Ethereum.RPCURL,
			Address: a.Config.Ethereum.OracleAddress,
			ChainID: a.Config.Ethereum.ChainID,
			Timeout: a.Config.Ethereum.RequestTimeout,
		}, a.Logger)
		reader = oracle
		closer = oracle.Close
	}

	if a.Config.Ethereum.RPCURL == "" && a.reader == nil {
		a.Logger.Warn().Msg("ethereum.rpc_url not configured; fetches will fail")
	}

	source := fetcher.NewPriceFetcher(reader, a.Logger)
	return controller.New(source, a.Logger, opts...), closer
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

// resolvePair parses optional user input; empty input means no selection.
func (a *App) resolvePair(input string) (pair.Pair, error) {
	if input == "" {
		return "", nil
	}
	return a.Registry.Parse(input)
}
