package fetcher

import (
	"context"
	"errors"
	"math/big"

	"github.com/rs/zerolog"

	"crypto-price/internal/pair"
)

// PriceFetcher performs one oracle lookup per call and classifies failures.
type PriceFetcher struct {
	reader ContractReader
	logger zerolog.Logger
}

// NewPriceFetcher wraps a contract reader. A nil reader reports KindNoProvider.
func NewPriceFetcher(reader ContractReader, logger zerolog.Logger) *PriceFetcher {
	return &PriceFetcher{reader: reader, logger: logger.With().Str("component", "price_fetcher").Logger()}
}

// FetchPrice returns the raw oracle answer for p exactly as the contract reported it.
func (f *PriceFetcher) FetchPrice(ctx context.Context, p pair.Pair) (*big.Int, error) {
	if p == "" {
		return nil, &FetchError{Kind: KindNoPairSelected}
	}
	if f.reader == nil {
		return nil, &FetchError{Kind: KindNoProvider, Cause: ErrNoProvider}
	}

	raw, err := f.reader.LatestAnswer(ctx, string(p))
	if err != nil {
		if errors.Is(err, ErrNoProvider) {
			f.logger.Error().Err(err).Str("pair", p.String()).Msg("no provider available")
			return nil, &FetchError{Kind: KindNoProvider, Cause: err}
		}
		reason, _ := ExtractReason(err)
		f.logger.Error().Err(err).Str("pair", p.String()).Str("reason", reason).Msg("error fetching price")
		return nil, &FetchError{Kind: KindCallFailed, Reason: reason, Cause: err}
	}
	if raw == nil {
		f.logger.Error().Str("pair", p.String()).Msg("oracle returned no answer")
		return nil, &FetchError{Kind: KindCallFailed, Cause: errors.New("empty oracle answer")}
	}

	f.logger.Debug().Str("pair", p.String()).Str("raw", raw.String()).Msg("price fetched")
	return raw, nil
}

var _ PriceSource = (*PriceFetcher)(nil)
