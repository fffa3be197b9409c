package fetcher

import (
	"context"
	"math/big"

	"crypto-price/internal/pair"
)

// ContractReader is the single read-only capability of the oracle contract.
type ContractReader interface {
	LatestAnswer(ctx context.Context, pair string) (*big.Int, error)
}

// PriceSource returns the raw, unscaled oracle answer for a pair.
type PriceSource interface {
	FetchPrice(ctx context.Context, p pair.Pair) (*big.Int, error)
}
