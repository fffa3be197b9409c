package fetcher

import (
	"context"
	"fmt"
	"math/big"
)

// StaticReader serves fixed answers, keyed by pair.
type StaticReader struct {
	answers map[string]*big.Int
}

// NewStaticReader copies answers into a new reader.
func NewStaticReader(answers map[string]*big.Int) *StaticReader {
	cp := make(map[string]*big.Int, len(answers))
	for k, v := range answers {
		cp[k] = new(big.Int).Set(v)
	}
	return &StaticReader{answers: cp}
}

// LatestAnswer returns the configured answer for pair.
func (s *StaticReader) LatestAnswer(_ context.Context, pair string) (*big.Int, error) {
	v, ok := s.answers[pair]
	if !ok {
		return nil, fmt.Errorf("pair not found: %s", pair)
	}
	return new(big.Int).Set(v), nil
}

var _ ContractReader = (*StaticReader)(nil)
