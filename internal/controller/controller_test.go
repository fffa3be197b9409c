package controller

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-price/internal/fetcher"
	"crypto-price/internal/pair"
)

type fakeReader struct {
	calls int
	raw   *big.Int
	err   error
}

func (r *fakeReader) LatestAnswer(_ context.Context, _ string) (*big.Int, error) {
	r.calls++
	return r.raw, r.err
}

type reasonErr string

func (e reasonErr) Error() string  { return "call reverted" }
func (e reasonErr) Reason() string { return string(e) }

func newController(reader fetcher.ContractReader, opts ...Option) *Controller {
	return New(fetcher.NewPriceFetcher(reader, zerolog.Nop()), zerolog.Nop(), opts...)
}

func TestRequestFetchUSDPair(t *testing.T) {
	reader := &fakeReader{raw: big.NewInt(250000000000)}
	c := newController(reader)

	c.SelectPair("ETH/USD")
	state := c.RequestFetch(context.Background())

	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "$2500", state.Value)
	assert.Equal(t, "2500", state.Exact.String())
	assert.Equal(t, state, c.State())
	assert.Equal(t, 1, reader.calls)
}

func TestRequestFetchRatioPair(t *testing.T) {
	reader := &fakeReader{raw: big.NewInt(15000000000000000)}
	c := newController(reader)

	c.SelectPair(pair.RatioPair)
	state := c.RequestFetch(context.Background())

	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "0.015", state.Value)
}

func TestRequestFetchWithoutPair(t *testing.T) {
	reader := &fakeReader{raw: big.NewInt(1)}
	c := newController(reader)

	state := c.RequestFetch(context.Background())

	assert.Equal(t, Failed("Please select a conversion pair"), state)
	assert.Zero(t, reader.calls)
}

func TestSelectPairResetsState(t *testing.T) {
	reader := &fakeReader{raw: big.NewInt(250000000000)}
	c := newController(reader)

	c.SelectPair("ETH/USD")
	require.Equal(t, StatusSuccess, c.RequestFetch(context.Background()).Status)

	c.SelectPair("ETH/USD")
	assert.Equal(t, Idle(), c.State())
	assert.Equal(t, pair.Pair("ETH/USD"), c.Pair())

	reader.err = errors.New("boom")
	require.Equal(t, StatusFailed, c.RequestFetch(context.Background()).Status)

	c.SelectPair("BTC/USD")
	assert.Equal(t, Idle(), c.State())
}

func TestRequestFetchFailureMessages(t *testing.T) {
	c := newController(&fakeReader{err: reasonErr("Pair not supported")})
	c.SelectPair("LINK/USD")
	assert.Equal(t, Failed("Pair not supported"), c.RequestFetch(context.Background()))

	c = newController(&fakeReader{err: errors.New("network down")})
	c.SelectPair("LINK/USD")
	assert.Equal(t, Failed("Failed to fetch price data. Please try again."), c.RequestFetch(context.Background()))

	c = New(fetcher.NewPriceFetcher(nil, zerolog.Nop()), zerolog.Nop())
	c.SelectPair("LINK/USD")
	assert.Equal(t, Failed(fetcher.MsgNoProvider), c.RequestFetch(context.Background()))
}

func TestRequestFetchDiscardsPreviousResult(t *testing.T) {
	reader := &fakeReader{raw: big.NewInt(250000000000)}
	c := newController(reader)
	c.SelectPair("ETH/USD")
	require.Equal(t, StatusSuccess, c.RequestFetch(context.Background()).Status)

	reader.raw = nil
	reader.err = errors.New("boom")
	state := c.RequestFetch(context.Background())
	assert.Equal(t, StatusFailed, state.Status)
	assert.Empty(t, state.Value)
}

func TestObserverSeesTransitions(t *testing.T) {
	var seen []Status
	reader := &fakeReader{raw: big.NewInt(100000000)}
	c := newController(reader, WithObserver(func(s Snapshot) {
		seen = append(seen, s.State.Status)
	}))

	c.SelectPair("BTC/USD")
	c.RequestFetch(context.Background())

	assert.Equal(t, []Status{StatusIdle, StatusLoading, StatusSuccess}, seen)
}

func TestCanFetch(t *testing.T) {
	var during bool
	reader := &fakeReader{raw: big.NewInt(1)}
	var c *Controller
	c = newController(reader, WithObserver(func(s Snapshot) {
		if s.State.Status == StatusLoading {
			during = c.CanFetch()
		}
	}))

	assert.False(t, c.CanFetch())
	c.SelectPair("BTC/USD")
	assert.True(t, c.CanFetch())

	c.RequestFetch(context.Background())
	assert.False(t, during, "trigger must be disabled while loading")
	assert.True(t, c.CanFetch())
}

func TestWithInitialPair(t *testing.T) {
	c := newController(&fakeReader{raw: big.NewInt(1)}, WithInitialPair("ETH/USD"))
	snap := c.Snapshot()
	assert.Equal(t, pair.Pair("ETH/USD"), snap.Pair)
	assert.Equal(t, StatusIdle, snap.State.Status)
}
