package pair

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid integer literal %q", s)
	return v
}

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		name string
		pair Pair
		raw  string
		want string
	}{
		{"eth usd whole", "ETH/USD", "250000000000", "$2500"},
		{"btc usd fraction", "BTC/USD", "6512345678901", "$65123.45678901"},
		{"link usd small", "LINK/USD", "1234567890", "$12.3456789"},
		{"usd negative", "ETH/USD", "-150000000", "$-1.5"},
		{"usd zero", "LINK/USD", "0", "$0"},
		{"ratio", RatioPair, "15000000000000000", "0.015"},
		{"ratio above one", RatioPair, "21500000000000000000", "21.5"},
		{"ratio tiny", RatioPair, "100000000000", "1e-7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDisplay(tc.pair, bigFromString(t, tc.raw)))
		})
	}
}

func TestFormatDisplayFloatDivision(t *testing.T) {
	for _, raw := range []int64{1, 7, 99999999, 123456789012345} {
		r := big.NewInt(raw)
		want := "$" + formatNumber(float64(raw)/1e8)
		assert.Equal(t, want, FormatDisplay("ETH/USD", r))

		want = formatNumber(float64(raw) / 1e18)
		assert.Equal(t, want, FormatDisplay(RatioPair, r))
	}
}

func TestFormatNumberNotation(t *testing.T) {
	assert.Equal(t, "1e+21", formatNumber(1e21))
	assert.Equal(t, "1.5e-7", formatNumber(1.5e-7))
	assert.Equal(t, "0.000001", formatNumber(1e-6))
	assert.Equal(t, "123456789012345680000", formatNumber(123456789012345678901))
	assert.Equal(t, "0", formatNumber(0))
}

func TestDecimalsAndPrefix(t *testing.T) {
	assert.Equal(t, 18, Decimals(RatioPair))
	assert.Equal(t, "", Prefix(RatioPair))
	for _, p := range []Pair{"LINK/USD", "ETH/USD", "BTC/USD"} {
		assert.Equal(t, 8, Decimals(p))
		assert.Equal(t, "$", Prefix(p))
	}
}

func TestScaledIsExact(t *testing.T) {
	raw := bigFromString(t, "15000000000000000")
	assert.Equal(t, "0.015", Scaled(RatioPair, raw).String())

	raw = bigFromString(t, "6512345678901")
	assert.Equal(t, "65123.45678901", Scaled("BTC/USD", raw).String())

	assert.True(t, Scaled("BTC/USD", nil).IsZero())
}

func TestRegistry(t *testing.T) {
	reg := MustDefault()
	require.Len(t, reg.Pairs(), 4)
	assert.Equal(t, Pair("LINK/USD"), reg.Pairs()[0])

	p, err := reg.Parse(" eth/usd ")
	require.NoError(t, err)
	assert.Equal(t, Pair("ETH/USD"), p)

	p, err = reg.Parse("2")
	require.NoError(t, err)
	assert.Equal(t, RatioPair, p)

	_, err = reg.Parse("DOGE/USD")
	assert.ErrorIs(t, err, ErrUnknownPair)

	_, err = reg.Parse("5")
	assert.ErrorIs(t, err, ErrUnknownPair)

	assert.True(t, reg.Contains("BTC/USD"))
	assert.False(t, reg.Contains("btc/usd"))
}

func TestNewRegistryValidation(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.Error(t, err)

	_, err = NewRegistry([]string{"BTCUSD"})
	assert.Error(t, err)

	_, err = NewRegistry([]string{"BTC/USD", "btc/usd"})
	assert.Error(t, err)

	reg, err := NewRegistry([]string{"SOL/USD"})
	require.NoError(t, err)
	pairs := reg.Pairs()
	pairs[0] = "MUTATED"
	assert.Equal(t, Pair("SOL/USD"), reg.Pairs()[0])
}
