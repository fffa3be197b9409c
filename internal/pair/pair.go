package pair

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Pair identifies an oracle price feed, e.g. "ETH/USD".
type Pair string

// RatioPair is the only unitless feed; every other pair is quoted in USD.
const RatioPair Pair = "BTC/ETH"

const (
	ratioDecimals = 18
	usdDecimals   = 8
	usdPrefix     = "$"
)

// ErrUnknownPair is returned when a pair is not part of the registry.
var ErrUnknownPair = errors.New("unknown pair")

// DefaultPairs lists the feeds exposed by the oracle contract.
var DefaultPairs = []string{"LINK/USD", "BTC/ETH", "ETH/USD", "BTC/USD"}

// String implements fmt.Stringer.
func (p Pair) String() string { return string(p) }

// IsRatio reports whether p is the unitless BTC/ETH ratio.
func (p Pair) IsRatio() bool { return p == RatioPair }

// Decimals returns the fixed-point precision of the raw oracle answer for p.
func Decimals(p Pair) int {
	if p.IsRatio() {
		return ratioDecimals
	}
	return usdDecimals
}

// Prefix returns the currency symbol rendered in front of a display value.
func Prefix(p Pair) string {
	if p.IsRatio() {
		return ""
	}
	return usdPrefix
}

// FormatDisplay turns a raw oracle answer into the string shown to the user.
// The raw amount is first converted to the nearest float64, then divided by the
// pair's divisor in floating point.
func FormatDisplay(p Pair, raw *big.Int) string {
	if raw == nil {
		raw = new(big.Int)
	}
	value, _ := new(big.Float).SetInt(raw).Float64()
	divisor := math.Pow10(Decimals(p))
	return Prefix(p) + formatNumber(value/divisor)
}

// Scaled returns the exact decimal value of raw for p.
func Scaled(p Pair, raw *big.Int) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(Decimals(p)))
}

// formatNumber renders f using the shortest round-trip digits, switching to
// exponent notation outside [1e-6, 1e21) like a browser would.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Registry is the immutable set of selectable pairs, fixed at startup.
type Registry struct {
	pairs []Pair
	index map[string]Pair
}

// NewRegistry validates ids and builds a registry preserving their order.
func NewRegistry(ids []string) (*Registry, error) {
	if len(ids) == 0 {
		return nil, errors.New("pair registry cannot be empty")
	}

	r := &Registry{
		pairs: make([]Pair, 0, len(ids)),
		index: make(map[string]Pair, len(ids)),
	}
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		base, quote, ok := strings.Cut(id, "/")
		if !ok || base == "" || quote == "" || strings.Contains(quote, "/") {
			return nil, fmt.Errorf("invalid pair %q: expected BASE/QUOTE", raw)
		}
		key := strings.ToUpper(id)
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("duplicate pair %q", raw)
		}
		p := Pair(id)
		r.pairs = append(r.pairs, p)
		r.index[key] = p
	}
	return r, nil
}

// MustDefault returns a registry of DefaultPairs.
func MustDefault() *Registry {
	r, err := NewRegistry(DefaultPairs)
	if err != nil {
		panic(err)
	}
	return r
}

// Pairs returns a copy of the registered pairs in display order.
func (r *Registry) Pairs() []Pair {
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Contains reports whether p is registered exactly as given.
func (r *Registry) Contains(p Pair) bool {
	got, ok := r.index[strings.ToUpper(string(p))]
	return ok && got == p
}

// Parse resolves user input to a registered pair. Matching ignores case and
// surrounding whitespace; a 1-based list index is accepted as well.
func (r *Registry) Parse(input string) (Pair, error) {
	trimmed := strings.TrimSpace(input)
	if p, ok := r.index[strings.ToUpper(trimmed)]; ok {
		return p, nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= len(r.pairs) {
		return r.pairs[n-1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPair, input)
}
