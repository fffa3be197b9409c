package fetcher

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// Kind classifies a fetch failure.
type Kind string

const (
	// KindNoPairSelected means the fetch was requested without a pair.
	KindNoPairSelected Kind = "no_pair_selected"
	// KindCallFailed covers network failures, reverts and provider rejections.
	KindCallFailed Kind = "call_failed"
	// KindNoProvider means no RPC provider is available to reach the chain.
	KindNoProvider Kind = "no_provider"
)

// User-facing messages.
const (
	MsgNoPairSelected = "Please select a conversion pair"
	MsgCallFailed     = "Failed to fetch price data. Please try again."
	MsgNoProvider     = "No Ethereum provider available. Configure ethereum.rpc_url."
)

// ErrNoProvider is returned by readers that cannot reach a provider.
var ErrNoProvider = errors.New("no ethereum provider available")

// FetchError is the only error type returned by PriceFetcher.
type FetchError struct {
	Kind   Kind
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return string(e.Kind) + ": " + e.Message()
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Message returns the text shown to the user.
func (e *FetchError) Message() string {
	switch e.Kind {
	case KindNoPairSelected:
		return MsgNoPairSelected
	case KindNoProvider:
		return MsgNoProvider
	}
	if e.Reason != "" {
		return e.Reason
	}
	return MsgCallFailed
}

// ReasonError is implemented by provider errors that carry their own
// human-readable explanation.
type ReasonError interface {
	error
	Reason() string
}

// ExtractReason returns the provider's explanation for err, if it has one.
// Reverts with an Error(string) payload are decoded from the JSON-RPC error data.
func ExtractReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var re ReasonError
	if errors.As(err, &re) && re.Reason() != "" {
		return re.Reason(), true
	}

	var de rpc.DataError
	if errors.As(err, &de) {
		var data []byte
		switch v := de.ErrorData().(type) {
		case string:
			data = common.FromHex(v)
		case []byte:
			data = v
		}
		if len(data) > 0 {
			if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil && reason != "" {
				return reason, true
			}
		}
	}
	return "", false
}
