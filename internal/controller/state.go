package controller

import (
	"github.com/shopspring/decimal"

	"crypto-price/internal/pair"
)

// Status tags the active FetchState variant.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState holds exactly one of Idle, Loading, Success(Value) or Failed(Message).
// Payload fields are only meaningful for their own variant.
type FetchState struct {
	Status  Status
	Value   string
	Exact   decimal.Decimal
	Message string
}

// Idle is the state before any fetch for the current selection.
func Idle() FetchState { return FetchState{Status: StatusIdle} }

// Loading marks an in-flight fetch.
func Loading() FetchState { return FetchState{Status: StatusLoading} }

// Success carries the formatted display value and its exact decimal counterpart.
func Success(value string, exact decimal.Decimal) FetchState {
	return FetchState{Status: StatusSuccess, Value: value, Exact: exact}
}

// Failed carries the user-facing error message.
func Failed(message string) FetchState {
	return FetchState{Status: StatusFailed, Message: message}
}

// Snapshot is the renderable view of a Controller.
type Snapshot struct {
	Pair  pair.Pair
	State FetchState
}
