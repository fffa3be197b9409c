package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"crypto-price/internal/fetcher"
	"crypto-price/internal/pair"
)

// Observer is notified after every state transition.
type Observer func(Snapshot)

// Controller owns the selected pair and the current FetchState.
//
// Triggers are expected to be gated on CanFetch by the presentation layer; the
// controller does not serialise overlapping RequestFetch calls itself.
type Controller struct {
	source   fetcher.PriceSource
	logger   zerolog.Logger
	observer Observer

	mu    sync.Mutex
	pair  pair.Pair
	state FetchState
}

// Option customises a Controller.
type Option func(*Controller)

// WithObserver registers a transition callback.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithInitialPair preselects a pair.
func WithInitialPair(p pair.Pair) Option {
	return func(c *Controller) { c.pair = p }
}

// New constructs a controller in the Idle state with no pair selected.
func New(source fetcher.PriceSource, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		source: source,
		logger: logger.With().Str("component", "controller").Logger(),
		state:  Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectPair sets the current pair and always resets the state to Idle.
func (c *Controller) SelectPair(p pair.Pair) {
	c.transition(func() {
		c.pair = p
		c.state = Idle()
	})
	c.logger.Debug().Str("pair", p.String()).Msg("pair selected")
}

// RequestFetch fetches the price of the selected pair and returns the final state.
func (c *Controller) RequestFetch(ctx context.Context) FetchState {
	var current pair.Pair
	var noPair bool
	c.transition(func() {
		current = c.pair
		if current == "" {
			noPair = true
			c.state = Failed(fetcher.MsgNoPairSelected)
			return
		}
		c.state = Loading()
	})
	if noPair {
		return c.State()
	}

	raw, err := c.source.FetchPrice(ctx, current)

	var next FetchState
	if err != nil {
		next = Failed(failureMessage(err))
	} else {
		next = Success(pair.FormatDisplay(current, raw), pair.Scaled(current, raw))
		c.logger.Info().Str("pair", current.String()).Str("value", next.Value).Msg("price updated")
	}

	c.transition(func() { c.state = next })
	return next
}

// CanFetch reports whether a fetch trigger should be enabled.
func (c *Controller) CanFetch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair != "" && c.state.Status != StatusLoading
}

// Pair returns the selected pair, empty if none.
func (c *Controller) Pair() pair.Pair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair
}

// State returns the current FetchState.
func (c *Controller) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the pair and state together.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Pair: c.pair, State: c.state}
}

func (c *Controller) transition(mutate func()) {
	c.mu.Lock()
	mutate()
	snap := Snapshot{Pair: c.pair, State: c.state}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(snap)
	}
}

func failureMessage(err error) string {
	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return fetcher.MsgCallFailed
}
