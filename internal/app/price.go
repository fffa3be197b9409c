package app

import (
	"context"
	"fmt"
	"io"

	"crypto-price/internal/controller"
	"crypto-price/internal/view"
)

// PriceOptions configure a one-shot fetch.
type PriceOptions struct {
	Pair   string
	Format view.Format
}

// Price selects a pair, fetches it once and renders the final state to out.
func (a *App) Price(ctx context.Context, out io.Writer, opts PriceOptions) error {
	p, err := a.resolvePair(opts.Pair)
	if err != nil {
		return err
	}

	ctrl, closeCtrl := a.newController()
	defer closeCtrl()

	ctrl.SelectPair(p)
	state := ctrl.RequestFetch(ctx)

	if err := view.Render(out, opts.Format, ctrl.Snapshot()); err != nil {
		return err
	}
	if state.Status == controller.StatusFailed {
		return fmt.Errorf("%w: %s", ErrFetchFailed, state.Message)
	}
	return nil
}

// ListPairs prints the configured pairs.
func (a *App) ListPairs(out io.Writer) error {
	return view.Pairs(out, a.Registry.Pairs(), "")
}
