package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"syscall"
	"time"

	"crypto-price/internal/controller"
	"crypto-price/internal/fetcher"
	"crypto-price/internal/metrics"
	"crypto-price/internal/scheduler"
	"crypto-price/internal/service"
	"crypto-price/internal/view"
)

// WatchOptions configure the watch command.
type WatchOptions struct {
	Pair     string
	Format   view.Format
	Interval time.Duration
	Count    int
}

// Watch polls a pair until interrupted or Count fetches have run.
func (a *App) Watch(ctx context.Context, out io.Writer, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p, err := a.resolvePair(opts.Pair)
	if err != nil {
		return err
	}
	if p == "" {
		return errors.New(fetcher.MsgNoPairSelected)
	}

	interval := a.Config.Watch.Interval
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     interval,
		AlignToStart: a.Config.Watch.AlignToBucket,
		StartupDelay: a.Config.Watch.StartupDelay,
		Immediate:    true,
		MaxTicks:     opts.Count,
	}, a.Logger)

	ctrl, closeCtrl := a.newController(controller.WithInitialPair(p))
	defer closeCtrl()

	svc := service.New(ctrl, sched, a.newNotifier(), metrics.New(), service.Options{
		Out:         out,
		Format:      opts.Format,
		MetricsPath: a.Config.Watch.MetricsTextfile,
		Channels:    a.Config.Alerting.Channels,
		AlertsOn:    a.Config.Alerting.Enabled,
	}, a.Logger)

	a.Logger.Info().Str("pair", p.String()).Dur("interval", interval).Msg("starting watch")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.Logger.Info().Msg("watch stopped")
	return nil
}

// SimulateAlert runs a single watch tick against a fixed oracle answer so the
// notification path can be checked without a provider.
func (a *App) SimulateAlert(ctx context.Context, out io.Writer, pairInput string, raw *big.Int) error {
	if !a.Config.Alerting.Enabled {
		return errors.New("alerting is not enabled")
	}
	notifier := a.newNotifier()
	if notifier == nil {
		return errors.New("no notification channel configured")
	}

	p, err := a.resolvePair(pairInput)
	if err != nil {
		return err
	}
	if p == "" {
		return errors.New(fetcher.MsgNoPairSelected)
	}

	sim := *a
	sim.reader = fetcher.NewStaticReader(map[string]*big.Int{p.String(): raw})
	ctrl, closeCtrl := sim.newController(controller.WithInitialPair(p))
	defer closeCtrl()

	svc := service.New(ctrl, nil, notifier, nil, service.Options{
		Out:      out,
		Format:   view.FormatText,
		Channels: a.Config.Alerting.Channels,
		AlertsOn: true,
	}, a.Logger)

	if err := svc.ProcessTick(ctx, time.Now().UTC()); err != nil {
		return fmt.Errorf("simulate alert: %w", err)
	}
	return nil
}
