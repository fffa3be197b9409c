package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"crypto-price/internal/alerting"
	"crypto-price/internal/controller"
	"crypto-price/internal/metrics"
	"crypto-price/internal/scheduler"
	"crypto-price/internal/view"
)

// Options configure the watch service.
type Options struct {
	Out         io.Writer
	Format      view.Format
	MetricsPath string
	Channels    []string
	AlertsOn    bool
}

// Service polls the selected pair on a schedule, renders each result and
// reports price changes.
type Service struct {
	scheduler *scheduler.Scheduler
	ctrl      *controller.Controller
	notifier  alerting.Notifier
	metrics   *metrics.Metrics
	opts      Options
	logger    zerolog.Logger

	last string
}

// New constructs the watch service. sched, notifier and m may be nil.
func New(ctrl *controller.Controller, sched *scheduler.Scheduler, notifier alerting.Notifier, m *metrics.Metrics, opts Options, logger zerolog.Logger) *Service {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Service{
		scheduler: sched,
		ctrl:      ctrl,
		notifier:  notifier,
		metrics:   m,
		opts:      opts,
		logger:    logger.With().Str("component", "service").Logger(),
	}
}

// Run begins the polling loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessTick)
}

// ProcessTick performs one fetch of the selected pair.
func (s *Service) ProcessTick(ctx context.Context, tick time.Time) error {
	state := s.ctrl.RequestFetch(ctx)
	snap := s.ctrl.Snapshot()

	if err := view.Render(s.opts.Out, s.opts.Format, snap); err != nil {
		s.logger.Error().Err(err).Msg("failed to render state")
	}

	if s.metrics != nil {
		s.metrics.Observe(snap)
		if s.opts.MetricsPath != "" {
			if err := s.metrics.WriteTextfile(s.opts.MetricsPath); err != nil {
				s.logger.Error().Err(err).Str("path", s.opts.MetricsPath).Msg("failed to write metrics textfile")
			}
		}
	}

	if state.Status != controller.StatusSuccess {
		return fmt.Errorf("fetch %s: %s", snap.Pair, state.Message)
	}

	previous := s.last
	s.last = state.Value
	if previous == state.Value {
		s.logger.Debug().Time("tick", tick).Str("pair", snap.Pair.String()).Msg("price unchanged")
		return nil
	}

	s.logger.Info().Time("tick", tick).
		Str("pair", snap.Pair.String()).
		Str("value", state.Value).
		Str("previous", previous).
		Msg("price changed")

	if s.opts.AlertsOn && s.notifier != nil {
		note := alerting.Notification{
			Time:     tick,
			Pair:     snap.Pair.String(),
			Value:    state.Value,
			Exact:    state.Exact,
			Previous: previous,
			Channels: s.opts.Channels,
		}
		if err := s.notifier.Notify(ctx, note); err != nil {
			s.logger.Error().Err(err).Time("tick", tick).Msg("failed to dispatch notification")
		}
	}

	return nil
}
