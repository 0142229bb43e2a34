package bootstrap

import (
	"context"
	"log/slog"

	"room-reservation/internal/infra/events"
	"room-reservation/internal/infra/metrics"
	"room-reservation/internal/pkg/config"
	"room-reservation/internal/usecase/engine"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		NewRecorder,
	),
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewMetrics returns nil when metrics are disabled; the router then skips /metrics.
func NewMetrics(cfg config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics)
}

func NewRecorder(m *metrics.Metrics) engine.Recorder {
	if m == nil {
		return metrics.Nop{}
	}
	return m
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (engine.EventPublisher, error) {
	if cfg.Events.NATSURL == "" {
		logger.Info("NATS_URL not set, reservation events are not published")
		return events.NopPublisher{}, nil
	}

	pub, err := events.NewNATSPublisher(cfg.Events, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			pub.Close()
			return nil
		},
	})
	return pub, nil
}
