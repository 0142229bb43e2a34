package bootstrap

import (
	"log/slog"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingPolicy,
	),
	fx.Invoke(logEffectiveConfig),
)

func NewBookingPolicy(cfg config.Config) reservation.BookingPolicy {
	return reservation.BookingPolicy{
		MinLeadDays:      cfg.Booking.MinLeadDays,
		MaxAdvanceMonths: cfg.Booking.MaxAdvanceMonths,
		MaxStayDays:      cfg.Booking.MaxStayDays,
	}
}

func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("Configuration loaded",
		slog.String("port", cfg.Server.Port),
		slog.Int("min_lead_days", cfg.Booking.MinLeadDays),
		slog.Int("max_advance_months", cfg.Booking.MaxAdvanceMonths),
		slog.Int("max_stay_days", cfg.Booking.MaxStayDays),
		slog.Int("mailbox_size", cfg.Engine.MailboxSize),
		slog.Bool("atomic_reserve", cfg.Engine.AtomicReserve),
		slog.Bool("metrics_enabled", cfg.Metrics.Enabled),
	)
}
