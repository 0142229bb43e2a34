package components

import (
	"context"
	"log/slog"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/config"
	"room-reservation/internal/usecase"
	"room-reservation/internal/usecase/engine"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseReservationModule,
	usecaseEngineModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewServices,
)

var usecaseReservationModule = fx.Module("usecase/reservation",
	fx.Provide(
		func(repo usecase.ReservationRepository, services *reservation.Services, cfg config.Config) usecase.ReservationUseCase {
			return usecase.NewReservationUseCase(repo, services, cfg.Engine.AtomicReserve)
		},
	),
)

var usecaseEngineModule = fx.Module("usecase/engine",
	fx.Provide(
		NewEngine,
	),
)

// NewEngine ties the engine loop to the app lifecycle. Hooks stop in reverse order, so the HTTP
// server drains its requests before the engine stops answering them.
func NewEngine(
	lc fx.Lifecycle,
	uc usecase.ReservationUseCase,
	publisher engine.EventPublisher,
	recorder engine.Recorder,
	logger *slog.Logger,
	c clock.Clock,
	cfg config.Config,
) *engine.Engine {
	e := engine.New(uc, publisher, recorder, logger, c, cfg.Engine)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			e.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Stop(ctx)
		},
	})
	return e
}
