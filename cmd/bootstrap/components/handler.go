package components

import (
	"room-reservation/internal/handler"
	"room-reservation/internal/handler/api"
	"room-reservation/internal/usecase/engine"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(e *engine.Engine) api.ReservationEngine { return e },
		api.NewReservationHandler,
	),
	fx.Invoke(handler.NewRouter),
)
