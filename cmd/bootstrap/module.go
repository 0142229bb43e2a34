package bootstrap

import (
	"room-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	EventsModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
