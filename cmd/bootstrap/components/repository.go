package components

import (
	repo_impl "room-reservation/internal/infra/repository"
	"room-reservation/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(usecase.ReservationRepository)),
		),
	),
)
