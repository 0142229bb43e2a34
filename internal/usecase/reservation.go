package usecase

import (
	"context"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/infra"
	"room-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationRepository interface {
	Create(ctx context.Context, client reservation.ClientInfo, period reservation.Period) (*reservation.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, upd reservation.Update) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindFrom(ctx context.Context, date reservation.Date) ([]*reservation.Reservation, error)
	FindFromExcept(ctx context.Context, date reservation.Date, except uuid.UUID) ([]*reservation.Reservation, error)
	CreateIfAvailable(ctx context.Context, client reservation.ClientInfo, period reservation.Period, guard reservation.CreateGuard) (*reservation.Reservation, error)
	UpdateIfAvailable(ctx context.Context, id uuid.UUID, decide reservation.UpdateDecider) (*reservation.Reservation, error)
}

type ReservationUseCase interface {
	CreateReservation(ctx context.Context, client reservation.ClientInfo, period reservation.Period) (*reservation.Reservation, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, upd reservation.Update) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListAvailabilities(ctx context.Context, from, to *reservation.Date) (*AvailabilityResult, error)
}

type AvailabilityResult struct {
	From           reservation.Date
	To             reservation.Date
	Availabilities []reservation.Availability
}

type reservationUseCaseImpl struct {
	reservationRepo ReservationRepository
	services        *reservation.Services
	atomicReserve   bool
}

// NewReservationUseCase with atomicReserve=false checks availability and writes in two separate store calls.
func NewReservationUseCase(
	reservationRepo ReservationRepository,
	services *reservation.Services,
	atomicReserve bool,
) ReservationUseCase {
	return &reservationUseCaseImpl{
		reservationRepo: reservationRepo,
		services:        services,
		atomicReserve:   atomicReserve,
	}
}

func (u *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	client reservation.ClientInfo,
	period reservation.Period,
) (*reservation.Reservation, error) {
	today := u.services.Today()
	if err := u.services.Policy.ValidateReservationPeriod(today, period); err != nil {
		return nil, err
	}

	guard := func(candidates []*reservation.Reservation) error {
		return u.services.Policy.CheckAvailable(today, period, reservation.ActivePeriods(candidates))
	}

	if u.atomicReserve {
		res, err := u.reservationRepo.CreateIfAvailable(ctx, client, period, guard)
		return res, u.translate(err, "failed to create reservation")
	}

	candidates, err := u.reservationRepo.FindFrom(ctx, period.ArrivalDate())
	if err != nil {
		return nil, u.translate(err, "failed to load reservations")
	}
	if err := guard(candidates); err != nil {
		return nil, err
	}
	res, err := u.reservationRepo.Create(ctx, client, period)
	return res, u.translate(err, "failed to create reservation")
}

// UpdateReservation writes status-only changes directly. Any change to a bound is validated and
// availability-checked as a full period, the missing bound taken from the stored reservation.
func (u *reservationUseCaseImpl) UpdateReservation(
	ctx context.Context,
	id uuid.UUID,
	upd reservation.Update,
) (*reservation.Reservation, error) {
	if upd.Reactivates() && !upd.HasFullPeriod() {
		if _, err := u.GetReservation(ctx, id); err != nil {
			return nil, err
		}
		return nil, reservation.ErrNotReactivableWithoutPeriod
	}

	if !upd.IsPeriodUpdate() {
		res, err := u.reservationRepo.Update(ctx, id, upd)
		return res, u.translate(err, "failed to update reservation")
	}

	today := u.services.Today()
	decide := func(current *reservation.Reservation, candidates reservation.Candidates) (reservation.Update, error) {
		period := upd.PeriodOver(current)
		if err := u.services.Policy.CheckAvailable(today, period, reservation.ActivePeriods(candidates(period.ArrivalDate()))); err != nil {
			return reservation.Update{}, err
		}
		return upd.WithPeriod(period), nil
	}

	if u.atomicReserve {
		res, err := u.reservationRepo.UpdateIfAvailable(ctx, id, decide)
		return res, u.translate(err, "failed to update reservation")
	}

	current, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, u.translate(err, "failed to find reservation")
	}
	var loadErr error
	change, err := decide(current, func(from reservation.Date) []*reservation.Reservation {
		others, err := u.reservationRepo.FindFromExcept(ctx, from, id)
		loadErr = err
		return others
	})
	if loadErr != nil {
		return nil, u.translate(loadErr, "failed to load reservations")
	}
	if err != nil {
		return nil, err
	}
	res, err := u.reservationRepo.Update(ctx, id, change)
	return res, u.translate(err, "failed to update reservation")
}

func (u *reservationUseCaseImpl) GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservationRepo.FindByID(ctx, id)
	return res, u.translate(err, "failed to find reservation")
}

// CancelReservation succeeds again on an already canceled reservation.
func (u *reservationUseCaseImpl) CancelReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservationRepo.Cancel(ctx, id)
	return res, u.translate(err, "failed to cancel reservation")
}

func (u *reservationUseCaseImpl) ListAvailabilities(ctx context.Context, from, to *reservation.Date) (*AvailabilityResult, error) {
	today := u.services.Today()
	start, end := u.services.Policy.DefaultWindow(today, from, to)

	candidates, err := u.reservationRepo.FindFrom(ctx, start)
	if err != nil {
		return nil, u.translate(err, "failed to load reservations")
	}
	windows, err := u.services.Policy.ComputeAvailabilities(today, start, end, reservation.ActivePeriods(candidates))
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{From: start, To: end, Availabilities: windows}, nil
}

// translate maps store misses to ErrReservationNotFound, passes booking rule errors through
// and marks everything else as a store failure.
func (u *reservationUseCaseImpl) translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrReservationNotFound
	case reservation.IsClientError(err):
		return err
	default:
		return errs.Mark(errs.Wrap(err, msg), errs.ErrStoreOperationFailed)
	}
}
