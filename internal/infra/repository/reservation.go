package repository

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/infra"
	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

type entry struct {
	mu  sync.Mutex
	res *reservation.Reservation
}

// ReservationRepository is the in-memory store. Each entry has its own lock so read-modify-write on
// one id is atomic. bookMu serializes the guarded operations, which closes the gap between an
// availability check and the write across different ids.
type ReservationRepository struct {
	logger *slog.Logger
	clock  clock.Clock

	mu      sync.RWMutex
	entries map[uuid.UUID]*entry

	bookMu sync.Mutex
}

func NewReservationRepository(logger *slog.Logger, c clock.Clock) *ReservationRepository {
	return &ReservationRepository{
		logger:  logger,
		clock:   c,
		entries: make(map[uuid.UUID]*entry),
	}
}

func (r *ReservationRepository) Create(ctx context.Context, client reservation.ClientInfo, period reservation.Period) (*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "create"); err != nil {
		return nil, err
	}
	res := reservation.NewReservation(client, period, r.clock.Now())
	if err := r.insert(res); err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

// Insert stores an already built reservation, keeping its id and timestamps. It bypasses the
// booking rules and exists for seeding fixtures (past or overlapping stays) in tests; the
// engine only writes through Create, Update and the guarded variants.
func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	if err := r.checkCtx(ctx, "insert"); err != nil {
		return err
	}
	return r.insert(res.Clone())
}

func (r *ReservationRepository) insert(res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[res.ID()]; exists {
		return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "reservation id already stored", nil)
	}
	r.entries[res.ID()] = &entry{res: res}
	return nil
}

// Update applies upd to the stored reservation under its entry lock.
func (r *ReservationRepository) Update(ctx context.Context, id uuid.UUID, upd reservation.Update) (*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "update"); err != nil {
		return nil, err
	}
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.res.ApplyUpdate(upd, r.clock.Now())
	return e.res.Clone(), nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.Update(ctx, id, reservation.CancelUpdate())
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "find by id"); err != nil {
		return nil, err
	}
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

// FindFrom returns every reservation departing on or after date, ordered by arrival.
func (r *ReservationRepository) FindFrom(ctx context.Context, date reservation.Date) ([]*reservation.Reservation, error) {
	return r.FindFromExcept(ctx, date, uuid.Nil)
}

// FindFromExcept is FindFrom without the reservation identified by except.
func (r *ReservationRepository) FindFromExcept(ctx context.Context, date reservation.Date, except uuid.UUID) ([]*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "find from"); err != nil {
		return nil, err
	}
	return r.collect(date, except), nil
}

// CreateIfAvailable runs guard over the candidates overlapping the period's range and writes the
// new reservation only if guard accepts. No other guarded operation can interleave.
func (r *ReservationRepository) CreateIfAvailable(
	ctx context.Context,
	client reservation.ClientInfo,
	period reservation.Period,
	guard reservation.CreateGuard,
) (*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "create if available"); err != nil {
		return nil, err
	}

	r.bookMu.Lock()
	defer r.bookMu.Unlock()

	if err := guard(r.collect(period.ArrivalDate(), uuid.Nil)); err != nil {
		return nil, err
	}
	res := reservation.NewReservation(client, period, r.clock.Now())
	if err := r.insert(res); err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

// UpdateIfAvailable lets decide inspect the stored reservation and the other candidates, then
// writes the returned change. The entry lock is held from read to write.
func (r *ReservationRepository) UpdateIfAvailable(ctx context.Context, id uuid.UUID, decide reservation.UpdateDecider) (*reservation.Reservation, error) {
	if err := r.checkCtx(ctx, "update if available"); err != nil {
		return nil, err
	}
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	r.bookMu.Lock()
	defer r.bookMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	upd, err := decide(e.res.Clone(), func(from reservation.Date) []*reservation.Reservation {
		return r.collect(from, id)
	})
	if err != nil {
		return nil, err
	}
	e.res.ApplyUpdate(upd, r.clock.Now())
	return e.res.Clone(), nil
}

func (r *ReservationRepository) lookup(id uuid.UUID) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", errs.ErrReservationNotFound)
	}
	return e, nil
}

// collect must not be called while holding the entry lock of anything but except.
func (r *ReservationRepository) collect(from reservation.Date, except uuid.UUID) []*reservation.Reservation {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for id, e := range r.entries {
		if id != except {
			entries = append(entries, e)
		}
	}
	r.mu.RUnlock()

	out := make([]*reservation.Reservation, 0, len(entries))
	for _, e := range entries {
		res := e.snapshot()
		if !res.DepartureDate().Before(from) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ArrivalDate().Before(out[j].ArrivalDate())
	})
	return out
}

func (r *ReservationRepository) checkCtx(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindCanceled, "reservation "+op+" aborted", err)
	}
	return nil
}

func (e *entry) snapshot() *reservation.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.res.Clone()
}
