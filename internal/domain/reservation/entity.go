package reservation

import (
	"time"

	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/patch"

	"github.com/google/uuid"
)

type Services struct {
	Clock  clock.Clock
	Policy BookingPolicy
}

func NewServices(c clock.Clock, policy BookingPolicy) *Services {
	return &Services{Clock: c, Policy: policy}
}

// Today is the current calendar day in the clock's location.
func (s *Services) Today() Date {
	return DateOf(s.Clock.Now())
}

type Reservation struct {
	id        uuid.UUID
	client    ClientInfo
	arrival   Date
	departure Date
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation does not validate the period; callers run the booking policy first.
func NewReservation(client ClientInfo, period Period, now time.Time) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		client:    client,
		arrival:   period.ArrivalDate(),
		departure: period.DepartureDate(),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructReservation(
	id uuid.UUID,
	client ClientInfo,
	period Period,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		client:    client,
		arrival:   period.ArrivalDate(),
		departure: period.DepartureDate(),
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCanceled
}

// ApplyUpdate writes every set field of u. Period validity is the caller's concern.
func (r *Reservation) ApplyUpdate(u Update, now time.Time) {
	u.Arrival.Apply(&r.arrival)
	u.Departure.Apply(&r.departure)
	u.Status.Apply(&r.status)
	r.updatedAt = now
}

func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) Client() ClientInfo   { return r.client }
func (r *Reservation) ClientEmail() string  { return r.client.Email() }
func (r *Reservation) ClientName() string   { return r.client.Name() }
func (r *Reservation) ArrivalDate() Date    { return r.arrival }
func (r *Reservation) DepartureDate() Date  { return r.departure }
func (r *Reservation) Period() StayPeriod   { return NewStayPeriod(r.arrival, r.departure) }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) NbDays() int          { return r.arrival.DaysUntil(r.departure) }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// Update is a partial change; every unset field is left as stored.
type Update struct {
	Arrival   patch.Field[Date]
	Departure patch.Field[Date]
	Status    patch.Field[Status]
}

func CancelUpdate() Update {
	return Update{Status: patch.Set(StatusCanceled)}
}

func (u Update) IsPeriodUpdate() bool {
	return u.Arrival.IsSet() || u.Departure.IsSet()
}

func (u Update) HasFullPeriod() bool {
	return u.Arrival.IsSet() && u.Departure.IsSet()
}

func (u Update) Reactivates() bool {
	st, ok := u.Status.Get()
	return ok && st == StatusActive
}

// PeriodOver fills the unset bounds from current.
func (u Update) PeriodOver(current Period) StayPeriod {
	return NewStayPeriod(
		u.Arrival.Or(current.ArrivalDate()),
		u.Departure.Or(current.DepartureDate()),
	)
}

// WithPeriod returns a copy of u with both bounds set to p.
func (u Update) WithPeriod(p Period) Update {
	u.Arrival = patch.Set(p.ArrivalDate())
	u.Departure = patch.Set(p.DepartureDate())
	return u
}
