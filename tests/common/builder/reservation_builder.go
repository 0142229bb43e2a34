//go:build unit || e2e

package builder

import (
	"time"

	"room-reservation/internal/domain/reservation"
	reqdto "room-reservation/internal/handler/dto/request"

	"github.com/google/uuid"
)

// Today is the fixed "now" used by unit tests together with clock.NewMockClock(TodayTime).
var (
	Today     = reservation.NewDate(2024, time.June, 1)
	TodayTime = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
)

type ReservationBuilder struct {
	ID          uuid.UUID
	ClientEmail string
	ClientName  string
	Arrival     reservation.Date
	Departure   reservation.Date
	Status      reservation.Status
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:          uuid.New(),
		ClientEmail: "guest@example.com",
		ClientName:  "Test Guest",
		Arrival:     Today.AddDays(2),
		Departure:   Today.AddDays(4),
		Status:      reservation.StatusActive,
		CreatedAt:   TodayTime,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Days sets the period relative to Today.
func (b *ReservationBuilder) Days(arrival, departure int) *ReservationBuilder {
	b.Arrival = Today.AddDays(arrival)
	b.Departure = Today.AddDays(departure)
	return b
}

func (b *ReservationBuilder) Canceled() *ReservationBuilder {
	b.Status = reservation.StatusCanceled
	return b
}

// Build methods
func (b *ReservationBuilder) BuildPeriod() reservation.StayPeriod {
	return reservation.NewStayPeriod(b.Arrival, b.Departure)
}

func (b *ReservationBuilder) BuildClient() reservation.ClientInfo {
	return reservation.NewClientInfo(b.ClientEmail, b.ClientName)
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(b.ID, b.BuildClient(), b.BuildPeriod(), b.Status, b.CreatedAt, b.CreatedAt)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ClientEmail:   b.ClientEmail,
		ClientName:    b.ClientName,
		ArrivalDate:   b.Arrival.String(),
		DepartureDate: b.Departure.String(),
	}
}

func (b *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	arrival := b.Arrival.String()
	departure := b.Departure.String()
	status := b.Status.String()
	return reqdto.UpdateReservationRequest{
		ArrivalDate:   &arrival,
		DepartureDate: &departure,
		Status:        &status,
	}
}
