package response

import (
	"time"

	"room-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	ClientEmail   string    `json:"clientEmail"`
	ClientName    string    `json:"clientName"`
	ArrivalDate   string    `json:"arrivalDate"`
	DepartureDate string    `json:"departureDate"`
	Status        string    `json:"status"`
	NbDays        int       `json:"nbDays"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	NbDays int    `json:"nbDays"`
}

type AvailabilitiesResponse struct {
	From           string                 `json:"from"`
	To             string                 `json:"to"`
	Availabilities []AvailabilityResponse `json:"availabilities"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID(),
		ClientEmail:   r.ClientEmail(),
		ClientName:    r.ClientName(),
		ArrivalDate:   r.ArrivalDate().String(),
		DepartureDate: r.DepartureDate().String(),
		Status:        r.Status().String(),
		NbDays:        r.NbDays(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func FromAvailabilities(from, to reservation.Date, windows []reservation.Availability) *AvailabilitiesResponse {
	items := make([]AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		items = append(items, AvailabilityResponse{
			From:   w.From.String(),
			To:     w.To.String(),
			NbDays: w.NbDays(),
		})
	}
	return &AvailabilitiesResponse{
		From:           from.String(),
		To:             to.String(),
		Availabilities: items,
	}
}
