package request

import (
	"strings"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/patch"
)

type CreateReservationRequest struct {
	ClientEmail   string `json:"clientEmail" binding:"required,email"`
	ClientName    string `json:"clientName" binding:"required"`
	ArrivalDate   string `json:"arrivalDate" binding:"required"`
	DepartureDate string `json:"departureDate" binding:"required"`
}

func (r CreateReservationRequest) ToDomain() (reservation.ClientInfo, reservation.StayPeriod, error) {
	arrival, err := reservation.ParseDate(r.ArrivalDate)
	if err != nil {
		return reservation.ClientInfo{}, reservation.StayPeriod{}, err
	}
	departure, err := reservation.ParseDate(r.DepartureDate)
	if err != nil {
		return reservation.ClientInfo{}, reservation.StayPeriod{}, err
	}
	return reservation.NewClientInfo(r.ClientEmail, r.ClientName), reservation.NewStayPeriod(arrival, departure), nil
}

// UpdateReservationRequest fields are all optional; absent ones are left unchanged.
type UpdateReservationRequest struct {
	ArrivalDate   *string `json:"arrivalDate,omitempty"`
	DepartureDate *string `json:"departureDate,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r UpdateReservationRequest) ToDomain() (reservation.Update, error) {
	var upd reservation.Update

	arrival, err := parseOptionalDate(r.ArrivalDate)
	if err != nil {
		return reservation.Update{}, err
	}
	upd.Arrival = patch.FromPtr(arrival)

	departure, err := parseOptionalDate(r.DepartureDate)
	if err != nil {
		return reservation.Update{}, err
	}
	upd.Departure = patch.FromPtr(departure)

	if r.Status != nil {
		st, err := reservation.ParseStatus(*r.Status)
		if err != nil {
			return reservation.Update{}, err
		}
		upd.Status = patch.Set(st)
	}
	return upd, nil
}

// AvailabilityQuery binds ?from=&to=; empty values fall back to engine defaults.
type AvailabilityQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (q AvailabilityQuery) ToDomain() (from, to *reservation.Date, err error) {
	if from, err = parseOptionalDate(nonEmpty(q.From)); err != nil {
		return nil, nil, err
	}
	if to, err = parseOptionalDate(nonEmpty(q.To)); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseOptionalDate(s *string) (*reservation.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := reservation.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
