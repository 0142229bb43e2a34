package reservation

import (
	"sort"
)

// ComputeAvailabilities returns the free windows of [from, to) left by the given periods, ordered by start.
// Callers pass only ACTIVE reservations. Periods that merely touch the window are ignored.
func (p BookingPolicy) ComputeAvailabilities(today, from, to Date, periods []Period) ([]Availability, error) {
	if err := p.ValidateAvailabilityWindow(today, NewStayPeriod(from, to)); err != nil {
		return nil, err
	}

	relevant := make([]Period, 0, len(periods))
	for _, r := range periods {
		if r.DepartureDate().After(from) && r.ArrivalDate().Before(to) {
			relevant = append(relevant, r)
		}
	}
	if len(relevant) == 0 {
		return []Availability{NewAvailability(from, to)}, nil
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].ArrivalDate().Before(relevant[j].ArrivalDate())
	})

	// cursor only moves forward, so nested or overlapping periods never reopen a gap
	cursor := from
	windows := make([]Availability, 0, len(relevant)+1)
	for _, r := range relevant {
		if r.ArrivalDate().After(cursor) {
			windows = append(windows, NewAvailability(cursor, r.ArrivalDate()))
		}
		cursor = MaxDate(cursor, r.DepartureDate())
	}
	if cursor.Before(to) {
		windows = append(windows, NewAvailability(cursor, to))
	}
	return windows, nil
}

// IsExactlyAvailable reports whether the first computed window is the requested period itself.
// A window that merely contains the period does not count.
func IsExactlyAvailable(period Period, windows []Availability) bool {
	return len(windows) > 0 && SamePeriod(windows[0], period)
}

// CheckAvailable validates period as a stay and checks it against the other ACTIVE periods.
func (p BookingPolicy) CheckAvailable(today Date, period Period, others []Period) error {
	if err := p.ValidateReservationPeriod(today, period); err != nil {
		return err
	}
	windows, err := p.ComputeAvailabilities(today, period.ArrivalDate(), period.DepartureDate(), others)
	if err != nil {
		return err
	}
	if !IsExactlyAvailable(period, windows) {
		return ErrNotAvailable
	}
	return nil
}

// ActivePeriods keeps the ACTIVE reservations as periods.
func ActivePeriods(reservations []*Reservation) []Period {
	out := make([]Period, 0, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}
