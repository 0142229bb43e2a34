package reservation

import (
	"room-reservation/internal/pkg/errs"
)

// Booking rule violations, one distinct sentinel per rule. The lists below group them by kind.
var (
	ErrAlreadyPast = errs.New("Period already past.")
	ErrTooShort    = errs.New("Period must contain at least one day.")
	ErrTooSoon     = errs.New("Period must start at least tomorow.")
	ErrTooFar      = errs.New("Period must start the next month, at most.")

	ErrTooLong                     = errs.New("You can not reserve for more than three days.")
	ErrNotAvailable                = errs.New("This reservation period is not available.")
	ErrNotReactivableWithoutPeriod = errs.New(
		"The reservation can not be reactivated if you do not specify a period (it may be not still available).")
)

var (
	windowErrors      = []error{ErrAlreadyPast, ErrTooShort, ErrTooSoon, ErrTooFar}
	reservationErrors = []error{ErrTooLong, ErrNotAvailable, ErrNotReactivableWithoutPeriod}
)

// IsAvailabilityWindowError reports whether err is one of the window rules.
func IsAvailabilityWindowError(err error) bool {
	return errs.IsAny(err, windowErrors...)
}

// IsReservationError reports whether err is one of the reservation rules on top of the window.
func IsReservationError(err error) bool {
	return errs.IsAny(err, reservationErrors...)
}

// IsClientError reports whether err is a booking rule violation or unparsable input.
func IsClientError(err error) bool {
	return IsAvailabilityWindowError(err) || IsReservationError(err) || errs.IsAny(err, ErrInvalidDate, ErrInvalidStatus)
}

// BookingPolicy holds the booking window and stay length rules.
type BookingPolicy struct {
	MinLeadDays      int // arrival must be at least today+MinLeadDays
	MaxAdvanceMonths int // arrival must be at most today+MaxAdvanceMonths
	MaxStayDays      int
}

func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinLeadDays:      1,
		MaxAdvanceMonths: 1,
		MaxStayDays:      3,
	}
}

// ValidateAvailabilityWindow checks, in order: past, ordering, too soon, too far.
// The first violated rule is returned.
func (p BookingPolicy) ValidateAvailabilityWindow(today Date, period Period) error {
	arrival, departure := period.ArrivalDate(), period.DepartureDate()
	switch {
	case arrival.Before(today):
		return ErrAlreadyPast
	case !departure.After(arrival):
		return ErrTooShort
	case arrival.Before(today.AddDays(p.MinLeadDays)):
		return ErrTooSoon
	case arrival.After(today.AddMonths(p.MaxAdvanceMonths)):
		return ErrTooFar
	}
	return nil
}

// ValidateReservationPeriod adds the stay length rule on top of the window rules.
func (p BookingPolicy) ValidateReservationPeriod(today Date, period Period) error {
	if err := p.ValidateAvailabilityWindow(today, period); err != nil {
		return err
	}
	if period.DepartureDate().After(period.ArrivalDate().AddDays(p.MaxStayDays)) {
		return ErrTooLong
	}
	return nil
}

// DefaultWindow fills a missing query bound: from defaults to the first bookable day,
// to defaults to from plus the advance limit.
func (p BookingPolicy) DefaultWindow(today Date, from, to *Date) (Date, Date) {
	start := today.AddDays(p.MinLeadDays)
	if from != nil {
		start = *from
	}
	end := start.AddMonths(p.MaxAdvanceMonths)
	if to != nil {
		end = *to
	}
	return start, end
}
