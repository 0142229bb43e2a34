package commands

import (
	"net/http"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCreate             Kind = "create"
	KindUpdate             Kind = "update"
	KindGet                Kind = "get"
	KindCancel             Kind = "cancel"
	KindListAvailabilities Kind = "list_availabilities"
)

// Command is one message in the engine mailbox. Fail delivers an error outcome on the command's
// own reply channel without blocking.
type Command interface {
	Kind() Kind
	Fail(o Outcome)
}

// Outcome is the status part shared by every response. Err is nil on success and on not-found.
type Outcome struct {
	Status int
	Err    error
}

func Success(status int) Outcome {
	return Outcome{Status: status}
}

func Failure(err error) Outcome {
	status := StatusOf(err)
	if status == http.StatusNotFound {
		return Outcome{Status: status}
	}
	return Outcome{Status: status, Err: err}
}

func (o Outcome) OK() bool {
	return o.Status >= 200 && o.Status < 300
}

func (o Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// StatusOf maps an error to the protocol status: booking rule violations are 400, misses 404,
// an unavailable engine 503, anything else 500.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errs.Is(err, errs.ErrReservationNotFound):
		return http.StatusNotFound
	case reservation.IsClientError(err):
		return http.StatusBadRequest
	case errs.IsAny(err, errs.ErrAskTimeout, errs.ErrEngineStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ReservationResponse struct {
	Outcome
	Reservation *reservation.Reservation
}

type AvailabilitiesResponse struct {
	Outcome
	From           reservation.Date
	To             reservation.Date
	Availabilities []reservation.Availability
}

type CreateReservation struct {
	Client  reservation.ClientInfo
	Period  reservation.StayPeriod
	ReplyTo chan<- ReservationResponse
}

type UpdateReservation struct {
	ID      uuid.UUID
	Update  reservation.Update
	ReplyTo chan<- ReservationResponse
}

type GetReservation struct {
	ID      uuid.UUID
	ReplyTo chan<- ReservationResponse
}

type CancelReservation struct {
	ID      uuid.UUID
	ReplyTo chan<- ReservationResponse
}

// ListAvailabilities with a nil bound uses the booking policy default for it.
type ListAvailabilities struct {
	From    *reservation.Date
	To      *reservation.Date
	ReplyTo chan<- AvailabilitiesResponse
}

func (CreateReservation) Kind() Kind  { return KindCreate }
func (UpdateReservation) Kind() Kind  { return KindUpdate }
func (GetReservation) Kind() Kind     { return KindGet }
func (CancelReservation) Kind() Kind  { return KindCancel }
func (ListAvailabilities) Kind() Kind { return KindListAvailabilities }

func (c CreateReservation) Fail(o Outcome)  { Reply(c.ReplyTo, ReservationResponse{Outcome: o}) }
func (c UpdateReservation) Fail(o Outcome)  { Reply(c.ReplyTo, ReservationResponse{Outcome: o}) }
func (c GetReservation) Fail(o Outcome)     { Reply(c.ReplyTo, ReservationResponse{Outcome: o}) }
func (c CancelReservation) Fail(o Outcome)  { Reply(c.ReplyTo, ReservationResponse{Outcome: o}) }
func (c ListAvailabilities) Fail(o Outcome) { Reply(c.ReplyTo, AvailabilitiesResponse{Outcome: o}) }

// Reply never blocks: a caller that already gave up must not stall the engine.
// Reply channels are expected to be buffered.
func Reply[T any](ch chan<- T, v T) {
	if ch == nil {
		return
	}
	select {
	case ch <- v:
	default:
	}
}
