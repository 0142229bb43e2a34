package engine

import (
	"context"
	"time"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

// ask submits the command built around a fresh buffered reply channel and waits for the reply.
// The timeout only bounds the wait; the engine finishes the work regardless.
func ask[T any](ctx context.Context, e *Engine, timeout time.Duration, build func(chan<- T) commands.Command) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply := make(chan T, 1)
	if err := e.Submit(ctx, build(reply)); err != nil {
		return zero, err
	}

	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return zero, boundaryErr(ctx)
	}
}

func (e *Engine) CreateReservation(ctx context.Context, client reservation.ClientInfo, period reservation.StayPeriod) (commands.ReservationResponse, error) {
	return ask(ctx, e, e.cfg.AskTimeout, func(reply chan<- commands.ReservationResponse) commands.Command {
		return commands.CreateReservation{Client: client, Period: period, ReplyTo: reply}
	})
}

func (e *Engine) UpdateReservation(ctx context.Context, id uuid.UUID, upd reservation.Update) (commands.ReservationResponse, error) {
	return ask(ctx, e, e.cfg.AskTimeout, func(reply chan<- commands.ReservationResponse) commands.Command {
		return commands.UpdateReservation{ID: id, Update: upd, ReplyTo: reply}
	})
}

func (e *Engine) GetReservation(ctx context.Context, id uuid.UUID) (commands.ReservationResponse, error) {
	return ask(ctx, e, e.cfg.GetTimeout, func(reply chan<- commands.ReservationResponse) commands.Command {
		return commands.GetReservation{ID: id, ReplyTo: reply}
	})
}

func (e *Engine) CancelReservation(ctx context.Context, id uuid.UUID) (commands.ReservationResponse, error) {
	return ask(ctx, e, e.cfg.AskTimeout, func(reply chan<- commands.ReservationResponse) commands.Command {
		return commands.CancelReservation{ID: id, ReplyTo: reply}
	})
}

func (e *Engine) ListAvailabilities(ctx context.Context, from, to *reservation.Date) (commands.AvailabilitiesResponse, error) {
	return ask(ctx, e, e.cfg.AskTimeout, func(reply chan<- commands.AvailabilitiesResponse) commands.Command {
		return commands.ListAvailabilities{From: from, To: to, ReplyTo: reply}
	})
}
