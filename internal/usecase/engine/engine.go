package engine

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/config"
	"room-reservation/internal/pkg/errs"
	"room-reservation/internal/usecase"
	"room-reservation/internal/usecase/commands"
)

type EventPublisher interface {
	Publish(ctx context.Context, ev reservation.Event) error
}

type Recorder interface {
	CommandProcessed(kind string, status int, elapsed time.Duration)
	MailboxDepth(depth int)
}

// Engine serializes commands through a bounded mailbox. The single Run loop only dispatches:
// each command completes on its own goroutine and answers on its own reply channel, so
// replies may arrive out of submission order.
type Engine struct {
	uc        usecase.ReservationUseCase
	publisher EventPublisher
	recorder  Recorder
	logger    *slog.Logger
	clock     clock.Clock
	cfg       config.EngineConfig

	mailbox chan commands.Command
	done    chan struct{}
	exited  chan struct{}

	runOnce  sync.Once
	stopOnce sync.Once
	inflight sync.WaitGroup
}

func New(
	uc usecase.ReservationUseCase,
	publisher EventPublisher,
	recorder Recorder,
	logger *slog.Logger,
	c clock.Clock,
	cfg config.EngineConfig,
) *Engine {
	return &Engine{
		uc:        uc,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		clock:     c,
		cfg:       cfg,
		mailbox:   make(chan commands.Command, cfg.MailboxSize),
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

// Start runs the dispatch loop in the background until Stop.
func (e *Engine) Start() {
	go e.Run(context.Background())
}

// Run consumes the mailbox until ctx ends or Stop is called. Only the first call runs.
func (e *Engine) Run(ctx context.Context) {
	first := false
	e.runOnce.Do(func() { first = true })
	if !first {
		return
	}
	defer close(e.exited)
	e.logger.Info("Reservation engine started", "mailbox_size", cap(e.mailbox))

	for {
		select {
		case <-ctx.Done():
			e.drain()
			return
		case <-e.done:
			e.drain()
			return
		case cmd := <-e.mailbox:
			e.recorder.MailboxDepth(len(e.mailbox))
			e.dispatch(cmd)
		}
	}
}

// Stop rejects new commands, fails queued ones and waits for in-flight work or ctx.
func (e *Engine) Stop(ctx context.Context) error {
	e.stopOnce.Do(func() { close(e.done) })

	started := true
	e.runOnce.Do(func() {
		started = false
		e.drain()
		close(e.exited)
	})
	if started {
		select {
		case <-e.exited:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	idle := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(idle)
	}()
	select {
	case <-idle:
		e.logger.Info("Reservation engine stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enqueues cmd. It fails with ErrEngineStopped after Stop and with ErrAskTimeout when the
// mailbox stays full until ctx ends.
func (e *Engine) Submit(ctx context.Context, cmd commands.Command) error {
	select {
	case <-e.done:
		return errs.ErrEngineStopped
	default:
	}

	select {
	case e.mailbox <- cmd:
		e.recorder.MailboxDepth(len(e.mailbox))
		// Stop may have won the race and drained already; nothing else would answer cmd then.
		select {
		case <-e.done:
			e.drain()
		default:
		}
		return nil
	case <-e.done:
		return errs.ErrEngineStopped
	case <-ctx.Done():
		return boundaryErr(ctx)
	}
}

func (e *Engine) drain() {
	for {
		select {
		case cmd := <-e.mailbox:
			cmd.Fail(commands.Failure(errs.ErrEngineStopped))
		default:
			e.recorder.MailboxDepth(0)
			return
		}
	}
}

func (e *Engine) dispatch(cmd commands.Command) {
	e.logger.Debug("Dispatching command", "command", string(cmd.Kind()))
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		start := time.Now()
		status := e.execute(cmd)
		e.recorder.CommandProcessed(string(cmd.Kind()), status, time.Since(start))
	}()
}

// execute runs one command to completion. Work is not bound to the caller's deadline.
func (e *Engine) execute(cmd commands.Command) (status int) {
	defer func() {
		if r := recover(); r != nil {
			err := errs.Newf("panic while handling %s: %v", cmd.Kind(), r)
			e.logger.Error("Command panicked", "command", string(cmd.Kind()), "error", err)
			cmd.Fail(commands.Failure(err))
			status = http.StatusInternalServerError
		}
	}()

	ctx := context.Background()

	switch c := cmd.(type) {
	case commands.CreateReservation:
		res, err := e.uc.CreateReservation(ctx, c.Client, c.Period)
		return e.replyReservation(ctx, c.Kind(), c.ReplyTo, http.StatusCreated, res, err, reservation.EventCreated)

	case commands.UpdateReservation:
		res, err := e.uc.UpdateReservation(ctx, c.ID, c.Update)
		ev := reservation.EventUpdated
		if st, ok := c.Update.Status.Get(); ok && st == reservation.StatusCanceled {
			ev = reservation.EventCanceled
		}
		return e.replyReservation(ctx, c.Kind(), c.ReplyTo, http.StatusOK, res, err, ev)

	case commands.GetReservation:
		res, err := e.uc.GetReservation(ctx, c.ID)
		return e.replyReservation(ctx, c.Kind(), c.ReplyTo, http.StatusOK, res, err, "")

	case commands.CancelReservation:
		res, err := e.uc.CancelReservation(ctx, c.ID)
		return e.replyReservation(ctx, c.Kind(), c.ReplyTo, http.StatusOK, res, err, reservation.EventCanceled)

	case commands.ListAvailabilities:
		result, err := e.uc.ListAvailabilities(ctx, c.From, c.To)
		if err != nil {
			out := e.failure(cmd.Kind(), err)
			commands.Reply(c.ReplyTo, commands.AvailabilitiesResponse{Outcome: out})
			return out.Status
		}
		commands.Reply(c.ReplyTo, commands.AvailabilitiesResponse{
			Outcome:        commands.Success(http.StatusOK),
			From:           result.From,
			To:             result.To,
			Availabilities: result.Availabilities,
		})
		return http.StatusOK

	default:
		out := e.failure(cmd.Kind(), errs.Newf("unknown command %T", cmd))
		cmd.Fail(out)
		return out.Status
	}
}

func (e *Engine) replyReservation(
	ctx context.Context,
	kind commands.Kind,
	replyTo chan<- commands.ReservationResponse,
	okStatus int,
	res *reservation.Reservation,
	err error,
	ev reservation.EventType,
) int {
	if err != nil {
		out := e.failure(kind, err)
		commands.Reply(replyTo, commands.ReservationResponse{Outcome: out})
		return out.Status
	}
	commands.Reply(replyTo, commands.ReservationResponse{Outcome: commands.Success(okStatus), Reservation: res})
	if ev != "" {
		e.publish(ctx, reservation.NewEvent(ev, res, e.clock.Now()))
	}
	return okStatus
}

func (e *Engine) failure(kind commands.Kind, err error) commands.Outcome {
	out := commands.Failure(err)
	if out.Status >= http.StatusInternalServerError {
		e.logger.Error("Command failed", "command", string(kind), "error", err.Error())
	}
	return out
}

// publish is fire-and-forget; a failed publish never changes the reply already sent.
func (e *Engine) publish(ctx context.Context, ev reservation.Event) {
	if err := e.publisher.Publish(ctx, ev); err != nil {
		e.logger.Warn("Failed to publish reservation event",
			"type", string(ev.Type), "reservation_id", ev.Reservation.ID().String(), "error", err.Error())
	}
}

func boundaryErr(ctx context.Context) error {
	if errs.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.ErrAskTimeout
	}
	return ctx.Err()
}
