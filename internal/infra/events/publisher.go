package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/pkg/config"
	"room-reservation/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errs.New("nats not connected")

// Message is the JSON body published on <prefix>.<type>.
type Message struct {
	Type        string             `json:"type"`
	Reservation ReservationPayload `json:"reservation"`
	OccurredAt  time.Time          `json:"occurredAt"`
}

type ReservationPayload struct {
	ID            uuid.UUID `json:"id"`
	ClientEmail   string    `json:"clientEmail"`
	ClientName    string    `json:"clientName"`
	ArrivalDate   string    `json:"arrivalDate"`
	DepartureDate string    `json:"departureDate"`
	Status        string    `json:"status"`
}

func NewMessage(ev reservation.Event) Message {
	r := ev.Reservation
	return Message{
		Type: string(ev.Type),
		Reservation: ReservationPayload{
			ID:            r.ID(),
			ClientEmail:   r.ClientEmail(),
			ClientName:    r.ClientName(),
			ArrivalDate:   r.ArrivalDate().String(),
			DepartureDate: r.DepartureDate().String(),
			Status:        r.Status().String(),
		},
		OccurredAt: ev.OccurredAt,
	}
}

func Subject(prefix string, t reservation.EventType) string {
	return prefix + "." + string(t)
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	IsClosed() bool
	Drain() error
	Close()
}

type NATSPublisher struct {
	nc     conn
	prefix string
	logger *slog.Logger
}

func NewNATSPublisher(cfg config.EventsConfig, logger *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to NATS")
	}
	logger.Info("NATS event publisher connected", "url", nc.ConnectedUrl(), "prefix", cfg.SubjectPrefix)
	return newNATSPublisher(nc, cfg.SubjectPrefix, logger), nil
}

func newNATSPublisher(nc conn, prefix string, logger *slog.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix, logger: logger}
}

func (p *NATSPublisher) Publish(_ context.Context, ev reservation.Event) error {
	if p.nc == nil || p.nc.IsClosed() {
		return ErrNotConnected
	}
	payload, err := json.Marshal(NewMessage(ev))
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event")
	}
	if err := p.nc.Publish(Subject(p.prefix, ev.Type), payload); err != nil {
		return errs.Wrap(err, "failed to publish reservation event")
	}
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", "error", err)
	}
	p.nc.Close()
}

// NopPublisher is used when no NATS URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, reservation.Event) error { return nil }
func (NopPublisher) Close()                                          {}
