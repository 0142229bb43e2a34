package reservation

import "time"

type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventCanceled EventType = "canceled"
)

// Event is emitted after a successful state change.
type Event struct {
	Type        EventType
	Reservation *Reservation
	OccurredAt  time.Time
}

func NewEvent(t EventType, r *Reservation, at time.Time) Event {
	return Event{Type: t, Reservation: r.Clone(), OccurredAt: at}
}
