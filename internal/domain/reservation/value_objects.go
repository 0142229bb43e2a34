package reservation

import (
	"encoding/json"
	"strings"
)

// Period is anything carrying an arrival and a departure date. Reservations, proposed
// bookings and query windows are all validated and compared through it.
type Period interface {
	ArrivalDate() Date
	DepartureDate() Date
}

type StayPeriod struct {
	arrival   Date
	departure Date
}

func NewStayPeriod(arrival, departure Date) StayPeriod {
	return StayPeriod{arrival: arrival, departure: departure}
}

// PeriodOf copies any Period into a plain value.
func PeriodOf(p Period) StayPeriod {
	return NewStayPeriod(p.ArrivalDate(), p.DepartureDate())
}

func (p StayPeriod) ArrivalDate() Date   { return p.arrival }
func (p StayPeriod) DepartureDate() Date { return p.departure }

func (p StayPeriod) NbDays() int {
	return p.arrival.DaysUntil(p.departure)
}

func (p StayPeriod) String() string {
	return "[" + p.arrival.String() + "," + p.departure.String() + ")"
}

// SamePeriod compares bounds of two periods.
func SamePeriod(a, b Period) bool {
	return a.ArrivalDate().Equal(b.ArrivalDate()) && a.DepartureDate().Equal(b.DepartureDate())
}

// Overlaps uses half-open semantics: touching endpoints do not overlap.
func Overlaps(a, b Period) bool {
	return a.ArrivalDate().Before(b.DepartureDate()) && b.ArrivalDate().Before(a.DepartureDate())
}

type ClientInfo struct {
	email string
	name  string
}

func NewClientInfo(email, name string) ClientInfo {
	return ClientInfo{
		email: strings.TrimSpace(email),
		name:  strings.TrimSpace(name),
	}
}

func (c ClientInfo) Email() string { return c.email }
func (c ClientInfo) Name() string  { return c.name }

// Availability is a free window [From, To) computed at query time; never stored.
type Availability struct {
	From Date
	To   Date
}

func NewAvailability(from, to Date) Availability {
	return Availability{From: from, To: to}
}

func (a Availability) ArrivalDate() Date   { return a.From }
func (a Availability) DepartureDate() Date { return a.To }

func (a Availability) NbDays() int {
	return a.From.DaysUntil(a.To)
}

type availabilityJSON struct {
	From   Date `json:"from"`
	To     Date `json:"to"`
	NbDays int  `json:"nbDays"`
}

func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(availabilityJSON{From: a.From, To: a.To, NbDays: a.NbDays()})
}

func (a *Availability) UnmarshalJSON(b []byte) error {
	var v availabilityJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	a.From, a.To = v.From, v.To
	return nil
}
