package reservation

import (
	"strings"

	"room-reservation/internal/pkg/errs"
)

var ErrInvalidStatus = errs.New("invalid reservation status")

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusCanceled Status = "CANCELED"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCanceled:
		return true
	default:
		return false
	}
}
