package model

import (
	"errors"
	bookingModel "kost/internal/domains/booking/model"
	"time"
)

var ErrBookingNotFound = errors.New("booking not found")

// Source identifies which trigger produced a transition.
type Source string

const (
	SourceAdmin   Source = "admin"
	SourceGateway Source = "gateway"
)

// Transition is a committed change to a booking and, optionally, its room.
// It is published as the booking status event.
type Transition struct {
	BookingID     string              `json:"booking_id"`
	RoomID        string              `json:"room_id"`
	From          bookingModel.Status `json:"from"`
	To            bookingModel.Status `json:"to"`
	RoomAvailable *bool               `json:"room_available,omitempty"`
	Source        Source              `json:"source"`
	OccurredAt    time.Time           `json:"occurred_at"`
}
