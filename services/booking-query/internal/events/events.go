package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKBookingCreated  = "booking.created"
	RKBookingCanceled = "booking.canceled"
)

// BookingSnapshot is the event payload published by booking-command: the
// full state of the booking at emission time. The read model stores it
// verbatim.
type BookingSnapshot struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id,omitempty"`
	ClassroomID string `json:"classroom_id,omitempty"`
	Status      string `json:"status,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Subject     string `json:"subject,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
