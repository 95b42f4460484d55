package domain

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

const (
	RKBookingCreated  = "booking.created"
	RKBookingCanceled = "booking.canceled"
)

// RoleAdmin may cancel any booking; everyone else only their own.
const RoleAdmin = "ADMIN"

type Booking struct {
	ID          string    `gorm:"primaryKey"`
	UserID      string    `gorm:"index"`
	ClassroomID string    `gorm:"index"`
	StartTime   time.Time `gorm:"index"`
	EndTime     time.Time `gorm:"index"`
	Subject     string
	Status      string `gorm:"index"` // CONFIRMED|CANCELLED
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot is the wire form of a booking, carried unchanged by lifecycle
// events and by the internal export feed.
type Snapshot struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	ClassroomID string `json:"classroom_id"`
	Status      string `json:"status"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Subject     string `json:"subject,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (b *Booking) ToSnapshot() Snapshot {
	s := Snapshot{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ClassroomID: b.ClassroomID,
		Status:      b.Status,
		StartTime:   b.StartTime.UTC().Format(time.RFC3339),
		EndTime:     b.EndTime.UTC().Format(time.RFC3339),
		Subject:     b.Subject,
	}
	if !b.CreatedAt.IsZero() {
		s.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339)
	}
	return s
}

// Classroom is owned by the classroom-service; the command side only ever
// reads existence and the operational flag.
type Classroom struct {
	ID            string `json:"id"`
	IsOperational bool   `json:"is_operational"`
}

// Interval is a half-open [start, end) slot already held by a CONFIRMED
// booking, projected for the timetable check.
type Interval struct {
	Start time.Time
	End   time.Time
}
