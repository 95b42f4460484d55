package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
)

// BookingStore is the authoritative booking table. The repository is the
// only writer; everything downstream is a derived copy.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ListConfirmedByClassroom(ctx context.Context, classroomID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id, to string) (*domain.Booking, error)
	PageByRecency(ctx context.Context, limit, offset int) ([]domain.Booking, error)
}

// ClassroomDirectory resolves a classroom id to existence and the
// operational flag. A nil classroom with a nil error means "not found".
type ClassroomDirectory interface {
	Classroom(ctx context.Context, id string) (*domain.Classroom, error)
}

// TimetableGateway runs the remote overlap check. Implementations must
// return domain.ErrTimetableUnavailable (wrapped or not) on transport
// failure rather than guessing a verdict.
type TimetableGateway interface {
	HasConflict(ctx context.Context, start, end time.Time, existing []domain.Interval) (bool, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	store      BookingStore
	classrooms ClassroomDirectory
	timetable  TimetableGateway
	pub        EventPublisher
}

func NewBookingSvc(store BookingStore, classrooms ClassroomDirectory, timetable TimetableGateway, pub EventPublisher) *BookingSvc {
	return &BookingSvc{store: store, classrooms: classrooms, timetable: timetable, pub: pub}
}

func parseRFC3339UTC(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Create admits a booking: interval validation, classroom lookup, remote
// conflict check against the classroom's CONFIRMED slots, persist, publish.
// Note the conflict check and the insert are not serialized; two concurrent
// creates can both pass the check before either commits.
func (s *BookingSvc) Create(ctx context.Context, userID, classroomID, startISO, endISO, subject string) (*domain.Booking, error) {
	st, err := parseRFC3339UTC(startISO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInterval, err)
	}
	et, err := parseRFC3339UTC(endISO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInterval, err)
	}
	if !et.After(st) {
		return nil, domain.ErrInvalidInterval
	}

	room, err := s.classrooms.Classroom(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("resolve classroom: %w", err)
	}
	if room == nil {
		return nil, domain.ErrClassroomNotFound
	}
	if !room.IsOperational {
		return nil, domain.ErrClassroomUnavailable
	}

	existing, err := s.store.ListConfirmedByClassroom(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed bookings: %w", err)
	}
	intervals := make([]domain.Interval, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, domain.Interval{Start: b.StartTime, End: b.EndTime})
	}

	conflict, err := s.timetable.HasConflict(ctx, st, et, intervals)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if conflict {
		return nil, domain.ErrScheduleConflict
	}

	b := &domain.Booking{
		UserID:      userID,
		ClassroomID: classroomID,
		StartTime:   st,
		EndTime:     et,
		Subject:     subject,
		Status:      domain.StatusConfirmed,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	// The booking is durable at this point; a lost event only delays the
	// read model until the next rehydration.
	if err := s.pub.PublishJSON(ctx, domain.RKBookingCreated, b.ToSnapshot()); err != nil {
		log.Printf("[booking-command] publish %s failed: %v", domain.RKBookingCreated, err)
	}
	return b, nil
}

// Cancel flips CONFIRMED to CANCELLED. Cancelling an already-cancelled
// booking is a no-op that returns the row unchanged and publishes nothing.
func (s *BookingSvc) Cancel(ctx context.Context, bookingID, requesterID, requesterRole string) (*domain.Booking, error) {
	b, err := s.store.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if requesterRole != domain.RoleAdmin && b.UserID != requesterID {
		return nil, domain.ErrForbidden
	}

	if b.Status == domain.StatusCancelled {
		return b, nil
	}

	updated, err := s.store.UpdateStatus(ctx, bookingID, domain.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if err := s.pub.PublishJSON(ctx, domain.RKBookingCanceled, updated.ToSnapshot()); err != nil {
		log.Printf("[booking-command] publish %s failed: %v", domain.RKBookingCanceled, err)
	}
	return updated, nil
}

// Export pages the whole store by recency for read-model bootstrap.
func (s *BookingSvc) Export(ctx context.Context, limit, offset int) ([]domain.Snapshot, error) {
	rows, err := s.store.PageByRecency(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page bookings: %w", err)
	}
	items := make([]domain.Snapshot, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToSnapshot())
	}
	return items, nil
}
