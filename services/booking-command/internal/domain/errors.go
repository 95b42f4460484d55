package domain

import "errors"

var (
	ErrInvalidInterval      = errors.New("end_time must be greater than start_time")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrClassroomUnavailable = errors.New("classroom not available for booking")
	ErrScheduleConflict     = errors.New("schedule conflict with existing bookings")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrForbidden            = errors.New("not allowed to cancel this booking")

	// ErrTimetableUnavailable marks a transport-level failure of the
	// availability check. It is never folded into a conflict verdict.
	ErrTimetableUnavailable = errors.New("timetable service unavailable")
)
