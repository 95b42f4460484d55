package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
)

func newTestRepo(t *testing.T) *BookingRepo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bookings.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := NewBookingRepo(gdb)
	require.NoError(t, repo.Migrate())
	return repo
}

func seedBooking(t *testing.T, r *BookingRepo, classroom, status string, start time.Time, createdAt time.Time) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		UserID:      "user-1",
		ClassroomID: classroom,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Subject:     "Algebra",
		Status:      status,
		CreatedAt:   createdAt,
	}
	require.NoError(t, r.Create(context.Background(), b))
	return b
}

func TestCreateAssignsID(t *testing.T) {
	r := newTestRepo(t)
	b := seedBooking(t, r, "room-1", domain.StatusConfirmed, time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC), time.Now().UTC())
	assert.NotEmpty(t, b.ID)

	got, err := r.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.True(t, got.StartTime.Equal(b.StartTime))
}

func TestByIDNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestListConfirmedByClassroom(t *testing.T) {
	r := newTestRepo(t)
	base := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	keep := seedBooking(t, r, "room-1", domain.StatusConfirmed, base, now)
	seedBooking(t, r, "room-1", domain.StatusCancelled, base.Add(2*time.Hour), now)
	seedBooking(t, r, "room-2", domain.StatusConfirmed, base.Add(4*time.Hour), now)

	got, err := r.ListConfirmedByClassroom(context.Background(), "room-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	r := newTestRepo(t)
	b := seedBooking(t, r, "room-1", domain.StatusConfirmed, time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC), time.Now().UTC())

	updated, err := r.UpdateStatus(context.Background(), b.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	got, err := r.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)

	_, err = r.UpdateStatus(context.Background(), "missing", domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestPageByRecency(t *testing.T) {
	r := newTestRepo(t)
	base := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	oldest := seedBooking(t, r, "room-1", domain.StatusConfirmed, base, base)
	middle := seedBooking(t, r, "room-1", domain.StatusConfirmed, base.Add(time.Hour), base.Add(time.Hour))
	newest := seedBooking(t, r, "room-1", domain.StatusConfirmed, base.Add(2*time.Hour), base.Add(2*time.Hour))

	page, err := r.PageByRecency(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest.ID, page[0].ID)
	assert.Equal(t, middle.ID, page[1].ID)

	page, err = r.PageByRecency(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, oldest.ID, page[0].ID)

	page, err = r.PageByRecency(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = r.PageByRecency(context.Background(), 0, 0)
	assert.Error(t, err)
}
