package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
)

func TestClassroomClientFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/classrooms/room-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "room-1", "is_operational": true})
	}))
	defer srv.Close()

	room, err := NewClassroomClient(srv.URL).Classroom(context.Background(), "room-1")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "room-1", room.ID)
	assert.True(t, room.IsOperational)
}

func TestClassroomClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	room, err := NewClassroomClient(srv.URL).Classroom(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, room)
}

func TestClassroomClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClassroomClient(srv.URL).Classroom(context.Background(), "room-1")
	assert.Error(t, err)
}

func TestTimetableClientVerdicts(t *testing.T) {
	var got struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Existing  []struct {
			Start string `json:"start_time"`
			End   string `json:"end_time"`
		} `json:"existing"`
	}
	conflict := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]bool{"has_conflict": conflict})
	}))
	defer srv.Close()

	client := NewTimetableClient(srv.URL)
	start := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	existing := []domain.Interval{{Start: start.Add(-time.Hour), End: start.Add(time.Hour)}}

	has, err := client.HasConflict(context.Background(), start, end, existing)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "2026-01-15T09:00:00Z", got.StartTime)
	require.Len(t, got.Existing, 1)
	assert.Equal(t, "2026-01-15T08:00:00Z", got.Existing[0].Start)

	conflict = false
	has, err = client.HasConflict(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTimetableClientUnavailableOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewTimetableClient(srv.URL).HasConflict(context.Background(),
		time.Now().UTC(), time.Now().UTC().Add(time.Hour), nil)
	assert.True(t, errors.Is(err, domain.ErrTimetableUnavailable))
}

func TestTimetableClientUnavailableOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewTimetableClient(srv.URL).HasConflict(context.Background(),
		time.Now().UTC(), time.Now().UTC().Add(time.Hour), nil)
	assert.True(t, errors.Is(err, domain.ErrTimetableUnavailable))
}
