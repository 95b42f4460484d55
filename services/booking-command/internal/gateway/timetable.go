package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
)

type checkInterval struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

type checkRequest struct {
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Existing  []checkInterval `json:"existing"`
}

type checkResponse struct {
	HasConflict bool `json:"has_conflict"`
}

// TimetableClient invokes the remote overlap check. Any failure to obtain a
// verdict (dial, timeout, non-200) surfaces as domain.ErrTimetableUnavailable
// so the caller can fail the booking with a retryable 5xx instead of
// guessing "free" or "taken".
type TimetableClient struct {
	base string
	http *http.Client
}

func NewTimetableClient(base string) *TimetableClient {
	return &TimetableClient{
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *TimetableClient) HasConflict(ctx context.Context, start, end time.Time, existing []domain.Interval) (bool, error) {
	in := checkRequest{
		StartTime: start.UTC().Format(time.RFC3339),
		EndTime:   end.UTC().Format(time.RFC3339),
		Existing:  make([]checkInterval, 0, len(existing)),
	}
	for _, iv := range existing {
		in.Existing = append(in.Existing, checkInterval{
			Start: iv.Start.UTC().Format(time.RFC3339),
			End:   iv.End.UTC().Format(time.RFC3339),
		})
	}
	body, err := json.Marshal(in)
	if err != nil {
		return false, err
	}

	url := c.base + "/api/v1/timetable/check"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrTimetableUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: status %d", domain.ErrTimetableUnavailable, resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", domain.ErrTimetableUnavailable, err)
	}
	return out.HasConflict, nil
}
