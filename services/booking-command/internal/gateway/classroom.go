package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
)

// ClassroomClient asks the classroom-service whether a room exists and is
// operational. 404 maps to (nil, nil); the caller owns the business error.
type ClassroomClient struct {
	base string
	http *http.Client
}

func NewClassroomClient(base string) *ClassroomClient {
	return &ClassroomClient{
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *ClassroomClient) Classroom(ctx context.Context, id string) (*domain.Classroom, error) {
	url := fmt.Sprintf("%s/api/v1/classrooms/%s", c.base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classroom-service request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("classroom-service status %d", resp.StatusCode)
	}

	var room domain.Classroom
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return nil, fmt.Errorf("decode classroom: %w", err)
	}
	return &room, nil
}
