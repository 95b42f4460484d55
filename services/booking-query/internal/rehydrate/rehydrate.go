package rehydrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/cache"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/events"
)

const defaultPageSize = 1000

// Rehydrator rebuilds the whole read model from booking-command's internal
// export feed: wipe everything, then page through the store until an empty
// page. It is the recovery path for lost or duplicated events, restarts and
// cache flushes, and runs before the event consumer starts.
type Rehydrator struct {
	cache    *cache.Bookings
	base     string
	apiKey   string
	http     *http.Client
	pageSize int
}

func New(c *cache.Bookings, base, apiKey string) *Rehydrator {
	return &Rehydrator{
		cache:    c,
		base:     base,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
		pageSize: defaultPageSize,
	}
}

func (r *Rehydrator) Run(ctx context.Context) error {
	if err := r.cache.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe read model: %w", err)
	}

	offset := 0
	loaded := 0
	for {
		items, err := r.page(ctx, r.pageSize, offset)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			break
		}
		for _, snap := range items {
			if snap.BookingID == "" {
				continue
			}
			if err := r.cache.Put(ctx, snap); err != nil {
				return fmt.Errorf("store booking %s: %w", snap.BookingID, err)
			}
		}
		loaded += len(items)
		offset += r.pageSize
	}

	log.Printf("[booking-query] rehydrate complete, %d bookings loaded", loaded)
	return nil
}

func (r *Rehydrator) page(ctx context.Context, limit, offset int) ([]events.BookingSnapshot, error) {
	url := fmt.Sprintf("%s/api/v1/bookings/internal/bookings?limit=%d&offset=%d", r.base, limit, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if r.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", r.apiKey)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export status %d", resp.StatusCode)
	}

	var out struct {
		Total int                      `json:"total"`
		Items []events.BookingSnapshot `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode export page: %w", err)
	}
	return out.Items, nil
}
