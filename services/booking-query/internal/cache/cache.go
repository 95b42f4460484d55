package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/events"
)

// ErrMiss marks an absent key. Callers cannot distinguish "never existed"
// from "not yet synced", and do not need to.
var ErrMiss = errors.New("cache miss")

// Store is the key/value + set surface the read model needs. Production
// uses redis; tests inject the in-memory implementation from cachetest.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

const keyAll = "bookings:all"

func bookingKey(id string) string   { return fmt.Sprintf("booking:%s", id) }
func userKey(id string) string      { return fmt.Sprintf("user:%s:bookings", id) }
func classroomKey(id string) string { return fmt.Sprintf("classroom:%s:bookings", id) }

// Bookings is the derived read model: one JSON snapshot per booking id plus
// three id-set indexes. Index sets only ever grow; cancellation overwrites
// the snapshot in place so history stays queryable.
type Bookings struct {
	store Store
}

func NewBookings(store Store) *Bookings {
	return &Bookings{store: store}
}

// Put overwrites the snapshot unconditionally — no version or ordering
// guard. A stale event re-delivered out of order can resurrect old state
// until the next event or rehydration corrects it; rehydration is the
// recovery mechanism for that accepted drift.
func (c *Bookings) Put(ctx context.Context, snap events.BookingSnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, bookingKey(snap.BookingID), string(doc)); err != nil {
		return err
	}
	if err := c.store.SAdd(ctx, keyAll, snap.BookingID); err != nil {
		return err
	}
	if snap.UserID != "" {
		if err := c.store.SAdd(ctx, userKey(snap.UserID), snap.BookingID); err != nil {
			return err
		}
	}
	if snap.ClassroomID != "" {
		if err := c.store.SAdd(ctx, classroomKey(snap.ClassroomID), snap.BookingID); err != nil {
			return err
		}
	}
	return nil
}

func (c *Bookings) Snapshot(ctx context.Context, id string) (events.BookingSnapshot, error) {
	raw, err := c.store.Get(ctx, bookingKey(id))
	if err != nil {
		return events.BookingSnapshot{}, err
	}
	snap, err := events.Unmarshal[events.BookingSnapshot]([]byte(raw))
	if err != nil {
		return events.BookingSnapshot{}, fmt.Errorf("corrupt cache entry %s: %w", bookingKey(id), err)
	}
	snap.BookingID = id
	return snap, nil
}

func (c *Bookings) AllIDs(ctx context.Context) ([]string, error) {
	return c.store.SMembers(ctx, keyAll)
}

func (c *Bookings) IDsByUser(ctx context.Context, userID string) ([]string, error) {
	return c.store.SMembers(ctx, userKey(userID))
}

func (c *Bookings) IDsByClassroom(ctx context.Context, classroomID string) ([]string, error) {
	return c.store.SMembers(ctx, classroomKey(classroomID))
}

// Wipe clears every read-model key ahead of a full rebuild.
func (c *Bookings) Wipe(ctx context.Context) error {
	if err := c.store.Del(ctx, keyAll); err != nil {
		return err
	}
	for _, pattern := range []string{"booking:*", "user:*:bookings", "classroom:*:bookings"} {
		keys, err := c.store.Keys(ctx, pattern)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.store.Del(ctx, keys...); err != nil {
				return err
			}
		}
	}
	return nil
}
