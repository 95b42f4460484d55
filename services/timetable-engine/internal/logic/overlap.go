package logic

import (
	"fmt"
	"time"
)

// naive timestamps ("2026-01-10T10:00:00") carry no zone; they are taken as UTC
const naiveLayout = "2006-01-02T15:04:05"

// ParseISOToUTC accepts RFC3339 timestamps with or without a zone offset and
// normalizes them to UTC.
func ParseISOToUTC(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(naiveLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Interval is a half-open [start, end) range in wire form.
type Interval struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// Overlaps reports whether two half-open intervals intersect:
// max(starts) < min(ends). Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	maxStart := s1
	if s2.After(maxStart) {
		maxStart = s2
	}
	minEnd := e1
	if e2.Before(minEnd) {
		minEnd = e2
	}
	return maxStart.Before(minEnd)
}

// CheckOverlap evaluates a candidate interval against every existing one.
// A timestamp that fails to parse is an error, never a verdict.
func CheckOverlap(candStart, candEnd string, existing []Interval) (bool, error) {
	cs, err := ParseISOToUTC(candStart)
	if err != nil {
		return false, err
	}
	ce, err := ParseISOToUTC(candEnd)
	if err != nil {
		return false, err
	}
	for _, iv := range existing {
		es, err := ParseISOToUTC(iv.Start)
		if err != nil {
			return false, err
		}
		ee, err := ParseISOToUTC(iv.End)
		if err != nil {
			return false, err
		}
		if Overlaps(cs, ce, es, ee) {
			return true, nil
		}
	}
	return false, nil
}
