// Package localtime resolves calendar days and reporting periods in the
// workshop's fixed UTC offset convention. All ranges are half-open
// [start, end): an event exactly at a boundary belongs to the later period.
package localtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/taller/backend/internal/domain/shared"
)

// DefaultOffsetHours is the workshop's local offset (Costa Rica, UTC-6).
// This is a fixed-offset approximation, not a DST-aware zone.
const DefaultOffsetHours = -6

const dayFormat = "2006-01-02"

// timestampLayouts are accepted for date strings that carry a time component.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Range is a half-open [Start, End) interval
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the half-open interval
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Normalizer converts external date representations into canonical local
// moments and derives day/week/month reporting ranges
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer for the given fixed UTC offset in hours
func NewNormalizer(offsetHours int) *Normalizer {
	sign := "+"
	if offsetHours < 0 {
		sign = "-"
	}
	abs := offsetHours
	if abs < 0 {
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%d", sign, abs)
	return &Normalizer{loc: time.FixedZone(name, offsetHours*3600)}
}

// Default returns a Normalizer at the workshop's UTC-6 convention
func Default() *Normalizer {
	return NewNormalizer(DefaultOffsetHours)
}

// Location returns the fixed-offset location
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Now returns the current instant shifted into the local offset
func (n *Normalizer) Now() time.Time {
	return time.Now().In(n.loc)
}

// ParseDay parses an external date string. Bare calendar days (2006-01-02)
// become local midnight; strings with a time component are parsed as given,
// assuming the local offset when none is present.
func (n *Normalizer) ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date string cannot be empty")
	}

	if !strings.ContainsAny(s, "T ") {
		t, err := time.ParseInLocation(dayFormat, s, n.loc)
		if err != nil {
			return time.Time{}, shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s))
		}
		return t, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid timestamp %q", s))
}

// ResolveDay parses the optional date string, defaulting to now
func (n *Normalizer) ResolveDay(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return n.Now(), nil
	}
	return n.ParseDay(s)
}

// LocalDay shifts an instant into the local offset and truncates it to the
// calendar day (local midnight). This is the single bucketing path for
// per-day report series.
func (n *Normalizer) LocalDay(t time.Time) time.Time {
	y, m, d := t.In(n.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.loc)
}

// DayRange returns [local midnight, next local midnight) for the day of t
func (n *Normalizer) DayRange(t time.Time) Range {
	start := n.LocalDay(t)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekRange returns [Monday 00:00, following Monday 00:00) for the week of t
func (n *Normalizer) WeekRange(t time.Time) Range {
	day := n.LocalDay(t)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started the previous Monday
	}
	start := day.AddDate(0, 0, -(wd - 1))
	return Range{Start: start, End: start.AddDate(0, 0, 7)}
}

// MonthRange returns [1st 00:00, 1st of next month 00:00) for the month of t
func (n *Normalizer) MonthRange(t time.Time) Range {
	local := t.In(n.loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, n.loc)
	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// DaysInMonth returns the number of calendar days in the month of t
func (n *Normalizer) DaysInMonth(t time.Time) int {
	r := n.MonthRange(t)
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// FormatDay renders an instant as its local calendar day (YYYY-MM-DD)
func (n *Normalizer) FormatDay(t time.Time) string {
	return t.In(n.loc).Format(dayFormat)
}
