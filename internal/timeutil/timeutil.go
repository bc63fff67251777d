package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/fastward/fastward/internal/constants"
)

// The core tracks every instant as UTC milliseconds. These helpers are the
// single place that converts between that representation, Go times, and
// calendar day keys.

// ToMillis converts a time to UTC milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts UTC milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// NowMillis returns the current instant as UTC milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// HoursToMillis converts a (possibly fractional) hour count to milliseconds.
func HoursToMillis(hours float64) int64 {
	return int64(math.Round(hours * float64(time.Hour/time.Millisecond)))
}

// MinutesToMillis converts minutes to milliseconds.
func MinutesToMillis(minutes int) int64 {
	return int64(minutes) * int64(time.Minute/time.Millisecond)
}

// DayKey returns the UTC calendar date (YYYY-MM-DD) an instant falls on.
// Streak arithmetic compares day keys, not rolling 24h windows: 23:59 and
// 00:01 the next UTC day are different streak days.
func DayKey(ms int64) string {
	return FromMillis(ms).Format(constants.DateFormat)
}

// DayKeyTime is DayKey for a time value, evaluated in UTC.
func DayKeyTime(t time.Time) string {
	return t.UTC().Format(constants.DateFormat)
}

// StartOfDay returns UTC midnight of the day t falls on (in UTC).
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDayKey parses a YYYY-MM-DD day key as UTC midnight.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, time.UTC)
}

// FormatDuration renders a duration as "16h 30m". Sub-minute remainders
// are dropped; durations under a minute render as "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	h := total / 60
	m := total % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatClock renders an instant as a local wall-clock string in the given
// timezone, falling back to UTC if the zone cannot be loaded. Display only;
// all stored values stay UTC.
func FormatClock(ms int64, timezone string) string {
	loc, err := LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc).Format("Mon 15:04")
}

// LoadLocation loads a timezone location from an IANA timezone name.
// "Local" or empty resolves to the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
