// Package schedule converts between a trip-relative (day, time-of-day) pair
// and the absolute timestamp persisted on an activity, anchored to the
// trip's start date.
//
// The two directions have deliberately different failure policies. The
// forward direction (ToTimestamp) guards new writes and is fail-closed: a
// malformed time or out-of-range day is rejected, because silently
// defaulting it would corrupt the itinerary ordering forever. The inverse
// (FromTimestamp) runs over stored data and is fail-open: a corrupt
// timestamp projects as day 1 with an empty time rather than breaking the
// whole itinerary.
//
// All arithmetic is done in UTC; trip start dates are stored at UTC midnight.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// ToTimestamp resolves a 1-indexed day offset and a 24-hour "HH:MM" (or
// "HH:MM:SS") time string into an absolute timestamp. Day 1 is the trip
// start date itself.
//
// Returned errors wrap domain.ErrValidation and name the offending field.
func ToTimestamp(tripStart time.Time, day int, clock string) (time.Time, error) {
	if day < 1 || day > domain.MaxTripDays {
		return time.Time{}, fmt.Errorf("%w: day must be between 1 and %d, got %d", domain.ErrValidation, domain.MaxTripDays, day)
	}

	hour, minute, sec, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	base := dateOf(tripStart).AddDate(0, 0, day-1)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, sec, 0, time.UTC), nil
}

// FromTimestamp derives the 1-indexed day offset and zero-padded "HH:MM"
// time-of-day of an absolute timestamp relative to the trip start date.
//
// A zero timestamp (corrupt or unset stored value) yields day 1 and an empty
// time string. A timestamp preceding the start date clamps to day 1 so
// inconsistent upstream data never projects a negative day number.
func FromTimestamp(tripStart, ts time.Time) (day int, clock string) {
	if ts.IsZero() {
		return 1, ""
	}

	ts = ts.UTC()
	day = int(dateOf(ts).Sub(dateOf(tripStart)).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	return day, ts.Format("15:04")
}

// parseClock validates and splits a 24-hour "HH:MM" or "HH:MM:SS" string.
func parseClock(clock string) (hour, minute, sec int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: time must be HH:MM or HH:MM:SS, got %q", domain.ErrValidation, clock)
	}

	hour, err = parseClockPart(parts[0])
	if err != nil || hour > 23 {
		return 0, 0, 0, fmt.Errorf("%w: hour must be between 00 and 23, got %q", domain.ErrValidation, parts[0])
	}
	minute, err = parseClockPart(parts[1])
	if err != nil || minute > 59 {
		return 0, 0, 0, fmt.Errorf("%w: minute must be between 00 and 59, got %q", domain.ErrValidation, parts[1])
	}
	if len(parts) == 3 {
		sec, err = parseClockPart(parts[2])
		if err != nil || sec > 59 {
			return 0, 0, 0, fmt.Errorf("%w: second must be between 00 and 59, got %q", domain.ErrValidation, parts[2])
		}
	}
	return hour, minute, sec, nil
}

// parseClockPart parses one zero-padded two-digit clock component.
func parseClockPart(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("want two digits, got %q", s)
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// dateOf strips the time-of-day, returning UTC midnight of t's calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
