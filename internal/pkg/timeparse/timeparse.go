package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadLabel = errors.New("unrecognized time label")
	ErrBadDate  = errors.New("malformed date")
)

var (
	re12h = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?$`)
	re24h = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)
)

// Clock is a canonical 24-hour wall-clock time.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns minutes from midnight, the slot comparison key.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Label renders the clock back into the 12-hour form shown to clients.
func (c Clock) Label() string {
	meridiem := "AM"
	h := c.Hour
	switch {
	case h == 0:
		h = 12
	case h == 12:
		meridiem = "PM"
	case h > 12:
		h -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, meridiem)
}

// ParseLabel converts a human time label into a canonical clock. It accepts
// "H:MM AM|PM" (case-insensitive, optional space and dots) and bare 24-hour
// "H" or "H:MM". Anything else is rejected: admin-configured and
// client-selected labels drift in format, but guessing a default here could
// silently double-book an unrelated slot.
func ParseLabel(s string) (Clock, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Clock{}, ErrBadLabel
	}

	if m := re12h.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return Clock{}, fmt.Errorf("%w: %q", ErrBadLabel, s)
		}
		// Noon and midnight: 12 PM stays 12, 12 AM wraps to 0.
		if strings.EqualFold(m[3], "p") {
			if hour != 12 {
				hour += 12
			}
		} else if hour == 12 {
			hour = 0
		}
		return Clock{Hour: hour, Minute: minute}, nil
	}

	if m := re24h.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 23 || minute > 59 {
			return Clock{}, fmt.Errorf("%w: %q", ErrBadLabel, s)
		}
		return Clock{Hour: hour, Minute: minute}, nil
	}

	return Clock{}, fmt.Errorf("%w: %q", ErrBadLabel, s)
}

// ParseDate validates a YYYY-MM-DD string and returns its canonical form.
// The segment count, numeric parts and calendar validity are all checked;
// a malformed date fails the whole request rather than guessing.
func ParseDate(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	// Reject dates that only exist via normalization (e.g. Feb 30).
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t.Format("2006-01-02"), nil
}

// SlotTime combines a canonical date and clock into a timezone-aware
// instant in the given location.
func SlotTime(date string, c Clock, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc), nil
}

// BusinessZone resolves the named business timezone, falling back to the
// fixed +03:00 offset the business operates in when tzdata is unavailable.
func BusinessZone(name string) *time.Location {
	if name == "" {
		name = "Africa/Nairobi"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("EAT", 3*60*60)
	}
	return loc
}
