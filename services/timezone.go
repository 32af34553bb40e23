// services/timezone.go - Date boundary computations per IANA timezone
package services

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimezone is returned for timezone names the tzdata does not know.
var ErrInvalidTimezone = errors.New("invalid timezone")

// DateLayout is the calendar date format used across the daily_results table.
const DateLayout = "2006-01-02"

// TimezoneService converts absolute instants to calendar dates in arbitrary
// IANA timezones. All arithmetic goes through time.Location so DST
// transitions (23h and 25h wall-clock days) resolve with the zone's actual
// offset at each instant.
type TimezoneService struct {
	clock Clock
}

func NewTimezoneService(clock Clock) *TimezoneService {
	if clock == nil {
		clock = SystemClock()
	}
	return &TimezoneService{clock: clock}
}

func (s *TimezoneService) loadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// Today returns the current calendar date (YYYY-MM-DD) in tz.
func (s *TimezoneService) Today(tz string) (string, error) {
	loc, err := s.loadLocation(tz)
	if err != nil {
		return "", err
	}
	return s.clock.Now().In(loc).Format(DateLayout), nil
}

// ToZonedDate converts a Unix timestamp to its calendar date in tz.
func (s *TimezoneService) ToZonedDate(unixSeconds int64, tz string) (string, error) {
	loc, err := s.loadLocation(tz)
	if err != nil {
		return "", err
	}
	return time.Unix(unixSeconds, 0).In(loc).Format(DateLayout), nil
}

// IsToday reports whether the instant falls on the current calendar date in tz.
func (s *TimezoneService) IsToday(unixSeconds int64, tz string) (bool, error) {
	loc, err := s.loadLocation(tz)
	if err != nil {
		return false, err
	}
	now := s.clock.Now().In(loc)
	then := time.Unix(unixSeconds, 0).In(loc)
	return now.Format(DateLayout) == then.Format(DateLayout), nil
}

// SecondsUntilMidnight returns the seconds from now until the start of the
// next calendar day in tz. time.Date resolves the next midnight with the
// zone's offset at that instant, so the result tracks DST jumps instead of
// assuming 86400-second days.
func (s *TimezoneService) SecondsUntilMidnight(tz string) (int64, error) {
	loc, err := s.loadLocation(tz)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now().In(loc)
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
	secs := int64(nextMidnight.Sub(now) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

// PreviousDate returns the calendar date one day before the given
// YYYY-MM-DD date. Pure date arithmetic, no timezone involved.
func PreviousDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}

// DaysBetween returns how many calendar days separate a and b (b - a).
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}
	return int(tb.Sub(ta) / (24 * time.Hour)), nil
}
