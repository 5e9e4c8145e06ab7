package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	minutes int
}

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// NewClockTime creates a ClockTime from hour and minute components.
// Returns an error if the components are out of range.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("hour must be between 0 and 23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("minute must be between 0 and 59, got %d", minute)
	}
	return ClockTime{minutes: hour*60 + minute}, nil
}

// MustClockTime is like NewClockTime but panics on invalid input.
// Use this for constants and tests.
func MustClockTime(hour, minute int) ClockTime {
	ct, err := NewClockTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return ct
}

// ParseClockTime parses "HH" or "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	layouts := []string{"15:04", "15"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClockTime(t.Hour(), t.Minute())
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time %q, expected HH or HH:MM", s)
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int { return c.minutes / 60 }

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int { return c.minutes % 60 }

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int { return c.minutes }

// Before reports whether c is strictly earlier than other.
func (c ClockTime) Before(other ClockTime) bool { return c.minutes < other.minutes }

// AddHours returns c shifted by h hours. The result is clamped to 23:59,
// callers never need a value past midnight.
func (c ClockTime) AddHours(h int) ClockTime {
	m := c.minutes + h*60
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	if m < 0 {
		m = 0
	}
	return ClockTime{minutes: m}
}

// String formats the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// RawTimeWindow is a user-supplied time window where either bound may be missing.
type RawTimeWindow struct {
	Earliest *ClockTime
	Latest   *ClockTime
}

// TimeWindow is a resolved time window. Earliest is always before Latest.
type TimeWindow struct {
	Earliest ClockTime `json:"earliest"`
	Latest   ClockTime `json:"latest"`
}

// RawSearchRequest holds the search options exactly as the user supplied them.
// It is built once per invocation and never modified by validation.
type RawSearchRequest struct {
	// DateFrom and DateTo bound the outbound departure dates (time part ignored)
	DateFrom *time.Time
	DateTo   *time.Time

	// DepartureWindow bounds the outbound departure time of day
	DepartureWindow RawTimeWindow

	// ReturnWindow bounds the inbound departure time of day
	ReturnWindow RawTimeWindow

	// WeekendOnly restricts the search to Friday-to-Sunday trips
	WeekendOnly bool

	// DepartureWeekday and ReturnWeekday are full English weekday names; empty means unset
	DepartureWeekday string
	ReturnWeekday    string

	// NightsFrom and NightsTo bound the number of nights at the destination
	NightsFrom *int
	NightsTo   *int

	// MaxPrice is the price ceiling for the whole round trip
	MaxPrice *float64

	// NotifyEmail receives the results when set
	NotifyEmail string
}

// ValidatedSearchRequest is the canonical, fully resolved search description.
// It is produced by the constraint validator and treated as immutable afterwards.
type ValidatedSearchRequest struct {
	OutboundDateFrom time.Time
	OutboundDateTo   time.Time
	InboundDateFrom  time.Time
	InboundDateTo    time.Time

	DepartureWindow TimeWindow
	ReturnWindow    TimeWindow

	// DepartureWeekday and ReturnWeekday are nil when unset
	DepartureWeekday *Weekday
	ReturnWeekday    *Weekday

	NightsFrom *int
	NightsTo   *int

	// WeekendOnly is kept so the search boundary can apply the fixed weekend values
	WeekendOnly bool

	MaxPrice    *float64
	NotifyEmail string
}

// HasNights reports whether a nights range is set.
func (v ValidatedSearchRequest) HasNights() bool {
	return v.NightsFrom != nil || v.NightsTo != nil
}

// Weekday is a zero-based day index with Sunday = 0.
type Weekday int

// Weekday indices.
const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the number of days in a week.
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseWeekday resolves a full English day name, case-insensitively.
func ParseWeekday(name string) (Weekday, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == lower {
			return Weekday(i), true
		}
	}
	return 0, false
}

// String returns the lowercase day name.
func (w Weekday) String() string {
	if w < 0 || int(w) >= DaysPerWeek {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// NightsUntil returns the number of nights from w to the next ret strictly after w.
// The same day maps to a full week, never zero.
func (w Weekday) NightsUntil(ret Weekday) int {
	nights := (int(ret) - int(w)) % DaysPerWeek
	if nights <= 0 {
		nights += DaysPerWeek
	}
	return nights
}
