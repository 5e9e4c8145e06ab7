package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts for dates and times on the user-facing surfaces.
const (
	// InputDateLayout is the DD-MM-YYYY format accepted on the command line.
	InputDateLayout = "02-01-2006"

	// OutputDateLayout is the DD/MM/YYYY format of the search API and all output.
	OutputDateLayout = "02/01/2006"

	// OutputTimeLayout is the 24-hour HH:MM format.
	OutputTimeLayout = "15:04"
)

// DateOf strips the time of day from t and returns midnight UTC of the same
// calendar day. Dates compared and shifted this way never hit DST edges.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, n)
}

// ParseDate parses a DD-MM-YYYY string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(InputDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD-MM-YYYY", s)
	}
	return DateOf(t), nil
}

// FormatDate formats a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(OutputDateLayout)
}

// FormatTime formats a time as HH:MM.
func FormatTime(t time.Time) string {
	return t.Format(OutputTimeLayout)
}
