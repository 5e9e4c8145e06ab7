package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2026, 3, 29, 1, 30, 0, 0, loc)

	got := DateOf(in)
	assert.Equal(t, time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC), got)
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		days int
		want time.Time
	}{
		{
			name: "thirty days across month end",
			in:   time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
			days: 30,
			want: time.Date(2026, 11, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day",
			in:   time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC),
			days: 1,
			want: time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "drops time of day",
			in:   time.Date(2026, 12, 31, 18, 45, 0, 0, time.UTC),
			days: 7,
			want: time.Date(2027, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddDays(tt.in, tt.days))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("22-10-2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2026-10-22")
	assert.Error(t, err)

	_, err = ParseDate("31-02-2026")
	assert.Error(t, err)
}

func TestFormatDateAndTime(t *testing.T) {
	ts := time.Date(2026, 1, 5, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, "05/01/2026", FormatDate(ts))
	assert.Equal(t, "07:05", FormatTime(ts))
}
