package tequila

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"service layout", "2024-05-03T18:30:00.000Z", time.Date(2024, 5, 3, 18, 30, 0, 0, time.UTC), false},
		{"rfc3339", "2024-05-03T18:30:00Z", time.Date(2024, 5, 3, 18, 30, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLocalTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestNormalize_GroupsByReportedDestination(t *testing.T) {
	items := gjson.Parse(`[
		{"cityFrom":"Manchester","cityTo":"Dublin","price":45,"deep_link":"a",
		 "route":[{"local_departure":"2024-06-01T06:00:00.000Z"},{"local_departure":"2024-06-03T21:00:00.000Z"}]},
		{"cityFrom":"Manchester","cityTo":"Malaga","price":110,"deep_link":"b",
		 "route":[{"local_departure":"2024-06-01T09:00:00.000Z"},{"local_departure":"2024-06-08T10:00:00.000Z"}]},
		{"cityFrom":"Manchester","cityTo":"Dublin","price":50,"deep_link":"c",
		 "route":[{"local_departure":"2024-06-02T06:00:00.000Z"},{"local_departure":"2024-06-04T21:00:00.000Z"}]}
	]`).Array()

	results := normalize(items, nil)

	assert.Equal(t, []string{"Dublin", "Malaga"}, results.Destinations)
	require.Len(t, results.Flights["Dublin"], 2)
	assert.Equal(t, "a", results.Flights["Dublin"][0].Link)
	assert.Equal(t, "c", results.Flights["Dublin"][1].Link)
}

func TestNormalize_ReportsSkippedOffers(t *testing.T) {
	items := gjson.Parse(`[{"cityFrom":"Manchester","price":45,
		"route":[{"local_departure":"2024-06-01T06:00:00.000Z"},{"local_departure":"2024-06-03T21:00:00.000Z"}]}]`).Array()

	var skipped []error
	results := normalize(items, func(err error) { skipped = append(skipped, err) })

	assert.True(t, results.IsEmpty())
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Error(), "destination")
}
