package integration

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/adapter/cli"
	"github.com/flight-search/flight-finder/test/testutil"
)

// TestHandler_WeekendSearch_Success runs a confirmed weekend search end to end.
func TestHandler_WeekendSearch_Success(t *testing.T) {
	h := NewHarness(t)

	code := h.Run("-weekend", "-yes", "-email", "me@example.com", "Manchester", "Barcelona", "Lisbon")

	require.Equal(t, cli.ExitOK, code, "stderr: %s", h.Stderr.String())

	query := h.LastSearch(t)
	assert.Equal(t, "MAN", query["fly_from"])
	assert.Equal(t, "BCN,LIS", query["fly_to"])
	assert.Equal(t, "5", query["fly_days"])
	assert.Equal(t, "0", query["return_fly_days"])
	assert.Equal(t, "2", query["nights_in_dst_from"])
	assert.Equal(t, "2", query["nights_in_dst_to"])
	assert.Equal(t, "round", query["flight_type"])
	assert.Equal(t, "0", query["max_stopovers"])

	stdout := h.Stdout.String()
	assert.Contains(t, stdout, "Departure location: Manchester")
	assert.Contains(t, stdout, "Destination locations: Barcelona, Lisbon")
	assert.Contains(t, stdout, "Flights to Barcelona:\nDeparture: Manchester - 09/01/2026 18:30\nReturn: Barcelona - 11/01/2026 16:10\nPrice: 120\n")
	assert.Contains(t, stdout, "Price: 149.5")
	assert.Contains(t, stdout, "Email sent successfully.")
	assert.NotContains(t, stdout, cli.ConfirmPrompt)

	deliveries := h.Notifier.Deliveries()
	require.Len(t, deliveries, 1)
	assert.Equal(t, []string{"Barcelona", "Lisbon"}, deliveries[0].Results.Destinations)
	assert.Len(t, deliveries[0].Results.Flights["Barcelona"], 2)
}

// TestHandler_FlagsAfterLocations tests that options may follow the locations.
func TestHandler_FlagsAfterLocations(t *testing.T) {
	h := NewHarness(t)

	code := h.Run("Manchester", "Barcelona", "-date-from", "09-01-2026", "-date-to", "20-01-2026",
		"-dtime-from", "17", "-max-price", "150", "-yes")

	require.Equal(t, cli.ExitOK, code, "stderr: %s", h.Stderr.String())

	query := h.LastSearch(t)
	assert.Equal(t, "09/01/2026", query["date_from"])
	assert.Equal(t, "20/01/2026", query["date_to"])
	assert.Equal(t, "10/01/2026", query["return_from"])
	assert.Equal(t, "27/01/2026", query["return_to"])
	assert.Equal(t, "17:00", query["dtime_from"])
	assert.Equal(t, "23:00", query["dtime_to"])
	assert.Equal(t, "150", query["price_to"])
	assert.Equal(t, "BCN", query["fly_to"])
}

// TestHandler_Confirmation covers the interactive prompt.
func TestHandler_Confirmation(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSearches int
	}{
		{name: "yes", input: "y\n", wantSearches: 1},
		{name: "upper case yes", input: "Y\n", wantSearches: 1},
		{name: "no", input: "n\n", wantSearches: 0},
		{name: "empty line", input: "\n", wantSearches: 0},
		{name: "end of input", input: "", wantSearches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHarness(t)
			h.Stdin = strings.NewReader(tt.input)

			code := h.Run("-weekend", "Manchester", "Barcelona")

			assert.Equal(t, cli.ExitOK, code)
			assert.Contains(t, h.Stdout.String(), cli.ConfirmPrompt)
			assert.Len(t, h.Tequila.Searches(), tt.wantSearches)
		})
	}
}

// TestHandler_UsageErrors tests arguments rejected before anything runs.
func TestHandler_UsageErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "no locations",
			args:       []string{"-weekend"},
			wantCode:   cli.ExitUsage,
			wantStderr: "departure location is required",
		},
		{
			name:       "no destination",
			args:       []string{"Manchester"},
			wantCode:   cli.ExitUsage,
			wantStderr: "at least one destination location is required",
		},
		{
			name:       "bad date format",
			args:       []string{"-date-from", "2026-01-09", "Manchester", "Barcelona"},
			wantCode:   cli.ExitUsage,
			wantStderr: "date-from must be in DD-MM-YYYY format",
		},
		{
			name:       "bad nights",
			args:       []string{"-nights-in-dst-from", "two", "Manchester", "Barcelona"},
			wantCode:   cli.ExitUsage,
			wantStderr: "nights-in-dst-from must be a whole number",
		},
		{
			name:       "unknown flag",
			args:       []string{"-cabin", "business", "Manchester", "Barcelona"},
			wantCode:   cli.ExitUsage,
			wantStderr: "flag provided but not defined",
		},
		{
			name:       "help",
			args:       []string{"-h"},
			wantCode:   cli.ExitOK,
			wantStderr: "usage: flightfinder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHarness(t)

			code := h.Run(tt.args...)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, h.Stderr.String(), tt.wantStderr)
			assert.Empty(t, h.Tequila.Lookups())
		})
	}
}

// TestHandler_ValidationErrors tests that rule violations are printed
// verbatim and stop before any lookup.
func TestHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "date in the past",
			args:       []string{"-date-from", "01-01-2026"},
			wantStderr: "Date from cannot be in the past.",
		},
		{
			name:       "date to before date from",
			args:       []string{"-date-from", "20-01-2026", "-date-to", "10-01-2026"},
			wantStderr: "Date to must be later than date from.",
		},
		{
			name:       "inverted time window",
			args:       []string{"-dtime-from", "18", "-dtime-to", "09"},
			wantStderr: "time-from (18:00) must be earlier than time-to (09:00)",
		},
		{
			name:       "weekend with nights",
			args:       []string{"-weekend", "-nights-in-dst-from", "2"},
			wantStderr: "Cannot provide departure day or return day or nights in destination when weekend option is set to true.",
		},
		{
			name:       "return day with nights",
			args:       []string{"-return-day", "sunday", "-nights-in-dst-to", "3"},
			wantStderr: "Cannot provide return day alongside nights in destination options.",
		},
		{
			name:       "unknown weekday",
			args:       []string{"-departure-day", "fri"},
			wantStderr: "fri is not a valid day. Use full day name eg. monday",
		},
		{
			name:       "nights range inverted",
			args:       []string{"-nights-in-dst-from", "5", "-nights-in-dst-to", "2"},
			wantStderr: "Nights in destination from cannot be greater than nights in destination to.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHarness(t)

			code := h.Run(append(tt.args, "-yes", "Manchester", "Barcelona")...)

			assert.Equal(t, cli.ExitError, code)
			assert.Equal(t, tt.wantStderr+"\n", h.Stderr.String())
			assert.Empty(t, h.Tequila.Lookups())
			assert.Empty(t, h.Stdout.String())
		})
	}
}

// TestHandler_LocationFailures covers departure and destination lookups.
func TestHandler_LocationFailures(t *testing.T) {
	t.Run("unknown departure", func(t *testing.T) {
		h := NewHarness(t)

		code := h.Run("-yes", "Atlantis", "Barcelona")

		assert.Equal(t, cli.ExitError, code)
		assert.Contains(t, h.Stderr.String(), "Unable to find the departure location")
		assert.Contains(t, h.Stderr.String(), "Atlantis")
		assert.Equal(t, []string{"Atlantis"}, h.Tequila.Lookups())
		assert.Empty(t, h.Tequila.Searches())
	})

	t.Run("one destination unknown", func(t *testing.T) {
		h := NewHarness(t)

		code := h.Run("-yes", "Manchester", "Atlantis", "Lisbon")

		assert.Equal(t, cli.ExitOK, code)
		assert.Equal(t, "LIS", h.LastSearch(t)["fly_to"])
	})

	t.Run("every destination unknown", func(t *testing.T) {
		h := NewHarness(t)

		code := h.Run("-yes", "Manchester", "Atlantis", "Lemuria")

		assert.Equal(t, cli.ExitError, code)
		assert.Contains(t, h.Stderr.String(), "None of the destination locations could be found.")
		assert.Empty(t, h.Tequila.Searches())
	})

	t.Run("wrong api key", func(t *testing.T) {
		h := NewHarness(t)
		h.Tequila.APIKey = "rotated"

		code := h.Run("-yes", "Manchester", "Barcelona")

		assert.Equal(t, cli.ExitError, code)
		assert.Contains(t, h.Stderr.String(), "invalid apikey")
	})
}

// TestHandler_LocationCache tests that a second run reuses cached codes.
func TestHandler_LocationCache(t *testing.T) {
	h := NewHarness(t)

	require.Equal(t, cli.ExitOK, h.Run("-yes", "Manchester", "Barcelona"))
	lookups := len(h.Tequila.Lookups())
	require.Equal(t, cli.ExitOK, h.Run("-yes", "manchester", "BARCELONA"))

	assert.Equal(t, 2, lookups)
	assert.Len(t, h.Tequila.Lookups(), lookups, "cached codes should not be looked up again")
	assert.Len(t, h.Tequila.Searches(), 2)
}

// TestHandler_SearchFailures covers failed and empty searches.
func TestHandler_SearchFailures(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		h := NewHarness(t)
		h.Tequila.WithSearchResponse(http.StatusBadRequest, testutil.LoadTestJSON(t, "tequila_error.json"))

		code := h.Run("-yes", "-email", "me@example.com", "Manchester", "Barcelona")

		assert.Equal(t, cli.ExitError, code)
		assert.Contains(t, h.Stderr.String(), "date_from: Invalid date format")
		assert.Empty(t, h.Notifier.Deliveries())
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewHarness(t)
		h.Tequila.WithSearchResponse(http.StatusOK, []byte("<html>"))

		code := h.Run("-yes", "Manchester", "Barcelona")

		assert.Equal(t, cli.ExitError, code)
		assert.Contains(t, h.Stderr.String(), "malformed search response")
	})

	t.Run("no flights", func(t *testing.T) {
		h := NewHarness(t)
		h.Tequila.WithSearchResponse(http.StatusOK, testutil.LoadTestJSON(t, "tequila_search_empty.json"))

		code := h.Run("-yes", "-email", "me@example.com", "Manchester", "Barcelona")

		assert.Equal(t, cli.ExitOK, code)
		assert.Contains(t, h.Stdout.String(), "no flights found")
		assert.NotContains(t, h.Stdout.String(), "Email sent successfully.")
		assert.Empty(t, h.Notifier.Deliveries())
	})
}

// TestHandler_NotifyFailure tests that a failed email is reported without
// failing the run.
func TestHandler_NotifyFailure(t *testing.T) {
	h := NewHarness(t)
	h.Notifier.WithError(errors.New("smtp: 421 service not available"))

	code := h.Run("-weekend", "-yes", "-email", "me@example.com", "Manchester", "Barcelona")

	assert.Equal(t, cli.ExitOK, code)
	assert.Contains(t, h.Stdout.String(), "Flights to Barcelona:")
	assert.Contains(t, h.Stderr.String(), "Failed to send email.")
	assert.NotContains(t, h.Stdout.String(), "Email sent successfully.")
	assert.Len(t, h.Tequila.Searches(), 1)
}
