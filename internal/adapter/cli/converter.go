package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// ToSearchRequest converts validated arguments to a pipeline request.
// Values that pass the format check but are out of range, such as 31-02-2025
// or 25:00, are usage errors.
func ToSearchRequest(a *SearchArgs) (usecase.SearchRequest, error) {
	errs := &UsageErrors{}
	raw := domain.RawSearchRequest{
		DepartureWeekday: strings.TrimSpace(a.DepartureDay),
		ReturnWeekday:    strings.TrimSpace(a.ReturnDay),
		WeekendOnly:      a.Weekend,
		NotifyEmail:      strings.TrimSpace(a.Email),
	}

	raw.DateFrom = toDate(errs, "date-from", a.DateFrom)
	raw.DateTo = toDate(errs, "date-to", a.DateTo)
	raw.DepartureWindow = domain.RawTimeWindow{
		Earliest: toClockTime(errs, "dtime-from", a.DTimeFrom),
		Latest:   toClockTime(errs, "dtime-to", a.DTimeTo),
	}
	raw.ReturnWindow = domain.RawTimeWindow{
		Earliest: toClockTime(errs, "rtime-from", a.RTimeFrom),
		Latest:   toClockTime(errs, "rtime-to", a.RTimeTo),
	}
	raw.NightsFrom = toInt(errs, "nights-in-dst-from", a.NightsFrom)
	raw.NightsTo = toInt(errs, "nights-in-dst-to", a.NightsTo)
	raw.MaxPrice = toFloat(errs, "max-price", a.MaxPrice)

	if errs.HasErrors() {
		return usecase.SearchRequest{}, errs
	}

	return usecase.SearchRequest{
		Departure:    a.Departure,
		Destinations: a.Destinations,
		Raw:          raw,
	}, nil
}

func toDate(errs *UsageErrors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	d, err := timeutil.ParseDate(value)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s is not a valid date: %q", field, value))
		return nil
	}
	return &d
}

func toClockTime(errs *UsageErrors, field, value string) *domain.ClockTime {
	if value == "" {
		return nil
	}
	c, err := domain.ParseClockTime(value)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s is not a valid time: %v", field, err))
		return nil
	}
	return &c
}

func toInt(errs *UsageErrors, field, value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s must be a whole number, got %q", field, value))
		return nil
	}
	return &n
}

func toFloat(errs *UsageErrors, field, value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s must be a number, got %q", field, value))
		return nil
	}
	return &f
}
