package usecase

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
)

// Search API parameter names.
const (
	ParamDateFrom        = "date_from"
	ParamDateTo          = "date_to"
	ParamReturnFrom      = "return_from"
	ParamReturnTo        = "return_to"
	ParamFlyDays         = "fly_days"
	ParamReturnFlyDays   = "return_fly_days"
	ParamDTimeFrom       = "dtime_from"
	ParamDTimeTo         = "dtime_to"
	ParamRetDTimeFrom    = "ret_dtime_from"
	ParamRetDTimeTo      = "ret_dtime_to"
	ParamNightsFrom      = "nights_in_dst_from"
	ParamNightsTo        = "nights_in_dst_to"
	ParamPriceTo         = "price_to"
	ParamFlyFrom         = "fly_from"
	ParamFlyTo           = "fly_to"
	ParamFlightType      = "flight_type"
	ParamRetFromDiffCity = "ret_from_diff_city"
	ParamRetToDiffCity   = "ret_to_diff_city"
	ParamMaxStopovers    = "max_stopovers"
	ParamCurrency        = "curr"
	ParamLimit           = "limit"
)

// Fixed values for a weekend-only search: leave Friday, come back Sunday.
const (
	WeekendDepartureDay = domain.Friday
	WeekendReturnDay    = domain.Sunday
	WeekendNights       = 2
)

// Route holds the resolved location codes of a search.
type Route struct {
	Origin       string
	Destinations []string
}

// ParamOptions holds the search parameters that come from configuration
// rather than from the user.
type ParamOptions struct {
	// Currency is the ISO 4217 code prices are quoted in (empty = service default)
	Currency string

	// Limit caps the number of results (0 = service default)
	Limit int
}

// BuildSearchParams turns a validated request and a resolved route into the
// flat parameter set sent to the search service.
func BuildSearchParams(v domain.ValidatedSearchRequest, route Route, opts ParamOptions) url.Values {
	params := url.Values{}

	params.Set(ParamDateFrom, timeutil.FormatDate(v.OutboundDateFrom))
	params.Set(ParamDateTo, timeutil.FormatDate(v.OutboundDateTo))
	params.Set(ParamReturnFrom, timeutil.FormatDate(v.InboundDateFrom))
	params.Set(ParamReturnTo, timeutil.FormatDate(v.InboundDateTo))

	if v.DepartureWeekday != nil {
		params.Set(ParamFlyDays, strconv.Itoa(int(*v.DepartureWeekday)))
	}
	if v.ReturnWeekday != nil {
		params.Set(ParamReturnFlyDays, strconv.Itoa(int(*v.ReturnWeekday)))
	}
	if v.NightsFrom != nil {
		params.Set(ParamNightsFrom, strconv.Itoa(*v.NightsFrom))
	}
	if v.NightsTo != nil {
		params.Set(ParamNightsTo, strconv.Itoa(*v.NightsTo))
	}

	// Weekend-only requests never carry weekdays or nights of their own.
	if v.WeekendOnly {
		params.Set(ParamFlyDays, strconv.Itoa(int(WeekendDepartureDay)))
		params.Set(ParamReturnFlyDays, strconv.Itoa(int(WeekendReturnDay)))
		params.Set(ParamNightsFrom, strconv.Itoa(WeekendNights))
		params.Set(ParamNightsTo, strconv.Itoa(WeekendNights))
	}

	params.Set(ParamDTimeFrom, v.DepartureWindow.Earliest.String())
	params.Set(ParamDTimeTo, v.DepartureWindow.Latest.String())
	params.Set(ParamRetDTimeFrom, v.ReturnWindow.Earliest.String())
	params.Set(ParamRetDTimeTo, v.ReturnWindow.Latest.String())

	if v.MaxPrice != nil {
		params.Set(ParamPriceTo, strconv.FormatFloat(*v.MaxPrice, 'f', -1, 64))
	}

	params.Set(ParamFlyFrom, route.Origin)
	params.Set(ParamFlyTo, strings.Join(route.Destinations, ","))
	params.Set(ParamFlightType, "round")
	params.Set(ParamRetFromDiffCity, "false")
	params.Set(ParamRetToDiffCity, "false")
	params.Set(ParamMaxStopovers, "0")

	if opts.Currency != "" {
		params.Set(ParamCurrency, opts.Currency)
	}
	if opts.Limit > 0 {
		params.Set(ParamLimit, strconv.Itoa(opts.Limit))
	}

	return params
}
