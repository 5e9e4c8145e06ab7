package usecase

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
)

// Defaults applied while resolving a raw request.
const (
	// DefaultDateRangeDays is the length of the outbound window when no end date is given.
	DefaultDateRangeDays = 30

	// InboundStartOffsetDays and InboundEndOffsetDays derive the return window
	// from the outbound window.
	InboundStartOffsetDays = 1
	InboundEndOffsetDays   = 7

	// DefaultWindowHours is the width of a time window with no latest bound.
	DefaultWindowHours = 9

	// DefaultNightsFrom applies when only the upper nights bound is given.
	DefaultNightsFrom = 1
)

var (
	// DefaultEarliest is the earliest departure time when none is given.
	DefaultEarliest = domain.MustClockTime(9, 0)

	// lateStartCutoff is the earliest bound from which the latest bound is fixed
	// at lateStartLatest instead of earliest plus DefaultWindowHours.
	lateStartCutoff = domain.MustClockTime(15, 0)
	lateStartLatest = domain.MustClockTime(23, 0)
)

// ConstraintValidator turns a raw search request into a validated one.
// It performs no I/O; the only outside input is the clock that defines "today".
type ConstraintValidator struct {
	clock timeutil.Clock
}

// NewConstraintValidator creates a validator. A nil clock means the system clock.
func NewConstraintValidator(clock timeutil.Clock) *ConstraintValidator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &ConstraintValidator{clock: clock}
}

// dateRange is the output of the date stage.
type dateRange struct {
	outboundFrom time.Time
	outboundTo   time.Time
	inboundFrom  time.Time
	inboundTo    time.Time
}

// dayOptions is the output of the weekday and nights stage.
type dayOptions struct {
	departureWeekday *domain.Weekday
	returnWeekday    *domain.Weekday
	nightsFrom       *int
	nightsTo         *int
}

// Validate applies every rule in a fixed order and stops at the first violation.
// The raw request is never modified.
func (v *ConstraintValidator) Validate(raw domain.RawSearchRequest) (domain.ValidatedSearchRequest, error) {
	today := timeutil.Today(v.clock)

	dates, err := resolveDates(raw.DateFrom, raw.DateTo, today)
	if err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	departureWindow, err := resolveWindow(raw.DepartureWindow, "departure_window")
	if err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	returnWindow, err := resolveWindow(raw.ReturnWindow, "return_window")
	if err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	days, err := resolveDays(raw)
	if err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	if err := validateMaxPrice(raw.MaxPrice); err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	if err := validateEmail(raw.NotifyEmail); err != nil {
		return domain.ValidatedSearchRequest{}, err
	}

	return domain.ValidatedSearchRequest{
		OutboundDateFrom: dates.outboundFrom,
		OutboundDateTo:   dates.outboundTo,
		InboundDateFrom:  dates.inboundFrom,
		InboundDateTo:    dates.inboundTo,
		DepartureWindow:  departureWindow,
		ReturnWindow:     returnWindow,
		DepartureWeekday: days.departureWeekday,
		ReturnWeekday:    days.returnWeekday,
		NightsFrom:       days.nightsFrom,
		NightsTo:         days.nightsTo,
		WeekendOnly:      raw.WeekendOnly,
		MaxPrice:         copyFloat(raw.MaxPrice),
		NotifyEmail:      raw.NotifyEmail,
	}, nil
}

// resolveDates fills in the outbound end date, checks ordering against today
// and derives the inbound window.
func resolveDates(from, to *time.Time, today time.Time) (dateRange, error) {
	dateFrom := today
	if from != nil {
		dateFrom = timeutil.DateOf(*from)
	}

	var dateTo time.Time
	if to != nil {
		dateTo = timeutil.DateOf(*to)
	} else {
		dateTo = timeutil.AddDays(dateFrom, DefaultDateRangeDays)
	}

	if dateFrom.Before(today) {
		return dateRange{}, domain.NewValidationError(domain.KindInvalidDateRange,
			"date_from", "Date from cannot be in the past.")
	}
	if dateTo.Before(today) {
		return dateRange{}, domain.NewValidationError(domain.KindInvalidDateRange,
			"date_to", "Date to cannot be in the past.")
	}
	if !dateTo.After(dateFrom) {
		return dateRange{}, domain.NewValidationError(domain.KindInvalidDateRange,
			"date_to", "Date to must be later than date from.")
	}

	return dateRange{
		outboundFrom: dateFrom,
		outboundTo:   dateTo,
		inboundFrom:  timeutil.AddDays(dateFrom, InboundStartOffsetDays),
		inboundTo:    timeutil.AddDays(dateTo, InboundEndOffsetDays),
	}, nil
}

// resolveWindow fills in missing bounds of a time window and checks earliest < latest.
func resolveWindow(raw domain.RawTimeWindow, field string) (domain.TimeWindow, error) {
	earliest := DefaultEarliest
	if raw.Earliest != nil {
		earliest = *raw.Earliest
	}

	var latest domain.ClockTime
	switch {
	case raw.Latest != nil:
		latest = *raw.Latest
	case !earliest.Before(lateStartCutoff):
		latest = lateStartLatest
	default:
		latest = earliest.AddHours(DefaultWindowHours)
	}

	if !earliest.Before(latest) {
		return domain.TimeWindow{}, domain.NewValidationError(domain.KindInvalidTimeWindow, field,
			fmt.Sprintf("time-from (%s) must be earlier than time-to (%s)", earliest, latest))
	}

	return domain.TimeWindow{Earliest: earliest, Latest: latest}, nil
}

// resolveDays checks the weekend, weekday and nights options against each other,
// fills in nights defaults and derives nights from a weekday pair.
// Conflicts are reported before any weekday name is looked up.
func resolveDays(raw domain.RawSearchRequest) (dayOptions, error) {
	hasNights := raw.NightsFrom != nil || raw.NightsTo != nil

	if raw.WeekendOnly && (raw.DepartureWeekday != "" || raw.ReturnWeekday != "" || hasNights) {
		return dayOptions{}, domain.NewValidationError(domain.KindConflictingOptions, "weekend",
			"Cannot provide departure day or return day or nights in destination when weekend option is set to true.")
	}

	if hasNights && raw.ReturnWeekday != "" {
		return dayOptions{}, domain.NewValidationError(domain.KindConflictingOptions, "return_day",
			"Cannot provide return day alongside nights in destination options.")
	}

	var opts dayOptions
	if hasNights {
		from, to, err := resolveNights(raw.NightsFrom, raw.NightsTo)
		if err != nil {
			return dayOptions{}, err
		}
		opts.nightsFrom, opts.nightsTo = &from, &to
	}

	if raw.DepartureWeekday != "" {
		day, err := resolveWeekday(raw.DepartureWeekday, "departure_day")
		if err != nil {
			return dayOptions{}, err
		}
		opts.departureWeekday = &day
	}

	if raw.ReturnWeekday != "" {
		day, err := resolveWeekday(raw.ReturnWeekday, "return_day")
		if err != nil {
			return dayOptions{}, err
		}
		opts.returnWeekday = &day
	}

	// A weekday pair is more specific than any nights range and replaces it.
	if opts.departureWeekday != nil && opts.returnWeekday != nil {
		nights := opts.departureWeekday.NightsUntil(*opts.returnWeekday)
		from, to := nights, nights
		opts.nightsFrom, opts.nightsTo = &from, &to
	}

	return opts, nil
}

// resolveNights applies the nights defaults and checks the range.
// At least one bound is non-nil.
func resolveNights(rawFrom, rawTo *int) (int, int, error) {
	if (rawFrom != nil && *rawFrom < 0) || (rawTo != nil && *rawTo < 0) {
		return 0, 0, domain.NewValidationError(domain.KindInvalidRange, "nights_in_dst",
			"Nights in destination cannot be negative.")
	}

	from := DefaultNightsFrom
	if rawFrom != nil {
		from = *rawFrom
	}
	to := from
	if rawTo != nil {
		to = *rawTo
	}

	if from > to {
		return 0, 0, domain.NewValidationError(domain.KindInvalidRange, "nights_in_dst_from",
			"Nights in destination from cannot be greater than nights in destination to.")
	}
	return from, to, nil
}

func resolveWeekday(name, field string) (domain.Weekday, error) {
	day, ok := domain.ParseWeekday(name)
	if !ok {
		return 0, domain.NewValidationError(domain.KindInvalidWeekday, field,
			fmt.Sprintf("%s is not a valid day. Use full day name eg. monday", name))
	}
	return day, nil
}

func validateMaxPrice(price *float64) error {
	if price != nil && *price <= 0 {
		return domain.NewValidationError(domain.KindInvalidRange, "max_price",
			"Maximum price must be greater than zero.")
	}
	return nil
}

func validateEmail(address string) error {
	if err := validation.Validate(address, is.EmailFormat); err != nil {
		return domain.NewValidationError(domain.KindInvalidEmail, "email",
			fmt.Sprintf("%s is not a valid email address.", address))
	}
	return nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
