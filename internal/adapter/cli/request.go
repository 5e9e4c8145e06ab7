// Package cli is the command-line surface of the flight finder: it parses
// arguments, coerces their types, asks for confirmation and maps pipeline
// errors to exit codes.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// SearchArgs holds the command line exactly as typed. Empty strings mean
// the option was not given.
type SearchArgs struct {
	Departure    string
	Destinations []string

	// DateFrom and DateTo are DD-MM-YYYY
	DateFrom string
	DateTo   string

	DepartureDay string
	ReturnDay    string
	Weekend      bool

	// Time bounds are HH or HH:MM
	DTimeFrom string
	DTimeTo   string
	RTimeFrom string
	RTimeTo   string

	NightsFrom string
	NightsTo   string
	MaxPrice   string
	Email      string

	// Yes skips the confirmation prompt
	Yes bool
}

// Format patterns of the typed options.
var (
	datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	timePattern = regexp.MustCompile(`^\d{1,2}(:\d{2})?$`)
)

// UsageError represents a single argument error.
type UsageError struct {
	Field   string
	Message string
}

// UsageErrors holds every argument error found while parsing.
type UsageErrors struct {
	Errors []UsageError
}

// Error implements the error interface.
func (u *UsageErrors) Error() string {
	if len(u.Errors) == 0 {
		return "invalid arguments"
	}
	return u.Errors[0].Message
}

// Add adds an argument error.
func (u *UsageErrors) Add(field, message string) {
	u.Errors = append(u.Errors, UsageError{Field: field, Message: message})
}

// HasErrors returns true if there are argument errors.
func (u *UsageErrors) HasErrors() bool {
	return len(u.Errors) > 0
}

// newFlagSet binds every option of args to a new flag set.
func newFlagSet(args *SearchArgs, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("flightfinder", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&args.DateFrom, "date-from", "", "earliest departure date, DD-MM-YYYY (default today)")
	fs.StringVar(&args.DateTo, "date-to", "", "latest departure date, DD-MM-YYYY (default date-from + 30 days)")
	fs.StringVar(&args.DepartureDay, "departure-day", "", "day of the week to fly out, e.g. friday")
	fs.StringVar(&args.ReturnDay, "return-day", "", "day of the week to fly back, e.g. sunday")
	fs.BoolVar(&args.Weekend, "weekend", false, "search Friday to Sunday trips only")
	fs.StringVar(&args.DTimeFrom, "dtime-from", "", "earliest outbound departure time, HH or HH:MM (default 09)")
	fs.StringVar(&args.DTimeTo, "dtime-to", "", "latest outbound departure time, HH or HH:MM")
	fs.StringVar(&args.RTimeFrom, "rtime-from", "", "earliest return departure time, HH or HH:MM (default 09)")
	fs.StringVar(&args.RTimeTo, "rtime-to", "", "latest return departure time, HH or HH:MM")
	fs.StringVar(&args.NightsFrom, "nights-in-dst-from", "", "minimum nights at the destination")
	fs.StringVar(&args.NightsTo, "nights-in-dst-to", "", "maximum nights at the destination")
	fs.StringVar(&args.MaxPrice, "max-price", "", "maximum price for the round trip")
	fs.StringVar(&args.Email, "email", "", "address to send the results to")
	fs.BoolVar(&args.Yes, "yes", false, "search without asking for confirmation")

	fs.Usage = func() {
		fmt.Fprintln(output, "usage: flightfinder [flags] <departure> <destination> [destination...]")
		fs.PrintDefaults()
	}
	return fs
}

// Parse reads the command line. Flags may appear before, between or after
// the locations until a "--" argument. flag.ErrHelp is returned as is.
func Parse(argv []string, output io.Writer) (*SearchArgs, error) {
	args := &SearchArgs{}
	fs := newFlagSet(args, output)

	var positional []string
	rest := argv
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			errs := &UsageErrors{}
			errs.Add("flags", err.Error())
			return nil, errs
		}
		if fs.NArg() == 0 {
			break
		}
		// After "--" every remaining argument is a location.
		if consumed := len(rest) - fs.NArg(); consumed > 0 && rest[consumed-1] == "--" {
			positional = append(positional, fs.Args()...)
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	if len(positional) > 0 {
		args.Departure = positional[0]
		args.Destinations = positional[1:]
	}

	if err := args.Validate(); err != nil {
		return nil, err
	}
	return args, nil
}

// Validate checks presence and format of the arguments. Cross-field rules
// are left to the search validator.
func (a *SearchArgs) Validate() error {
	errs := &UsageErrors{}

	a.validateLocations(errs)
	a.validateDates(errs)
	a.validateTimes(errs)
	a.validateNumbers(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (a *SearchArgs) validateLocations(errs *UsageErrors) {
	a.Departure = strings.TrimSpace(a.Departure)
	if a.Departure == "" {
		errs.Add("departure", "departure location is required")
	}
	if len(a.Destinations) == 0 {
		errs.Add("destination", "at least one destination location is required")
	}
	for i, d := range a.Destinations {
		a.Destinations[i] = strings.TrimSpace(d)
		if a.Destinations[i] == "" {
			errs.Add("destination", "destination location cannot be empty")
		}
	}
}

func (a *SearchArgs) validateDates(errs *UsageErrors) {
	for _, f := range []struct{ name, value string }{
		{"date-from", a.DateFrom},
		{"date-to", a.DateTo},
	} {
		if f.value != "" && !datePattern.MatchString(f.value) {
			errs.Add(f.name, fmt.Sprintf("%s must be in DD-MM-YYYY format, got %q", f.name, f.value))
		}
	}
}

func (a *SearchArgs) validateTimes(errs *UsageErrors) {
	for _, f := range []struct{ name, value string }{
		{"dtime-from", a.DTimeFrom},
		{"dtime-to", a.DTimeTo},
		{"rtime-from", a.RTimeFrom},
		{"rtime-to", a.RTimeTo},
	} {
		if f.value != "" && !timePattern.MatchString(f.value) {
			errs.Add(f.name, fmt.Sprintf("%s must be in HH or HH:MM format, got %q", f.name, f.value))
		}
	}
}

func (a *SearchArgs) validateNumbers(errs *UsageErrors) {
	for _, f := range []struct{ name, value string }{
		{"nights-in-dst-from", a.NightsFrom},
		{"nights-in-dst-to", a.NightsTo},
	} {
		if f.value == "" {
			continue
		}
		if _, err := strconv.Atoi(f.value); err != nil {
			errs.Add(f.name, fmt.Sprintf("%s must be a whole number, got %q", f.name, f.value))
		}
	}

	if a.MaxPrice != "" {
		if _, err := strconv.ParseFloat(a.MaxPrice, 64); err != nil {
			errs.Add("max-price", fmt.Sprintf("max-price must be a number, got %q", a.MaxPrice))
		}
	}
}
