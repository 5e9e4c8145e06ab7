package usecase

import (
	"fmt"
	"io"
	"strings"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
)

// SummaryInput is what the confirmation summary shows.
type SummaryInput struct {
	Departure    string
	Destinations []string
	Request      domain.ValidatedSearchRequest
}

// WriteSummary prints the resolved search options, one per line, so the user
// can check them before the search runs.
func WriteSummary(w io.Writer, in SummaryInput) error {
	v := in.Request
	lines := []string{
		"Departure location: " + in.Departure,
		"Destination locations: " + strings.Join(in.Destinations, ", "),
		"Date range from: " + timeutil.FormatDate(v.OutboundDateFrom),
		"Date range to: " + timeutil.FormatDate(v.OutboundDateTo),
	}

	if v.DepartureWeekday != nil {
		lines = append(lines, "Departure day: "+v.DepartureWeekday.String())
	}
	if v.ReturnWeekday != nil {
		lines = append(lines, "Return day: "+v.ReturnWeekday.String())
	}
	if v.WeekendOnly {
		lines = append(lines, "Search for weekend flights only")
	}

	lines = append(lines,
		"Earliest departure time: "+v.DepartureWindow.Earliest.String(),
		"Latest departure time: "+v.DepartureWindow.Latest.String(),
		"Earliest departure time of returning flight: "+v.ReturnWindow.Earliest.String(),
		"Latest departure time of returning flight: "+v.ReturnWindow.Latest.String(),
	)

	if v.NightsFrom != nil {
		lines = append(lines, fmt.Sprintf("The minimum number of nights in the destination: %d", *v.NightsFrom))
	}
	if v.NightsTo != nil {
		lines = append(lines, fmt.Sprintf("The maximum number of nights in the destination: %d", *v.NightsTo))
	}
	if v.MaxPrice != nil {
		lines = append(lines, "Maximum price: "+domain.FormatPrice(*v.MaxPrice))
	}
	if v.NotifyEmail != "" {
		lines = append(lines, "Email: "+v.NotifyEmail)
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// WriteResults prints grouped results in the same layout as the email body.
func WriteResults(w io.Writer, results domain.GroupedResults) error {
	if results.IsEmpty() {
		_, err := io.WriteString(w, "no flights found\n")
		return err
	}
	for _, destination := range results.Destinations {
		if _, err := io.WriteString(w, domain.FormatFlightList(destination, results.Flights[destination])); err != nil {
			return err
		}
	}
	return nil
}
