package domain

import (
	"strconv"
	"strings"
)

// ReportSubject returns the subject line for one destination's results.
func ReportSubject(destination string) string {
	return "Flights to " + destination
}

// FormatFlightList renders the flights of one destination as plain text:
// a heading line, then four lines and a blank line per flight.
func FormatFlightList(destination string, flights []FlightSummary) string {
	var b strings.Builder
	b.WriteString(ReportSubject(destination))
	b.WriteString(":\n")
	for _, f := range flights {
		b.WriteString("Departure: " + f.Origin + " - " + f.OutboundDate + " " + f.OutboundTime + "\n")
		b.WriteString("Return: " + f.Destination + " - " + f.InboundDate + " " + f.InboundTime + "\n")
		b.WriteString("Price: " + FormatPrice(f.Price) + "\n")
		b.WriteString("Link: " + f.Link + "\n\n")
	}
	return b.String()
}

// FormatPrice prints a price without trailing zeros, so 120 stays "120".
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
