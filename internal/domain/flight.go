// Package domain contains the core entities and rules of the flight finder.
// Nothing in this package performs I/O.
package domain

// Date and time layouts used on every output surface.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// FlightSummary is one round-trip offer as shown to the user.
type FlightSummary struct {
	// Origin is the departure city reported by the search service
	Origin string `json:"origin"`

	// Destination is the arrival city reported by the search service
	Destination string `json:"destination"`

	// OutboundDate and OutboundTime are the outbound departure (DD/MM/YYYY, HH:MM)
	OutboundDate string `json:"outboundDate"`
	OutboundTime string `json:"outboundTime"`

	// InboundDate and InboundTime are the return departure (DD/MM/YYYY, HH:MM)
	InboundDate string `json:"inboundDate"`
	InboundTime string `json:"inboundTime"`

	// Price is the total round-trip price in the search currency
	Price float64 `json:"price"`

	// Link is the booking deep link
	Link string `json:"link"`
}

// GroupedResults holds search results grouped by the destination the service reported.
// Destinations keeps the order in which each destination first appeared.
type GroupedResults struct {
	Destinations []string                   `json:"destinations"`
	Flights      map[string][]FlightSummary `json:"flights"`
}

// NewGroupedResults returns an empty result set.
func NewGroupedResults() GroupedResults {
	return GroupedResults{
		Destinations: []string{},
		Flights:      map[string][]FlightSummary{},
	}
}

// Add appends a flight under its own destination.
func (g *GroupedResults) Add(f FlightSummary) {
	if g.Flights == nil {
		g.Flights = map[string][]FlightSummary{}
	}
	if _, ok := g.Flights[f.Destination]; !ok {
		g.Destinations = append(g.Destinations, f.Destination)
	}
	g.Flights[f.Destination] = append(g.Flights[f.Destination], f)
}

// IsEmpty reports whether no flights were found.
func (g GroupedResults) IsEmpty() bool {
	return len(g.Destinations) == 0
}

// Total returns the number of flights across all destinations.
func (g GroupedResults) Total() int {
	total := 0
	for _, flights := range g.Flights {
		total += len(flights)
	}
	return total
}
