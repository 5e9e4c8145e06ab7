package tequila

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
)

// localTimeLayout is the layout of route[].local_departure.
const localTimeLayout = "2006-01-02T15:04:05.000Z"

// normalize converts search offers into grouped summaries. Offers that
// cannot be read are reported to skip and left out.
func normalize(items []gjson.Result, skip func(error)) domain.GroupedResults {
	results := domain.NewGroupedResults()
	for _, item := range items {
		summary, err := normalizeOffer(item)
		if err != nil {
			if skip != nil {
				skip(err)
			}
			continue
		}
		results.Add(summary)
	}
	return results
}

// normalizeOffer reads one offer. The first route leg is the outbound
// flight and the second the return flight.
func normalizeOffer(item gjson.Result) (domain.FlightSummary, error) {
	outbound, err := parseLocalTime(item.Get("route.0.local_departure").String())
	if err != nil {
		return domain.FlightSummary{}, fmt.Errorf("outbound departure: %w", err)
	}
	inbound, err := parseLocalTime(item.Get("route.1.local_departure").String())
	if err != nil {
		return domain.FlightSummary{}, fmt.Errorf("return departure: %w", err)
	}

	destination := item.Get("cityTo").String()
	if destination == "" {
		return domain.FlightSummary{}, fmt.Errorf("offer without destination city")
	}

	return domain.FlightSummary{
		Origin:       item.Get("cityFrom").String(),
		Destination:  destination,
		OutboundDate: timeutil.FormatDate(outbound),
		OutboundTime: timeutil.FormatTime(outbound),
		InboundDate:  timeutil.FormatDate(inbound),
		InboundTime:  timeutil.FormatTime(inbound),
		Price:        item.Get("price").Float(),
		Link:         item.Get("deep_link").String(),
	}, nil
}

// parseLocalTime parses a local departure time, accepting RFC 3339 as a fallback.
func parseLocalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing departure time")
	}
	if t, err := time.Parse(localTimeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime %q", s)
}
