// Package notify delivers search results to a recipient, one message per
// destination, through SMTP, the Resend API or the application log.
package notify

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// htmlRenderer keeps the line layout of the text body and turns booking links
// into anchors. It drops raw HTML, so field values are escaped beforehand.
var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ComposeMessages builds one message per destination, in the order the
// destinations first appeared in the results.
func ComposeMessages(recipient string, results domain.GroupedResults) ([]Message, error) {
	messages := make([]Message, 0, len(results.Destinations))
	for _, destination := range results.Destinations {
		flights := results.Flights[destination]
		text := domain.FormatFlightList(destination, flights)

		body, err := renderHTML(domain.FormatFlightList(html.EscapeString(destination), escapeFlights(flights)))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", destination, err)
		}

		messages = append(messages, Message{
			To:      recipient,
			Subject: domain.ReportSubject(destination),
			Text:    text,
			HTML:    body,
		})
	}
	return messages, nil
}

func renderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// escapeFlights returns copies of flights with the service-reported text
// escaped for HTML. Links are left alone so they stay linkable.
func escapeFlights(flights []domain.FlightSummary) []domain.FlightSummary {
	escaped := make([]domain.FlightSummary, len(flights))
	for i, f := range flights {
		f.Origin = html.EscapeString(f.Origin)
		f.Destination = html.EscapeString(f.Destination)
		f.OutboundDate = html.EscapeString(f.OutboundDate)
		f.OutboundTime = html.EscapeString(f.OutboundTime)
		f.InboundDate = html.EscapeString(f.InboundDate)
		f.InboundTime = html.EscapeString(f.InboundTime)
		escaped[i] = f
	}
	return escaped
}
