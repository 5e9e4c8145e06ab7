// Package usecase contains the flight finder's business logic: request
// validation, search parameter derivation and the search pipeline.
package usecase

import (
	"net/url"

	"github.com/flight-search/flight-finder/internal/domain"
)

// SearchRequest is one run of the pipeline as entered by the user.
type SearchRequest struct {
	// Departure is the free-text departure place
	Departure string

	// Destinations are the free-text destination places, at least one
	Destinations []string

	// Raw holds the unvalidated search options
	Raw domain.RawSearchRequest
}

// SearchOutcome reports what a pipeline run did.
type SearchOutcome struct {
	SearchID string

	// Request is the validated form of the raw options
	Request domain.ValidatedSearchRequest

	// Route holds the resolved location codes
	Route Route

	// Unresolved lists destinations that were dropped because no code was found
	Unresolved []string

	// Params is the exact parameter set sent to the search service
	Params url.Values

	// Declined is true when the user did not confirm; nothing was searched
	Declined bool

	Results domain.GroupedResults

	// Notified is true when results were delivered to Request.NotifyEmail
	Notified bool

	// NotifyErr holds a delivery failure. It does not fail the run.
	NotifyErr error
}
