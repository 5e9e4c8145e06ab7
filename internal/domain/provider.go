package domain

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

import (
	"context"
	"net/url"
)

// LocationResolver turns a free-text place name into a location code.
type LocationResolver interface {
	// Resolve returns the code for name, or ErrLocationNotFound.
	Resolve(ctx context.Context, name string) (string, error)
}

// FlightSearcher runs a search against the remote flight service.
type FlightSearcher interface {
	// Search executes one search with the canonical parameter set.
	// An empty result is not an error.
	Search(ctx context.Context, params url.Values) (GroupedResults, error)
}

// Notifier delivers grouped results to a recipient.
type Notifier interface {
	// Notify sends the results to recipient.
	Notify(ctx context.Context, recipient string, results GroupedResults) error
}

// Confirmer asks the user whether to run a search with the assembled parameters.
type Confirmer interface {
	// Confirm blocks until the user answers.
	Confirm(ctx context.Context) (bool, error)
}
