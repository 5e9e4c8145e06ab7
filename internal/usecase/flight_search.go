package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// DefaultSearchTimeout bounds the search call.
const DefaultSearchTimeout = 60 * time.Second

// FlightSearchUseCase defines the interface for flight search operations.
type FlightSearchUseCase interface {
	// Search validates the request, resolves locations, asks for confirmation,
	// runs one search and optionally notifies the user.
	Search(ctx context.Context, req SearchRequest) (*SearchOutcome, error)
}

// Dependencies are the collaborators of the pipeline. Notifier and Confirmer
// may be nil: no notification is sent and every search is confirmed.
type Dependencies struct {
	Validator *ConstraintValidator
	Resolver  domain.LocationResolver
	Searcher  domain.FlightSearcher
	Notifier  domain.Notifier
	Confirmer domain.Confirmer

	// Output receives the confirmation summary and the results
	Output io.Writer

	Logger *logger.Logger
}

// Config contains configuration options for the use case.
type Config struct {
	SearchTimeout time.Duration
	Params        ParamOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchTimeout: DefaultSearchTimeout,
	}
}

type flightSearchUseCase struct {
	deps          Dependencies
	searchTimeout time.Duration
	params        ParamOptions
	newID         func() string
}

// NewFlightSearchUseCase creates the pipeline. If config is nil, defaults are used.
func NewFlightSearchUseCase(deps Dependencies, config *Config) FlightSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.SearchTimeout > 0 {
			cfg.SearchTimeout = config.SearchTimeout
		}
		cfg.Params = config.Params
	}

	if deps.Validator == nil {
		deps.Validator = NewConstraintValidator(nil)
	}
	if deps.Output == nil {
		deps.Output = io.Discard
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	return &flightSearchUseCase{
		deps:          deps,
		searchTimeout: cfg.SearchTimeout,
		params:        cfg.Params,
		newID:         uuid.NewString,
	}
}

// Search implements FlightSearchUseCase.Search.
func (uc *flightSearchUseCase) Search(ctx context.Context, req SearchRequest) (*SearchOutcome, error) {
	outcome := &SearchOutcome{SearchID: uc.newID()}
	log := uc.deps.Logger.WithSearchID(outcome.SearchID)

	validated, err := uc.deps.Validator.Validate(req.Raw)
	if err != nil {
		log.Debug().Err(err).Msg("request rejected")
		return nil, err
	}
	outcome.Request = validated

	if len(req.Destinations) == 0 {
		return nil, domain.ErrNoDestinations
	}

	route, unresolved, err := uc.resolveRoute(ctx, log, req)
	if err != nil {
		return nil, err
	}
	outcome.Route = route
	outcome.Unresolved = unresolved

	outcome.Params = BuildSearchParams(validated, route, uc.params)
	log.Debug().Str("params", outcome.Params.Encode()).Msg("search parameters")

	if err := WriteSummary(uc.deps.Output, SummaryInput{
		Departure:    req.Departure,
		Destinations: req.Destinations,
		Request:      validated,
	}); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	confirmed, err := uc.confirm(ctx)
	if err != nil {
		return nil, fmt.Errorf("confirm search: %w", err)
	}
	if !confirmed {
		log.Info().Msg("search declined")
		outcome.Declined = true
		return outcome, nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, uc.searchTimeout)
	defer cancel()

	start := time.Now()
	results, err := uc.deps.Searcher.Search(searchCtx, outcome.Params)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return nil, err
	}
	outcome.Results = results

	log.Info().
		Int("destinations", len(results.Destinations)).
		Int("flights", results.Total()).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	if err := WriteResults(uc.deps.Output, results); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}

	uc.notify(ctx, log, outcome)
	return outcome, nil
}

// resolveRoute looks up the departure code, then each destination code.
// A departure failure is fatal; destination failures drop that destination.
func (uc *flightSearchUseCase) resolveRoute(ctx context.Context, log *logger.Logger, req SearchRequest) (Route, []string, error) {
	origin, err := uc.deps.Resolver.Resolve(ctx, req.Departure)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Route{}, nil, ctxErr
		}
		log.Error().Err(err).Str("location", req.Departure).Msg("unable to resolve departure")
		return Route{}, nil, fmt.Errorf("%w: %s: %w", domain.ErrDepartureUnresolved, req.Departure, err)
	}

	route := Route{Origin: origin, Destinations: make([]string, 0, len(req.Destinations))}
	var unresolved []string
	for _, name := range req.Destinations {
		code, err := uc.deps.Resolver.Resolve(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Route{}, nil, ctxErr
			}
			log.Warn().Err(err).Str("location", name).Msg("unable to get city code, skipping destination")
			unresolved = append(unresolved, name)
			continue
		}
		route.Destinations = append(route.Destinations, code)
	}

	if len(route.Destinations) == 0 {
		return Route{}, unresolved, domain.ErrNoDestinations
	}
	return route, unresolved, nil
}

func (uc *flightSearchUseCase) confirm(ctx context.Context) (bool, error) {
	if uc.deps.Confirmer == nil {
		return true, nil
	}
	return uc.deps.Confirmer.Confirm(ctx)
}

// notify delivers the results when an address was given. Failures are
// logged and recorded in the outcome; the search is not repeated.
func (uc *flightSearchUseCase) notify(ctx context.Context, log *logger.Logger, outcome *SearchOutcome) {
	recipient := outcome.Request.NotifyEmail
	if recipient == "" || uc.deps.Notifier == nil {
		return
	}
	if outcome.Results.IsEmpty() {
		log.Info().Msg("no flights found, nothing to send")
		return
	}

	if err := uc.deps.Notifier.Notify(ctx, recipient, outcome.Results); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("failed to send email")
		outcome.NotifyErr = err
		return
	}
	outcome.Notified = true
}
