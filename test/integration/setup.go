// Package integration provides helpers and integration tests for the flight finder.
// Integration tests verify that components work together correctly: the
// command line, the search pipeline, the Tequila client against a fake
// server, and the notifier.
package integration

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/flight-search/flight-finder/internal/adapter/cli"
	"github.com/flight-search/flight-finder/internal/adapter/provider/tequila"
	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/cache"
	"github.com/flight-search/flight-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-finder/internal/usecase"
	"github.com/flight-search/flight-finder/test/mock"
	"github.com/flight-search/flight-finder/test/testutil"
)

const testAPIKey = "integration-key"

// Today is the fixed "today" of every integration test: Monday 5 January 2026.
var Today = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local)

// Harness runs the command line against a fake Tequila server, recording
// notifications instead of sending them.
type Harness struct {
	Tequila  *testutil.TequilaServer
	Notifier *mock.Notifier
	Clock    *timeutil.MockClock

	// Cache is shared by every run of the harness
	Cache cache.LocationCache

	// Stdin feeds the confirmation prompt. Runs without -yes need an answer.
	Stdin io.Reader

	Stdout *bytes.Buffer
	Stderr *bytes.Buffer

	SearchTimeout time.Duration
}

// NewHarness creates a harness whose server knows Manchester, Barcelona
// and Lisbon and answers searches with the weekend fixture.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	srv := testutil.NewTequilaServer(t, testAPIKey).
		WithLocation("Manchester", "MAN").
		WithLocation("Barcelona", "BCN").
		WithLocation("Lisbon", "LIS").
		WithSearchResponse(200, testutil.LoadTestJSON(t, "tequila_search_weekend.json"))

	return &Harness{
		Tequila:       srv,
		Notifier:      mock.NewNotifier(),
		Clock:         timeutil.NewMockClockOnDate(Today.Year(), Today.Month(), Today.Day()),
		Cache:         newMemoryCache(),
		Stdin:         strings.NewReader(""),
		Stdout:        &bytes.Buffer{},
		Stderr:        &bytes.Buffer{},
		SearchTimeout: 5 * time.Second,
	}
}

// Run parses argv and runs the search the way the flightfinder command
// does, returning the exit code.
func (h *Harness) Run(argv ...string) int {
	args, err := cli.Parse(argv, h.Stderr)
	if err != nil {
		return cli.ExitCodeForParseError(err, h.Stderr)
	}
	return cli.NewSearchHandler(h.UseCase(args.Yes), h.Stdout, h.Stderr, nil).Run(context.Background(), args)
}

// UseCase builds the pipeline. autoConfirm skips the prompt.
func (h *Harness) UseCase(autoConfirm bool) usecase.FlightSearchUseCase {
	client := tequila.NewClient(
		tequila.Config{BaseURL: h.Tequila.URL, APIKey: testAPIKey, Timeout: 5 * time.Second},
		tequila.WithCache(h.Cache),
	)

	var confirmer domain.Confirmer = cli.NewPromptConfirmer(h.Stdin, h.Stdout)
	if autoConfirm {
		confirmer = cli.AutoConfirmer{}
	}

	return usecase.NewFlightSearchUseCase(usecase.Dependencies{
		Validator: usecase.NewConstraintValidator(h.Clock),
		Resolver:  client,
		Searcher:  client,
		Notifier:  h.Notifier,
		Confirmer: confirmer,
		Output:    h.Stdout,
	}, &usecase.Config{SearchTimeout: h.SearchTimeout})
}

// LastSearch returns the query of the most recent search the server received.
func (h *Harness) LastSearch(t *testing.T) map[string]string {
	t.Helper()

	searches := h.Tequila.Searches()
	if len(searches) == 0 {
		t.Fatal("no search reached the server")
	}
	flat := map[string]string{}
	for key, values := range searches[len(searches)-1] {
		flat[key] = values[0]
	}
	return flat
}

// Pipeline is the search pipeline wired to in-memory fakes.
type Pipeline struct {
	UseCase   usecase.FlightSearchUseCase
	Resolver  *mock.Resolver
	Searcher  *mock.Searcher
	Notifier  *mock.Notifier
	Confirmer *mock.Confirmer
	Output    *bytes.Buffer
}

// NewPipeline wires the pipeline with fakes that know Manchester,
// Barcelona and Lisbon, find nothing and confirm every search.
func NewPipeline(config *usecase.Config) *Pipeline {
	p := &Pipeline{
		Resolver: mock.NewResolver().
			WithLocation("Manchester", "MAN").
			WithLocation("Barcelona", "BCN").
			WithLocation("Lisbon", "LIS"),
		Searcher:  mock.NewSearcher(),
		Notifier:  mock.NewNotifier(),
		Confirmer: mock.NewConfirmer(true),
		Output:    &bytes.Buffer{},
	}
	p.Rebuild(config)
	return p
}

// Rebuild wires a new use case around the fakes currently in p.
func (p *Pipeline) Rebuild(config *usecase.Config) {
	p.UseCase = usecase.NewFlightSearchUseCase(usecase.Dependencies{
		Validator: usecase.NewConstraintValidator(timeutil.NewMockClock(Today.Add(12 * time.Hour))),
		Resolver:  p.Resolver,
		Searcher:  p.Searcher,
		Notifier:  p.Notifier,
		Confirmer: p.Confirmer,
		Output:    p.Output,
	}, config)
}

// WeekendRequest asks for weekend trips from Manchester to Barcelona and Lisbon.
func WeekendRequest(email string) usecase.SearchRequest {
	return usecase.SearchRequest{
		Departure:    "Manchester",
		Destinations: []string{"Barcelona", "Lisbon"},
		Raw: domain.RawSearchRequest{
			WeekendOnly: true,
			NotifyEmail: email,
		},
	}
}

// memoryCache is an in-process cache.LocationCache.
type memoryCache struct {
	codes map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{codes: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, name string) (string, bool) {
	code, ok := m.codes[cache.Key(name)]
	return code, ok
}

func (m *memoryCache) Set(_ context.Context, name, code string) error {
	m.codes[cache.Key(name)] = code
	return nil
}

func (m *memoryCache) Close() error { return nil }
