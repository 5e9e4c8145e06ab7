// Package mock provides configurable test doubles for the flight finder.
// Unlike the generated gomock types in the domain package, these keep
// state between calls so integration tests can inspect what happened.
package mock

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Resolver is a map-backed domain.LocationResolver.
type Resolver struct {
	codes map[string]string
	errs  map[string]error

	mu    sync.Mutex
	calls []string
}

// NewResolver creates a resolver that knows no locations.
func NewResolver() *Resolver {
	return &Resolver{
		codes: map[string]string{},
		errs:  map[string]error{},
	}
}

// WithLocation registers the code returned for name (case-insensitive).
func (r *Resolver) WithLocation(name, code string) *Resolver {
	r.codes[strings.ToLower(name)] = code
	return r
}

// WithError makes lookups of name fail with err.
func (r *Resolver) WithError(name string, err error) *Resolver {
	r.errs[strings.ToLower(name)] = err
	return r
}

// Resolve implements domain.LocationResolver.Resolve.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := strings.ToLower(name)
	if err, ok := r.errs[key]; ok {
		return "", err
	}
	if code, ok := r.codes[key]; ok {
		return code, nil
	}
	return "", domain.ErrLocationNotFound
}

// Calls returns the names looked up so far, in order.
func (r *Resolver) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Searcher is a configurable domain.FlightSearcher that records the
// parameters of every search.
type Searcher struct {
	results domain.GroupedResults
	err     error
	delay   time.Duration

	mu     sync.Mutex
	params []url.Values
}

// NewSearcher creates a searcher that finds nothing.
func NewSearcher() *Searcher {
	return &Searcher{results: domain.NewGroupedResults()}
}

// WithFlights configures the flights returned by every search.
func (s *Searcher) WithFlights(flights ...domain.FlightSummary) *Searcher {
	results := domain.NewGroupedResults()
	for _, f := range flights {
		results.Add(f)
	}
	s.results = results
	return s
}

// WithError configures the searcher to fail.
func (s *Searcher) WithError(err error) *Searcher {
	s.err = err
	return s
}

// WithDelay configures the searcher to wait before answering.
// This is useful for testing the search timeout.
func (s *Searcher) WithDelay(d time.Duration) *Searcher {
	s.delay = d
	return s
}

// Search implements domain.FlightSearcher.Search.
func (s *Searcher) Search(ctx context.Context, params url.Values) (domain.GroupedResults, error) {
	s.mu.Lock()
	s.params = append(s.params, params)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.GroupedResults{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	if s.err != nil {
		return domain.GroupedResults{}, s.err
	}
	return s.results, nil
}

// CallCount returns the number of searches run.
func (s *Searcher) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.params)
}

// LastParams returns the parameters of the most recent search, or nil.
func (s *Searcher) LastParams() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.params) == 0 {
		return nil
	}
	return s.params[len(s.params)-1]
}

// Delivery is one recorded Notify call.
type Delivery struct {
	Recipient string
	Results   domain.GroupedResults
}

// Notifier records deliveries instead of sending them.
type Notifier struct {
	err error

	mu         sync.Mutex
	deliveries []Delivery
}

// NewNotifier creates a notifier that always succeeds.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// WithError configures the notifier to fail after recording the delivery.
func (n *Notifier) WithError(err error) *Notifier {
	n.err = err
	return n
}

// Notify implements domain.Notifier.Notify.
func (n *Notifier) Notify(_ context.Context, recipient string, results domain.GroupedResults) error {
	n.mu.Lock()
	n.deliveries = append(n.deliveries, Delivery{Recipient: recipient, Results: results})
	n.mu.Unlock()
	return n.err
}

// Deliveries returns every recorded delivery.
func (n *Notifier) Deliveries() []Delivery {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Delivery(nil), n.deliveries...)
}

// Confirmer gives a fixed answer.
type Confirmer struct {
	answer bool
	err    error

	mu    sync.Mutex
	asked int
}

// NewConfirmer creates a confirmer that always answers answer.
func NewConfirmer(answer bool) *Confirmer {
	return &Confirmer{answer: answer}
}

// WithError configures the confirmer to fail.
func (c *Confirmer) WithError(err error) *Confirmer {
	c.err = err
	return c
}

// Confirm implements domain.Confirmer.Confirm.
func (c *Confirmer) Confirm(context.Context) (bool, error) {
	c.mu.Lock()
	c.asked++
	c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	return c.answer, nil
}

// Asked returns how many times the user was asked.
func (c *Confirmer) Asked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asked
}

// Ensure the fakes implement the domain interfaces at compile time.
var (
	_ domain.LocationResolver = (*Resolver)(nil)
	_ domain.FlightSearcher   = (*Searcher)(nil)
	_ domain.Notifier         = (*Notifier)(nil)
	_ domain.Confirmer        = (*Confirmer)(nil)
)

// SampleFlights returns count flights to destination with realistic values.
// Prices rise by 10 from 100.
func SampleFlights(origin, destination string, count int) []domain.FlightSummary {
	flights := make([]domain.FlightSummary, count)

	outbound := time.Date(2026, 1, 9, 18, 30, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		out := outbound.AddDate(0, 0, 7*i)
		back := out.AddDate(0, 0, 2).Add(-2 * time.Hour)

		flights[i] = domain.FlightSummary{
			Origin:       origin,
			Destination:  destination,
			OutboundDate: out.Format(domain.DateLayout),
			OutboundTime: out.Format(domain.TimeLayout),
			InboundDate:  back.Format(domain.DateLayout),
			InboundTime:  back.Format(domain.TimeLayout),
			Price:        float64(100 + 10*i),
			Link:         "https://www.kiwi.com/deep?booking=" + destination + "-" + out.Format("20060102"),
		}
	}

	return flights
}
