package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// TequilaServer is an in-process stand-in for the Tequila API. It answers
// location queries from a name table and search queries with a fixed body.
type TequilaServer struct {
	*httptest.Server

	APIKey string

	mu           sync.Mutex
	locations    map[string]string
	searchStatus int
	searchBody   []byte
	searches     []url.Values
	lookups      []string
}

// NewTequilaServer starts a server that knows no locations and finds no
// flights. It is closed when the test ends.
func NewTequilaServer(t *testing.T, apiKey string) *TequilaServer {
	t.Helper()

	s := &TequilaServer{
		APIKey:       apiKey,
		locations:    map[string]string{},
		searchStatus: http.StatusOK,
		searchBody:   []byte(`{"data":[]}`),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/locations/query", s.handleLocations)
	mux.HandleFunc("/v2/search", s.handleSearch)

	s.Server = httptest.NewServer(s.authorize(mux))
	t.Cleanup(s.Close)
	return s
}

// WithLocation registers the code returned for name (case-insensitive).
func (s *TequilaServer) WithLocation(name, code string) *TequilaServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[strings.ToLower(name)] = code
	return s
}

// WithSearchResponse sets the status and body of every search answer.
func (s *TequilaServer) WithSearchResponse(status int, body []byte) *TequilaServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchStatus = status
	s.searchBody = body
	return s
}

// Searches returns the query of every search received.
func (s *TequilaServer) Searches() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.searches...)
}

// Lookups returns every location term received.
func (s *TequilaServer) Lookups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lookups...)
}

func (s *TequilaServer) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.APIKey != "" && r.Header.Get("apikey") != s.APIKey {
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "invalid apikey"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *TequilaServer) handleLocations(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	s.mu.Lock()
	s.lookups = append(s.lookups, term)
	code, ok := s.locations[strings.ToLower(term)]
	s.mu.Unlock()

	locations := []map[string]any{}
	if ok {
		locations = append(locations, map[string]any{"code": code, "name": term, "type": "city"})
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

func (s *TequilaServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.searches = append(s.searches, r.URL.Query())
	status, body := s.searchStatus, s.searchBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
