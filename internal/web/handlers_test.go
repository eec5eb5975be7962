package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/discovery"
	"github.com/evcraddock/landx/internal/geo"
)

// fakeSource serves canned catalogs and search results.
type fakeSource struct {
	catalogs map[catalog.Kind][]catalog.Listing
	results  map[catalog.Kind][]catalog.Listing
}

func (f *fakeSource) FetchCatalog(kind catalog.Kind) ([]catalog.Listing, error) {
	return f.catalogs[kind], nil
}

func (f *fakeSource) SearchCatalog(kind catalog.Kind, query string) ([]catalog.Listing, error) {
	return f.results[kind], nil
}

// fakeResolver returns one fixed point, or a fixed error.
type fakeResolver struct {
	point *geo.Point
	err   error
	calls []string
}

func (f *fakeResolver) Resolve(place string) (*geo.Point, error) {
	f.calls = append(f.calls, place)
	if f.err != nil {
		return nil, f.err
	}
	return f.point, nil
}

// fakeDetails serves single listings by id.
type fakeDetails struct {
	listings map[string]*catalog.Listing
	err      error
}

func (f *fakeDetails) GetListing(kind catalog.Kind, id string) (*catalog.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.listings[string(kind)+"/"+id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, catalog.ErrNotFound)
	}
	return l, nil
}

func (f *fakeDetails) BaseURL() string { return "http://api.example.com" }

func float(v float64) *float64 { return &v }

func testServer(t *testing.T, src *fakeSource, resolver *fakeResolver, details *fakeDetails) *Server {
	t.Helper()
	if src == nil {
		src = &fakeSource{}
	}
	if resolver == nil {
		resolver = &fakeResolver{point: &geo.Point{Latitude: 13.08, Longitude: 80.27, Label: "Chennai"}}
	}
	if details == nil {
		details = &fakeDetails{}
	}

	server, err := NewServer(discovery.New(src), resolver, details)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	t.Cleanup(func() {
		if err := server.Close(); err != nil {
			t.Errorf("closing server: %v", err)
		}
	})
	return server
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHomeRendersBothCatalogs(t *testing.T) {
	src := &fakeSource{
		catalogs: map[catalog.Kind][]catalog.Listing{
			catalog.KindSale: {
				{ID: "a1", Title: "Riverside Plot", Location: "Guntur", Price: float(250000), Latitude: float(16.3), Longitude: float(80.4)},
			},
			catalog.KindRental: {
				{ID: "r1", Title: "Farm Lease", Location: "Vellore", Price: float(9000), Duration: "month"},
			},
		},
	}
	server := testServer(t, src, nil, nil)

	rec := get(t, server, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Riverside Plot") {
		t.Error("missing sale listing")
	}
	if !strings.Contains(body, "Farm Lease") {
		t.Error("missing rental listing")
	}
	if !strings.Contains(body, "L.marker(") {
		t.Error("missing map marker for located listing")
	}
	if !strings.Contains(body, `href="/land/a1"`) {
		t.Error("missing sale detail link")
	}
	if !strings.Contains(body, `href="/rent/r1"`) {
		t.Error("missing rental detail link")
	}
}

func TestHomeEmptyCatalogs(t *testing.T) {
	server := testServer(t, nil, nil, nil)

	rec := get(t, server, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "No lands available.") {
		t.Error("missing sale empty state")
	}
	if !strings.Contains(body, "No rentals available.") {
		t.Error("missing rental empty state")
	}
}

func TestHomeSearchShowsResults(t *testing.T) {
	src := &fakeSource{
		catalogs: map[catalog.Kind][]catalog.Listing{
			catalog.KindSale: {{ID: "a1", Title: "Baseline Plot"}},
		},
		results: map[catalog.Kind][]catalog.Listing{
			catalog.KindSale: {{ID: "a2", Title: "River View Plot"}},
		},
	}
	server := testServer(t, src, nil, nil)

	rec := get(t, server, "/?q=river")
	body := rec.Body.String()
	if !strings.Contains(body, "River View Plot") {
		t.Error("missing search result")
	}
	if strings.Contains(body, "Baseline Plot") {
		t.Error("baseline must be replaced by search results")
	}
	if !strings.Contains(body, `value="river"`) {
		t.Error("search box must keep the query")
	}
}

func TestHomeSearchOnFreshServerFallsBackToBaseline(t *testing.T) {
	src := &fakeSource{
		catalogs: map[catalog.Kind][]catalog.Listing{
			catalog.KindSale:   {{ID: "a1", Title: "Plot in Guntur"}},
			catalog.KindRental: {{ID: "r1", Title: "Lease in Vellore"}},
		},
		results: map[catalog.Kind][]catalog.Listing{
			catalog.KindSale: {{ID: "a2", Title: "River View Plot"}},
			// Rental search matches nothing.
		},
	}
	server := testServer(t, src, nil, nil)

	// The very first request is a search; baselines are loaded first so
	// the rental catalog has something to fall back to.
	rec := get(t, server, "/?q=river")
	body := rec.Body.String()
	if !strings.Contains(body, "River View Plot") {
		t.Error("missing sale search result")
	}
	if !strings.Contains(body, "Lease in Vellore") {
		t.Error("rental with no matches must fall back to its full catalog")
	}
}

func TestHomePlaceLookupRecentersMap(t *testing.T) {
	resolver := &fakeResolver{point: &geo.Point{Latitude: 13.08, Longitude: 80.27, Label: "Chennai, India"}}
	server := testServer(t, nil, resolver, nil)

	rec := get(t, server, "/?place=chennai")
	body := rec.Body.String()

	if len(resolver.calls) != 1 || resolver.calls[0] != "chennai" {
		t.Errorf("resolver calls = %v", resolver.calls)
	}
	if !strings.Contains(body, "setView([13.08, 80.27], 12)") {
		t.Error("map must recenter on the resolved place")
	}
	if !strings.Contains(body, "Chennai, India") {
		t.Error("missing ad-hoc marker label")
	}
}

func TestHomePlaceNotFound(t *testing.T) {
	resolver := &fakeResolver{err: geo.ErrNotFound}
	server := testServer(t, nil, resolver, nil)

	rec := get(t, server, "/?place=nowhereville")
	if !strings.Contains(rec.Body.String(), "Place not found. Try another name.") {
		t.Error("missing not-found message")
	}
}

func TestHomePlaceLookupUnavailable(t *testing.T) {
	resolver := &fakeResolver{err: fmt.Errorf("connection refused")}
	server := testServer(t, nil, resolver, nil)

	rec := get(t, server, "/?place=chennai")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, lookup failure must not fail the page", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Place lookup is unavailable right now.") {
		t.Error("missing unavailable message")
	}
}

func TestHomeUnknownPathIs404(t *testing.T) {
	server := testServer(t, nil, nil, nil)
	if rec := get(t, server, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDetailPages(t *testing.T) {
	details := &fakeDetails{
		listings: map[string]*catalog.Listing{
			"sale/a1": {
				ID: "a1", Title: "Riverside Plot", Location: "Guntur",
				Description: "Fertile land near the river", Price: float(250000),
				Size: "2 acres", Image: "plot.jpg", Kind: catalog.KindSale,
				Seller: &catalog.Seller{Name: "Ravi", Email: "ravi@example.com"},
			},
			"rent/r1": {
				ID: "r1", Title: "Farm Lease", Price: float(9000),
				Duration: "month", Kind: catalog.KindRental,
			},
		},
	}
	server := testServer(t, nil, nil, details)

	rec := get(t, server, "/land/a1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Riverside Plot") || !strings.Contains(body, "Fertile land near the river") {
		t.Error("missing listing fields")
	}
	if !strings.Contains(body, "Ravi") {
		t.Error("missing seller")
	}
	if !strings.Contains(body, "http://api.example.com/uploads/plot.jpg") {
		t.Error("missing resolved image URL")
	}

	rec = get(t, server, "/rent/r1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "9000 / month") {
		t.Errorf("rental price must show the duration:\n%s", rec.Body.String())
	}
}

func TestDetailMissingListingIs404(t *testing.T) {
	server := testServer(t, nil, nil, nil)
	if rec := get(t, server, "/land/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := get(t, server, "/land/"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d for bare prefix, want 404", rec.Code)
	}
}

func TestDetailUnreachableMarketplaceIs502(t *testing.T) {
	details := &fakeDetails{err: fmt.Errorf("sending request: connection refused")}
	server := testServer(t, nil, nil, details)

	rec := get(t, server, "/land/a1")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for a transport failure", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unreachable") {
		t.Errorf("body = %q, want an unreachable message", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	server := testServer(t, nil, nil, nil)
	rec := get(t, server, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}
