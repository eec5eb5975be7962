// Package geo resolves free-text place names to coordinates via the
// OpenStreetMap Nominatim search API.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSearchURL is the public Nominatim search endpoint.
const DefaultSearchURL = "https://nominatim.openstreetmap.org/search"

const userAgent = "landx/1.0"

// ErrNotFound means the provider recognized the request but matched no place.
// Callers present this differently from transport failures.
var ErrNotFound = errors.New("no matching place found")

// Point is a resolved place: coordinates plus the provider's label.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// Geocoder looks up place names against a Nominatim-compatible endpoint.
type Geocoder struct {
	httpClient *http.Client

	// Overridable for testing.
	searchURL string
}

// NewGeocoder creates a geocoder. An empty searchURL selects the public
// Nominatim endpoint.
func NewGeocoder(searchURL string) *Geocoder {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &Geocoder{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  searchURL,
	}
}

// nominatimResult is one entry of the provider's ranked result list.
// Nominatim serializes coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up a place name and returns the provider's best match.
// Returns ErrNotFound when the result list is empty; any other error
// means the lookup itself was unavailable.
func (g *Geocoder) Resolve(place string) (*Point, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("place text is required")
	}

	params := url.Values{
		"format": {"json"},
		"q":      {place},
	}

	req, err := http.NewRequest("GET", g.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// The provider ranks results; the first is the best match.
	best := results[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", best.Lat, err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", best.Lon, err)
	}

	return &Point{Latitude: lat, Longitude: lon, Label: best.DisplayName}, nil
}
